package integration

import (
	"net/http"
	"testing"
)

func TestTransactionFlow_CrudRoundTrip(t *testing.T) {
	app := setupApp(t)
	token, userID := app.registerUser(t, "txflow@test.com", "password123")
	catID := app.createCategory(t, token, "Groceries")

	// Create
	rec := app.request("POST", "/api/v1/transactions",
		`{"type":"expense","category_id":"`+catID+`","amount":4500,"description":"Lunch","date":"2026-08-15","payment_method":"pix","tags":["food","work"]}`,
		token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	tx := result["transaction"].(map[string]interface{})
	txID := tx["id"].(string)
	if tx["user_id"] != userID {
		t.Errorf("expected owner %s, got %v", userID, tx["user_id"])
	}
	if tx["amount"] != float64(4500) {
		t.Errorf("expected amount 4500, got %v", tx["amount"])
	}

	// Read back
	rec = app.request("GET", "/api/v1/transactions/"+txID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("get failed: %d %s", rec.Code, rec.Body.String())
	}

	// Partial update
	rec = app.request("PUT", "/api/v1/transactions/"+txID, `{"amount":5000}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("update failed: %d %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	tx = result["transaction"].(map[string]interface{})
	if tx["amount"] != float64(5000) {
		t.Errorf("expected patched amount 5000, got %v", tx["amount"])
	}
	if tx["description"] != "Lunch" {
		t.Errorf("expected untouched description, got %v", tx["description"])
	}

	// Delete
	rec = app.request("DELETE", "/api/v1/transactions/"+txID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d %s", rec.Code, rec.Body.String())
	}

	// Second delete is a 404
	rec = app.request("DELETE", "/api/v1/transactions/"+txID, "", token)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d: %s", rec.Code, rec.Body.String())
	}
	result = parseJSON(t, rec)
	errObj := result["error"].(map[string]interface{})
	if errObj["code"] != "TRANSACTION_NOT_FOUND" {
		t.Errorf("expected TRANSACTION_NOT_FOUND, got %v", errObj["code"])
	}
}

func TestTransactionFlow_OwnershipIsolation(t *testing.T) {
	app := setupApp(t)
	anaToken, _ := app.registerUser(t, "ana-tx@test.com", "password123")
	beaToken, _ := app.registerUser(t, "bea-tx@test.com", "password123")
	catID := app.createCategory(t, anaToken, "Groceries")

	txID := app.createTransaction(t, anaToken, catID, "expense", 1000, "2026-08-01")

	// The other user cannot read, update, or delete it.
	rec := app.request("GET", "/api/v1/transactions/"+txID, "", beaToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user get: expected 404, got %d", rec.Code)
	}
	rec = app.request("PUT", "/api/v1/transactions/"+txID, `{"amount":1}`, beaToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user update: expected 404, got %d", rec.Code)
	}
	rec = app.request("DELETE", "/api/v1/transactions/"+txID, "", beaToken)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user delete: expected 404, got %d", rec.Code)
	}

	// And their listing stays empty.
	rec = app.request("GET", "/api/v1/transactions", "", beaToken)
	result := parseJSON(t, rec)
	data := result["data"].([]interface{})
	if len(data) != 0 {
		t.Errorf("expected empty listing for the other user, got %d", len(data))
	}
}

func TestTransactionFlow_ListFiltersAndPagination(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "list@test.com", "password123")
	groceriesID := app.createCategory(t, token, "Groceries")
	salaryID := app.createCategory(t, token, "Salary")

	app.createTransaction(t, token, salaryID, "income", 500000, "2026-08-01")
	app.createTransaction(t, token, groceriesID, "expense", 4500, "2026-08-10")
	app.createTransaction(t, token, groceriesID, "expense", 9900, "2026-07-20")

	// Newest date first
	rec := app.request("GET", "/api/v1/transactions", "", token)
	result := parseJSON(t, rec)
	data := result["data"].([]interface{})
	if len(data) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(data))
	}
	first := data[0].(map[string]interface{})
	if first["amount"] != float64(4500) {
		t.Errorf("expected newest transaction first, got %v", first["amount"])
	}

	// Filter by type
	rec = app.request("GET", "/api/v1/transactions?type=expense", "", token)
	result = parseJSON(t, rec)
	if data = result["data"].([]interface{}); len(data) != 2 {
		t.Errorf("type filter: expected 2, got %d", len(data))
	}

	// Filter by category
	rec = app.request("GET", "/api/v1/transactions?category_id="+salaryID, "", token)
	result = parseJSON(t, rec)
	if data = result["data"].([]interface{}); len(data) != 1 {
		t.Errorf("category filter: expected 1, got %d", len(data))
	}

	// Filter by date range
	rec = app.request("GET", "/api/v1/transactions?start_date=2026-08-01&end_date=2026-08-31", "", token)
	result = parseJSON(t, rec)
	if data = result["data"].([]interface{}); len(data) != 2 {
		t.Errorf("date filter: expected 2, got %d", len(data))
	}

	// Pagination metadata
	rec = app.request("GET", "/api/v1/transactions?page=1&limit=2", "", token)
	result = parseJSON(t, rec)
	if data = result["data"].([]interface{}); len(data) != 2 {
		t.Errorf("expected page of 2, got %d", len(data))
	}
	if result["total_items"] != float64(3) {
		t.Errorf("expected total_items 3, got %v", result["total_items"])
	}
	if result["total_pages"] != float64(2) {
		t.Errorf("expected total_pages 2, got %v", result["total_pages"])
	}
}

func TestTransactionFlow_InstallmentMetadata(t *testing.T) {
	app := setupApp(t)
	token, _ := app.registerUser(t, "installments@test.com", "password123")
	catID := app.createCategory(t, token, "Electronics")

	rec := app.request("POST", "/api/v1/transactions",
		`{"type":"expense","category_id":"`+catID+`","amount":10000,"description":"Phone (2/3)","date":"2026-09-10","installment_index":2,"installment_total":3}`,
		token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	tx := result["transaction"].(map[string]interface{})
	if tx["installment_index"] != float64(2) || tx["installment_total"] != float64(3) {
		t.Errorf("expected installment metadata 2/3, got %v/%v",
			tx["installment_index"], tx["installment_total"])
	}
}
