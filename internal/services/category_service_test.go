package services

import (
	"testing"

	"centavo/internal/models"
	"centavo/internal/testutil"
)

func TestCreateCategory(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory("Groceries", "#FF0000")
		testutil.AssertNoError(t, err)

		if cat.ID == "" {
			t.Fatal("expected non-empty category ID")
		}
		if cat.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", cat.Name)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Food", "")
		testutil.AssertNoError(t, err)

		_, err = svc.CreateCategory("Food", "#00FF00")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")

		var count int64
		db.Model(&models.Category{}).Where("name = ?", "Food").Count(&count)
		if count != 1 {
			t.Errorf("expected exactly one Food category, got %d", count)
		}
	})

	t.Run("duplicate_check_is_case_sensitive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Food", "")
		testutil.AssertNoError(t, err)

		// Exact-match uniqueness: a different casing is a different name.
		_, err = svc.CreateCategory("food", "")
		testutil.AssertNoError(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestListCategories(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	testutil.CreateTestCategory(t, db)
	testutil.CreateTestCategory(t, db)

	categories, err := svc.ListCategories()
	testutil.AssertNoError(t, err)
	if len(categories) != 2 {
		t.Errorf("expected 2 categories, got %d", len(categories))
	}
}

func TestUpdateCategory(t *testing.T) {
	t.Run("rename_and_recolor", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		cat, err := svc.CreateCategory("Transport", "#111111")
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateCategory(cat.ID, "Mobility", "#222222")
		testutil.AssertNoError(t, err)
		if updated.Name != "Mobility" {
			t.Errorf("expected name Mobility, got %s", updated.Name)
		}
		if updated.Color != "#222222" {
			t.Errorf("expected color #222222, got %s", updated.Color)
		}
	})

	t.Run("rename_collision", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.CreateCategory("Rent", "")
		testutil.AssertNoError(t, err)
		cat, err := svc.CreateCategory("Bills", "")
		testutil.AssertNoError(t, err)

		_, err = svc.UpdateCategory(cat.ID, "Rent", "")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		_, err := svc.UpdateCategory("0198a5b0-0000-7000-8000-000000000000", "X", "")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Run("deletes_without_cascading", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)
		user := testutil.CreateTestUser(t, db)

		cat := testutil.CreateTestCategory(t, db)
		tx := testutil.CreateTestTransaction(t, db, user.ID, cat.ID, models.TransactionTypeExpense, 5000)

		testutil.AssertNoError(t, svc.DeleteCategory(cat.ID))

		// The referencing transaction survives with an orphaned category id.
		var kept models.Transaction
		if err := db.Where("id = ?", tx.ID).First(&kept).Error; err != nil {
			t.Fatalf("expected transaction to survive category deletion: %v", err)
		}
		if kept.CategoryID != cat.ID {
			t.Errorf("expected orphaned category id %s, got %s", cat.ID, kept.CategoryID)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewCategoryService(db)

		err := svc.DeleteCategory("0198a5b0-0000-7000-8000-000000000000")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestResolveCategoryName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewCategoryService(db)

	cat := testutil.CreateTestCategory(t, db)

	name, ok := svc.ResolveCategoryName(cat.ID)
	if !ok || name != cat.Name {
		t.Errorf("expected (%q, true), got (%q, %v)", cat.Name, name, ok)
	}

	// Deleting the category turns the reference into an explicit absence.
	testutil.AssertNoError(t, svc.DeleteCategory(cat.ID))
	if _, ok := svc.ResolveCategoryName(cat.ID); ok {
		t.Error("expected orphaned reference to resolve as absent")
	}
}
