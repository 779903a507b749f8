package client

import (
	"fmt"
	"sort"
	"strings"

	"centavo/internal/models"
)

// SortColumn identifies a sortable column of the transactions table view.
type SortColumn string

const (
	SortByCategory      SortColumn = "category"
	SortByDate          SortColumn = "date"
	SortByAmount        SortColumn = "amount"
	SortByPaymentMethod SortColumn = "payment_method"
)

// CategoryResolver maps a category id to its display name. The boolean is
// false for orphaned references, in which case views fall back to the
// raw id.
type CategoryResolver func(categoryID string) (string, bool)

var paymentMethodLabels = map[models.PaymentMethod]string{
	models.PaymentMethodPix:         "Pix",
	models.PaymentMethodCredit:      "Credit",
	models.PaymentMethodDebit:       "Debit",
	models.PaymentMethodMealVoucher: "Meal voucher",
}

// PaymentMethodLabel returns the display label for a payment method.
func PaymentMethodLabel(m models.PaymentMethod) string {
	return paymentMethodLabels[m]
}

func categoryLabel(t models.Transaction, resolve CategoryResolver) string {
	if resolve != nil {
		if name, ok := resolve(t.CategoryID); ok {
			return name
		}
	}
	return t.CategoryID
}

// signedAmount renders income as positive and expense as negative,
// matching how the table view displays values.
func signedAmount(t models.Transaction) int64 {
	if t.Type == models.TransactionTypeExpense {
		return -t.Amount
	}
	return t.Amount
}

// formatAmount renders absolute cents as a decimal string, e.g. 12345 -> "123.45".
func formatAmount(cents int64) string {
	if cents < 0 {
		cents = -cents
	}
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}

// formatDate renders a transaction date for display and filtering.
func formatDate(t models.Transaction) string {
	return t.Date.Format("02/01/2006")
}

// SortTransactions returns a copy of txs ordered by the given column.
// Sorting the same column descending yields the exact reverse of the
// ascending order.
func SortTransactions(txs []models.Transaction, column SortColumn, ascending bool, resolve CategoryResolver) []models.Transaction {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)

	var less func(a, b models.Transaction) bool
	switch column {
	case SortByCategory:
		less = func(a, b models.Transaction) bool {
			return categoryLabel(a, resolve) < categoryLabel(b, resolve)
		}
	case SortByAmount:
		less = func(a, b models.Transaction) bool {
			return signedAmount(a) < signedAmount(b)
		}
	case SortByPaymentMethod:
		less = func(a, b models.Transaction) bool {
			return PaymentMethodLabel(a.PaymentMethod) < PaymentMethodLabel(b.PaymentMethod)
		}
	default: // SortByDate
		less = func(a, b models.Transaction) bool {
			return a.Date.Before(b.Date)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return less(sorted[i], sorted[j])
		}
		return less(sorted[j], sorted[i])
	})
	return sorted
}

// FilterTransactions keeps transactions whose category label, formatted
// date, absolute amount digits, or payment-method label contains the query
// as a case-insensitive substring. An empty query keeps everything.
func FilterTransactions(txs []models.Transaction, query string, resolve CategoryResolver) []models.Transaction {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return txs
	}

	matched := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		haystacks := []string{
			categoryLabel(t, resolve),
			formatDate(t),
			formatAmount(t.Amount),
			PaymentMethodLabel(t.PaymentMethod),
		}
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), query) {
				matched = append(matched, t)
				break
			}
		}
	}
	return matched
}
