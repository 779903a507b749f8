package models

import "time"

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// PaymentMethod represents how a transaction was paid.
type PaymentMethod string

const (
	PaymentMethodPix         PaymentMethod = "pix"
	PaymentMethodCredit      PaymentMethod = "credit"
	PaymentMethodDebit       PaymentMethod = "debit"
	PaymentMethodMealVoucher PaymentMethod = "meal_voucher"
	PaymentMethodNone        PaymentMethod = ""
)

// RecurrencePeriod represents how often a recurring transaction repeats.
type RecurrencePeriod string

const (
	RecurrenceMonthly RecurrencePeriod = "monthly"
	RecurrenceWeekly  RecurrencePeriod = "weekly"
	RecurrenceYearly  RecurrencePeriod = "yearly"
)

// Transaction represents a financial transaction in the system.
// Amounts are stored in cents. CategoryID is a plain reference, not a
// foreign key: deleting a category leaves referencing transactions with
// an orphaned id that readers resolve through a total lookup.
type Transaction struct {
	Base
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Type        TransactionType `gorm:"not null" json:"type"`
	CategoryID  string          `gorm:"not null" json:"category_id"`
	Amount      int64           `gorm:"type:bigint;not null" json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `gorm:"not null;index" json:"date"`

	PaymentMethod PaymentMethod     `gorm:"default:''" json:"payment_method"`
	Recurring     bool              `gorm:"default:false" json:"recurring"`
	Recurrence    *RecurrencePeriod `json:"recurrence,omitempty"`
	Tags          []string          `gorm:"serializer:json" json:"tags,omitempty"`

	// Set when a single purchase is split into N dated transactions;
	// InstallmentIndex is 1-based.
	InstallmentIndex *int `json:"installment_index,omitempty"`
	InstallmentTotal *int `json:"installment_total,omitempty"`
}
