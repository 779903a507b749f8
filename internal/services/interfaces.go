package services

import (
	"time"

	"centavo/internal/models"
	"centavo/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(name, email, password string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(name, color string) (*models.Category, error)
	ListCategories() ([]models.Category, error)
	GetCategoryByID(categoryID string) (*models.Category, error)
	UpdateCategory(categoryID, name, color string) (*models.Category, error)
	DeleteCategory(categoryID string) error
	ResolveCategoryName(categoryID string) (string, bool)
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Type       *models.TransactionType
	CategoryID *string
	StartDate  *time.Time
	EndDate    *time.Time
}

// TransactionPatch holds the fields of a partial transaction update.
// Nil fields are left untouched.
type TransactionPatch struct {
	Type          *models.TransactionType
	CategoryID    *string
	Amount        *int64
	Description   *string
	Date          *time.Time
	PaymentMethod *models.PaymentMethod
	Recurring     *bool
	Recurrence    *models.RecurrencePeriod
	Tags          *[]string
}

// CreateTransactionInput carries the validated fields of a create request.
// The owning user is supplied separately by the caller and is always the
// authenticated identity.
type CreateTransactionInput struct {
	Type             models.TransactionType
	CategoryID       string
	Amount           int64
	Description      string
	Date             time.Time
	PaymentMethod    models.PaymentMethod
	Recurring        bool
	Recurrence       *models.RecurrencePeriod
	Tags             []string
	InstallmentIndex *int
	InstallmentTotal *int
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, input CreateTransactionInput) (*models.Transaction, error)
	ListTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, patch TransactionPatch) (*models.Transaction, error)
	DeleteTransaction(userID, transactionID string) error
}

// CategoryTotal is one by-category slice of the dashboard summary. Name is
// the resolved category name, or the raw id when the reference is orphaned.
type CategoryTotal struct {
	CategoryID string `json:"category_id"`
	Name       string `json:"name"`
	Value      int64  `json:"value"`
}

// MonthNet is one month of the six-month dashboard history.
type MonthNet struct {
	Month  string `json:"month"` // MM/YYYY
	Amount int64  `json:"amount"`
}

// Summary is the dashboard aggregation result.
type Summary struct {
	TotalIncome    int64           `json:"total_income"`
	TotalExpense   int64           `json:"total_expense"`
	Balance        int64           `json:"balance"`
	Savings        int64           `json:"savings"`
	SavingsPercent float64         `json:"savings_percent"`
	ByCategory     []CategoryTotal `json:"by_category"`
	History        []MonthNet      `json:"history"`
}

// DashboardServicer defines the contract for dashboard aggregation.
type DashboardServicer interface {
	GetSummary(userID string, startDate, endDate *time.Time) (*Summary, error)
	GetRecent(userID string, startDate, endDate *time.Time) ([]models.Transaction, error)
}
