package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/pagination"
)

// transactionService handles transaction-related business logic. Every
// query is scoped to the owning user as part of the lookup predicate, so
// another user's records are indistinguishable from missing ones.
type transactionService struct {
	db *gorm.DB
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB) TransactionServicer {
	return &transactionService{db: db}
}

// CreateTransaction persists a new transaction owned by userID. The owner
// always comes from the authenticated caller, never from the payload.
func (s *transactionService) CreateTransaction(userID string, input CreateTransactionInput) (*models.Transaction, error) {
	if input.Amount == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount is required")
	}
	if input.CategoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	transaction := &models.Transaction{
		UserID:           userID,
		Type:             input.Type,
		CategoryID:       input.CategoryID,
		Amount:           input.Amount,
		Description:      input.Description,
		Date:             date,
		PaymentMethod:    input.PaymentMethod,
		Recurring:        input.Recurring,
		Recurrence:       input.Recurrence,
		Tags:             input.Tags,
		InstallmentIndex: input.InstallmentIndex,
		InstallmentTotal: input.InstallmentTotal,
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return transaction, nil
}

// ListTransactions retrieves a paginated, filtered list of the user's
// transactions, most recent date first.
func (s *transactionService) ListTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	base = applyTransactionFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var transactions []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(transactions, page.Page, page.Limit, totalItems)
	return &result, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	return q
}

// GetTransactionByID retrieves a transaction by ID for a specific user
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &transaction, nil
}

// UpdateTransaction applies a partial patch to a transaction owned by the
// user. A miss on the ownership-scoped lookup yields not-found.
func (s *transactionService) UpdateTransaction(userID, transactionID string, patch TransactionPatch) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if patch.Type != nil {
		updates["type"] = *patch.Type
	}
	if patch.CategoryID != nil {
		updates["category_id"] = *patch.CategoryID
	}
	if patch.Amount != nil {
		updates["amount"] = *patch.Amount
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Date != nil {
		updates["date"] = *patch.Date
	}
	if patch.PaymentMethod != nil {
		updates["payment_method"] = *patch.PaymentMethod
	}
	if patch.Recurring != nil {
		updates["recurring"] = *patch.Recurring
	}
	if patch.Recurrence != nil {
		updates["recurrence"] = *patch.Recurrence
	}

	if len(updates) > 0 {
		if err := s.db.Model(transaction).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if patch.Tags != nil {
		transaction.Tags = *patch.Tags
		if err := s.db.Model(transaction).Update("tags", transaction.Tags).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return transaction, nil
}

// DeleteTransaction deletes a transaction owned by the user. Deleting an
// already-deleted id reports not-found.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	transaction, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(transaction).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
