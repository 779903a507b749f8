package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
	"centavo/internal/pagination"
	"centavo/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// CreateTransactionRequest represents the request payload for creating a transaction
type CreateTransactionRequest struct {
	Type             models.TransactionType   `json:"type" binding:"required,transaction_type"`
	CategoryID       string                   `json:"category_id" binding:"required"`
	Amount           int64                    `json:"amount" binding:"required"`
	Description      string                   `json:"description" binding:"max=500"`
	Date             string                   `json:"date" binding:"required"`
	PaymentMethod    models.PaymentMethod     `json:"payment_method" binding:"omitempty,payment_method"`
	Recurring        bool                     `json:"recurring"`
	Recurrence       *models.RecurrencePeriod `json:"recurrence" binding:"omitempty,recurrence_period"`
	Tags             []string                 `json:"tags"`
	InstallmentIndex *int                     `json:"installment_index" binding:"omitempty,min=1"`
	InstallmentTotal *int                     `json:"installment_total" binding:"omitempty,min=1"`
}

// UpdateTransactionRequest represents a partial transaction patch. Absent
// fields leave the stored value untouched.
type UpdateTransactionRequest struct {
	Type          *models.TransactionType  `json:"type" binding:"omitempty,transaction_type"`
	CategoryID    *string                  `json:"category_id"`
	Amount        *int64                   `json:"amount"`
	Description   *string                  `json:"description" binding:"omitempty,max=500"`
	Date          *string                  `json:"date"`
	PaymentMethod *models.PaymentMethod    `json:"payment_method" binding:"omitempty,payment_method"`
	Recurring     *bool                    `json:"recurring"`
	Recurrence    *models.RecurrencePeriod `json:"recurrence" binding:"omitempty,recurrence_period"`
	Tags          *[]string                `json:"tags"`
}

// ListTransactionsRequest holds the query parameters of the list endpoint.
type ListTransactionsRequest struct {
	pagination.PageRequest
	Type       string `form:"type" binding:"omitempty,transaction_type"`
	CategoryID string `form:"category_id"`
	StartDate  string `form:"start_date"`
	EndDate    string `form:"end_date"`
}

// TransactionResponse represents a transaction in the response
type TransactionResponse struct {
	ID            string                 `json:"id"`
	UserID        string                 `json:"user_id"`
	Type          models.TransactionType `json:"type"`
	CategoryID    string                 `json:"category_id"`
	Amount        int64                  `json:"amount"`
	Description   string                 `json:"description"`
	Date          time.Time              `json:"date"`
	PaymentMethod models.PaymentMethod   `json:"payment_method"`
}

// CreateTransaction handles the creation of a new transaction
// @Summary     Create a transaction
// @Description Create a new income or expense transaction for the authenticated user
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	date, err := parseFlexibleTime(req.Date)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.CreateTransaction(userID, services.CreateTransactionInput{
		Type:             req.Type,
		CategoryID:       req.CategoryID,
		Amount:           req.Amount,
		Description:      req.Description,
		Date:             date,
		PaymentMethod:    req.PaymentMethod,
		Recurring:        req.Recurring,
		Recurrence:       req.Recurrence,
		Tags:             req.Tags,
		InstallmentIndex: req.InstallmentIndex,
		InstallmentTotal: req.InstallmentTotal,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// ListTransactions handles the paginated, filtered transaction listing
// @Summary     List transactions
// @Description List the authenticated user's transactions, newest date first
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       type query string false "Filter by type (income/expense)"
// @Param       category_id query string false "Filter by category"
// @Param       start_date query string false "Inclusive range start (YYYY-MM-DD)"
// @Param       end_date query string false "Inclusive range end (YYYY-MM-DD)"
// @Param       page query int false "Page number"
// @Param       limit query int false "Page size"
// @Success     200 {array} TransactionResponse "Page of transactions"
// @Failure     400 {object} ErrorResponse "Invalid filters"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := buildTransactionFilter(req)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.transactionService.ListTransactions(userID, req.PageRequest, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func buildTransactionFilter(req ListTransactionsRequest) (services.TransactionFilter, error) {
	var filter services.TransactionFilter
	if req.Type != "" {
		t := models.TransactionType(req.Type)
		filter.Type = &t
	}
	if req.CategoryID != "" {
		filter.CategoryID = &req.CategoryID
	}
	if req.StartDate != "" {
		start, err := parseFlexibleTime(req.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, err := parseFlexibleTime(req.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &end
	}
	return filter, nil
}

// GetTransactionByID handles the retrieval of a specific transaction
// @Summary     Get transaction by ID
// @Description Get one of the authenticated user's transactions by ID
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} TransactionResponse "Transaction details"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [get]
func (h *TransactionHandler) GetTransactionByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transaction, err := h.transactionService.GetTransactionByID(userID, c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// UpdateTransaction handles a partial transaction update
// @Summary     Update transaction
// @Description Apply a partial patch to one of the authenticated user's transactions
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Param       request body UpdateTransactionRequest true "Fields to update"
// @Success     200 {object} TransactionResponse "Updated transaction"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [put]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	patch := services.TransactionPatch{
		Type:          req.Type,
		CategoryID:    req.CategoryID,
		Amount:        req.Amount,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
		Recurring:     req.Recurring,
		Recurrence:    req.Recurrence,
		Tags:          req.Tags,
	}
	if req.Date != nil {
		date, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, parseErr.Error()))
			return
		}
		patch.Date = &date
	}

	transaction, err := h.transactionService.UpdateTransaction(userID, c.Param("id"), patch)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// DeleteTransaction handles deleting a transaction
// @Summary     Delete transaction
// @Description Delete one of the authenticated user's transactions by ID
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} MessageResponse "Transaction deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.DeleteTransaction(userID, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
