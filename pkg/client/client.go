// Package client is a Go client for the Centavo API. It carries the
// session token explicitly: callers log in, pass the client around, and
// log out, instead of reading ambient global state.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"centavo/internal/models"
)

// APIError is an error response decoded from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// Client talks to a Centavo API server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// New creates a client for the API rooted at baseURL (e.g.
// "http://localhost:8080/api/v1").
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// User is the profile shape returned by the auth endpoints.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Login authenticates and stores the session token on the client.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	body := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	c.token = resp.Token
	return &resp.User, nil
}

// Logout discards the session token.
func (c *Client) Logout() {
	c.token = ""
}

// TransactionDraft is the input for creating a transaction.
type TransactionDraft struct {
	Type          models.TransactionType   `json:"type"`
	CategoryID    string                   `json:"category_id"`
	Amount        int64                    `json:"amount"` // cents
	Description   string                   `json:"description,omitempty"`
	Date          time.Time                `json:"-"`
	PaymentMethod models.PaymentMethod     `json:"payment_method,omitempty"`
	Recurring     bool                     `json:"recurring,omitempty"`
	Recurrence    *models.RecurrencePeriod `json:"recurrence,omitempty"`
	Tags          []string                 `json:"tags,omitempty"`

	InstallmentIndex *int `json:"installment_index,omitempty"`
	InstallmentTotal *int `json:"installment_total,omitempty"`
}

type transactionPayload struct {
	TransactionDraft
	Date string `json:"date"`
}

// CreateTransaction creates a single transaction.
func (c *Client) CreateTransaction(ctx context.Context, draft TransactionDraft) (*models.Transaction, error) {
	payload := transactionPayload{TransactionDraft: draft, Date: draft.Date.Format(time.RFC3339)}
	var resp struct {
		Transaction models.Transaction `json:"transaction"`
	}
	if err := c.do(ctx, http.MethodPost, "/transactions", payload, &resp); err != nil {
		return nil, err
	}
	return &resp.Transaction, nil
}

// CreateInstallments splits a purchase into total dated transactions. Each
// installment carries amount/total rounded to the cent, is dated one
// calendar month after the previous (date arithmetic, so end-of-month
// dates roll over naturally), and gets "(i/total)" appended to its
// description. The creates are issued concurrently and the call reports a
// single error if any of them fails; installments already created are not
// rolled back.
func (c *Client) CreateInstallments(ctx context.Context, draft TransactionDraft, total int) ([]*models.Transaction, error) {
	if total < 1 {
		return nil, fmt.Errorf("installment total must be at least 1, got %d", total)
	}
	if total == 1 {
		tx, err := c.CreateTransaction(ctx, draft)
		if err != nil {
			return nil, err
		}
		return []*models.Transaction{tx}, nil
	}

	perAmount := int64(math.Round(float64(draft.Amount) / float64(total)))
	baseDescription := draft.Description

	results := make([]*models.Transaction, total)
	g, ctx := errgroup.WithContext(ctx)
	for i := 1; i <= total; i++ {
		index := i
		part := draft
		part.Amount = perAmount
		part.Date = draft.Date.AddDate(0, index-1, 0)
		part.Description = fmt.Sprintf("%s (%d/%d)", baseDescription, index, total)
		part.InstallmentIndex = &index
		partTotal := total
		part.InstallmentTotal = &partTotal

		g.Go(func() error {
			tx, err := c.CreateTransaction(ctx, part)
			if err != nil {
				return fmt.Errorf("installment %d/%d: %w", index, total, err)
			}
			results[index-1] = tx
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// ListTransactionsOptions holds the list endpoint's query parameters.
type ListTransactionsOptions struct {
	Type       string
	CategoryID string
	StartDate  string
	EndDate    string
	Page       int
	Limit      int
}

// ListTransactions fetches one page of the caller's transactions.
func (c *Client) ListTransactions(ctx context.Context, opts ListTransactionsOptions) ([]models.Transaction, error) {
	params := make([]string, 0, 6)
	add := func(key, value string) {
		if value != "" {
			params = append(params, key+"="+value)
		}
	}
	add("type", opts.Type)
	add("category_id", opts.CategoryID)
	add("start_date", opts.StartDate)
	add("end_date", opts.EndDate)
	if opts.Page > 0 {
		params = append(params, fmt.Sprintf("page=%d", opts.Page))
	}
	if opts.Limit > 0 {
		params = append(params, fmt.Sprintf("limit=%d", opts.Limit))
	}

	path := "/transactions"
	if len(params) > 0 {
		path += "?" + strings.Join(params, "&")
	}

	var resp struct {
		Data []models.Transaction `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error struct {
				Code    string `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&envelope); decodeErr == nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
