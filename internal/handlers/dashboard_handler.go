package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "centavo/internal/errors"
	"centavo/internal/services"
)

// DashboardHandler handles dashboard aggregation requests.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// DateRangeRequest holds the optional inclusive date range query parameters.
type DateRangeRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

func (r DateRangeRequest) parse() (start, end *time.Time, err error) {
	if r.StartDate != "" {
		t, perr := parseFlexibleTime(r.StartDate)
		if perr != nil {
			return nil, nil, perr
		}
		start = &t
	}
	if r.EndDate != "" {
		t, perr := parseFlexibleTime(r.EndDate)
		if perr != nil {
			return nil, nil, perr
		}
		end = &t
	}
	return start, end, nil
}

// GetSummary returns the dashboard summary
// @Summary     Dashboard summary
// @Description Totals, balance, savings, per-category expense breakdown, and six-month history for the authenticated user
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Inclusive range start (YYYY-MM-DD)"
// @Param       end_date query string false "Inclusive range end (YYYY-MM-DD)"
// @Success     200 {object} services.Summary "Summary statistics"
// @Failure     400 {object} ErrorResponse "Invalid date range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	start, end, err := req.parse()
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	summary, err := h.dashboardService.GetSummary(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetRecent returns the most recent transactions
// @Summary     Recent transactions
// @Description The five most recent transactions matching the optional date range
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       start_date query string false "Inclusive range start (YYYY-MM-DD)"
// @Param       end_date query string false "Inclusive range end (YYYY-MM-DD)"
// @Success     200 {array} TransactionResponse "Recent transactions"
// @Failure     400 {object} ErrorResponse "Invalid date range"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /dashboard/recent [get]
func (h *DashboardHandler) GetRecent(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req DateRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	start, end, err := req.parse()
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transactions, err := h.dashboardService.GetRecent(userID, start, end)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}
