package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
)

const (
	historyMonths = 6
	recentLimit   = 5
)

// dashboardService computes summary statistics over a user's transactions.
type dashboardService struct {
	db         *gorm.DB
	categories CategoryServicer
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(db *gorm.DB, categories CategoryServicer) DashboardServicer {
	return &dashboardService{db: db, categories: categories}
}

// GetSummary aggregates the user's transactions over an optional inclusive
// date range. The six-month history is always computed against the full
// transaction set: it reflects the trailing six months from now even when
// a range filter is active.
func (s *dashboardService) GetSummary(userID string, startDate, endDate *time.Time) (*Summary, error) {
	totalIncome, err := s.sumByType(userID, models.TransactionTypeIncome, startDate, endDate)
	if err != nil {
		return nil, err
	}
	totalExpense, err := s.sumByType(userID, models.TransactionTypeExpense, startDate, endDate)
	if err != nil {
		return nil, err
	}

	balance := totalIncome - totalExpense

	var savingsPercent float64
	if totalIncome > 0 {
		savingsPercent = float64(balance) / float64(totalIncome) * 100
	}

	byCategory, err := s.expensesByCategory(userID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	history, err := s.monthlyHistory(userID)
	if err != nil {
		return nil, err
	}

	return &Summary{
		TotalIncome:    totalIncome,
		TotalExpense:   totalExpense,
		Balance:        balance,
		Savings:        balance,
		SavingsPercent: savingsPercent,
		ByCategory:     byCategory,
		History:        history,
	}, nil
}

// GetRecent returns the five most recent transactions matching the filter.
func (s *dashboardService) GetRecent(userID string, startDate, endDate *time.Time) ([]models.Transaction, error) {
	q := s.rangeQuery(userID, startDate, endDate)

	var transactions []models.Transaction
	if err := q.Order("date DESC").Limit(recentLimit).Find(&transactions).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return transactions, nil
}

func (s *dashboardService) rangeQuery(userID string, startDate, endDate *time.Time) *gorm.DB {
	q := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if startDate != nil {
		q = q.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		q = q.Where("date <= ?", *endDate)
	}
	return q
}

func (s *dashboardService) sumByType(userID string, txType models.TransactionType, startDate, endDate *time.Time) (int64, error) {
	var total int64
	err := s.rangeQuery(userID, startDate, endDate).
		Select("COALESCE(SUM(amount), 0)").
		Where("type = ?", txType).
		Scan(&total).Error
	if err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// expensesByCategory sums expense amounts per category id. The result is
// unordered; names are resolved through the total category lookup with the
// raw id as fallback for orphaned references.
func (s *dashboardService) expensesByCategory(userID string, startDate, endDate *time.Time) ([]CategoryTotal, error) {
	type row struct {
		CategoryID string
		Value      int64
	}

	var rows []row
	err := s.rangeQuery(userID, startDate, endDate).
		Select("category_id, COALESCE(SUM(amount), 0) AS value").
		Where("type = ?", models.TransactionTypeExpense).
		Group("category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make([]CategoryTotal, 0, len(rows))
	for _, r := range rows {
		name, ok := s.categories.ResolveCategoryName(r.CategoryID)
		if !ok {
			name = r.CategoryID
		}
		totals = append(totals, CategoryTotal{
			CategoryID: r.CategoryID,
			Name:       name,
			Value:      r.Value,
		})
	}
	return totals, nil
}

// monthlyHistory computes income minus expense for each of the trailing
// six calendar months ending with the current month, oldest first.
func (s *dashboardService) monthlyHistory(userID string) ([]MonthNet, error) {
	now := time.Now()
	history := make([]MonthNet, 0, historyMonths)

	for i := historyMonths - 1; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		var net int64
		err := s.db.Model(&models.Transaction{}).
			Select("COALESCE(SUM(CASE WHEN type = ? THEN amount ELSE -amount END), 0)", models.TransactionTypeIncome).
			Where("user_id = ? AND date >= ? AND date < ?", userID, monthStart, monthEnd).
			Scan(&net).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		history = append(history, MonthNet{
			Month:  fmt.Sprintf("%02d/%04d", int(monthStart.Month()), monthStart.Year()),
			Amount: net,
		})
	}

	return history, nil
}
