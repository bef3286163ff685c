package services

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type StatusCount struct {
	Status string `db:"status" json:"status"`
	Count  int    `db:"count" json:"count"`
}

type MonthlyCount struct {
	Month string `db:"month" json:"month"`
	Count int    `db:"count" json:"count"`
}

type MonthlyTotal struct {
	Month string  `db:"month" json:"month"`
	Total float64 `db:"total" json:"total"`
}

type AnalyticsTotals struct {
	Users                 int64   `json:"users"`
	Reservations          int64   `json:"reservations"`
	Revenue               float64 `json:"revenue"`
	NewUsersThisMonth     int64   `json:"newUsersThisMonth"`
	ActiveReservations    int64   `json:"activeReservations"`
	CancelledReservations int64   `json:"cancelledReservations"`
	AverageStayNights     float64 `json:"averageStayNights"`
}

type AnalyticsSnapshot struct {
	Totals               AnalyticsTotals `json:"totals"`
	ReservationsByStatus []StatusCount   `json:"reservationsByStatus"`
	MonthlyRevenue       []MonthlyTotal  `json:"monthlyRevenue"`
	MonthlyReservations  []MonthlyCount  `json:"monthlyReservations"`
	MonthlyNewUsers      []MonthlyCount  `json:"monthlyNewUsers"`
}

// AnalyticsService is the reporting read-model for the admin dashboard. It
// only reads; each query runs independently, so counts taken a moment apart
// may skew slightly. That is acceptable for dashboard display.
type AnalyticsService interface {
	Snapshot(ctx context.Context) (*AnalyticsSnapshot, error)
}

type analyticsService struct {
	db *sqlx.DB
}

func NewAnalyticsService(db *sqlx.DB) AnalyticsService {
	return &analyticsService{db: db}
}

// Revenue-bearing statuses: everything that was or is an actual stay.
const revenueStatuses = `('CONFIRMED', 'CHECKED_IN', 'CHECKED_OUT')`

const (
	queryTotalUsers        = `SELECT COUNT(*) FROM users`
	queryTotalReservations = `SELECT COUNT(*) FROM reservations`
	queryTotalRevenue      = `SELECT COALESCE(SUM(total_amount), 0) FROM reservations WHERE status IN ` + revenueStatuses
	queryActive            = `SELECT COUNT(*) FROM reservations WHERE status IN ('PENDING', 'CONFIRMED', 'CHECKED_IN')`
	queryCancelled         = `SELECT COUNT(*) FROM reservations WHERE status = 'CANCELLED'`
	queryNewUsersThisMonth = `SELECT COUNT(*) FROM users
		WHERE YEAR(created_at) = YEAR(CURDATE()) AND MONTH(created_at) = MONTH(CURDATE())`
	queryAverageStay = `SELECT COALESCE(AVG(DATEDIFF(check_out_date, check_in_date)), 0)
		FROM reservations WHERE YEAR(check_in_date) = YEAR(CURDATE())`

	queryByStatus = `SELECT status, COUNT(*) AS count FROM reservations GROUP BY status`

	queryMonthlyRevenue = `SELECT DATE_FORMAT(check_in_date, '%b') AS month, COALESCE(SUM(total_amount), 0) AS total
		FROM reservations
		WHERE status IN ` + revenueStatuses + ` AND YEAR(check_in_date) = YEAR(CURDATE())
		GROUP BY month, MONTH(check_in_date)
		ORDER BY MONTH(check_in_date)`

	queryMonthlyReservations = `SELECT DATE_FORMAT(created_at, '%b') AS month, COUNT(*) AS count
		FROM reservations
		WHERE YEAR(created_at) = YEAR(CURDATE())
		GROUP BY month, MONTH(created_at)
		ORDER BY MONTH(created_at)`

	queryMonthlyNewUsers = `SELECT DATE_FORMAT(created_at, '%b') AS month, COUNT(*) AS count
		FROM users
		WHERE YEAR(created_at) = YEAR(CURDATE())
		GROUP BY month, MONTH(created_at)
		ORDER BY MONTH(created_at)`
)

func (s *analyticsService) Snapshot(ctx context.Context) (*AnalyticsSnapshot, error) {
	snap := &AnalyticsSnapshot{
		ReservationsByStatus: []StatusCount{},
		MonthlyRevenue:       []MonthlyTotal{},
		MonthlyReservations:  []MonthlyCount{},
		MonthlyNewUsers:      []MonthlyCount{},
	}

	if err := s.db.GetContext(ctx, &snap.Totals.Users, queryTotalUsers); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if err := s.db.GetContext(ctx, &snap.Totals.Reservations, queryTotalReservations); err != nil {
		return nil, fmt.Errorf("count reservations: %w", err)
	}
	if err := s.db.GetContext(ctx, &snap.Totals.Revenue, queryTotalRevenue); err != nil {
		return nil, fmt.Errorf("sum revenue: %w", err)
	}
	if err := s.db.GetContext(ctx, &snap.Totals.ActiveReservations, queryActive); err != nil {
		return nil, fmt.Errorf("count active reservations: %w", err)
	}
	if err := s.db.GetContext(ctx, &snap.Totals.CancelledReservations, queryCancelled); err != nil {
		return nil, fmt.Errorf("count cancelled reservations: %w", err)
	}
	if err := s.db.GetContext(ctx, &snap.Totals.NewUsersThisMonth, queryNewUsersThisMonth); err != nil {
		return nil, fmt.Errorf("count new users: %w", err)
	}
	if err := s.db.GetContext(ctx, &snap.Totals.AverageStayNights, queryAverageStay); err != nil {
		return nil, fmt.Errorf("average stay: %w", err)
	}

	if err := s.db.SelectContext(ctx, &snap.ReservationsByStatus, queryByStatus); err != nil {
		return nil, fmt.Errorf("reservations by status: %w", err)
	}
	if err := s.db.SelectContext(ctx, &snap.MonthlyRevenue, queryMonthlyRevenue); err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	if err := s.db.SelectContext(ctx, &snap.MonthlyReservations, queryMonthlyReservations); err != nil {
		return nil, fmt.Errorf("monthly reservations: %w", err)
	}
	if err := s.db.SelectContext(ctx, &snap.MonthlyNewUsers, queryMonthlyNewUsers); err != nil {
		return nil, fmt.Errorf("monthly new users: %w", err)
	}

	return snap, nil
}
