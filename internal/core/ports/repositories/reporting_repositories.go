package repositories

import (
	"context"
	"time"

	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
)

// DashboardFilter narrows dashboard aggregation. Day wins over Year/Month;
// with neither set the queries are unbounded in time.
type DashboardFilter struct {
	BranchCode  string
	Day         *time.Time
	Year, Month int // both set for a month window
	Status      *domain.TransactionStatus
	Type        *domain.TransactionType
}

// ReportingRepositoryFacade serves the read-only aggregation queries. Live
// figures come from shift_transactions, settled totals from the close logs,
// and the monthly report deliberately ignores the logs entirely.
type ReportingRepositoryFacade interface {
	// GetStatusRevenue sums online/branch revenue split by status over live
	// transactions matching the filter.
	GetStatusRevenue(ctx context.Context, filter DashboardFilter) (*domain.StatusRevenue, error)

	// GetCloseTotals sums reported/online/branch revenue over close logs
	// matching the filter (by closed time).
	GetCloseTotals(ctx context.Context, filter DashboardFilter) (reported, online, branch int64, err error)

	// GetBranchRankings returns the per-branch reported/closed/pending
	// revenue ranking, ordered by reported revenue descending.
	GetBranchRankings(ctx context.Context, filter DashboardFilter) ([]domain.BranchRanking, error)

	// GetRecentCloses lists the latest settlements matching the filter.
	GetRecentCloses(ctx context.Context, filter DashboardFilter, limit int) ([]domain.CloseSummary, error)

	// GetMonthlyRevenue aggregates CLOSED transactions per month of a year.
	GetMonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error)

	// GetPendingTotal returns the signed pending sum for one branch.
	GetPendingTotal(ctx context.Context, branchCode string) (int64, error)
}
