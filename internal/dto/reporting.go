package dto

import (
	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
)

// DashboardParams holds the query parameters accepted by the dashboard endpoint.
// Day is exclusive with Year/Month; when all are empty the dashboard covers the
// current month.
type DashboardParams struct {
	Branch          string `form:"branch"`
	Day             string `form:"day"` // YYYY-MM-DD
	Year            int    `form:"year"`
	Month           int    `form:"month" binding:"omitempty,min=1,max=12"`
	Status          string `form:"status"`
	TransactionType string `form:"transactionType"`
}

// DashboardResponse defines the dashboard payload. Rankings are omitted for
// roles that may only see their own branch.
type DashboardResponse struct {
	ByBranch             []domain.BranchRanking `json:"byBranch,omitempty"`
	TotalReportedRevenue int64                  `json:"totalReportedRevenue"`
	TotalCashRevenue     int64                  `json:"totalCashRevenue"`
	RecentCloses         []domain.CloseSummary  `json:"recentCloses"`
	ByType               domain.StatusRevenue   `json:"byType"`
}

// MonthlyRevenueResponse defines the per-month settled revenue for one year.
type MonthlyRevenueResponse struct {
	Year   int                     `json:"year"`
	Months []domain.MonthlyRevenue `json:"months"`
}

// PendingSummaryResponse reports the not-yet-settled total for one branch.
type PendingSummaryResponse struct {
	Branch       string `json:"branch"`
	PendingTotal int64  `json:"pendingTotal"`
}

// ToDashboardResponse converts a domain.DashboardSummary to its DTO.
func ToDashboardResponse(summary *domain.DashboardSummary) DashboardResponse {
	recent := summary.RecentCloses
	if recent == nil {
		recent = []domain.CloseSummary{}
	}
	return DashboardResponse{
		ByBranch:             summary.ByBranch,
		TotalReportedRevenue: summary.TotalReportedRevenue,
		TotalCashRevenue:     summary.TotalCashRevenue,
		RecentCloses:         recent,
		ByType:               summary.ByType,
	}
}
