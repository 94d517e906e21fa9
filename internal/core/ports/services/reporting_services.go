package services

import (
	"context"

	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	"github.com/hotelnest/shift_ledger_app/internal/dto"
)

// ReportingSvcFacade defines operations for generating shift revenue reports
type ReportingSvcFacade interface {
	// DashboardSummary generates the revenue dashboard for the actor's scope.
	DashboardSummary(ctx context.Context, actor domain.Actor, params dto.DashboardParams) (*dto.DashboardResponse, error)

	// MonthlySummary generates per-month settled revenue for one year.
	MonthlySummary(ctx context.Context, actor domain.Actor, year int) (*dto.MonthlyRevenueResponse, error)

	// PendingSummary reports the not-yet-settled total for a branch.
	PendingSummary(ctx context.Context, actor domain.Actor, branchCode string) (*dto.PendingSummaryResponse, error)
}
