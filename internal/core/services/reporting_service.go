package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/hotelnest/shift_ledger_app/internal/apperrors"
	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	portsrepo "github.com/hotelnest/shift_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/hotelnest/shift_ledger_app/internal/core/ports/services"
	"github.com/hotelnest/shift_ledger_app/internal/dto"
)

const recentClosesLimit = 5

// reportingService assembles the dashboard, monthly and pending summaries
// from the read-only aggregation queries.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade, branchRepo portsrepo.BranchRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{
		BaseService:   BaseService{BranchRepo: branchRepo},
		reportingRepo: reportingRepo,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// DashboardSummary generates the revenue dashboard for the actor's scope.
// Cross-branch rankings only appear for roles allowed to compare branches;
// a day filter wins over a year/month window, and no time filter at all
// defaults to the current month.
func (s *reportingService) DashboardSummary(ctx context.Context, actor domain.Actor, params dto.DashboardParams) (*dto.DashboardResponse, error) {
	policy := domain.PolicyFor(actor.Role)

	branchCode, err := s.ScopeBranchFilter(actor, params.Branch)
	if err != nil {
		return nil, err
	}

	filter := portsrepo.DashboardFilter{BranchCode: branchCode}
	switch {
	case params.Day != "":
		day, err := time.Parse("2006-01-02", params.Day)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusBadRequest, "day must be YYYY-MM-DD", apperrors.ErrValidation)
		}
		filter.Day = &day
	case params.Year != 0:
		if params.Month < 0 || params.Month > 12 {
			return nil, apperrors.NewAppError(http.StatusBadRequest, fmt.Sprintf("invalid month %d", params.Month), apperrors.ErrValidation)
		}
		filter.Year = params.Year
		filter.Month = params.Month
	default:
		// Branch-pinned roles look at the live pending set, which has no
		// meaningful month boundary.
		if !policy.OwnBranchOnly {
			now := time.Now().UTC()
			filter.Year = now.Year()
			filter.Month = int(now.Month())
		}
	}

	if params.Status != "" {
		status := domain.TransactionStatus(params.Status)
		switch status {
		case domain.StatusPending, domain.StatusClosed:
			filter.Status = &status
		default:
			return nil, apperrors.NewAppError(http.StatusBadRequest, fmt.Sprintf("unknown status %q", params.Status), apperrors.ErrValidation)
		}
	}
	if params.TransactionType != "" {
		txnType := domain.TransactionType(params.TransactionType)
		if !domain.IsValidTransactionType(txnType) {
			return nil, apperrors.NewAppError(http.StatusBadRequest, fmt.Sprintf("unknown transaction type %q", params.TransactionType), apperrors.ErrValidation)
		}
		filter.Type = &txnType
	}

	// Branch-pinned roles get a pre-close view: their branch's pending
	// figures only, no settlement totals.
	if policy.OwnBranchOnly {
		pending := domain.StatusPending
		filter.Status = &pending
	}

	byType, err := s.reportingRepo.GetStatusRevenue(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := domain.DashboardSummary{ByType: *byType}
	if !policy.OwnBranchOnly {
		reported, online, branch, err := s.reportingRepo.GetCloseTotals(ctx, filter)
		if err != nil {
			return nil, err
		}
		recent, err := s.reportingRepo.GetRecentCloses(ctx, filter, recentClosesLimit)
		if err != nil {
			return nil, err
		}
		summary.TotalReportedRevenue = reported
		summary.TotalCashRevenue = reported - online - branch
		summary.RecentCloses = recent
	}
	if policy.CanViewRankings {
		rankings, err := s.reportingRepo.GetBranchRankings(ctx, filter)
		if err != nil {
			return nil, err
		}
		summary.ByBranch = rankings
	}

	resp := dto.ToDashboardResponse(&summary)
	return &resp, nil
}

// MonthlySummary generates the per-month settled revenue for one year,
// computed from closed transactions rather than the settlement records so
// membership repairs can never skew it.
func (s *reportingService) MonthlySummary(ctx context.Context, actor domain.Actor, year int) (*dto.MonthlyRevenueResponse, error) {
	if !domain.PolicyFor(actor.Role).CanViewRankings {
		return nil, apperrors.NewAppError(http.StatusForbidden, "role may not view the monthly summary", apperrors.ErrForbidden)
	}
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	if year < 2000 || year > 2100 {
		return nil, apperrors.NewAppError(http.StatusBadRequest, fmt.Sprintf("invalid year %d", year), apperrors.ErrValidation)
	}

	months, err := s.reportingRepo.GetMonthlyRevenue(ctx, year)
	if err != nil {
		return nil, err
	}
	if months == nil {
		months = []domain.MonthlyRevenue{}
	}
	return &dto.MonthlyRevenueResponse{Year: year, Months: months}, nil
}

// PendingSummary reports the live not-yet-settled total for one branch.
func (s *reportingService) PendingSummary(ctx context.Context, actor domain.Actor, branchCode string) (*dto.PendingSummaryResponse, error) {
	branch, err := s.ResolveBranch(ctx, actor, branchCode)
	if err != nil {
		return nil, err
	}
	total, err := s.reportingRepo.GetPendingTotal(ctx, branch.BranchCode)
	if err != nil {
		return nil, err
	}
	return &dto.PendingSummaryResponse{Branch: branch.BranchCode, PendingTotal: total}, nil
}
