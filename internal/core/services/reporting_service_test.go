package services_test

import (
	"context"
	"testing"

	"github.com/hotelnest/shift_ledger_app/internal/apperrors"
	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	portsrepo "github.com/hotelnest/shift_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/hotelnest/shift_ledger_app/internal/core/ports/services"
	"github.com/hotelnest/shift_ledger_app/internal/core/services"
	"github.com/hotelnest/shift_ledger_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockBranchRepo    *MockBranchRepository
	service           portssvc.ReportingSvcFacade

	frontDesk domain.Actor
	admin     domain.Actor
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockBranchRepo)

	suite.frontDesk = domain.Actor{UserID: 7, Role: domain.RoleFrontDesk, ActiveBranchCode: "HN01"}
	suite.admin = domain.Actor{UserID: 9, Role: domain.RoleAdmin}
}

func (suite *ReportingServiceTestSuite) mockDashboardQueries() {
	suite.mockReportingRepo.On("GetStatusRevenue", mock.Anything, mock.AnythingOfType("repositories.DashboardFilter")).
		Return(&domain.StatusRevenue{ClosedOnline: 500, PendingOnline: 200, ClosedBranch: 100, PendingBranch: 50}, nil).Once()
	suite.mockReportingRepo.On("GetCloseTotals", mock.Anything, mock.AnythingOfType("repositories.DashboardFilter")).
		Return(int64(900), int64(500), int64(100), nil).Once()
	suite.mockReportingRepo.On("GetRecentCloses", mock.Anything, mock.AnythingOfType("repositories.DashboardFilter"), 5).
		Return([]domain.CloseSummary{{ID: 1, BranchCode: "HN01"}}, nil).Once()
}

// --- Test Cases ---

func (suite *ReportingServiceTestSuite) TestDashboardSummary_AdminIncludesRankings() {
	ctx := context.Background()
	suite.mockDashboardQueries()
	suite.mockReportingRepo.On("GetBranchRankings", mock.Anything, mock.AnythingOfType("repositories.DashboardFilter")).
		Return([]domain.BranchRanking{{BranchCode: "HN01", ReportedRevenue: 900}}, nil).Once()

	resp, err := suite.service.DashboardSummary(ctx, suite.admin, dto.DashboardParams{Day: "2026-08-30"})

	suite.Require().NoError(err)
	suite.Len(resp.ByBranch, 1)
	suite.Equal(int64(900), resp.TotalReportedRevenue)
	suite.Equal(int64(300), resp.TotalCashRevenue)
	suite.Equal(int64(500), resp.ByType.ClosedOnline)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_FrontDeskPendingOnly() {
	ctx := context.Background()
	suite.mockReportingRepo.On("GetStatusRevenue", mock.Anything, mock.AnythingOfType("repositories.DashboardFilter")).
		Run(func(args mock.Arguments) {
			filter := args.Get(1).(portsrepo.DashboardFilter)
			suite.Equal("HN01", filter.BranchCode)
			suite.Require().NotNil(filter.Status)
			suite.Equal(domain.StatusPending, *filter.Status)
		}).
		Return(&domain.StatusRevenue{PendingOnline: 200, PendingBranch: 50}, nil).Once()

	resp, err := suite.service.DashboardSummary(ctx, suite.frontDesk, dto.DashboardParams{Day: "2026-08-30"})

	suite.Require().NoError(err)
	suite.Empty(resp.ByBranch)
	suite.Empty(resp.RecentCloses)
	suite.Zero(resp.TotalReportedRevenue)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetBranchRankings", mock.Anything, mock.Anything)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetCloseTotals", mock.Anything, mock.Anything)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetRecentCloses", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_FrontDeskOtherBranchForbidden() {
	ctx := context.Background()

	_, err := suite.service.DashboardSummary(ctx, suite.frontDesk, dto.DashboardParams{Branch: "SG02"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_BadDay() {
	ctx := context.Background()

	_, err := suite.service.DashboardSummary(ctx, suite.admin, dto.DashboardParams{Day: "30-08-2026"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ReportingServiceTestSuite) TestDashboardSummary_MonthWindowPassedThrough() {
	ctx := context.Background()
	suite.mockReportingRepo.On("GetStatusRevenue", mock.Anything, mock.AnythingOfType("repositories.DashboardFilter")).
		Run(func(args mock.Arguments) {
			filter := args.Get(1).(portsrepo.DashboardFilter)
			suite.Equal(2026, filter.Year)
			suite.Equal(8, filter.Month)
			suite.Nil(filter.Day)
		}).
		Return(&domain.StatusRevenue{}, nil).Once()
	suite.mockReportingRepo.On("GetCloseTotals", mock.Anything, mock.AnythingOfType("repositories.DashboardFilter")).
		Return(int64(0), int64(0), int64(0), nil).Once()
	suite.mockReportingRepo.On("GetRecentCloses", mock.Anything, mock.AnythingOfType("repositories.DashboardFilter"), 5).
		Return([]domain.CloseSummary{}, nil).Once()
	suite.mockReportingRepo.On("GetBranchRankings", mock.Anything, mock.AnythingOfType("repositories.DashboardFilter")).
		Return([]domain.BranchRanking{}, nil).Once()

	_, err := suite.service.DashboardSummary(ctx, suite.admin, dto.DashboardParams{Year: 2026, Month: 8})

	suite.Require().NoError(err)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestMonthlySummary_Success() {
	ctx := context.Background()
	months := []domain.MonthlyRevenue{
		{Month: 1, OnlineRevenue: 100, BranchRevenue: 50},
		{Month: 2, OnlineRevenue: 200, BranchRevenue: 70},
	}
	suite.mockReportingRepo.On("GetMonthlyRevenue", ctx, 2025).Return(months, nil).Once()

	resp, err := suite.service.MonthlySummary(ctx, suite.admin, 2025)

	suite.Require().NoError(err)
	suite.Equal(2025, resp.Year)
	suite.Len(resp.Months, 2)
}

func (suite *ReportingServiceTestSuite) TestMonthlySummary_FrontDeskForbidden() {
	ctx := context.Background()

	_, err := suite.service.MonthlySummary(ctx, suite.frontDesk, 2025)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetMonthlyRevenue", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestMonthlySummary_InvalidYear() {
	ctx := context.Background()

	_, err := suite.service.MonthlySummary(ctx, suite.admin, 1900)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetMonthlyRevenue", mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestPendingSummary_FrontDeskUsesActiveBranch() {
	ctx := context.Background()
	branch := domain.Branch{ID: 3, BranchCode: "HN01"}
	suite.mockBranchRepo.On("FindBranchByCode", ctx, "HN01").Return(&branch, nil).Once()
	suite.mockReportingRepo.On("GetPendingTotal", ctx, "HN01").Return(int64(750), nil).Once()

	resp, err := suite.service.PendingSummary(ctx, suite.frontDesk, "")

	suite.Require().NoError(err)
	suite.Equal("HN01", resp.Branch)
	suite.Equal(int64(750), resp.PendingTotal)
}

func (suite *ReportingServiceTestSuite) TestPendingSummary_AdminNeedsBranch() {
	ctx := context.Background()

	_, err := suite.service.PendingSummary(ctx, suite.admin, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---
func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
