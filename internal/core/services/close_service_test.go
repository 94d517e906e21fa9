package services_test

import (
	"context"
	"testing"

	"github.com/hotelnest/shift_ledger_app/internal/apperrors"
	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	portssvc "github.com/hotelnest/shift_ledger_app/internal/core/ports/services"
	"github.com/hotelnest/shift_ledger_app/internal/core/services"
	"github.com/hotelnest/shift_ledger_app/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type CloseServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockCloseLogRepo *MockCloseLogRepository
	mockBranchRepo   *MockBranchRepository
	mockUserRepo     *MockUserRepository
	service          portssvc.CloseSvcFacade

	branch    domain.Branch
	closer    domain.User
	frontDesk domain.Actor
	manager   domain.Actor
	admin     domain.Actor
}

func (suite *CloseServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCloseLogRepo = new(MockCloseLogRepository)
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewCloseService(
		suite.mockTxnRepo, suite.mockCloseLogRepo, suite.mockBranchRepo, suite.mockUserRepo)

	suite.branch = domain.Branch{ID: 3, BranchCode: "HN01", Name: "Hanoi Old Quarter"}
	suite.closer = domain.User{ID: 7, EmployeeCode: "E007", Name: "Linh"}
	suite.frontDesk = domain.Actor{UserID: 7, Role: domain.RoleFrontDesk, ActiveBranchCode: "HN01"}
	suite.manager = domain.Actor{UserID: 7, Role: domain.RoleManager}
	suite.admin = domain.Actor{UserID: 9, Role: domain.RoleAdmin}
}

// --- Test Cases ---

func (suite *CloseServiceTestSuite) TestCloseBatch_Success() {
	ctx := context.Background()
	sealed := []domain.ShiftTransaction{
		{ID: 1, Type: domain.TypeCard, Amount: 500, Status: domain.StatusClosed},
		{ID: 2, Type: domain.TypeBranchAccount, Amount: 300, Status: domain.StatusClosed},
	}
	log := &domain.CloseLog{
		ID: 11, BranchID: 3, BranchCode: "HN01",
		ReportedRevenue: 900, OnlineRevenue: 500, BranchRevenue: 300,
		TransactionIDs: []int64{1, 2},
	}

	suite.mockBranchRepo.On("FindBranchByCode", ctx, "HN01").Return(&suite.branch, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, int64(7)).Return(&suite.closer, nil).Once()
	suite.mockCloseLogRepo.On("CloseBranch", ctx, int64(3), int64(7), int64(900), mock.AnythingOfType("time.Time")).
		Return(log, sealed, nil).Once()

	got, err := suite.service.CloseBatch(ctx, suite.frontDesk, dto.CloseBatchRequest{ReportedRevenue: 900})

	suite.Require().NoError(err)
	suite.Equal(int64(11), got.ID)
	suite.Equal(int64(100), got.CashRevenue())
	suite.mockCloseLogRepo.AssertExpectations(suite.T())
}

func (suite *CloseServiceTestSuite) TestCloseBatch_EmptyPendingSetStillCloses() {
	ctx := context.Background()
	log := &domain.CloseLog{ID: 12, BranchID: 3, BranchCode: "HN01", ReportedRevenue: 0, TransactionIDs: []int64{}}

	suite.mockBranchRepo.On("FindBranchByCode", ctx, "HN01").Return(&suite.branch, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, int64(7)).Return(&suite.closer, nil).Once()
	suite.mockCloseLogRepo.On("CloseBranch", ctx, int64(3), int64(7), int64(0), mock.AnythingOfType("time.Time")).
		Return(log, []domain.ShiftTransaction{}, nil).Once()

	got, err := suite.service.CloseBatch(ctx, suite.manager, dto.CloseBatchRequest{Branch: "HN01"})

	suite.Require().NoError(err)
	suite.Empty(got.TransactionIDs)
}

func (suite *CloseServiceTestSuite) TestCloseBatch_RoleForbidden() {
	ctx := context.Background()
	technician := domain.Actor{UserID: 5, Role: domain.RoleTechnician}

	_, err := suite.service.CloseBatch(ctx, technician, dto.CloseBatchRequest{Branch: "HN01"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCloseLogRepo.AssertNotCalled(suite.T(), "CloseBranch", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CloseServiceTestSuite) TestCloseBatch_NegativeReportedRevenue() {
	ctx := context.Background()

	_, err := suite.service.CloseBatch(ctx, suite.manager, dto.CloseBatchRequest{Branch: "HN01", ReportedRevenue: -1})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CloseServiceTestSuite) TestGetCloseDetails_LoadsMembers() {
	ctx := context.Background()
	log := &domain.CloseLog{ID: 13, BranchCode: "HN01", ReportedRevenue: 800, OnlineRevenue: 500, BranchRevenue: 100, TransactionIDs: []int64{1, 2}}
	members := []domain.ShiftTransaction{
		{ID: 1, Status: domain.StatusClosed},
		{ID: 2, Status: domain.StatusClosed},
	}
	suite.mockCloseLogRepo.On("FindCloseLogByID", ctx, int64(13)).Return(log, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByIDs", ctx, []int64{1, 2}).Return(members, nil).Once()

	resp, err := suite.service.GetCloseDetails(ctx, suite.frontDesk, 13)

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 2)
	suite.Equal(int64(200), resp.CloseLog.CashRevenue)
}

func (suite *CloseServiceTestSuite) TestGetCloseDetails_OtherBranchHiddenFromFrontDesk() {
	ctx := context.Background()
	log := &domain.CloseLog{ID: 14, BranchCode: "SG02"}
	suite.mockCloseLogRepo.On("FindCloseLogByID", ctx, int64(14)).Return(log, nil).Once()

	_, err := suite.service.GetCloseDetails(ctx, suite.frontDesk, 14)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CloseServiceTestSuite) TestUndoClose_RequiresReversalRole() {
	ctx := context.Background()

	err := suite.service.UndoClose(ctx, suite.manager, 15)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCloseLogRepo.AssertNotCalled(suite.T(), "UndoClose", mock.Anything, mock.Anything)
}

func (suite *CloseServiceTestSuite) TestUndoClose_Success() {
	ctx := context.Background()
	log := &domain.CloseLog{ID: 15, BranchCode: "HN01", TransactionIDs: []int64{1, 2, 3}}
	suite.mockCloseLogRepo.On("FindCloseLogByID", ctx, int64(15)).Return(log, nil).Once()
	suite.mockCloseLogRepo.On("UndoClose", ctx, int64(15)).Return(nil).Once()

	err := suite.service.UndoClose(ctx, suite.admin, 15)

	suite.Require().NoError(err)
	suite.mockCloseLogRepo.AssertExpectations(suite.T())
}

func (suite *CloseServiceTestSuite) TestUndoMember_ReturnsUpdatedLog() {
	ctx := context.Background()
	log := &domain.CloseLog{ID: 16, BranchCode: "HN01", TransactionIDs: []int64{1, 2}}
	updated := &domain.CloseLog{ID: 16, BranchCode: "HN01", OnlineRevenue: 500, TransactionIDs: []int64{2}}
	suite.mockCloseLogRepo.On("FindCloseLogByID", ctx, int64(16)).Return(log, nil).Once()
	suite.mockCloseLogRepo.On("RevertMember", ctx, int64(16), int64(1)).Return(updated, nil).Once()

	got, err := suite.service.UndoMember(ctx, suite.admin, 16, 1)

	suite.Require().NoError(err)
	suite.Equal([]int64{2}, got.TransactionIDs)
}

func (suite *CloseServiceTestSuite) TestUndoMember_LastMemberRemovesLog() {
	ctx := context.Background()
	log := &domain.CloseLog{ID: 17, BranchCode: "HN01", TransactionIDs: []int64{1}}
	suite.mockCloseLogRepo.On("FindCloseLogByID", ctx, int64(17)).Return(log, nil).Once()
	suite.mockCloseLogRepo.On("RevertMember", ctx, int64(17), int64(1)).Return(nil, nil).Once()

	got, err := suite.service.UndoMember(ctx, suite.admin, 17, 1)

	suite.Require().NoError(err)
	suite.Nil(got)
}

func (suite *CloseServiceTestSuite) TestUndoMember_NonMemberValidationError() {
	ctx := context.Background()
	log := &domain.CloseLog{ID: 18, BranchCode: "HN01", TransactionIDs: []int64{1}}
	suite.mockCloseLogRepo.On("FindCloseLogByID", ctx, int64(18)).Return(log, nil).Once()
	suite.mockCloseLogRepo.On("RevertMember", ctx, int64(18), int64(9)).Return(nil, apperrors.ErrValidation).Once()

	_, err := suite.service.UndoMember(ctx, suite.admin, 18, 9)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CloseServiceTestSuite) TestPurgeMember_RequiresHardDeleteRole() {
	ctx := context.Background()

	_, err := suite.service.PurgeMember(ctx, suite.frontDesk, 19, 1)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockCloseLogRepo.AssertNotCalled(suite.T(), "PurgeMember", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CloseServiceTestSuite) TestPurgeMember_Success() {
	ctx := context.Background()
	log := &domain.CloseLog{ID: 19, BranchCode: "HN01", TransactionIDs: []int64{1, 2}}
	updated := &domain.CloseLog{ID: 19, BranchCode: "HN01", TransactionIDs: []int64{2}}
	suite.mockCloseLogRepo.On("FindCloseLogByID", ctx, int64(19)).Return(log, nil).Once()
	suite.mockCloseLogRepo.On("PurgeMember", ctx, int64(19), int64(1)).Return(updated, nil).Once()

	got, err := suite.service.PurgeMember(ctx, suite.admin, 19, 1)

	suite.Require().NoError(err)
	suite.Equal([]int64{2}, got.TransactionIDs)
}

func (suite *CloseServiceTestSuite) TestDeleteClose_Success() {
	ctx := context.Background()
	log := &domain.CloseLog{ID: 20, BranchCode: "HN01", TransactionIDs: []int64{1}}
	suite.mockCloseLogRepo.On("FindCloseLogByID", ctx, int64(20)).Return(log, nil).Once()
	suite.mockCloseLogRepo.On("DeleteClose", ctx, int64(20)).Return(nil).Once()

	err := suite.service.DeleteClose(ctx, suite.admin, 20)

	suite.Require().NoError(err)
	suite.mockCloseLogRepo.AssertExpectations(suite.T())
}

func (suite *CloseServiceTestSuite) TestDeleteClose_NotFound() {
	ctx := context.Background()
	suite.mockCloseLogRepo.On("FindCloseLogByID", ctx, int64(21)).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteClose(ctx, suite.admin, 21)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Test Suite ---
func TestCloseService(t *testing.T) {
	suite.Run(t, new(CloseServiceTestSuite))
}
