package services_test

import (
	"context"
	"time"

	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	portsrepo "github.com/hotelnest/shift_ledger_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.ShiftTransaction) (*domain.ShiftTransaction, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.ShiftTransaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindTransactionsByIDs(ctx context.Context, ids []int64) ([]domain.ShiftTransaction, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShiftTransaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateTransactionDetails(ctx context.Context, txn domain.ShiftTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkTransactionsDeleted(ctx context.Context, ids []int64, deleterID int64, deletedAt time.Time) ([]int64, error) {
	args := m.Called(ctx, ids, deleterID, deletedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockTransactionRepository) DeleteTransactions(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *MockTransactionRepository) TransactionCodeExists(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.ShiftTransaction, *string, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var nextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		nextToken = &tokenVal
	}
	return args.Get(0).([]domain.ShiftTransaction), nextToken, args.Error(2)
}

func (m *MockTransactionRepository) CountTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock CloseLogRepository ---
type MockCloseLogRepository struct {
	mock.Mock
}

var _ portsrepo.CloseLogRepositoryFacade = (*MockCloseLogRepository)(nil)

func (m *MockCloseLogRepository) CloseBranch(ctx context.Context, branchID, closerID, reportedRevenue int64, closedAt time.Time) (*domain.CloseLog, []domain.ShiftTransaction, error) {
	args := m.Called(ctx, branchID, closerID, reportedRevenue, closedAt)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var sealed []domain.ShiftTransaction
	if args.Get(1) != nil {
		sealed = args.Get(1).([]domain.ShiftTransaction)
	}
	return args.Get(0).(*domain.CloseLog), sealed, args.Error(2)
}

func (m *MockCloseLogRepository) FindCloseLogByID(ctx context.Context, logID int64) (*domain.CloseLog, error) {
	args := m.Called(ctx, logID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CloseLog), args.Error(1)
}

func (m *MockCloseLogRepository) UndoClose(ctx context.Context, logID int64) error {
	args := m.Called(ctx, logID)
	return args.Error(0)
}

func (m *MockCloseLogRepository) RevertMember(ctx context.Context, logID, transactionID int64) (*domain.CloseLog, error) {
	args := m.Called(ctx, logID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CloseLog), args.Error(1)
}

func (m *MockCloseLogRepository) PurgeMember(ctx context.Context, logID, transactionID int64) (*domain.CloseLog, error) {
	args := m.Called(ctx, logID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CloseLog), args.Error(1)
}

func (m *MockCloseLogRepository) DeleteClose(ctx context.Context, logID int64) error {
	args := m.Called(ctx, logID)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetStatusRevenue(ctx context.Context, filter portsrepo.DashboardFilter) (*domain.StatusRevenue, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusRevenue), args.Error(1)
}

func (m *MockReportingRepository) GetCloseTotals(ctx context.Context, filter portsrepo.DashboardFilter) (int64, int64, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Get(1).(int64), args.Get(2).(int64), args.Error(3)
}

func (m *MockReportingRepository) GetBranchRankings(ctx context.Context, filter portsrepo.DashboardFilter) ([]domain.BranchRanking, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BranchRanking), args.Error(1)
}

func (m *MockReportingRepository) GetRecentCloses(ctx context.Context, filter portsrepo.DashboardFilter, limit int) ([]domain.CloseSummary, error) {
	args := m.Called(ctx, filter, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CloseSummary), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyRevenue), args.Error(1)
}

func (m *MockReportingRepository) GetPendingTotal(ctx context.Context, branchCode string) (int64, error) {
	args := m.Called(ctx, branchCode)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock BranchRepository ---
type MockBranchRepository struct {
	mock.Mock
}

var _ portsrepo.BranchRepositoryFacade = (*MockBranchRepository)(nil)

func (m *MockBranchRepository) FindBranchByCode(ctx context.Context, branchCode string) (*domain.Branch, error) {
	args := m.Called(ctx, branchCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) FindBranchByID(ctx context.Context, id int64) (*domain.Branch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmployeeCode(ctx context.Context, employeeCode string) (*domain.User, error) {
	args := m.Called(ctx, employeeCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
