package repositories

import (
	"context"

	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
)

// BranchRepositoryFacade is the narrow lookup interface onto the branch
// directory. The directory itself is maintained by an external collaborator.
type BranchRepositoryFacade interface {
	FindBranchByCode(ctx context.Context, branchCode string) (*domain.Branch, error)
	FindBranchByID(ctx context.Context, id int64) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

// UserRepositoryFacade is the narrow lookup interface onto the employee
// directory, used only to resolve recorder/closer/deleter identities.
type UserRepositoryFacade interface {
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	FindUserByEmployeeCode(ctx context.Context, employeeCode string) (*domain.User, error)
}
