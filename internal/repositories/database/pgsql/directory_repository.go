package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/hotelnest/shift_ledger_app/internal/apperrors"
	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	portsrepo "github.com/hotelnest/shift_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBranchRepository reads the branch directory maintained by the external
// master-data collaborator.
type PgxBranchRepository struct {
	BaseRepository
}

func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

func (r *PgxBranchRepository) FindBranchByCode(ctx context.Context, branchCode string) (*domain.Branch, error) {
	var b domain.Branch
	err := r.Pool.QueryRow(ctx, `SELECT id, branch_code, name FROM branches WHERE branch_code = $1;`, branchCode).
		Scan(&b.ID, &b.BranchCode, &b.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewAppError(404, "branch "+branchCode+" not found", apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to find branch "+branchCode, err)
	}
	return &b, nil
}

func (r *PgxBranchRepository) FindBranchByID(ctx context.Context, id int64) (*domain.Branch, error) {
	var b domain.Branch
	err := r.Pool.QueryRow(ctx, `SELECT id, branch_code, name FROM branches WHERE id = $1;`, id).
		Scan(&b.ID, &b.BranchCode, &b.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find branch "+strconv.FormatInt(id, 10), err)
	}
	return &b, nil
}

func (r *PgxBranchRepository) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	rows, err := r.Pool.Query(ctx, `SELECT id, branch_code, name FROM branches ORDER BY branch_code;`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list branches", err)
	}
	defer rows.Close()

	branches := []domain.Branch{}
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(&b.ID, &b.BranchCode, &b.Name); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan branch row", err)
		}
		branches = append(branches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating branch rows", err)
	}
	return branches, nil
}

// PgxUserRepository reads the employee directory, for attribution lookups.
type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := r.Pool.QueryRow(ctx, `SELECT id, employee_code, name FROM users WHERE id = $1;`, id).
		Scan(&u.ID, &u.EmployeeCode, &u.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+strconv.FormatInt(id, 10), err)
	}
	return &u, nil
}

func (r *PgxUserRepository) FindUserByEmployeeCode(ctx context.Context, employeeCode string) (*domain.User, error) {
	var u domain.User
	err := r.Pool.QueryRow(ctx, `SELECT id, employee_code, name FROM users WHERE employee_code = $1;`, employeeCode).
		Scan(&u.ID, &u.EmployeeCode, &u.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find user "+employeeCode, err)
	}
	return &u, nil
}
