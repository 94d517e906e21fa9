package pgsql

import (
	portsrepo "github.com/hotelnest/shift_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TransactionRepo: newPgxTransactionRepository(dbPool),
		CloseLogRepo:    newPgxCloseLogRepository(dbPool),
		ReportingRepo:   newReportingRepository(dbPool),
		BranchRepo:      newPgxBranchRepository(dbPool),
		UserRepo:        newPgxUserRepository(dbPool),
	}
}
