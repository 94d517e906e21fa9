package services

import (
	portsrepo "github.com/hotelnest/shift_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/hotelnest/shift_ledger_app/internal/core/ports/services"
	"github.com/hotelnest/shift_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Transaction: NewTransactionService(
			repos.TransactionRepo,
			repos.BranchRepo,
			repos.UserRepo,
			cfg.DefaultPageSize,
		),
		Close: NewCloseService(
			repos.TransactionRepo,
			repos.CloseLogRepo,
			repos.BranchRepo,
			repos.UserRepo,
		),
		Reporting: NewReportingService(
			repos.ReportingRepo,
			repos.BranchRepo,
		),
	}
}
