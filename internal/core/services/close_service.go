package services

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/hotelnest/shift_ledger_app/internal/apperrors"
	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	portsrepo "github.com/hotelnest/shift_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/hotelnest/shift_ledger_app/internal/core/ports/services"
	"github.com/hotelnest/shift_ledger_app/internal/dto"
)

// closeService drives the batch close and its reversal paths. The atomic
// heavy lifting lives in the close log repository; this layer owns
// authorization, scoping and identity resolution.
type closeService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	closeLogRepo portsrepo.CloseLogRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
}

// NewCloseService creates a new CloseService.
func NewCloseService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	closeLogRepo portsrepo.CloseLogRepositoryFacade,
	branchRepo portsrepo.BranchRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
) portssvc.CloseSvcFacade {
	return &closeService{
		BaseService:  BaseService{BranchRepo: branchRepo},
		txnRepo:      txnRepo,
		closeLogRepo: closeLogRepo,
		userRepo:     userRepo,
	}
}

// Ensure closeService implements the portssvc.CloseSvcFacade interface
var _ portssvc.CloseSvcFacade = (*closeService)(nil)

// CloseBatch seals every pending transaction of a branch into a settlement
// record. The close happens even when nothing is pending, so the shift
// history keeps an unbroken trail of handovers.
func (s *closeService) CloseBatch(ctx context.Context, actor domain.Actor, req dto.CloseBatchRequest) (*domain.CloseLog, error) {
	policy := domain.PolicyFor(actor.Role)
	if !policy.CanClose {
		return nil, apperrors.NewAppError(http.StatusForbidden, "role may not close shifts", apperrors.ErrForbidden)
	}
	if req.ReportedRevenue < 0 {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "reported revenue must not be negative", apperrors.ErrValidation)
	}

	branch, err := s.ResolveBranch(ctx, actor, req.Branch)
	if err != nil {
		return nil, err
	}
	closer, err := s.userRepo.FindUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	log, sealed, err := s.closeLogRepo.CloseBranch(ctx, branch.ID, closer.ID, req.ReportedRevenue, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "shift closed",
		slog.Int64("close_log_id", log.ID),
		slog.String("branch", branch.BranchCode),
		slog.Int("transactions", len(sealed)),
		slog.Int64("online_revenue", log.OnlineRevenue),
		slog.Int64("branch_revenue", log.BranchRevenue))
	return log, nil
}

// GetCloseDetails retrieves a settlement record with its member transactions.
func (s *closeService) GetCloseDetails(ctx context.Context, actor domain.Actor, closeLogID int64) (*dto.CloseDetailsResponse, error) {
	log, err := s.scopedLog(ctx, actor, closeLogID)
	if err != nil {
		return nil, err
	}

	var members []domain.ShiftTransaction
	if len(log.TransactionIDs) > 0 {
		members, err = s.txnRepo.FindTransactionsByIDs(ctx, log.TransactionIDs)
		if err != nil {
			return nil, err
		}
	}
	return &dto.CloseDetailsResponse{
		CloseLog:     dto.ToCloseLogResponse(log),
		Transactions: dto.ToTransactionResponses(members),
	}, nil
}

// UndoClose reverts an entire settlement: every member returns to pending
// and the record disappears.
func (s *closeService) UndoClose(ctx context.Context, actor domain.Actor, closeLogID int64) error {
	log, err := s.authorizeReversal(ctx, actor, closeLogID)
	if err != nil {
		return err
	}
	if err := s.closeLogRepo.UndoClose(ctx, log.ID); err != nil {
		return err
	}
	s.LogInfo(ctx, "close undone",
		slog.Int64("close_log_id", log.ID),
		slog.Int("transactions", len(log.TransactionIDs)))
	return nil
}

// UndoMember returns one member transaction to pending and recomputes the
// settlement's aggregates. Returns nil when the membership emptied and the
// record was removed with it.
func (s *closeService) UndoMember(ctx context.Context, actor domain.Actor, closeLogID, transactionID int64) (*domain.CloseLog, error) {
	if _, err := s.authorizeReversal(ctx, actor, closeLogID); err != nil {
		return nil, err
	}
	updated, err := s.closeLogRepo.RevertMember(ctx, closeLogID, transactionID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "close member reverted",
		slog.Int64("close_log_id", closeLogID),
		slog.Int64("transaction_id", transactionID),
		slog.Bool("log_removed", updated == nil))
	return updated, nil
}

// PurgeMember permanently erases one member transaction out of a settlement,
// with the same aggregate recomputation as UndoMember.
func (s *closeService) PurgeMember(ctx context.Context, actor domain.Actor, closeLogID, transactionID int64) (*domain.CloseLog, error) {
	policy := domain.PolicyFor(actor.Role)
	if !policy.CanHardDelete {
		return nil, apperrors.NewAppError(http.StatusForbidden, "role may not permanently delete transactions", apperrors.ErrForbidden)
	}
	if _, err := s.authorizeReversal(ctx, actor, closeLogID); err != nil {
		return nil, err
	}
	updated, err := s.closeLogRepo.PurgeMember(ctx, closeLogID, transactionID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "close member purged",
		slog.Int64("close_log_id", closeLogID),
		slog.Int64("transaction_id", transactionID),
		slog.Bool("log_removed", updated == nil))
	return updated, nil
}

// DeleteClose erases a settlement record together with its members.
func (s *closeService) DeleteClose(ctx context.Context, actor domain.Actor, closeLogID int64) error {
	policy := domain.PolicyFor(actor.Role)
	if !policy.CanHardDelete {
		return apperrors.NewAppError(http.StatusForbidden, "role may not delete settlements", apperrors.ErrForbidden)
	}
	log, err := s.authorizeReversal(ctx, actor, closeLogID)
	if err != nil {
		return err
	}
	if err := s.closeLogRepo.DeleteClose(ctx, log.ID); err != nil {
		return err
	}
	s.LogInfo(ctx, "close deleted",
		slog.Int64("close_log_id", log.ID),
		slog.Int("transactions", len(log.TransactionIDs)))
	return nil
}

// scopedLog loads a settlement record and hides it from actors outside its
// branch scope.
func (s *closeService) scopedLog(ctx context.Context, actor domain.Actor, closeLogID int64) (*domain.CloseLog, error) {
	log, err := s.closeLogRepo.FindCloseLogByID(ctx, closeLogID)
	if err != nil {
		return nil, err
	}
	policy := domain.PolicyFor(actor.Role)
	if policy.OwnBranchOnly && log.BranchCode != actor.ActiveBranchCode {
		return nil, apperrors.NewAppError(http.StatusNotFound, "close log not found", apperrors.ErrNotFound)
	}
	return log, nil
}

func (s *closeService) authorizeReversal(ctx context.Context, actor domain.Actor, closeLogID int64) (*domain.CloseLog, error) {
	policy := domain.PolicyFor(actor.Role)
	if !policy.CanReverse {
		return nil, apperrors.NewAppError(http.StatusForbidden, "role may not reverse settlements", apperrors.ErrForbidden)
	}
	return s.scopedLog(ctx, actor, closeLogID)
}
