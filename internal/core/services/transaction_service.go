package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hotelnest/shift_ledger_app/internal/apperrors"
	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	portsrepo "github.com/hotelnest/shift_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/hotelnest/shift_ledger_app/internal/core/ports/services"
	"github.com/hotelnest/shift_ledger_app/internal/dto"
	"github.com/hotelnest/shift_ledger_app/internal/utils"
)

const (
	transactionCodeDigits   = 5
	transactionCodeAttempts = 5
	maxListLimit            = 100
)

// transactionService provides core shift transaction operations.
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	userRepo     portsrepo.UserRepositoryFacade
	defaultLimit int
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	branchRepo portsrepo.BranchRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	defaultLimit int,
) portssvc.TransactionSvcFacade {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	return &transactionService{
		BaseService:  BaseService{BranchRepo: branchRepo},
		txnRepo:      txnRepo,
		userRepo:     userRepo,
		defaultLimit: defaultLimit,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction records a new pending transaction. The transaction code
// is drawn randomly, checked against the store and redrawn while taken, a
// handful of times before giving up; the insert itself still redraws when a
// concurrent create wins the race for the same code.
func (s *transactionService) CreateTransaction(ctx context.Context, actor domain.Actor, req dto.CreateTransactionRequest) (*domain.ShiftTransaction, error) {
	policy := domain.PolicyFor(actor.Role)
	if !policy.CanRecord {
		return nil, apperrors.NewAppError(http.StatusForbidden, "role may not record transactions", apperrors.ErrForbidden)
	}
	if !domain.IsValidTransactionType(req.TransactionType) {
		return nil, apperrors.NewAppError(http.StatusBadRequest, fmt.Sprintf("unknown transaction type %q", req.TransactionType), apperrors.ErrValidation)
	}
	if req.Amount <= 0 {
		return nil, apperrors.NewAppError(http.StatusBadRequest, "amount must be positive", apperrors.ErrValidation)
	}

	branch, err := s.ResolveBranch(ctx, actor, req.Branch)
	if err != nil {
		return nil, err
	}
	recorder, err := s.resolveRecorder(ctx, actor, req.RecorderCode)
	if err != nil {
		return nil, err
	}

	txn := domain.ShiftTransaction{
		BranchID:        branch.ID,
		BranchCode:      branch.BranchCode,
		RecorderID:      recorder.ID,
		RecorderName:    recorder.Name,
		RecorderCode:    recorder.EmployeeCode,
		Type:            req.TransactionType,
		Amount:          req.Amount,
		RoomNumber:      req.RoomNumber,
		TransactionInfo: req.TransactionInfo,
		Status:          domain.StatusPending,
		CreatedAt:       time.Now().UTC(),
	}

	for attempt := 0; attempt < transactionCodeAttempts; attempt++ {
		digits, err := utils.GenerateRandomDigits(transactionCodeDigits)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to generate transaction code", err)
		}
		txn.TransactionCode = branch.BranchCode + "-" + digits

		taken, err := s.txnRepo.TransactionCodeExists(ctx, txn.TransactionCode)
		if err != nil {
			return nil, err
		}
		if taken {
			s.LogDebug(ctx, "transaction code taken, redrawing", slog.String("transaction_code", txn.TransactionCode))
			continue
		}

		saved, err := s.txnRepo.SaveTransaction(ctx, txn)
		if err == nil {
			s.LogInfo(ctx, "transaction recorded",
				slog.Int64("transaction_id", saved.ID),
				slog.String("transaction_code", saved.TransactionCode),
				slog.String("branch", saved.BranchCode))
			return saved, nil
		}
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogDebug(ctx, "transaction code collision, redrawing", slog.String("transaction_code", txn.TransactionCode))
			continue
		}
		return nil, err
	}
	return nil, apperrors.NewAppError(http.StatusInternalServerError, "could not allocate a unique transaction code", apperrors.ErrInternal)
}

// GetTransactionByID retrieves a transaction within the actor's visibility.
// Rows outside the actor's branch scope, and deleted rows for roles that may
// not see them, surface as not found rather than forbidden.
func (s *transactionService) GetTransactionByID(ctx context.Context, actor domain.Actor, transactionID int64) (*domain.ShiftTransaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkVisibility(actor, txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactions retrieves a filtered, paginated transaction listing.
func (s *transactionService) ListTransactions(ctx context.Context, actor domain.Actor, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	policy := domain.PolicyFor(actor.Role)

	branchCode, err := s.ScopeBranchFilter(actor, params.Branch)
	if err != nil {
		return nil, err
	}

	filter := portsrepo.ListTransactionsFilter{
		BranchCode:     branchCode,
		Search:         params.Search,
		RecordedBy:     params.RecordedBy,
		IncludeDeleted: params.IncludeDeleted && policy.CanSeeDeleted,
		SortBy:         params.SortBy,
		SortDesc:       params.SortDir != "asc",
	}

	if params.Status != "" {
		status := domain.TransactionStatus(params.Status)
		switch status {
		case domain.StatusPending, domain.StatusClosed:
		case domain.StatusDeleted:
			if !policy.CanSeeDeleted {
				return nil, apperrors.NewAppError(http.StatusForbidden, "role may not view deleted transactions", apperrors.ErrForbidden)
			}
			filter.IncludeDeleted = true
		default:
			return nil, apperrors.NewAppError(http.StatusBadRequest, fmt.Sprintf("unknown status %q", params.Status), apperrors.ErrValidation)
		}
		filter.Status = &status
	}
	if params.TransactionType != "" {
		txnType := domain.TransactionType(params.TransactionType)
		if !domain.IsValidTransactionType(txnType) {
			return nil, apperrors.NewAppError(http.StatusBadRequest, fmt.Sprintf("unknown transaction type %q", params.TransactionType), apperrors.ErrValidation)
		}
		filter.Type = &txnType
	}
	if params.CreatedDate != "" {
		day, err := time.Parse("2006-01-02", params.CreatedDate)
		if err != nil {
			return nil, apperrors.NewAppError(http.StatusBadRequest, "createdDate must be YYYY-MM-DD", apperrors.ErrValidation)
		}
		filter.CreatedDate = &day
	}

	filter.Limit = params.Limit
	if filter.Limit <= 0 {
		filter.Limit = s.defaultLimit
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	filter.Page = params.Page
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if params.NextToken != "" {
		filter.NextToken = &params.NextToken
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.txnRepo.CountTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := int(total / int64(filter.Limit))
	if total%int64(filter.Limit) != 0 {
		totalPages++
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		TotalRecords: total,
		TotalPages:   totalPages,
		NextToken:    nextToken,
	}, nil
}

// UpdateTransaction edits a pending transaction's details. Closed and deleted
// rows are immutable through this path.
func (s *transactionService) UpdateTransaction(ctx context.Context, actor domain.Actor, transactionID int64, req dto.UpdateTransactionRequest) (*domain.ShiftTransaction, error) {
	policy := domain.PolicyFor(actor.Role)
	if !policy.CanRecord {
		return nil, apperrors.NewAppError(http.StatusForbidden, "role may not edit transactions", apperrors.ErrForbidden)
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.checkVisibility(actor, txn); err != nil {
		return nil, err
	}
	if !txn.Editable() {
		return nil, apperrors.NewAppError(http.StatusConflict, "only pending transactions can be edited", apperrors.ErrConflict)
	}

	if req.RecorderCode != nil && *req.RecorderCode != "" {
		recorder, err := s.userRepo.FindUserByEmployeeCode(ctx, *req.RecorderCode)
		if err != nil {
			return nil, err
		}
		txn.RecorderID = recorder.ID
		txn.RecorderName = recorder.Name
		txn.RecorderCode = recorder.EmployeeCode
	}
	if req.TransactionType != nil {
		if !domain.IsValidTransactionType(*req.TransactionType) {
			return nil, apperrors.NewAppError(http.StatusBadRequest, fmt.Sprintf("unknown transaction type %q", *req.TransactionType), apperrors.ErrValidation)
		}
		txn.Type = *req.TransactionType
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return nil, apperrors.NewAppError(http.StatusBadRequest, "amount must be positive", apperrors.ErrValidation)
		}
		txn.Amount = *req.Amount
	}
	if req.RoomNumber != nil {
		txn.RoomNumber = *req.RoomNumber
	}
	if req.TransactionInfo != nil {
		txn.TransactionInfo = *req.TransactionInfo
	}

	if err := s.txnRepo.UpdateTransactionDetails(ctx, *txn); err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "transaction updated", slog.Int64("transaction_id", txn.ID))
	return txn, nil
}

// DeleteTransaction soft-deletes one transaction. Deleting a closed row is
// reserved for reversal-capable roles; the repository strips the row out of
// its settlement membership in the same storage transaction so the
// aggregates stay true.
func (s *transactionService) DeleteTransaction(ctx context.Context, actor domain.Actor, transactionID int64) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if err := s.checkVisibility(actor, txn); err != nil {
		return err
	}
	if err := s.authorizeSoftDelete(actor, txn); err != nil {
		return err
	}

	deleted, err := s.txnRepo.MarkTransactionsDeleted(ctx, []int64{txn.ID}, actor.UserID, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(deleted) == 0 {
		return apperrors.NewAppError(http.StatusConflict, "transaction already deleted", apperrors.ErrConflict)
	}
	s.LogInfo(ctx, "transaction deleted",
		slog.Int64("transaction_id", txn.ID),
		slog.String("previous_status", string(txn.Status)))
	return nil
}

// BatchDeleteTransactions soft-deletes several transactions, skipping the
// ones the actor may not touch and reporting both sets back.
func (s *transactionService) BatchDeleteTransactions(ctx context.Context, actor domain.Actor, req dto.BatchDeleteRequest) (*dto.BatchDeleteResponse, error) {
	txns, err := s.txnRepo.FindTransactionsByIDs(ctx, req.TransactionIDs)
	if err != nil {
		return nil, err
	}

	found := make(map[int64]*domain.ShiftTransaction, len(txns))
	for i := range txns {
		found[txns[i].ID] = &txns[i]
	}

	var deletable []int64
	resp := &dto.BatchDeleteResponse{DeletedIDs: []int64{}, SkippedIDs: []int64{}}
	for _, id := range req.TransactionIDs {
		txn, ok := found[id]
		if !ok || s.checkVisibility(actor, txn) != nil || s.authorizeSoftDelete(actor, txn) != nil {
			resp.SkippedIDs = append(resp.SkippedIDs, id)
			continue
		}
		deletable = append(deletable, id)
	}
	if len(deletable) == 0 {
		return resp, nil
	}

	deleted, err := s.txnRepo.MarkTransactionsDeleted(ctx, deletable, actor.UserID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	deletedSet := make(map[int64]bool, len(deleted))
	for _, id := range deleted {
		deletedSet[id] = true
	}
	for _, id := range deletable {
		if deletedSet[id] {
			resp.DeletedIDs = append(resp.DeletedIDs, id)
		} else {
			resp.SkippedIDs = append(resp.SkippedIDs, id)
		}
	}
	s.LogInfo(ctx, "transactions batch deleted",
		slog.Int("requested", len(req.TransactionIDs)),
		slog.Int("deleted", len(resp.DeletedIDs)))
	return resp, nil
}

// PurgeTransactions permanently erases rows that were never closed: pending
// rows and soft-deleted rows qualify, closed rows must go through reversal.
func (s *transactionService) PurgeTransactions(ctx context.Context, actor domain.Actor, req dto.BatchDeleteRequest) (*dto.BatchDeleteResponse, error) {
	policy := domain.PolicyFor(actor.Role)
	if !policy.CanHardDelete {
		return nil, apperrors.NewAppError(http.StatusForbidden, "role may not permanently delete transactions", apperrors.ErrForbidden)
	}

	txns, err := s.txnRepo.FindTransactionsByIDs(ctx, req.TransactionIDs)
	if err != nil {
		return nil, err
	}
	found := make(map[int64]*domain.ShiftTransaction, len(txns))
	for i := range txns {
		found[txns[i].ID] = &txns[i]
	}

	resp := &dto.BatchDeleteResponse{DeletedIDs: []int64{}, SkippedIDs: []int64{}}
	var purgeable []int64
	skippedClosed := 0
	for _, id := range req.TransactionIDs {
		txn, ok := found[id]
		if !ok || txn.Status == domain.StatusClosed {
			if ok {
				skippedClosed++
			}
			resp.SkippedIDs = append(resp.SkippedIDs, id)
			continue
		}
		purgeable = append(purgeable, id)
	}
	if len(purgeable) == 0 {
		// Nothing but closed rows is a conflict, not a silent no-op: closed
		// rows must go through reversal before they can be erased.
		if skippedClosed > 0 && skippedClosed == len(req.TransactionIDs) {
			return nil, apperrors.NewAppError(http.StatusConflict, "closed transactions must be reversed before permanent deletion", apperrors.ErrConflict)
		}
		return resp, nil
	}

	if err := s.txnRepo.DeleteTransactions(ctx, purgeable); err != nil {
		return nil, err
	}
	resp.DeletedIDs = purgeable
	s.LogInfo(ctx, "transactions purged", slog.Int("purged", len(purgeable)))
	return resp, nil
}

// resolveRecorder looks up the recorder by employee code, falling back to
// the acting user when no code is given or the code is unknown.
func (s *transactionService) resolveRecorder(ctx context.Context, actor domain.Actor, employeeCode string) (*domain.User, error) {
	if employeeCode != "" {
		recorder, err := s.userRepo.FindUserByEmployeeCode(ctx, employeeCode)
		if err == nil {
			return recorder, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	return s.userRepo.FindUserByID(ctx, actor.UserID)
}

// checkVisibility hides rows outside the actor's branch scope and deleted
// rows from roles that may not see them.
func (s *transactionService) checkVisibility(actor domain.Actor, txn *domain.ShiftTransaction) error {
	policy := domain.PolicyFor(actor.Role)
	if policy.OwnBranchOnly && txn.BranchCode != actor.ActiveBranchCode {
		return apperrors.NewAppError(http.StatusNotFound, "transaction not found", apperrors.ErrNotFound)
	}
	if txn.Status == domain.StatusDeleted && !policy.CanSeeDeleted {
		return apperrors.NewAppError(http.StatusNotFound, "transaction not found", apperrors.ErrNotFound)
	}
	return nil
}

func (s *transactionService) authorizeSoftDelete(actor domain.Actor, txn *domain.ShiftTransaction) error {
	policy := domain.PolicyFor(actor.Role)
	switch txn.Status {
	case domain.StatusPending:
		if !policy.CanRecord {
			return apperrors.NewAppError(http.StatusForbidden, "role may not delete transactions", apperrors.ErrForbidden)
		}
	case domain.StatusClosed:
		if !policy.CanReverse {
			return apperrors.NewAppError(http.StatusForbidden, "closed transactions can only be deleted by reversal-capable roles", apperrors.ErrForbidden)
		}
	default:
		return apperrors.NewAppError(http.StatusConflict, "transaction already deleted", apperrors.ErrConflict)
	}
	return nil
}
