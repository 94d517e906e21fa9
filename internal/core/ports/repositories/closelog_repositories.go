package repositories

import (
	"context"
	"time"

	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
)

// CloseLogRepositoryFacade owns the shift_close_logs relation and every
// multi-step mutation touching both a settlement and its member rows. Each
// method is one atomic storage transaction: the close marks the pending set
// and writes the log together, and every membership repair recomputes the
// aggregates under a row lock before committing.
type CloseLogRepositoryFacade interface {
	// CloseBranch seals the branch's pending set into a new settlement
	// record. The pending rows are locked, transitioned to CLOSED and the
	// log row inserted in the same transaction; an empty pending set still
	// produces a log. Returns the log and the sealed transactions.
	CloseBranch(ctx context.Context, branchID, closerID, reportedRevenue int64, closedAt time.Time) (*domain.CloseLog, []domain.ShiftTransaction, error)

	FindCloseLogByID(ctx context.Context, logID int64) (*domain.CloseLog, error)

	// UndoClose reverts every member to PENDING (clearing closer and
	// closed-time) and deletes the settlement record.
	UndoClose(ctx context.Context, logID int64) error

	// RevertMember reverts one member to PENDING, shrinks the membership and
	// recomputes the aggregates from the remaining members. Returns the
	// updated log, or nil when the membership emptied and the log was
	// deleted. apperrors.ErrValidation when the transaction is not a member.
	RevertMember(ctx context.Context, logID, transactionID int64) (*domain.CloseLog, error)

	// PurgeMember does the same membership repair but permanently erases the
	// transaction instead of reverting it.
	PurgeMember(ctx context.Context, logID, transactionID int64) (*domain.CloseLog, error)

	// DeleteClose permanently erases the settlement record together with
	// every member transaction.
	DeleteClose(ctx context.Context, logID int64) error
}
