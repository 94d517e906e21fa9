package repositories

import (
	"context"
	"time"

	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
)

// ListTransactionsFilter carries every supported filter, the sort selection
// and both pagination modes for the transaction query engine.
type ListTransactionsFilter struct {
	BranchCode     string
	Status         *domain.TransactionStatus
	Type           *domain.TransactionType
	Search         string
	RecordedBy     string
	CreatedDate    *time.Time // matches the whole calendar day
	IncludeDeleted bool

	SortBy   string // one of the whitelisted sort columns; created_at default
	SortDesc bool

	Limit     int
	Page      int     // offset mode; 1-based
	NextToken *string // keyset mode; wins over Page under the default sort
}

// TransactionRepositoryFacade owns the shift_transactions relation.
type TransactionRepositoryFacade interface {
	// SaveTransaction inserts a new row and returns it with its assigned id.
	// A transaction_code uniqueness violation surfaces as apperrors.ErrDuplicate
	// so the caller can redraw the code.
	SaveTransaction(ctx context.Context, txn domain.ShiftTransaction) (*domain.ShiftTransaction, error)

	FindTransactionByID(ctx context.Context, id int64) (*domain.ShiftTransaction, error)
	FindTransactionsByIDs(ctx context.Context, ids []int64) ([]domain.ShiftTransaction, error)

	// UpdateTransactionDetails rewrites the editable fields of a pending row.
	UpdateTransactionDetails(ctx context.Context, txn domain.ShiftTransaction) error

	// MarkTransactionsDeleted soft-deletes rows, stamping deleter and time,
	// and strips each deleted id out of any settlement membership in the
	// same storage transaction. Returns the ids actually updated.
	MarkTransactionsDeleted(ctx context.Context, ids []int64, deleterID int64, deletedAt time.Time) ([]int64, error)

	// DeleteTransactions permanently erases rows, repairing any settlement
	// membership still referencing them in the same storage transaction.
	DeleteTransactions(ctx context.Context, ids []int64) error

	// TransactionCodeExists reports whether a code is already taken.
	TransactionCodeExists(ctx context.Context, code string) (bool, error)

	// ListTransactions returns one page plus the keyset token for the next
	// page when more rows exist under the default ordering.
	ListTransactions(ctx context.Context, filter ListTransactionsFilter) ([]domain.ShiftTransaction, *string, error)

	// CountTransactions runs the decoupled, unsorted total-count query over
	// the same filter set.
	CountTransactions(ctx context.Context, filter ListTransactionsFilter) (int64, error)
}
