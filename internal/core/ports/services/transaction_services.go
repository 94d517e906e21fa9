package services

import (
	"context"

	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	"github.com/hotelnest/shift_ledger_app/internal/dto"
)

// TransactionReaderSvc defines read operations for shift transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction, enforcing the
	// actor's branch scope and deleted-row visibility.
	GetTransactionByID(ctx context.Context, actor domain.Actor, transactionID int64) (*domain.ShiftTransaction, error)

	// ListTransactions retrieves a filtered, paginated transaction listing.
	ListTransactions(ctx context.Context, actor domain.Actor, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for shift transaction data
type TransactionWriterSvc interface {
	// CreateTransaction records a new pending transaction with a freshly
	// generated transaction code.
	CreateTransaction(ctx context.Context, actor domain.Actor, req dto.CreateTransactionRequest) (*domain.ShiftTransaction, error)

	// UpdateTransaction edits a pending transaction's details.
	UpdateTransaction(ctx context.Context, actor domain.Actor, transactionID int64, req dto.UpdateTransactionRequest) (*domain.ShiftTransaction, error)

	// DeleteTransaction soft-deletes a transaction, repairing any settlement
	// membership it belonged to.
	DeleteTransaction(ctx context.Context, actor domain.Actor, transactionID int64) error

	// BatchDeleteTransactions soft-deletes several transactions in one pass.
	BatchDeleteTransactions(ctx context.Context, actor domain.Actor, req dto.BatchDeleteRequest) (*dto.BatchDeleteResponse, error)

	// PurgeTransactions permanently removes rows that were never closed.
	// Restricted to roles with hard-delete rights.
	PurgeTransactions(ctx context.Context, actor domain.Actor, req dto.BatchDeleteRequest) (*dto.BatchDeleteResponse, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
