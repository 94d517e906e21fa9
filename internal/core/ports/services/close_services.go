package services

import (
	"context"

	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	"github.com/hotelnest/shift_ledger_app/internal/dto"
)

// CloseReaderSvc defines read operations for settlement records
type CloseReaderSvc interface {
	// GetCloseDetails retrieves a settlement record with its member transactions.
	GetCloseDetails(ctx context.Context, actor domain.Actor, closeLogID int64) (*dto.CloseDetailsResponse, error)
}

// CloseWriterSvc defines the batch close operation and its reversal paths
type CloseWriterSvc interface {
	// CloseBatch seals every pending transaction of a branch into a new
	// settlement record. A record is produced even when nothing is pending.
	CloseBatch(ctx context.Context, actor domain.Actor, req dto.CloseBatchRequest) (*domain.CloseLog, error)

	// UndoClose reverts an entire settlement, returning its members to pending.
	UndoClose(ctx context.Context, actor domain.Actor, closeLogID int64) error

	// UndoMember returns a single member transaction to pending, recomputing
	// the settlement's aggregates. The updated record is returned, or nil when
	// removing the last member deleted it.
	UndoMember(ctx context.Context, actor domain.Actor, closeLogID, transactionID int64) (*domain.CloseLog, error)

	// PurgeMember permanently deletes a member transaction out of a settlement,
	// recomputing the aggregates the same way UndoMember does.
	PurgeMember(ctx context.Context, actor domain.Actor, closeLogID, transactionID int64) (*domain.CloseLog, error)

	// DeleteClose permanently erases a settlement record together with its
	// member transactions.
	DeleteClose(ctx context.Context, actor domain.Actor, closeLogID int64) error
}

// CloseSvcFacade combines all settlement-related service interfaces
type CloseSvcFacade interface {
	CloseReaderSvc
	CloseWriterSvc
}
