package dto

import (
	"time"

	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
)

// CreateTransactionRequest defines the payload for recording a shift transaction.
type CreateTransactionRequest struct {
	Branch          string                 `json:"branch"` // branch code; ignored for front-desk users, who are pinned to their active branch
	RecorderCode    string                 `json:"recorderCode"` // employee code; defaults to the acting user
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=BRANCH_ACCOUNT COMPANY_ACCOUNT OTA UNC CARD CASH_EXPENSE"`
	Amount          int64                  `json:"amount" binding:"required,gt=0"`
	RoomNumber      string                 `json:"roomNumber"`
	TransactionInfo string                 `json:"transactionInfo"`
}

// UpdateTransactionRequest defines the payload for editing a pending transaction.
// Nil fields are left unchanged.
type UpdateTransactionRequest struct {
	RecorderCode    *string                 `json:"recorderCode,omitempty"`
	TransactionType *domain.TransactionType `json:"transactionType,omitempty" binding:"omitempty,oneof=BRANCH_ACCOUNT COMPANY_ACCOUNT OTA UNC CARD CASH_EXPENSE"`
	Amount          *int64                  `json:"amount,omitempty" binding:"omitempty,gt=0"`
	RoomNumber      *string                 `json:"roomNumber,omitempty"`
	TransactionInfo *string                 `json:"transactionInfo,omitempty"`
}

// ListTransactionsParams holds the query parameters accepted by the listing endpoint.
type ListTransactionsParams struct {
	Branch          string `form:"branch"`
	Status          string `form:"status"`
	TransactionType string `form:"transactionType"`
	Search          string `form:"search"`
	RecordedBy      string `form:"recordedBy"`
	CreatedDate     string `form:"createdDate"` // YYYY-MM-DD
	IncludeDeleted  bool   `form:"includeDeleted"`
	SortBy          string `form:"sortBy"`
	SortDir         string `form:"sortDir"`
	Limit           int    `form:"limit,default=20"`
	Page            int    `form:"page,default=1"`
	NextToken       string `form:"nextToken"`
}

// TransactionResponse defines the data returned for a shift transaction.
type TransactionResponse struct {
	ID              int64      `json:"id"`
	TransactionCode string     `json:"transactionCode"`
	Branch          string     `json:"branch"`
	RecorderName    string     `json:"recorderName"`
	RecorderCode    string     `json:"recorderCode"`
	TransactionType string     `json:"transactionType"`
	Amount          int64      `json:"amount"`
	RoomNumber      string     `json:"roomNumber,omitempty"`
	TransactionInfo string     `json:"transactionInfo,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"createdAt"`
	CloserName      string     `json:"closerName,omitempty"`
	ClosedAt        *time.Time `json:"closedAt,omitempty"`
	DeleterName     string     `json:"deleterName,omitempty"`
	DeletedAt       *time.Time `json:"deletedAt,omitempty"`
}

// ListTransactionsResponse defines the paginated listing payload. NextToken is
// only populated when the request used the default ordering; offset paging is
// always available through TotalPages.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalRecords int64                 `json:"totalRecords"`
	TotalPages   int                   `json:"totalPages"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// BatchDeleteRequest identifies the transactions to remove in one call.
type BatchDeleteRequest struct {
	TransactionIDs []int64 `json:"transactionIDs" binding:"required,min=1"`
}

// BatchDeleteResponse reports which of the requested rows were actually removed.
type BatchDeleteResponse struct {
	DeletedIDs []int64 `json:"deletedIDs"`
	SkippedIDs []int64 `json:"skippedIDs"`
}

// ToTransactionResponse converts a domain.ShiftTransaction to its DTO.
func ToTransactionResponse(txn *domain.ShiftTransaction) TransactionResponse {
	return TransactionResponse{
		ID:              txn.ID,
		TransactionCode: txn.TransactionCode,
		Branch:          txn.BranchCode,
		RecorderName:    txn.RecorderName,
		RecorderCode:    txn.RecorderCode,
		TransactionType: string(txn.Type),
		Amount:          txn.Amount,
		RoomNumber:      txn.RoomNumber,
		TransactionInfo: txn.TransactionInfo,
		Status:          string(txn.Status),
		CreatedAt:       txn.CreatedAt,
		CloserName:      txn.CloserName,
		ClosedAt:        txn.ClosedAt,
		DeleterName:     txn.DeleterName,
		DeletedAt:       txn.DeletedAt,
	}
}

// ToTransactionResponses converts a slice of domain transactions to DTOs.
func ToTransactionResponses(txns []domain.ShiftTransaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
