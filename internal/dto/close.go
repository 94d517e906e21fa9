package dto

import (
	"time"

	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
)

// CloseBatchRequest defines the payload for closing a branch's pending shift.
type CloseBatchRequest struct {
	Branch          string `json:"branch"` // branch code; ignored for front-desk users
	ReportedRevenue int64  `json:"reportedRevenue" binding:"gte=0"`
}

// CloseLogResponse defines the data returned for a settlement record.
type CloseLogResponse struct {
	ID              int64     `json:"id"`
	Branch          string    `json:"branch"`
	CloserName      string    `json:"closerName"`
	ClosedAt        time.Time `json:"closedAt"`
	ReportedRevenue int64     `json:"reportedRevenue"`
	OnlineRevenue   int64     `json:"onlineRevenue"`
	BranchRevenue   int64     `json:"branchRevenue"`
	CashRevenue     int64     `json:"cashRevenue"`
	TransactionIDs  []int64   `json:"transactionIDs"`
}

// CloseDetailsResponse combines a settlement record with its member transactions.
type CloseDetailsResponse struct {
	CloseLog     CloseLogResponse      `json:"closeLog"`
	Transactions []TransactionResponse `json:"transactions"`
}

// ToCloseLogResponse converts a domain.CloseLog to its DTO.
func ToCloseLogResponse(log *domain.CloseLog) CloseLogResponse {
	ids := log.TransactionIDs
	if ids == nil {
		ids = []int64{}
	}
	return CloseLogResponse{
		ID:              log.ID,
		Branch:          log.BranchCode,
		CloserName:      log.CloserName,
		ClosedAt:        log.ClosedAt,
		ReportedRevenue: log.ReportedRevenue,
		OnlineRevenue:   log.OnlineRevenue,
		BranchRevenue:   log.BranchRevenue,
		CashRevenue:     log.CashRevenue(),
		TransactionIDs:  ids,
	}
}
