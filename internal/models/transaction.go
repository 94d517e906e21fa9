package models

import "time"

// TransactionStatus mirrors the status CHECK constraint on shift_transactions.
type TransactionStatus string

const (
	Pending TransactionStatus = "PENDING"
	Closed  TransactionStatus = "CLOSED"
	Deleted TransactionStatus = "DELETED"
)

// ShiftTransaction is the row shape of the shift_transactions table, plus
// the display fields joined in from branches and users.
type ShiftTransaction struct {
	ID              int64             `json:"id"`
	TransactionCode string            `json:"transactionCode"`
	BranchID        int64             `json:"branchID"`
	RecorderID      int64             `json:"recorderID"`
	TransactionType string            `json:"transactionType"`
	Amount          int64             `json:"amount"`
	RoomNumber      *string           `json:"roomNumber"`
	TransactionInfo *string           `json:"transactionInfo"`
	Status          TransactionStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
	CloserID        *int64            `json:"closerID"`
	ClosedAt        *time.Time        `json:"closedAt"`
	DeleterID       *int64            `json:"deleterID"`
	DeletedAt       *time.Time        `json:"deletedAt"`

	// Joined display columns.
	BranchCode   string  `json:"branchCode"`
	RecorderName string  `json:"recorderName"`
	RecorderCode string  `json:"recorderCode"`
	CloserName   *string `json:"closerName"`
	DeleterName  *string `json:"deleterName"`
}
