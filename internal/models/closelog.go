package models

import "time"

// CloseLog is the row shape of the shift_close_logs table. Membership is a
// BIGINT array column so the foreign-key set stays typed and queryable.
type CloseLog struct {
	ID              int64     `json:"id"`
	BranchID        int64     `json:"branchID"`
	CloserID        int64     `json:"closerID"`
	ClosedAt        time.Time `json:"closedAt"`
	ReportedRevenue int64     `json:"reportedRevenue"`
	OnlineRevenue   int64     `json:"onlineRevenue"`
	BranchRevenue   int64     `json:"branchRevenue"`
	TransactionIDs  []int64   `json:"transactionIDs"`

	// Joined display columns.
	BranchCode string `json:"branchCode"`
	CloserName string `json:"closerName"`
}
