package domain

import "time"

// CloseLog is the auditable settlement record produced by a batch close.
// One is created on every close invocation, including a zero-activity shift,
// so the shift history has no gaps.
type CloseLog struct {
	ID         int64     `json:"id"`
	BranchID   int64     `json:"branchID"`
	BranchCode string    `json:"branchCode"`
	CloserID   int64     `json:"closerID"`
	CloserName string    `json:"closerName"`
	ClosedAt   time.Time `json:"closedAt"`

	// ReportedRevenue is the externally sourced total entered by the closer
	// (the PMS figure), kept for cross-checking against the computed sums.
	ReportedRevenue int64 `json:"reportedRevenue"`

	// OnlineRevenue and BranchRevenue must always equal ComputeRevenue over
	// the current membership; every membership change recomputes them.
	OnlineRevenue int64 `json:"onlineRevenue"`
	BranchRevenue int64 `json:"branchRevenue"`

	// TransactionIDs is the ordered membership of this settlement.
	TransactionIDs []int64 `json:"transactionIDs"`
}

// CashRevenue derives the cash-on-hand figure implied by the reported total.
func (l *CloseLog) CashRevenue() int64 {
	return l.ReportedRevenue - l.OnlineRevenue - l.BranchRevenue
}

// HasMember reports whether the given transaction belongs to this settlement.
func (l *CloseLog) HasMember(transactionID int64) bool {
	for _, id := range l.TransactionIDs {
		if id == transactionID {
			return true
		}
	}
	return false
}

// WithoutMember returns the membership minus the given transaction id,
// preserving order.
func (l *CloseLog) WithoutMember(transactionID int64) []int64 {
	remaining := make([]int64, 0, len(l.TransactionIDs))
	for _, id := range l.TransactionIDs {
		if id != transactionID {
			remaining = append(remaining, id)
		}
	}
	return remaining
}
