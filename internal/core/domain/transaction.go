package domain

import "time"

// TransactionType classifies how a shift transaction was paid or spent.
type TransactionType string

const (
	TypeBranchAccount  TransactionType = "BRANCH_ACCOUNT"
	TypeCompanyAccount TransactionType = "COMPANY_ACCOUNT"
	TypeOTA            TransactionType = "OTA"
	TypeBankTransfer   TransactionType = "UNC"
	TypeCard           TransactionType = "CARD"
	TypeCashExpense    TransactionType = "CASH_EXPENSE"
)

// TransactionTypes lists every valid type in display order.
var TransactionTypes = []TransactionType{
	TypeBranchAccount,
	TypeCompanyAccount,
	TypeOTA,
	TypeBankTransfer,
	TypeCard,
	TypeCashExpense,
}

// IsValidTransactionType reports whether t is one of the enumerated types.
func IsValidTransactionType(t TransactionType) bool {
	switch t {
	case TypeBranchAccount, TypeCompanyAccount, TypeOTA, TypeBankTransfer, TypeCard, TypeCashExpense:
		return true
	}
	return false
}

// TransactionStatus is the lifecycle state of a shift transaction.
type TransactionStatus string

const (
	StatusPending TransactionStatus = "PENDING"
	StatusClosed  TransactionStatus = "CLOSED"
	StatusDeleted TransactionStatus = "DELETED"
)

// ShiftTransaction is one recorded cash/revenue movement tied to a branch.
// Amount is always stored non-negative in the smallest currency unit; the
// sign of its revenue effect is derived from Type at aggregation time.
type ShiftTransaction struct {
	ID              int64             `json:"id"`
	TransactionCode string            `json:"transactionCode"` // <BranchCode>-<5 digits>, unique
	BranchID        int64             `json:"branchID"`
	BranchCode      string            `json:"branchCode"`
	RecorderID      int64             `json:"recorderID"`
	RecorderName    string            `json:"recorderName"`
	RecorderCode    string            `json:"recorderCode"`
	Type            TransactionType   `json:"transactionType"`
	Amount          int64             `json:"amount"`
	RoomNumber      string            `json:"roomNumber,omitempty"`
	TransactionInfo string            `json:"transactionInfo,omitempty"`
	Status          TransactionStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`

	// Populated only once the transaction has been sealed by a close.
	CloserID   *int64     `json:"closerID,omitempty"`
	CloserName string     `json:"closerName,omitempty"`
	ClosedAt   *time.Time `json:"closedAt,omitempty"`

	// Populated only once the transaction has been soft-deleted.
	DeleterID   *int64     `json:"deleterID,omitempty"`
	DeleterName string     `json:"deleterName,omitempty"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

// Editable reports whether the transaction may still be modified directly.
// Closed rows change only through the reversal path; deleted rows never do.
func (t *ShiftTransaction) Editable() bool {
	return t.Status == StatusPending
}
