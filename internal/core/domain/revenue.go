package domain

// RevenueBucket identifies which settlement aggregate a transaction type feeds.
type RevenueBucket int

const (
	// BucketOnline adds to the online aggregate (company/OTA/transfer/card).
	BucketOnline RevenueBucket = iota
	// BucketOnlineExpense subtracts from the online aggregate (cash expense).
	BucketOnlineExpense
	// BucketBranch adds to the branch-account aggregate.
	BucketBranch
	// BucketNone contributes to no aggregate.
	BucketNone
)

// BucketForType maps a transaction type to its revenue bucket. It is the
// single classification point shared by the close engine, the reversal
// engine and reporting; the buckets are never stored on the row.
func BucketForType(t TransactionType) RevenueBucket {
	switch t {
	case TypeCompanyAccount, TypeOTA, TypeBankTransfer, TypeCard:
		return BucketOnline
	case TypeCashExpense:
		return BucketOnlineExpense
	case TypeBranchAccount:
		return BucketBranch
	default:
		return BucketNone
	}
}

// SignedAmount returns the transaction's contribution to total revenue:
// positive for every revenue type, negative for cash expenses.
func SignedAmount(t TransactionType, amount int64) int64 {
	switch BucketForType(t) {
	case BucketOnline, BucketBranch:
		return amount
	case BucketOnlineExpense:
		return -amount
	default:
		return 0
	}
}

// ComputeRevenue recomputes the two settlement aggregates over a membership.
// onlineRevenue is company+OTA+transfer+card minus cash expenses;
// branchRevenue is the branch-account sum. Pure and idempotent.
func ComputeRevenue(transactions []ShiftTransaction) (onlineRevenue, branchRevenue int64) {
	for _, tx := range transactions {
		switch BucketForType(tx.Type) {
		case BucketOnline:
			onlineRevenue += tx.Amount
		case BucketOnlineExpense:
			onlineRevenue -= tx.Amount
		case BucketBranch:
			branchRevenue += tx.Amount
		}
	}
	return onlineRevenue, branchRevenue
}
