package domain

import "time"

// StatusRevenue splits the online/branch aggregates by transaction status,
// for the dashboard's closed-vs-pending comparison.
type StatusRevenue struct {
	ClosedOnline  int64 `json:"closedOnline"`
	PendingOnline int64 `json:"pendingOnline"`
	ClosedBranch  int64 `json:"closedBranch"`
	PendingBranch int64 `json:"pendingBranch"`
}

// BranchRanking is one row of the cross-branch dashboard ranking, ordered by
// reported (PMS) revenue.
type BranchRanking struct {
	BranchCode      string `json:"branch"`
	ReportedRevenue int64  `json:"reportedRevenue"`
	ClosedRevenue   int64  `json:"closedRevenue"`
	PendingRevenue  int64  `json:"pendingRevenue"`
}

// CloseSummary is a settlement record trimmed for the dashboard history list.
type CloseSummary struct {
	ID              int64     `json:"id"`
	BranchCode      string    `json:"branchCode"`
	CloserName      string    `json:"closerName"`
	ClosedAt        time.Time `json:"closedAt"`
	ReportedRevenue int64     `json:"reportedRevenue"`
	OnlineRevenue   int64     `json:"onlineRevenue"`
	BranchRevenue   int64     `json:"branchRevenue"`
}

// DashboardSummary aggregates the shift-report dashboard for one period.
type DashboardSummary struct {
	ByBranch             []BranchRanking `json:"byBranch"`
	TotalReportedRevenue int64           `json:"totalReportedRevenue"`
	TotalCashRevenue     int64           `json:"totalCashRevenue"`
	RecentCloses         []CloseSummary  `json:"recentCloses"`
	ByType               StatusRevenue   `json:"byType"`
}

// MonthlyRevenue is one month's settled revenue, computed directly from
// closed transactions so it stays correct independent of the close logs.
type MonthlyRevenue struct {
	Month         int   `json:"month"`
	OnlineRevenue int64 `json:"onlineRevenue"`
	BranchRevenue int64 `json:"branchRevenue"`
}
