package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	portsrepo "github.com/hotelnest/shift_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepositoryFacade interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// Ensure reportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*reportingRepository)(nil)

// onlineAmountExpr is the signed per-row contribution to online revenue,
// matching domain.BucketForType.
const onlineAmountExpr = `CASE
	WHEN t.transaction_type IN ('COMPANY_ACCOUNT', 'OTA', 'UNC', 'CARD') THEN t.amount
	WHEN t.transaction_type = 'CASH_EXPENSE' THEN -t.amount
	ELSE 0 END`

// branchAmountExpr is the per-row contribution to branch-account revenue.
const branchAmountExpr = `CASE WHEN t.transaction_type = 'BRANCH_ACCOUNT' THEN t.amount ELSE 0 END`

// reportWindow resolves the filter's time bounds. Day wins over Year/Month;
// neither means an unbounded window.
func reportWindow(filter portsrepo.DashboardFilter) (start, end *time.Time) {
	switch {
	case filter.Day != nil:
		s := time.Date(filter.Day.Year(), filter.Day.Month(), filter.Day.Day(), 0, 0, 0, 0, time.UTC)
		e := s.AddDate(0, 0, 1)
		return &s, &e
	case filter.Year != 0 && filter.Month != 0:
		s := time.Date(filter.Year, time.Month(filter.Month), 1, 0, 0, 0, 0, time.UTC)
		e := s.AddDate(0, 1, 0)
		return &s, &e
	case filter.Year != 0:
		s := time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		e := s.AddDate(1, 0, 0)
		return &s, &e
	}
	return nil, nil
}

// GetStatusRevenue sums online/branch revenue split by status over live
// transactions matching the filter.
func (r *reportingRepository) GetStatusRevenue(ctx context.Context, filter portsrepo.DashboardFilter) (*domain.StatusRevenue, error) {
	conditions := []string{"t.status <> 'DELETED'"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.BranchCode != "" {
		conditions = append(conditions, "b.branch_code = "+arg(filter.BranchCode))
	}
	if filter.Type != nil {
		conditions = append(conditions, "t.transaction_type = "+arg(string(*filter.Type)))
	}
	if filter.Status != nil {
		conditions = append(conditions, "t.status = "+arg(string(*filter.Status)))
	}
	if start, end := reportWindow(filter); start != nil {
		conditions = append(conditions, "t.created_at >= "+arg(*start))
		conditions = append(conditions, "t.created_at < "+arg(*end))
	}

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN t.status = 'CLOSED' THEN ` + onlineAmountExpr + ` ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.status = 'PENDING' THEN ` + onlineAmountExpr + ` ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.status = 'CLOSED' THEN ` + branchAmountExpr + ` ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN t.status = 'PENDING' THEN ` + branchAmountExpr + ` ELSE 0 END), 0)
		FROM shift_transactions t
		JOIN branches b ON t.branch_id = b.id
		WHERE ` + strings.Join(conditions, " AND ") + `;
	`

	var out domain.StatusRevenue
	err := r.Pool.QueryRow(ctx, query, args...).Scan(
		&out.ClosedOnline,
		&out.PendingOnline,
		&out.ClosedBranch,
		&out.PendingBranch,
	)
	if err != nil {
		return nil, fmt.Errorf("error querying status revenue: %w", err)
	}
	return &out, nil
}

// GetCloseTotals sums reported/online/branch revenue over settlement records
// matching the filter, by closed time.
func (r *reportingRepository) GetCloseTotals(ctx context.Context, filter portsrepo.DashboardFilter) (reported, online, branch int64, err error) {
	conditions := []string{"TRUE"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.BranchCode != "" {
		conditions = append(conditions, "b.branch_code = "+arg(filter.BranchCode))
	}
	if start, end := reportWindow(filter); start != nil {
		conditions = append(conditions, "cl.closed_at >= "+arg(*start))
		conditions = append(conditions, "cl.closed_at < "+arg(*end))
	}

	query := `
		SELECT COALESCE(SUM(cl.reported_revenue), 0), COALESCE(SUM(cl.online_revenue), 0), COALESCE(SUM(cl.branch_revenue), 0)
		FROM shift_close_logs cl
		JOIN branches b ON cl.branch_id = b.id
		WHERE ` + strings.Join(conditions, " AND ") + `;
	`
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&reported, &online, &branch); err != nil {
		return 0, 0, 0, fmt.Errorf("error querying close totals: %w", err)
	}
	return reported, online, branch, nil
}

// GetBranchRankings returns per-branch reported/closed/pending revenue,
// ordered by reported revenue descending. Settled figures come from the
// close logs, pending figures live from the transactions.
func (r *reportingRepository) GetBranchRankings(ctx context.Context, filter portsrepo.DashboardFilter) ([]domain.BranchRanking, error) {
	closeWindow := "TRUE"
	pendingWindow := "TRUE"
	args := []interface{}{}
	if start, end := reportWindow(filter); start != nil {
		args = append(args, *start, *end)
		closeWindow = "closed_at >= $1 AND closed_at < $2"
		pendingWindow = "created_at >= $1 AND created_at < $2"
	}

	branchCond := ""
	if filter.BranchCode != "" {
		args = append(args, filter.BranchCode)
		branchCond = "WHERE b.branch_code = $" + strconv.Itoa(len(args))
	}

	query := `
		SELECT b.branch_code,
		       COALESCE(l.reported, 0),
		       COALESCE(l.settled, 0),
		       COALESCE(p.pending, 0)
		FROM branches b
		LEFT JOIN (
			SELECT branch_id, SUM(reported_revenue) AS reported, SUM(online_revenue + branch_revenue) AS settled
			FROM shift_close_logs
			WHERE ` + closeWindow + `
			GROUP BY branch_id
		) l ON l.branch_id = b.id
		LEFT JOIN (
			SELECT t.branch_id, SUM(` + onlineAmountExpr + ` + ` + branchAmountExpr + `) AS pending
			FROM shift_transactions t
			WHERE t.status = 'PENDING' AND ` + pendingWindow + `
			GROUP BY t.branch_id
		) p ON p.branch_id = b.id
		` + branchCond + `
		ORDER BY COALESCE(l.reported, 0) DESC, b.branch_code;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying branch rankings: %w", err)
	}
	defer rows.Close()

	result := []domain.BranchRanking{}
	for rows.Next() {
		var row domain.BranchRanking
		if err := rows.Scan(&row.BranchCode, &row.ReportedRevenue, &row.ClosedRevenue, &row.PendingRevenue); err != nil {
			return nil, fmt.Errorf("error scanning branch ranking row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating branch ranking rows: %w", err)
	}
	return result, nil
}

// GetRecentCloses lists the latest settlements matching the filter.
func (r *reportingRepository) GetRecentCloses(ctx context.Context, filter portsrepo.DashboardFilter, limit int) ([]domain.CloseSummary, error) {
	if limit <= 0 {
		limit = 10
	}
	conditions := []string{"TRUE"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.BranchCode != "" {
		conditions = append(conditions, "b.branch_code = "+arg(filter.BranchCode))
	}
	if start, end := reportWindow(filter); start != nil {
		conditions = append(conditions, "cl.closed_at >= "+arg(*start))
		conditions = append(conditions, "cl.closed_at < "+arg(*end))
	}

	query := `
		SELECT cl.id, b.branch_code, u.name, cl.closed_at, cl.reported_revenue, cl.online_revenue, cl.branch_revenue
		FROM shift_close_logs cl
		JOIN branches b ON cl.branch_id = b.id
		JOIN users u ON cl.closer_id = u.id
		WHERE ` + strings.Join(conditions, " AND ") + `
		ORDER BY cl.closed_at DESC, cl.id DESC
		LIMIT ` + arg(limit) + `;
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying recent closes: %w", err)
	}
	defer rows.Close()

	result := []domain.CloseSummary{}
	for rows.Next() {
		var row domain.CloseSummary
		if err := rows.Scan(&row.ID, &row.BranchCode, &row.CloserName, &row.ClosedAt, &row.ReportedRevenue, &row.OnlineRevenue, &row.BranchRevenue); err != nil {
			return nil, fmt.Errorf("error scanning close summary row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating close summary rows: %w", err)
	}
	return result, nil
}

// GetMonthlyRevenue aggregates CLOSED transactions per month of a year,
// bypassing the close logs entirely.
func (r *reportingRepository) GetMonthlyRevenue(ctx context.Context, year int) ([]domain.MonthlyRevenue, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)
	query := `
		SELECT EXTRACT(MONTH FROM t.closed_at)::int AS month,
		       COALESCE(SUM(` + onlineAmountExpr + `), 0),
		       COALESCE(SUM(` + branchAmountExpr + `), 0)
		FROM shift_transactions t
		WHERE t.status = 'CLOSED' AND t.closed_at >= $1 AND t.closed_at < $2
		GROUP BY month
		ORDER BY month;
	`
	rows, err := r.Pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly revenue: %w", err)
	}
	defer rows.Close()

	result := []domain.MonthlyRevenue{}
	for rows.Next() {
		var row domain.MonthlyRevenue
		if err := rows.Scan(&row.Month, &row.OnlineRevenue, &row.BranchRevenue); err != nil {
			return nil, fmt.Errorf("error scanning monthly revenue row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly revenue rows: %w", err)
	}
	return result, nil
}

// GetPendingTotal returns the signed pending sum for one branch.
func (r *reportingRepository) GetPendingTotal(ctx context.Context, branchCode string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(` + onlineAmountExpr + ` + ` + branchAmountExpr + `), 0)
		FROM shift_transactions t
		JOIN branches b ON t.branch_id = b.id
		WHERE t.status = 'PENDING' AND b.branch_code = $1;
	`
	var total int64
	if err := r.Pool.QueryRow(ctx, query, branchCode).Scan(&total); err != nil {
		return 0, fmt.Errorf("error querying pending total: %w", err)
	}
	return total, nil
}
