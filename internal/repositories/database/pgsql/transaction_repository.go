package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hotelnest/shift_ledger_app/internal/apperrors"
	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	portsrepo "github.com/hotelnest/shift_ledger_app/internal/core/ports/repositories"
	"github.com/hotelnest/shift_ledger_app/internal/models"
	"github.com/hotelnest/shift_ledger_app/internal/utils/mapping"
	"github.com/hotelnest/shift_ledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for shift transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// transactionSelect is the shared projection: every row column plus the
// joined display names. Closer/deleter joins are LEFT so pending rows survive.
const transactionSelect = `
	SELECT t.id, t.transaction_code, t.branch_id, t.recorder_id, t.transaction_type, t.amount,
	       t.room_number, t.transaction_info, t.status, t.created_at,
	       t.closer_id, t.closed_at, t.deleter_id, t.deleted_at,
	       b.branch_code, ru.name, ru.employee_code, cu.name, du.name
	FROM shift_transactions t
	JOIN branches b ON t.branch_id = b.id
	JOIN users ru ON t.recorder_id = ru.id
	LEFT JOIN users cu ON t.closer_id = cu.id
	LEFT JOIN users du ON t.deleter_id = du.id
`

func scanTransactionRow(row pgx.Row) (models.ShiftTransaction, error) {
	var m models.ShiftTransaction
	err := row.Scan(
		&m.ID,
		&m.TransactionCode,
		&m.BranchID,
		&m.RecorderID,
		&m.TransactionType,
		&m.Amount,
		&m.RoomNumber,
		&m.TransactionInfo,
		&m.Status,
		&m.CreatedAt,
		&m.CloserID,
		&m.ClosedAt,
		&m.DeleterID,
		&m.DeletedAt,
		&m.BranchCode,
		&m.RecorderName,
		&m.RecorderCode,
		&m.CloserName,
		&m.DeleterName,
	)
	return m, err
}

// SaveTransaction inserts a new row; the code uniqueness constraint surfaces
// as apperrors.ErrDuplicate so the caller can redraw.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.ShiftTransaction) (*domain.ShiftTransaction, error) {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO shift_transactions (transaction_code, branch_id, recorder_id, transaction_type, amount, room_number, transaction_info, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.TransactionCode,
		m.BranchID,
		m.RecorderID,
		m.TransactionType,
		m.Amount,
		m.RoomNumber,
		m.TransactionInfo,
		m.Status,
		m.CreatedAt,
	).Scan(&txn.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewAppError(409, "transaction code "+txn.TransactionCode+" already exists", apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to insert transaction", err)
	}
	return &txn, nil
}

// FindTransactionByID retrieves one transaction with its display joins.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.ShiftTransaction, error) {
	query := transactionSelect + ` WHERE t.id = $1;`
	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+strconv.FormatInt(id, 10), err)
	}
	t := mapping.ToDomainTransaction(m)
	return &t, nil
}

// FindTransactionsByIDs retrieves a set of transactions, newest first.
func (r *PgxTransactionRepository) FindTransactionsByIDs(ctx context.Context, ids []int64) ([]domain.ShiftTransaction, error) {
	if len(ids) == 0 {
		return []domain.ShiftTransaction{}, nil
	}
	query := transactionSelect + ` WHERE t.id = ANY($1) ORDER BY t.created_at DESC, t.id DESC;`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transactions by ids", err)
	}
	defer rows.Close()

	results := []models.ShiftTransaction{}
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}
	return mapping.ToDomainTransactionSlice(results), nil
}

// UpdateTransactionDetails rewrites the editable fields. The status guard in
// the WHERE clause makes the pending-only rule hold even under races.
func (r *PgxTransactionRepository) UpdateTransactionDetails(ctx context.Context, txn domain.ShiftTransaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE shift_transactions
		SET transaction_type = $2, amount = $3, room_number = $4, transaction_info = $5, recorder_id = $6
		WHERE id = $1 AND status = 'PENDING';
	`
	tag, err := r.Pool.Exec(ctx, query, m.ID, m.TransactionType, m.Amount, m.RoomNumber, m.TransactionInfo, m.RecorderID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+strconv.FormatInt(txn.ID, 10), err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewAppError(409, "transaction is no longer pending", apperrors.ErrConflict)
	}
	return nil
}

// MarkTransactionsDeleted soft-deletes rows, returning the ids it touched.
// Rows already deleted are left alone. The status flip and the settlement
// membership repair for formerly closed rows commit as one unit, so a log
// can never keep counting a deleted row.
func (r *PgxTransactionRepository) MarkTransactionsDeleted(ctx context.Context, ids []int64, deleterID int64, deletedAt time.Time) ([]int64, error) {
	if len(ids) == 0 {
		return []int64{}, nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE shift_transactions
		SET status = 'DELETED', deleter_id = $2, deleted_at = $3
		WHERE id = ANY($1) AND status <> 'DELETED'
		RETURNING id;
	`
	rows, err := tx.Query(ctx, query, ids, deleterID, deletedAt)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to soft delete transactions", err)
	}

	deleted := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, apperrors.NewAppError(500, "failed to scan deleted id", err)
		}
		deleted = append(deleted, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating deleted ids", err)
	}

	for _, id := range deleted {
		if err := stripMemberships(ctx, tx, id); err != nil {
			return nil, err
		}
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return deleted, nil
}

// DeleteTransactions permanently erases rows, stripping any settlement
// membership still referencing them in the same storage transaction.
func (r *PgxTransactionRepository) DeleteTransactions(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	for _, id := range ids {
		if err := stripMemberships(ctx, tx, id); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM shift_transactions WHERE id = ANY($1);`, ids); err != nil {
		return apperrors.NewAppError(500, "failed to delete transactions", err)
	}
	return r.Commit(ctx, tx)
}

// TransactionCodeExists reports whether a code is already taken.
func (r *PgxTransactionRepository) TransactionCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shift_transactions WHERE transaction_code = $1);`, code).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check transaction code "+code, err)
	}
	return exists, nil
}

// sortColumns whitelists the client-facing sort keys. Status sorts by the
// lifecycle rank so pending rows come before closed and deleted ones.
var sortColumns = map[string]string{
	"createdAt":       "t.created_at",
	"transactionCode": "t.transaction_code",
	"amount":          "t.amount",
	"transactionType": "t.transaction_type",
	"branch":          "b.branch_code",
	"recorder":        "ru.name",
	"roomNumber":      "t.room_number",
	"status":          "CASE t.status WHEN 'PENDING' THEN 0 WHEN 'CLOSED' THEN 1 ELSE 2 END",
}

// buildTransactionFilter assembles the WHERE conditions shared by the listing
// and count queries.
func buildTransactionFilter(filter portsrepo.ListTransactionsFilter) ([]string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}

	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Status != nil {
		conditions = append(conditions, "t.status = "+arg(string(*filter.Status)))
	} else if !filter.IncludeDeleted {
		conditions = append(conditions, "t.status <> 'DELETED'")
	}
	if filter.BranchCode != "" {
		conditions = append(conditions, "b.branch_code = "+arg(filter.BranchCode))
	}
	if filter.Type != nil {
		conditions = append(conditions, "t.transaction_type = "+arg(string(*filter.Type)))
	}
	if filter.RecordedBy != "" {
		// Clients send either a recorder name, an employee code, or the
		// picker's combined "Name (CODE)" label.
		needle := filter.RecordedBy
		if i := strings.LastIndex(needle, "("); i > 0 && strings.HasSuffix(needle, ")") {
			needle = strings.TrimSpace(needle[:i])
		}
		p := arg("%" + needle + "%")
		conditions = append(conditions, "(ru.name ILIKE "+p+" OR ru.employee_code ILIKE "+p+")")
	}
	if filter.CreatedDate != nil {
		dayStart := time.Date(filter.CreatedDate.Year(), filter.CreatedDate.Month(), filter.CreatedDate.Day(), 0, 0, 0, 0, time.UTC)
		conditions = append(conditions, "t.created_at >= "+arg(dayStart))
		conditions = append(conditions, "t.created_at < "+arg(dayStart.AddDate(0, 0, 1)))
	}
	if filter.Search != "" {
		// Text search goes through the fts column; a purely numeric query
		// additionally matches the amount exactly, separators stripped.
		ftsCond := "t.fts @@ plainto_tsquery('simple', " + arg(filter.Search) + ")"
		numeric := strings.NewReplacer(",", "", ".", "", " ", "").Replace(filter.Search)
		if amount, err := strconv.ParseInt(numeric, 10, 64); err == nil && numeric != "" {
			conditions = append(conditions, "("+ftsCond+" OR t.amount = "+arg(amount)+")")
		} else {
			conditions = append(conditions, ftsCond)
		}
	}
	return conditions, args
}

// buildListQuery assembles the page query. Under the default newest-first
// ordering a keyset token is honored; any explicit sort falls back to plain
// offset paging because a (created_at, id) cursor cannot seek into an
// arbitrary ordering. Returns the query, its args, the page limit and
// whether the default ordering (the only one that emits tokens) is in
// effect. One extra row beyond the limit is fetched to detect a next page.
func buildListQuery(filter portsrepo.ListTransactionsFilter) (string, []interface{}, int, bool, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	conditions, args := buildTransactionFilter(filter)

	sortCol, ok := sortColumns[filter.SortBy]
	if filter.SortBy != "" && !ok {
		return "", nil, 0, false, apperrors.NewAppError(400, "unknown sort key "+filter.SortBy, apperrors.ErrValidation)
	}
	defaultOrder := filter.SortBy == "" || (filter.SortBy == "createdAt" && filter.SortDesc)

	var orderBy string
	if defaultOrder {
		orderBy = "ORDER BY t.created_at DESC, t.id DESC"
	} else {
		direction := "ASC"
		if filter.SortDesc {
			direction = "DESC"
		}
		orderBy = fmt.Sprintf("ORDER BY %s %s, t.id DESC", sortCol, direction)
	}

	usingKeyset := false
	if defaultOrder && filter.NextToken != nil && *filter.NextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*filter.NextToken)
		if decodeErr != nil {
			return "", nil, 0, false, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt, lastID)
		conditions = append(conditions, fmt.Sprintf("(t.created_at, t.id) < ($%d, $%d)", len(args)-1, len(args)))
		usingKeyset = true
	}

	query := transactionSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " " + orderBy

	args = append(args, fetchLimit)
	query += " LIMIT $" + strconv.Itoa(len(args))
	if !usingKeyset {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		args = append(args, (page-1)*limit)
		query += " OFFSET $" + strconv.Itoa(len(args))
	}
	query += ";"
	return query, args, limit, defaultOrder, nil
}

// ListTransactions runs the filtered, sorted, paginated listing.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.ShiftTransaction, *string, error) {
	query, args, limit, defaultOrder, err := buildListQuery(filter)
	if err != nil {
		return nil, nil, err
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	results := make([]models.ShiftTransaction, 0, limit+1)
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var nextToken *string
	if len(results) > limit {
		results = results[:limit]
		if defaultOrder {
			last := results[len(results)-1]
			token := pagination.EncodeToken(last.CreatedAt, last.ID)
			nextToken = &token
		}
	}
	return mapping.ToDomainTransactionSlice(results), nextToken, nil
}

// CountTransactions runs the unsorted total count over the same filter set,
// deliberately decoupled from the page query.
func (r *PgxTransactionRepository) CountTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) (int64, error) {
	conditions, args := buildTransactionFilter(filter)
	query := `
		SELECT COUNT(*)
		FROM shift_transactions t
		JOIN branches b ON t.branch_id = b.id
		JOIN users ru ON t.recorder_id = ru.id
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += ";"

	var count int64
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count transactions", err)
	}
	return count, nil
}
