package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/hotelnest/shift_ledger_app/internal/apperrors"
	"github.com/hotelnest/shift_ledger_app/internal/core/domain"
	portsrepo "github.com/hotelnest/shift_ledger_app/internal/core/ports/repositories"
	"github.com/hotelnest/shift_ledger_app/internal/models"
	"github.com/hotelnest/shift_ledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCloseLogRepository struct {
	BaseRepository
}

// newPgxCloseLogRepository creates a new repository for settlement records.
func newPgxCloseLogRepository(pool *pgxpool.Pool) portsrepo.CloseLogRepositoryFacade {
	return &PgxCloseLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCloseLogRepository implements portsrepo.CloseLogRepositoryFacade
var _ portsrepo.CloseLogRepositoryFacade = (*PgxCloseLogRepository)(nil)

const closeLogSelect = `
	SELECT cl.id, cl.branch_id, cl.closer_id, cl.closed_at, cl.reported_revenue,
	       cl.online_revenue, cl.branch_revenue, cl.transaction_ids,
	       b.branch_code, u.name
	FROM shift_close_logs cl
	JOIN branches b ON cl.branch_id = b.id
	JOIN users u ON cl.closer_id = u.id
`

func scanCloseLogRow(row pgx.Row) (models.CloseLog, error) {
	var m models.CloseLog
	err := row.Scan(
		&m.ID,
		&m.BranchID,
		&m.CloserID,
		&m.ClosedAt,
		&m.ReportedRevenue,
		&m.OnlineRevenue,
		&m.BranchRevenue,
		&m.TransactionIDs,
		&m.BranchCode,
		&m.CloserName,
	)
	return m, err
}

// CloseBranch seals the branch's pending set into a new settlement record.
// The pending rows are locked before aggregation so a transaction recorded
// mid-close lands in the next shift, and the log insert rides in the same
// storage transaction as the status flips.
func (r *PgxCloseLogRepository) CloseBranch(ctx context.Context, branchID, closerID, reportedRevenue int64, closedAt time.Time) (*domain.CloseLog, []domain.ShiftTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	rows, err := tx.Query(ctx, `
		SELECT id, transaction_type, amount
		FROM shift_transactions
		WHERE branch_id = $1 AND status = 'PENDING'
		ORDER BY created_at, id
		FOR UPDATE;
	`, branchID)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to lock pending transactions", err)
	}

	var members []domain.ShiftTransaction
	var memberIDs []int64
	for rows.Next() {
		var id, amount int64
		var txnType string
		if err := rows.Scan(&id, &txnType, &amount); err != nil {
			rows.Close()
			return nil, nil, apperrors.NewAppError(500, "failed to scan pending transaction", err)
		}
		members = append(members, domain.ShiftTransaction{ID: id, Type: domain.TransactionType(txnType), Amount: amount})
		memberIDs = append(memberIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating pending transactions", err)
	}

	if len(memberIDs) > 0 {
		_, err = tx.Exec(ctx, `
			UPDATE shift_transactions
			SET status = 'CLOSED', closer_id = $2, closed_at = $3
			WHERE id = ANY($1);
		`, memberIDs, closerID, closedAt)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to seal pending transactions", err)
		}
	}

	onlineRevenue, branchRevenue := domain.ComputeRevenue(members)
	if memberIDs == nil {
		memberIDs = []int64{}
	}

	var logID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO shift_close_logs (branch_id, closer_id, closed_at, reported_revenue, online_revenue, branch_revenue, transaction_ids)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id;
	`, branchID, closerID, closedAt, reportedRevenue, onlineRevenue, branchRevenue, memberIDs).Scan(&logID)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to insert close log", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}

	log, err := r.FindCloseLogByID(ctx, logID)
	if err != nil {
		return nil, nil, err
	}
	sealed, err := r.findMembers(ctx, memberIDs)
	if err != nil {
		return nil, nil, err
	}
	return log, sealed, nil
}

// FindCloseLogByID retrieves one settlement record with its display joins.
func (r *PgxCloseLogRepository) FindCloseLogByID(ctx context.Context, logID int64) (*domain.CloseLog, error) {
	m, err := scanCloseLogRow(r.Pool.QueryRow(ctx, closeLogSelect+` WHERE cl.id = $1;`, logID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find close log "+strconv.FormatInt(logID, 10), err)
	}
	log := mapping.ToDomainCloseLog(m)
	return &log, nil
}

// UndoClose reverts every member of a settlement back to PENDING and removes
// the record, all in one storage transaction.
func (r *PgxCloseLogRepository) UndoClose(ctx context.Context, logID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	memberIDs, err := lockCloseLog(ctx, tx, logID)
	if err != nil {
		return err
	}
	if len(memberIDs) > 0 {
		_, err = tx.Exec(ctx, `
			UPDATE shift_transactions
			SET status = 'PENDING', closer_id = NULL, closed_at = NULL
			WHERE id = ANY($1) AND status = 'CLOSED';
		`, memberIDs)
		if err != nil {
			return apperrors.NewAppError(500, "failed to revert settled transactions", err)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM shift_close_logs WHERE id = $1;`, logID); err != nil {
		return apperrors.NewAppError(500, "failed to delete close log", err)
	}
	return r.Commit(ctx, tx)
}

// RevertMember returns one member to PENDING, shrinks the membership and
// recomputes the aggregates from what remains. An emptied settlement is
// deleted and nil is returned.
func (r *PgxCloseLogRepository) RevertMember(ctx context.Context, logID, transactionID int64) (*domain.CloseLog, error) {
	return r.repairMembership(ctx, logID, transactionID, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			UPDATE shift_transactions
			SET status = 'PENDING', closer_id = NULL, closed_at = NULL
			WHERE id = $1 AND status = 'CLOSED';
		`, transactionID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to revert transaction "+strconv.FormatInt(transactionID, 10), err)
		}
		return nil
	})
}

// PurgeMember permanently erases one member instead of reverting it, with
// the same membership repair.
func (r *PgxCloseLogRepository) PurgeMember(ctx context.Context, logID, transactionID int64) (*domain.CloseLog, error) {
	return r.repairMembership(ctx, logID, transactionID, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM shift_transactions WHERE id = $1;`, transactionID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to delete transaction "+strconv.FormatInt(transactionID, 10), err)
		}
		return nil
	})
}

// DeleteClose permanently erases the settlement record together with every
// member transaction.
func (r *PgxCloseLogRepository) DeleteClose(ctx context.Context, logID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	memberIDs, err := lockCloseLog(ctx, tx, logID)
	if err != nil {
		return err
	}
	if len(memberIDs) > 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM shift_transactions WHERE id = ANY($1);`, memberIDs); err != nil {
			return apperrors.NewAppError(500, "failed to delete settled transactions", err)
		}
	}
	if _, err := tx.Exec(ctx, `DELETE FROM shift_close_logs WHERE id = $1;`, logID); err != nil {
		return apperrors.NewAppError(500, "failed to delete close log", err)
	}
	return r.Commit(ctx, tx)
}

// stripMemberships removes a transaction id from any settlement that still
// references it, recomputing aggregates and dropping emptied records. It
// runs inside the caller's storage transaction so the mutation that made
// the id stale and the membership repair commit together.
func stripMemberships(ctx context.Context, tx pgx.Tx, transactionID int64) error {
	rows, err := tx.Query(ctx, `
		SELECT id, transaction_ids
		FROM shift_close_logs
		WHERE $1 = ANY(transaction_ids)
		FOR UPDATE;
	`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock referencing close logs", err)
	}

	type logRow struct {
		id        int64
		memberIDs []int64
	}
	var logs []logRow
	for rows.Next() {
		var lr logRow
		if err := rows.Scan(&lr.id, &lr.memberIDs); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan close log row", err)
		}
		logs = append(logs, lr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating close log rows", err)
	}

	for _, lr := range logs {
		log := domain.CloseLog{ID: lr.id, TransactionIDs: lr.memberIDs}
		remaining := log.WithoutMember(transactionID)
		if err := updateOrDropLog(ctx, tx, lr.id, remaining); err != nil {
			return err
		}
	}
	return nil
}

// repairMembership runs the shared lock / mutate / recompute sequence behind
// RevertMember and PurgeMember.
func (r *PgxCloseLogRepository) repairMembership(ctx context.Context, logID, transactionID int64, mutate func(context.Context, pgx.Tx) error) (*domain.CloseLog, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	memberIDs, err := lockCloseLog(ctx, tx, logID)
	if err != nil {
		return nil, err
	}
	log := domain.CloseLog{ID: logID, TransactionIDs: memberIDs}
	if !log.HasMember(transactionID) {
		return nil, apperrors.NewAppError(400, "transaction is not part of this close", apperrors.ErrValidation)
	}

	if err := mutate(ctx, tx); err != nil {
		return nil, err
	}

	remaining := log.WithoutMember(transactionID)
	if err := updateOrDropLog(ctx, tx, logID, remaining); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	if len(remaining) == 0 {
		return nil, nil
	}
	return r.FindCloseLogByID(ctx, logID)
}

// lockCloseLog locks a settlement row and returns its membership.
func lockCloseLog(ctx context.Context, tx pgx.Tx, logID int64) ([]int64, error) {
	var memberIDs []int64
	err := tx.QueryRow(ctx, `SELECT transaction_ids FROM shift_close_logs WHERE id = $1 FOR UPDATE;`, logID).Scan(&memberIDs)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock close log "+strconv.FormatInt(logID, 10), err)
	}
	return memberIDs, nil
}

// updateOrDropLog writes the shrunken membership back with freshly computed
// aggregates, or deletes the log when nothing remains.
func updateOrDropLog(ctx context.Context, tx pgx.Tx, logID int64, remaining []int64) error {
	if len(remaining) == 0 {
		if _, err := tx.Exec(ctx, `DELETE FROM shift_close_logs WHERE id = $1;`, logID); err != nil {
			return apperrors.NewAppError(500, "failed to delete emptied close log", err)
		}
		return nil
	}

	rows, err := tx.Query(ctx, `SELECT transaction_type, amount FROM shift_transactions WHERE id = ANY($1);`, remaining)
	if err != nil {
		return apperrors.NewAppError(500, "failed to load remaining members", err)
	}
	var members []domain.ShiftTransaction
	for rows.Next() {
		var txnType string
		var amount int64
		if err := rows.Scan(&txnType, &amount); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan member row", err)
		}
		members = append(members, domain.ShiftTransaction{Type: domain.TransactionType(txnType), Amount: amount})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating member rows", err)
	}

	onlineRevenue, branchRevenue := domain.ComputeRevenue(members)
	_, err = tx.Exec(ctx, `
		UPDATE shift_close_logs
		SET transaction_ids = $2, online_revenue = $3, branch_revenue = $4
		WHERE id = $1;
	`, logID, remaining, onlineRevenue, branchRevenue)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update close log membership", err)
	}
	return nil
}

// findMembers loads full member rows outside the storage transaction, for
// returning the sealed set to the caller.
func (r *PgxCloseLogRepository) findMembers(ctx context.Context, ids []int64) ([]domain.ShiftTransaction, error) {
	if len(ids) == 0 {
		return []domain.ShiftTransaction{}, nil
	}
	query := transactionSelect + ` WHERE t.id = ANY($1) ORDER BY t.created_at, t.id;`
	rows, err := r.Pool.Query(ctx, query, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sealed transactions", err)
	}
	defer rows.Close()

	results := []models.ShiftTransaction{}
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan sealed transaction", err)
		}
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating sealed transactions", err)
	}
	return mapping.ToDomainTransactionSlice(results), nil
}
