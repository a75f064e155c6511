package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"CoopSocietyPortal/api/constants"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// decisionGate holds the re-read batch state an approve/reject decision is
// judged against. The read happens under FOR UPDATE inside the decision
// transaction, so a concurrent decision on the same batch blocks and then
// sees the terminal status the first one committed.
type decisionGate struct {
	Status         string
	InvalidRecords int
}

// checkDecidable rejects any decision on a batch already in a terminal
// state. Double submission must surface as an error, not a silent no-op.
func checkDecidable(status string) error {
	if status == constants.BatchApproved || status == constants.BatchRejected {
		return ErrInvalidBatchState
	}
	return nil
}

// checkApprovable layers the approval-specific gate on top: a batch with any
// invalid row can never be approved as-is.
func checkApprovable(g decisionGate) error {
	if err := checkDecidable(g.Status); err != nil {
		return err
	}
	if g.InvalidRecords > 0 {
		return ErrBatchNotApprovable
	}
	return nil
}

func lockBatch(ctx context.Context, tx pgx.Tx, kind *RecordKind, batchID string) (decisionGate, error) {
	var g decisionGate
	err := tx.QueryRow(ctx, `
		SELECT status, invalid_records
		FROM upload_batches
		WHERE batch_id = $1 AND upload_kind = $2
		FOR UPDATE
	`, batchID, kind.Name).Scan(&g.Status, &g.InvalidRecords)
	if errors.Is(err, pgx.ErrNoRows) {
		return g, ErrBatchNotFound
	}
	if err != nil {
		return g, fmt.Errorf("lock batch %s: %w", batchID, err)
	}
	return g, nil
}

// ApproveBatch promotes every Valid staged row of the batch into its
// production ledger table and marks the batch Approved, all in one
// transaction. Nothing is promoted if any step fails.
func ApproveBatch(ctx context.Context, pool *pgxpool.Pool, kind *RecordKind, batchID, approvedBy string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin approval tx: %w", err)
	}
	defer tx.Rollback(ctx)

	gate, err := lockBatch(ctx, tx, kind, batchID)
	if err != nil {
		return err
	}
	if err := checkApprovable(gate); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, kind.PromoteSQL, batchID); err != nil {
		return fmt.Errorf("promote staged rows for batch %s: %w", batchID, err)
	}
	_, err = tx.Exec(ctx, `
		UPDATE upload_batches
		SET status = $1, approved_by = $2, approved_at = now()
		WHERE batch_id = $3
	`, constants.BatchApproved, approvedBy, batchID)
	if err != nil {
		return fmt.Errorf("mark batch %s approved: %w", batchID, err)
	}
	return tx.Commit(ctx)
}

// RejectBatch terminally rejects the batch with the operator's reason.
// Staged rows are left untouched for audit.
func RejectBatch(ctx context.Context, pool *pgxpool.Pool, kind *RecordKind, batchID, rejectedBy, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyRejectionReason
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin rejection tx: %w", err)
	}
	defer tx.Rollback(ctx)

	gate, err := lockBatch(ctx, tx, kind, batchID)
	if err != nil {
		return err
	}
	if err := checkDecidable(gate.Status); err != nil {
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE upload_batches
		SET status = $1, approved_by = $2, approved_at = now(), rejection_reason = $3
		WHERE batch_id = $4
	`, constants.BatchRejected, rejectedBy, strings.TrimSpace(reason), batchID)
	if err != nil {
		return fmt.Errorf("mark batch %s rejected: %w", batchID, err)
	}
	return tx.Commit(ctx)
}
