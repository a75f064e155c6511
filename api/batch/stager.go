package batch

import (
	"context"
	"fmt"

	"CoopSocietyPortal/api/constants"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BatchSummary is what an upload request returns: identity plus the derived
// counts and status of the freshly staged batch.
type BatchSummary struct {
	BatchID    string `json:"batch_id"`
	FileName   string `json:"file_name"`
	UploadKind string `json:"upload_kind"`
	Total      int    `json:"total"`
	Valid      int    `json:"valid"`
	Invalid    int    `json:"invalid"`
	Status     string `json:"status"`
}

// Summarize tallies row results. total is always valid+invalid.
func Summarize(results []RowResult) (total, valid, invalid int) {
	for _, r := range results {
		if r.Valid {
			valid++
		} else {
			invalid++
		}
	}
	return valid + invalid, valid, invalid
}

// DeriveStatus computes the post-staging batch status from its row counts.
// The approval gate in ApproveBatch relies on the same invalid count; the
// two must never disagree.
func DeriveStatus(invalid int) string {
	if invalid == 0 {
		return constants.BatchValidated
	}
	return constants.BatchPendingValidation
}

// StageBatch persists the batch header and every candidate row, valid and
// invalid alike, as a single all-or-nothing transaction:
//
//  1. insert the upload_batches row with status Pending and zeroed counts
//  2. bulk-copy the staged rows tagged with the new batch id, in file order
//  3. update the batch with final counts and the derived status
//
// Any failure rolls the whole batch back; the caller never observes a
// partially staged upload. Returns the generated batch id on success.
func StageBatch(ctx context.Context, pool *pgxpool.Pool, kind *RecordKind, fileName, uploadedBy string, candidates []Candidate, results []RowResult) (*BatchSummary, error) {
	if len(candidates) != len(results) {
		return nil, fmt.Errorf("stage batch: %d candidates but %d results", len(candidates), len(results))
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin staging tx: %w", err)
	}
	defer tx.Rollback(ctx)

	batchID := uuid.New().String()
	_, err = tx.Exec(ctx, `
		INSERT INTO upload_batches (
			batch_id, file_name, upload_kind, uploaded_by, uploaded_at,
			total_records, valid_records, invalid_records, status
		) VALUES ($1, $2, $3, $4, now(), 0, 0, 0, $5)
	`, batchID, fileName, kind.Name, uploadedBy, constants.BatchPending)
	if err != nil {
		return nil, fmt.Errorf("insert batch header: %w", err)
	}

	columns := append([]string{"batch_id", "row_num"}, kind.Columns()...)
	columns = append(columns, "validation_status", "validation_errors")
	copyRows := make([][]interface{}, len(candidates))
	for i, cand := range candidates {
		vals := make([]interface{}, 0, len(columns))
		vals = append(vals, batchID, cand.RowNum)
		for _, f := range kind.Fields {
			vals = append(vals, storageValue(f, cand.Cells[f.Column]))
		}
		if results[i].Valid {
			vals = append(vals, constants.RowValid, nil)
		} else {
			vals = append(vals, constants.RowInvalid, results[i].JoinedErrors())
		}
		copyRows[i] = vals
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{kind.StagingTable}, columns, pgx.CopyFromRows(copyRows)); err != nil {
		return nil, fmt.Errorf("copy staged rows: %w", err)
	}

	total, valid, invalid := Summarize(results)
	status := DeriveStatus(invalid)
	_, err = tx.Exec(ctx, `
		UPDATE upload_batches
		SET total_records = $1, valid_records = $2, invalid_records = $3, status = $4
		WHERE batch_id = $5
	`, total, valid, invalid, status, batchID)
	if err != nil {
		return nil, fmt.Errorf("finalize batch counts: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit staging tx: %w", err)
	}
	return &BatchSummary{
		BatchID:    batchID,
		FileName:   fileName,
		UploadKind: kind.Name,
		Total:      total,
		Valid:      valid,
		Invalid:    invalid,
		Status:     status,
	}, nil
}

// storageValue renders a cell for its staging column: canonical decimal or
// ISO date text when coercion succeeded, the raw cell text otherwise (kept
// verbatim so the operator can see what was wrong), NULL when absent.
func storageValue(f FieldSpec, cell Cell) interface{} {
	if !cell.Present() {
		return nil
	}
	switch f.Type {
	case FieldNumber, FieldInteger:
		if cell.Number.Valid {
			return cell.Number.Decimal.String()
		}
	case FieldDate:
		if cell.Date != nil {
			return cell.Date.Format(constants.DateFormat)
		}
	}
	return cell.Raw
}
