package batch

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PendingRows returns every staged row whose batch is still awaiting a
// decision, newest batch first and in file order within a batch. Rows carry
// the batch status so the client can group by batch_id and mark a batch
// approvable exactly when its precomputed status is Validated; no validation
// is re-run here.
func PendingRows(ctx context.Context, pool *pgxpool.Pool, kind *RecordKind) ([]map[string]interface{}, error) {
	query := fmt.Sprintf(`
		SELECT s.batch_id, s.row_num, s.%s, s.validation_status, s.validation_errors,
			b.file_name, b.uploaded_by, b.uploaded_at,
			b.total_records, b.valid_records, b.invalid_records, b.status AS batch_status
		FROM %s s
		JOIN upload_batches b ON b.batch_id = s.batch_id
		WHERE b.status IN ('Validated', 'PendingValidation')
		ORDER BY b.uploaded_at DESC, s.row_num
	`, strings.Join(kind.Columns(), ", s."), kind.StagingTable)

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query pending %s rows: %w", kind.Name, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	results := make([]map[string]interface{}, 0)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("scan pending %s row: %w", kind.Name, err)
		}
		rowMap := make(map[string]interface{}, len(fields))
		for i, fd := range fields {
			rowMap[string(fd.Name)] = vals[i]
		}
		results = append(results, rowMap)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return results, nil
}
