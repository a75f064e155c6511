package jobs

import (
	"context"
	"fmt"
	"log"
	"time"

	"CoopSocietyPortal/internal/logger"
	"CoopSocietyPortal/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/robfig/cron/v3"
)

// CronService runs the nightly stale-batch reminder: upload batches that sat
// undecided longer than staleAfterDays are logged for the administrators.
// The job only reads; all batch mutation stays request-scoped.
type CronService struct {
	pool           *pgxpool.Pool
	schedule       string
	staleAfterDays int
	cron           *cron.Cron
}

func NewCronService(cfg map[string]interface{}, pool *pgxpool.Pool) serviceiface.Service {
	schedule := "0 2 * * *"
	staleDays := 3
	if cfg != nil {
		if s, ok := cfg["schedule"].(string); ok && s != "" {
			schedule = s
		}
		switch v := cfg["stale_after_days"].(type) {
		case int:
			if v > 0 {
				staleDays = v
			}
		case float64:
			if v > 0 {
				staleDays = int(v)
			}
		}
	}
	return &CronService{pool: pool, schedule: schedule, staleAfterDays: staleDays}
}

func (s *CronService) Name() string { return "cron" }

func (s *CronService) Start() error {
	loc, err := time.LoadLocation("Africa/Lagos")
	if err != nil {
		loc = time.UTC
	}
	s.cron = cron.New(cron.WithLocation(loc))
	if _, err := s.cron.AddFunc(s.schedule, s.remindStaleBatches); err != nil {
		return fmt.Errorf("failed to schedule stale-batch reminder: %w", err)
	}
	s.cron.Start()
	log.Println("Cron service started, stale-batch reminder scheduled at", s.schedule)
	return nil
}

func (s *CronService) Stop() error {
	if s.cron != nil {
		s.cron.Stop()
	}
	return nil
}

func (s *CronService) remindStaleBatches() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rows, err := s.pool.Query(ctx, `
		SELECT batch_id, upload_kind, file_name, uploaded_by, uploaded_at, status, invalid_records
		FROM upload_batches
		WHERE status IN ('Validated', 'PendingValidation')
		  AND uploaded_at < now() - make_interval(days => $1)
		ORDER BY uploaded_at
	`, s.staleAfterDays)
	if err != nil {
		log.Println("[ERROR] stale-batch reminder query failed:", err)
		return
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var batchID, kind, fileName, uploadedBy, status string
		var uploadedAt time.Time
		var invalid int
		if err := rows.Scan(&batchID, &kind, &fileName, &uploadedBy, &uploadedAt, &status, &invalid); err != nil {
			continue
		}
		count++
		msg := fmt.Sprintf("stale %s batch %s (%s, uploaded %s by %s, status %s, invalid=%d) awaiting decision",
			kind, batchID, fileName, uploadedAt.Format("2006-01-02"), uploadedBy, status, invalid)
		if logger.GlobalLogger != nil {
			logger.GlobalLogger.LogAudit(msg)
		} else {
			log.Println("[AUDIT]", msg)
		}
	}
	if count > 0 {
		log.Printf("[INFO] stale-batch reminder flagged %d batches", count)
	}
}
