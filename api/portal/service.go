package portal

import (
	"database/sql"

	"CoopSocietyPortal/api/auth"
	"CoopSocietyPortal/internal/serviceiface"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PortalService struct {
	port    int
	db      *sql.DB
	pool    *pgxpool.Pool
	authSvc *auth.AuthService
}

func NewPortalService(cfg map[string]interface{}, db *sql.DB, pool *pgxpool.Pool, authSvc *auth.AuthService) serviceiface.Service {
	port := 8143
	if cfg != nil {
		switch v := cfg["port"].(type) {
		case int:
			port = v
		case float64:
			port = int(v)
		}
	}
	return &PortalService{port: port, db: db, pool: pool, authSvc: authSvc}
}

func (s *PortalService) Name() string { return "portal" }

func (s *PortalService) Start() error {
	go StartPortalService(s.port, s.db, s.pool, s.authSvc)
	return nil
}

func (s *PortalService) Stop() error {
	return nil
}
