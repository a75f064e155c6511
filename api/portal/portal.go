package portal

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"CoopSocietyPortal/api/auth"
	"CoopSocietyPortal/api/batch"
	"CoopSocietyPortal/api/members"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRouter wires every portal endpoint. The batch routes are registered
// once per record kind off the shared kind descriptors.
func NewRouter(db *sql.DB, pool *pgxpool.Pool, authSvc *auth.AuthService) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/auth/login", auth.LoginHandler(authSvc)).Methods("POST")
	router.HandleFunc("/auth/logout", auth.LogoutHandler(authSvc)).Methods("POST")

	for _, kind := range []*batch.RecordKind{&batch.LoanKind, &batch.ContributionKind, &batch.TransactionKind} {
		prefix := "/batch/" + kind.Name
		router.HandleFunc(prefix+"/upload", batch.UploadBatchHandler(pool, kind)).Methods("POST")
		router.HandleFunc(prefix+"/pending", batch.PendingBatchesHandler(pool, kind)).Methods("GET", "POST")
		router.HandleFunc(prefix+"/approve", batch.ApproveBatchHandler(pool, kind)).Methods("POST")
		router.HandleFunc(prefix+"/reject", batch.RejectBatchHandler(pool, kind)).Methods("POST")
	}

	router.HandleFunc("/members", members.GetAllMembers(db)).Methods("GET")
	router.HandleFunc("/members/create", members.CreateMember(db)).Methods("POST")
	router.HandleFunc("/members/get", members.GetMember(db)).Methods("POST")

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Portal service is healthy"))
	})

	return router
}

// StartPortalService runs the HTTP server; it blocks, so the service wrapper
// launches it in a goroutine.
func StartPortalService(port int, db *sql.DB, pool *pgxpool.Pool, authSvc *auth.AuthService) {
	router := NewRouter(db, pool, authSvc)
	addr := fmt.Sprintf(":%d", port)
	log.Println("Portal service started on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Portal service failed: %v", err)
	}
}
