package members

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"CoopSocietyPortal/api"
	"CoopSocietyPortal/api/auth"
	"CoopSocietyPortal/api/constants"
)

type MemberRequest struct {
	RegNo       string `json:"reg_no"`
	StaffNo     string `json:"staff_no"`
	FullName    string `json:"full_name"`
	Department  string `json:"department"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
	UserID      string `json:"user_id"`
}

type Member struct {
	RegNo       string    `json:"reg_no"`
	StaffNo     string    `json:"staff_no"`
	FullName    string    `json:"full_name"`
	Department  *string   `json:"department"`
	PhoneNumber *string   `json:"phone_number"`
	Email       *string   `json:"email"`
	Status      string    `json:"status"`
	CreatedBy   *string   `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func sessionName(userID string) string {
	for _, s := range auth.GetActiveSessions() {
		if s.UserID == userID {
			return s.Name
		}
	}
	return ""
}

// CreateMember registers a new society member.
func CreateMember(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MemberRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if req.UserID == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrMissingUserID)
			return
		}
		createdBy := sessionName(req.UserID)
		if createdBy == "" {
			api.RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
			return
		}
		if req.RegNo == "" || req.StaffNo == "" || req.FullName == "" {
			api.RespondWithError(w, http.StatusBadRequest, "Missing required member details")
			return
		}

		var regNo string
		err := db.QueryRow(`
			INSERT INTO members (reg_no, staff_no, full_name, department, phone_number, email, status, created_by)
			VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8)
			RETURNING reg_no
		`, req.RegNo, req.StaffNo, req.FullName, req.Department, req.PhoneNumber, req.Email,
			constants.MemberActive, createdBy).Scan(&regNo)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrMemberCreateFailed)
			return
		}
		api.RespondWithPayload(w, http.StatusCreated, map[string]interface{}{"reg_no": regNo})
	}
}

// GetAllMembers lists the member register.
func GetAllMembers(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.Query(`
			SELECT reg_no, staff_no, full_name, department, phone_number, email, status, created_by, created_at
			FROM members
			ORDER BY full_name
		`)
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		defer rows.Close()

		results := make([]Member, 0)
		for rows.Next() {
			var m Member
			if err := rows.Scan(&m.RegNo, &m.StaffNo, &m.FullName, &m.Department,
				&m.PhoneNumber, &m.Email, &m.Status, &m.CreatedBy, &m.CreatedAt); err != nil {
				api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
				return
			}
			results = append(results, m)
		}
		api.RespondWithPayload(w, http.StatusOK, map[string]interface{}{"rows": results})
	}
}

// GetMember fetches one member by registration number.
func GetMember(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			RegNo string `json:"reg_no"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RegNo == "" {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrMemberRegNoRequired)
			return
		}
		var m Member
		err := db.QueryRow(`
			SELECT reg_no, staff_no, full_name, department, phone_number, email, status, created_by, created_at
			FROM members
			WHERE reg_no = $1
		`, req.RegNo).Scan(&m.RegNo, &m.StaffNo, &m.FullName, &m.Department,
			&m.PhoneNumber, &m.Email, &m.Status, &m.CreatedBy, &m.CreatedAt)
		if err == sql.ErrNoRows {
			api.RespondWithError(w, http.StatusNotFound, constants.ErrMemberNotFound)
			return
		}
		if err != nil {
			api.RespondWithError(w, http.StatusInternalServerError, constants.ErrQueryFailed)
			return
		}
		api.RespondWithPayload(w, http.StatusOK, map[string]interface{}{"member": m})
	}
}
