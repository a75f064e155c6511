package auth

import (
	"encoding/json"
	"net/http"

	"CoopSocietyPortal/api"
)

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	return r.RemoteAddr
}

// LoginHandler handles POST /auth/login
func LoginHandler(svc *AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		session, err := svc.Login(req.Username, req.Password, clientIP(r))
		if err != nil {
			api.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(session)
	}
}

// LogoutHandler handles POST /auth/logout
func LogoutHandler(svc *AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string `json:"session_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.RespondWithError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := svc.Logout(req.SessionID); err != nil {
			api.RespondWithError(w, http.StatusUnauthorized, err.Error())
			return
		}
		api.RespondWithPayload(w, http.StatusOK, map[string]interface{}{"message": "logout successful"})
	}
}
