package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"CoopSocietyPortal/internal/logger"
	"CoopSocietyPortal/internal/serviceiface"
)

// UserSession is the in-memory record of a logged-in portal user. Handlers
// resolve operator identity (uploader, approver) from it.
type UserSession struct {
	SessionID     string `json:"session_id"`
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	LastLoginTime string `json:"last_login_time"`
	ClientIP      string `json:"client_ip"`
}

// AuthService verifies portal users against the database and keeps active
// sessions in memory. Credential management itself lives outside the portal;
// this service only answers "who is this request acting as".
type AuthService struct {
	db             *sql.DB
	maxUsers       int
	sessionTimeout time.Duration
	sessions       map[string]*UserSession
	lastSeen       map[string]time.Time
	mu             sync.Mutex
	stopCh         chan struct{}
}

func NewAuthService(db *sql.DB, maxUsers, sessionTimeoutMinutes int) serviceiface.Service {
	if maxUsers <= 0 {
		maxUsers = 200
	}
	if sessionTimeoutMinutes <= 0 {
		sessionTimeoutMinutes = 120
	}
	return &AuthService{
		db:             db,
		maxUsers:       maxUsers,
		sessionTimeout: time.Duration(sessionTimeoutMinutes) * time.Minute,
		sessions:       make(map[string]*UserSession),
		lastSeen:       make(map[string]time.Time),
		stopCh:         make(chan struct{}),
	}
}

func (a *AuthService) Name() string { return "auth" }

func (a *AuthService) Start() error {
	go a.sessionCleaner()
	return nil
}

func (a *AuthService) Stop() error {
	close(a.stopCh)
	return nil
}

func (a *AuthService) Login(username, password, clientIP string) (*UserSession, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id, session := range a.sessions {
		if session.Email == username {
			session.LastLoginTime = time.Now().Format(time.RFC3339)
			session.ClientIP = clientIP
			a.lastSeen[id] = time.Now()
			return session, nil
		}
	}

	if len(a.sessions) >= a.maxUsers {
		return nil, errors.New("maximum concurrent users reached")
	}

	var userID, name, email string
	var role sql.NullString
	err := a.db.QueryRow(`
		SELECT u.id, u.full_name, u.email, u.role
		FROM portal_users u
		WHERE u.email = $1 AND u.password = $2 AND u.is_active = true
	`, username, password).Scan(&userID, &name, &email, &role)
	if err != nil {
		return nil, errors.New("invalid credentials or user not found")
	}

	sessionID := generateSessionID()
	session := &UserSession{
		SessionID:     sessionID,
		UserID:        userID,
		Name:          name,
		Email:         email,
		Role:          role.String,
		LastLoginTime: time.Now().Format(time.RFC3339),
		ClientIP:      clientIP,
	}
	a.sessions[sessionID] = session
	a.lastSeen[sessionID] = time.Now()

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("user logged in: " + email)
	}
	return session, nil
}

func (a *AuthService) Logout(sessionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	session, exists := a.sessions[sessionID]
	if !exists {
		return errors.New("session not found")
	}
	delete(a.sessions, sessionID)
	delete(a.lastSeen, sessionID)

	if logger.GlobalLogger != nil {
		logger.GlobalLogger.LogAudit("user logged out: " + session.Email)
	}
	return nil
}

func (a *AuthService) GetActiveSessions() []*UserSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	sessions := make([]*UserSession, 0, len(a.sessions))
	for _, s := range a.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

func (a *AuthService) sessionCleaner() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			a.expireIdleSessions()
		}
	}
}

func (a *AuthService) expireIdleSessions() {
	a.mu.Lock()
	defer a.mu.Unlock()
	cutoff := time.Now().Add(-a.sessionTimeout)
	for id, seen := range a.lastSeen {
		if seen.Before(cutoff) {
			delete(a.sessions, id)
			delete(a.lastSeen, id)
		}
	}
}

func generateSessionID() string {
	return fmt.Sprintf("%d", time.Now().UnixNano())
}

var globalAuthService *AuthService

// SetGlobalAuthService wires the running AuthService for package-level lookup
func SetGlobalAuthService(svc *AuthService) {
	globalAuthService = svc
}

// GetActiveSessions returns active sessions from the global AuthService
func GetActiveSessions() []*UserSession {
	if globalAuthService == nil {
		return nil
	}
	return globalAuthService.GetActiveSessions()
}
