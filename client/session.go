// Package client implements the session manager used by front-end and
// CLI consumers of the gateway. A Session owns the locally held bearer
// token and the identity view decoded from it, persists both across
// restarts, and exposes Login, Logout, and Restore as its only mutation
// points.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/upb/auth-gateway/token"
)

// State is the session lifecycle position. A new Session starts
// Uninitialized; Restore moves it through Restoring into one of the two
// terminal states.
type State int

const (
	StateUninitialized State = iota
	StateRestoring
	StateAuthenticated
	StateUnauthenticated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	case StateUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// LoginResult is what Login returns for every outcome. Failures carry a
// short user-facing message instead of an error so callers can render
// it without branching on failure kind.
type LoginResult struct {
	Success bool
	Message string
}

const (
	networkFailureMessage = "Unable to reach the authentication service"
	staleLoginMessage     = "Login no longer applies"
)

// loginResponse mirrors the login endpoint's response body.
type loginResponse struct {
	Success bool     `json:"success"`
	Token   string   `json:"token"`
	Roles   []string `json:"roles"`
	Message string   `json:"message"`
}

// Session holds the client-side authentication state. All fields behind
// mu are replaced wholesale by Login, Logout, and Restore rather than
// partially mutated, so readers never observe a torn state.
type Session struct {
	baseURL    string
	httpClient *http.Client
	storage    Storage
	logger     *zap.Logger

	mu       sync.Mutex
	state    State
	token    string
	identity token.UnverifiedClaims
	roles    []string

	// generation increments on every Logout or Restore. A Login
	// snapshot that no longer matches it is stale and its response is
	// discarded.
	generation uint64
}

// NewSession creates a session pointed at the gateway's base URL. The
// session starts Uninitialized; call Restore before reading state.
func NewSession(baseURL string, storage Storage, httpClient *http.Client, logger *zap.Logger) *Session {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Session{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		storage:    storage,
		logger:     logger,
		state:      StateUninitialized,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Token returns the currently held bearer token, or "" when
// unauthenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Identity returns the identity view decoded from the held token. The
// view is display-only and may be partially empty for tokens that could
// not be decoded.
func (s *Session) Identity() token.UnverifiedClaims {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity
}

// Roles returns the role names held by the session.
func (s *Session) Roles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	roles := make([]string, len(s.roles))
	copy(roles, s.roles)
	return roles
}

// Restore loads any persisted token and moves the session to a terminal
// state. The restore is optimistic: presence of the token key alone
// yields Authenticated, with no signature or expiry check. A stale
// token is only discovered when a protected request is rejected.
func (s *Session) Restore() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateRestoring
	s.generation++

	raw, ok := s.storage.Get(storageTokenKey)
	if !ok || raw == "" {
		s.clearLocked()
		return
	}

	s.token = raw
	s.state = StateAuthenticated
	s.applyIdentityLocked(raw)
}

// Login verifies credentials against the backend and, on success,
// persists the returned token and adopts its decoded identity. Every
// outcome is reported through LoginResult; Login never returns an
// error. A response that arrives after the session has moved on (for
// example a logout mid-flight) is discarded.
func (s *Session) Login(ctx context.Context, email, password string) LoginResult {
	s.mu.Lock()
	snapshot := s.generation
	s.mu.Unlock()

	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return LoginResult{Success: false, Message: networkFailureMessage}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		s.baseURL+"/api/auth/login", bytes.NewReader(body))
	if err != nil {
		return LoginResult{Success: false, Message: networkFailureMessage}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Warn("login request failed", zap.Error(err))
		return LoginResult{Success: false, Message: networkFailureMessage}
	}
	defer resp.Body.Close()

	var parsed loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		s.logger.Warn("login response unreadable", zap.Error(err))
		return LoginResult{Success: false, Message: networkFailureMessage}
	}

	if !parsed.Success || parsed.Token == "" {
		message := parsed.Message
		if message == "" {
			message = "Invalid credentials"
		}
		return LoginResult{Success: false, Message: message}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != snapshot {
		s.logger.Info("discarding stale login response")
		return LoginResult{Success: false, Message: staleLoginMessage}
	}

	s.token = parsed.Token
	s.roles = parsed.Roles
	s.state = StateAuthenticated
	s.applyIdentityLocked(parsed.Token)

	s.storage.Set(storageTokenKey, parsed.Token)
	if encoded, err := json.Marshal(parsed.Roles); err == nil {
		s.storage.Set(storageRolesKey, string(encoded))
	}

	return LoginResult{Success: true}
}

// Logout clears the persisted token and identity view unconditionally
// and moves to Unauthenticated. No backend call is made; the token
// stays valid server-side until its natural expiry.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.clearLocked()
}

// Invalidate drops the session after a protected request was rejected.
// It behaves like Logout and exists so transport-layer callers can name
// the transition they mean.
func (s *Session) Invalidate() {
	s.logger.Info("session invalidated by rejected request")
	s.Logout()
}

// Do sends req with the session's bearer token attached. A 401 response
// invalidates the session before the response is returned, so callers
// observe the Unauthenticated transition the next time they look.
func (s *Session) Do(req *http.Request) (*http.Response, error) {
	if raw := s.Token(); raw != "" {
		req.Header.Set("Authorization", "Bearer "+raw)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		s.Invalidate()
	}
	return resp, nil
}

// applyIdentityLocked decodes the identity view from raw. Decode
// failures leave the identity empty; the session stays in whatever
// state the caller set, and the role list falls back to the persisted
// copy.
func (s *Session) applyIdentityLocked(raw string) {
	decoded, err := token.DecodeUnverified(raw)
	if err != nil {
		s.logger.Warn("stored token not decodable, keeping session with empty identity")
		s.identity = token.UnverifiedClaims{}
		s.roles = s.persistedRoles()
		return
	}
	s.identity = *decoded
	if len(decoded.Roles) > 0 {
		s.roles = decoded.Roles
	} else {
		s.roles = s.persistedRoles()
	}
}

// persistedRoles reads the role list stored alongside the token.
func (s *Session) persistedRoles() []string {
	encoded, ok := s.storage.Get(storageRolesKey)
	if !ok {
		return nil
	}
	var roles []string
	if err := json.Unmarshal([]byte(encoded), &roles); err != nil {
		return nil
	}
	return roles
}

func (s *Session) clearLocked() {
	s.token = ""
	s.identity = token.UnverifiedClaims{}
	s.roles = nil
	s.state = StateUnauthenticated
	s.storage.Delete(storageTokenKey)
	s.storage.Delete(storageRolesKey)
}
