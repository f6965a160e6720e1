// Package session owns the authenticated identity: who is logged in, with
// which role, under which bearer token. It persists to the local snapshot
// store under the same keys the browser app used ("user", "authToken") and
// installs the credential on the REST client.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mesa-pos/terminal/internal/api"
	"github.com/mesa-pos/terminal/internal/authz"
	"github.com/mesa-pos/terminal/internal/localstore"
)

const (
	keyUser  = "user"
	keyToken = "authToken"
)

// AuthError signals rejected credentials or an unusable login response.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string { return "authentication failed: " + e.Reason }

// Session is the current identity.
type Session struct {
	Username string     `json:"username"`
	Role     authz.Role `json:"role"`
	Token    string     `json:"-"`
}

// Store is the session state container.
type Store struct {
	client  *api.Client
	storage localstore.Store

	mu        sync.Mutex
	current   *Session
	onExpired func()
}

// NewStore wires the container to the REST client and snapshot store, and
// registers the forced-logout side effect for 401 responses.
func NewStore(client *api.Client, storage localstore.Store) *Store {
	s := &Store{client: client, storage: storage}
	client.OnUnauthorized(s.ForceLogout)
	return s
}

// OnExpired registers the navigation hook invoked on forced logout.
func (s *Store) OnExpired(fn func()) {
	s.mu.Lock()
	s.onExpired = fn
	s.mu.Unlock()
}

// Current returns the active session, or nil when unauthenticated.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Login authenticates against the backend. On success the role is normalized
// (ROLE_ prefix stripped, unknown roles degraded to least privilege), the
// session is persisted, and the credential is attached to the REST client.
func (s *Store) Login(ctx context.Context, username, password string) (*Session, error) {
	resp, err := s.client.Auth().Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		if api.IsAuthError(err) {
			return nil, &AuthError{Reason: "invalid credentials"}
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if resp.Token == "" {
		return nil, &AuthError{Reason: "login response carried no token"}
	}

	sess := &Session{
		Username: username,
		Role:     authz.ParseRole(resp.Role),
		Token:    resp.Token,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.persist(sess); err != nil {
		return nil, err
	}
	s.current = sess
	s.client.SetToken(sess.Token)
	return sess, nil
}

// Logout clears the persisted and in-memory session and detaches the
// credential from the REST client.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// ForceLogout is the global side effect of an authentication failure on any
// call. Idempotent; fires the expired hook only when a session was actually
// cleared, so overlapping 401s navigate to login once.
func (s *Store) ForceLogout() {
	s.mu.Lock()
	hadSession := s.current != nil
	s.clearLocked()
	hook := s.onExpired
	s.mu.Unlock()

	if hadSession && hook != nil {
		hook()
	}
}

// Restore reinstates a persisted session at startup. Malformed snapshots and
// expired tokens are discarded, leaving the store unauthenticated. Callers
// must wait for Restore before rendering any protected surface.
func (s *Store) Restore() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, ok := s.storage.Get(keyToken)
	if !ok || token == "" {
		s.clearLocked()
		return nil, nil
	}
	raw, ok := s.storage.Get(keyUser)
	if !ok {
		s.clearLocked()
		return nil, nil
	}

	var snap struct {
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	if err := json.Unmarshal([]byte(raw), &snap); err != nil || snap.Username == "" {
		s.clearLocked()
		return nil, errors.New("discarding malformed session snapshot")
	}

	if tokenExpired(token) {
		s.clearLocked()
		return nil, nil
	}

	sess := &Session{
		Username: snap.Username,
		Role:     authz.ParseRole(snap.Role),
		Token:    token,
	}
	s.current = sess
	s.client.SetToken(token)
	return sess, nil
}

// tokenExpired inspects the exp claim without verifying the signature; the
// client never holds the signing secret. An unparseable token is treated as
// expired since the backend would reject it anyway.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

func (s *Store) persist(sess *Session) error {
	b, err := json.Marshal(map[string]string{
		"username": sess.Username,
		"role":     sess.Role.String(),
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := s.storage.Set(keyUser, string(b)); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := s.storage.Set(keyToken, sess.Token); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func (s *Store) clearLocked() {
	s.current = nil
	s.storage.Delete(keyUser)
	s.storage.Delete(keyToken)
	s.client.ClearToken()
}
