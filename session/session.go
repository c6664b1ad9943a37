// Package session owns the authentication state of each user: anonymous
// until a login or registration succeeds, anonymous again after logout.
// Identity checks are mocked against a single demo credential pair; invalid
// credentials are a normal false outcome, never an error.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"vitrina/globals"
	"vitrina/middleware"
	"vitrina/models"
	"vitrina/persist"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrBusy is returned while a login or registration for the same email is
// already in flight, to suppress duplicate submissions.
var ErrBusy = errors.New("authentication already in progress")

const (
	demoEmail    = "demo@example.com"
	demoPassword = "password"
	tokenTTL     = 12 * time.Hour
)

// The demo credential is kept as a bcrypt hash so the verification path
// matches a real one.
var demoHash, _ = bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.MinCost)

// Result is the outcome of a login or registration. OK false means the
// credentials were rejected; the session stays anonymous.
type Result struct {
	OK    bool         `json:"ok"`
	Token string       `json:"token,omitempty"`
	User  *models.User `json:"user,omitempty"`
}

// Store owns per-user sessions. Constructed with its persistence slots and
// the artificial delay injected, so tests run it with zero delay and an
// in-memory slot store.
type Store struct {
	mu       sync.Mutex
	sessions map[string]models.Session
	// busy tracks in-flight submissions per email so a double-click cannot
	// start a second attempt, without unrelated users blocking each other.
	busy map[string]bool

	slots persist.Slots
	delay time.Duration
}

func NewStore(slots persist.Slots, delay time.Duration) *Store {
	return &Store{
		sessions: make(map[string]models.Session),
		busy:     make(map[string]bool),
		slots:    slots,
		delay:    delay,
	}
}

// Login authenticates the demo credential pair. Any other input resolves to
// an OK-false result without error. Returns ErrBusy while another submission
// for the same email is still in flight.
func (s *Store) Login(ctx context.Context, email, password string) (Result, error) {
	if !s.begin(email) {
		return Result{}, ErrBusy
	}
	defer s.end(email)

	if err := s.simulateLatency(ctx); err != nil {
		return Result{}, err
	}

	if email != demoEmail || bcrypt.CompareHashAndPassword(demoHash, []byte(password)) != nil {
		return Result{OK: false}, nil
	}

	user := models.User{
		UserID: "1",
		Name:   "Demo User",
		Email:  email,
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=demo",
	}
	token, err := s.mintToken(user)
	if err != nil {
		return Result{}, err
	}

	s.saveSession(ctx, user)
	return Result{OK: true, Token: token, User: &user}, nil
}

// Register always succeeds for well-formed input, synthesizing a fresh
// identity and authenticating immediately. There is no account store, so no
// uniqueness check either.
func (s *Store) Register(ctx context.Context, name, email, password string) (Result, error) {
	if fields := ValidateRegistration(name, email, password); len(fields) > 0 {
		return Result{}, &ValidationError{Fields: fields}
	}

	if !s.begin(email) {
		return Result{}, ErrBusy
	}
	defer s.end(email)

	if err := s.simulateLatency(ctx); err != nil {
		return Result{}, err
	}

	user := models.User{
		UserID: uuid.NewString(),
		Name:   name,
		Email:  email,
		Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=" + email,
	}
	token, err := s.mintToken(user)
	if err != nil {
		return Result{}, err
	}

	s.saveSession(ctx, user)
	return Result{OK: true, Token: token, User: &user}, nil
}

// Logout clears the user's identity and authentication flag unconditionally.
// It is synchronous and cannot fail; persistence cleanup is best effort.
func (s *Store) Logout(userID string) {
	s.mu.Lock()
	delete(s.sessions, userID)
	s.mu.Unlock()

	if err := s.slots.Del(globals.Ctx, persist.SessionSlot(userID)); err != nil {
		log.Printf("Logout: failed to clear session slot for %s: %v", userID, err)
	}
}

// Session returns the authentication context for a user, falling back to the
// persisted slot when the in-memory state is gone (fresh process, restored
// token).
func (s *Store) Session(ctx context.Context, userID string) models.Session {
	s.mu.Lock()
	sess, ok := s.sessions[userID]
	s.mu.Unlock()
	if ok {
		return sess
	}

	raw, err := s.slots.Get(ctx, persist.SessionSlot(userID))
	if err != nil {
		return models.Session{}
	}
	if err := json.Unmarshal(raw, &sess); err != nil {
		log.Printf("Session: corrupt slot for %s: %v", userID, err)
		return models.Session{}
	}
	sess.Authenticated = sess.User != nil

	s.mu.Lock()
	s.sessions[userID] = sess
	s.mu.Unlock()
	return sess
}

func (s *Store) saveSession(ctx context.Context, user models.User) {
	sess := models.Session{User: &user, Authenticated: true}

	s.mu.Lock()
	s.sessions[user.UserID] = sess
	s.mu.Unlock()

	raw, err := json.Marshal(sess)
	if err != nil {
		log.Printf("saveSession: marshal failed for %s: %v", user.UserID, err)
		return
	}
	if err := s.slots.Set(ctx, persist.SessionSlot(user.UserID), raw); err != nil {
		log.Printf("saveSession: slot write failed for %s: %v", user.UserID, err)
	}
}

func (s *Store) mintToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		Name:   user.Name,
		Email:  user.Email,
		UserID: user.UserID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(globals.JwtSecret)
}

func (s *Store) begin(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[email] {
		return false
	}
	s.busy[email] = true
	return true
}

func (s *Store) end(email string) {
	s.mu.Lock()
	delete(s.busy, email)
	s.mu.Unlock()
}

func (s *Store) simulateLatency(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}
	select {
	case <-time.After(s.delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ValidationError carries field-level messages for malformed input. It is
// recovered locally by the handler, never propagated as a fault.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "invalid input"
}

// ValidateRegistration checks registration input for well-formedness.
func ValidateRegistration(name, email, password string) map[string]string {
	fields := make(map[string]string)
	if strings.TrimSpace(name) == "" {
		fields["name"] = "Name is required"
	}
	if !strings.Contains(email, "@") {
		fields["email"] = "A valid email is required"
	}
	if password == "" {
		fields["password"] = "Password is required"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
