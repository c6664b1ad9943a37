package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"vitrina/persist"
)

func newTestStore(delay time.Duration) *Store {
	return NewStore(persist.NewMemorySlots(), delay)
}

func TestLoginWithDemoCredentials(t *testing.T) {
	s := newTestStore(0)

	result, err := s.Login(context.Background(), "demo@example.com", "password")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if !result.OK {
		t.Fatal("expected demo credentials to succeed")
	}
	if result.Token == "" {
		t.Fatal("expected a token on success")
	}
	if result.User == nil || result.User.Email != "demo@example.com" {
		t.Fatalf("unexpected user: %+v", result.User)
	}

	sess := s.Session(context.Background(), result.User.UserID)
	if !sess.Authenticated || sess.User == nil {
		t.Fatalf("expected authenticated session, got %+v", sess)
	}
}

func TestLoginWithWrongCredentials(t *testing.T) {
	s := newTestStore(0)

	result, err := s.Login(context.Background(), "x@x.com", "wrong")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.OK {
		t.Fatal("expected wrong credentials to fail")
	}
	if result.Token != "" || result.User != nil {
		t.Fatalf("failed login must not carry identity: %+v", result)
	}
}

func TestRegisterAuthenticatesImmediately(t *testing.T) {
	s := newTestStore(0)

	result, err := s.Register(context.Background(), "New User", "new@example.com", "hunter2")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !result.OK || result.User == nil {
		t.Fatalf("expected registration to succeed, got %+v", result)
	}

	sess := s.Session(context.Background(), result.User.UserID)
	if !sess.Authenticated {
		t.Fatal("expected session authenticated after registration")
	}
}

func TestRegisterValidatesInput(t *testing.T) {
	s := newTestStore(0)

	_, err := s.Register(context.Background(), "", "not-an-email", "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"name", "email", "password"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("expected message for %s, got %+v", field, verr.Fields)
		}
	}
}

func TestLogoutAlwaysClearsSession(t *testing.T) {
	s := newTestStore(0)

	result, err := s.Login(context.Background(), "demo@example.com", "password")
	if err != nil || !result.OK {
		t.Fatalf("Login: %v ok=%v", err, result.OK)
	}

	s.Logout(result.User.UserID)

	sess := s.Session(context.Background(), result.User.UserID)
	if sess.Authenticated || sess.User != nil {
		t.Fatalf("expected anonymous session after logout, got %+v", sess)
	}

	// Logging out an already-anonymous user still succeeds.
	s.Logout(result.User.UserID)
}

func TestBusyFlagSuppressesDuplicateSubmissions(t *testing.T) {
	s := newTestStore(200 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Login(context.Background(), "demo@example.com", "password")
	}()

	time.Sleep(20 * time.Millisecond)
	_, err := s.Login(context.Background(), "demo@example.com", "password")
	if !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy for duplicate submission, got %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for first login")
	}

	// Flag is transient: the store accepts submissions again.
	if _, err := s.Login(context.Background(), "demo@example.com", "password"); err != nil {
		t.Fatalf("Login after busy window: %v", err)
	}
}

func TestBusyFlagIsScopedPerEmail(t *testing.T) {
	s := newTestStore(100 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		_, err := s.Login(context.Background(), "demo@example.com", "password")
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)

	// A different user logging in at the same time must not be rejected.
	result, err := s.Login(context.Background(), "other@example.com", "wrong")
	if err != nil {
		t.Fatalf("concurrent login for a different email: %v", err)
	}
	if result.OK {
		t.Fatal("non-demo credentials must resolve false")
	}

	if err := <-done; err != nil {
		t.Fatalf("first login: %v", err)
	}

	// Registration for a third email is independent too.
	go func() {
		_, err := s.Login(context.Background(), "demo@example.com", "password")
		done <- err
	}()
	time.Sleep(20 * time.Millisecond)
	if _, err := s.Register(context.Background(), "Third", "third@example.com", "pw"); err != nil {
		t.Fatalf("concurrent register for a different email: %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("second login: %v", err)
	}
}

func TestSessionRestoredFromSlot(t *testing.T) {
	slots := persist.NewMemorySlots()

	first := NewStore(slots, 0)
	result, err := first.Login(context.Background(), "demo@example.com", "password")
	if err != nil || !result.OK {
		t.Fatalf("Login: %v ok=%v", err, result.OK)
	}

	// A fresh store over the same slots sees the persisted session.
	second := NewStore(slots, 0)
	sess := second.Session(context.Background(), result.User.UserID)
	if !sess.Authenticated || sess.User == nil || sess.User.Email != "demo@example.com" {
		t.Fatalf("expected restored session, got %+v", sess)
	}
}
