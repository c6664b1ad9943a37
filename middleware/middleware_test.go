package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vitrina/globals"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
)

func mintTestToken(t *testing.T, userID string) string {
	t.Helper()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(globals.JwtSecret)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestValidateJWTAcceptsBothTokenForms(t *testing.T) {
	token := mintTestToken(t, "u1")

	// With the Bearer prefix.
	claims, err := ValidateJWT("Bearer " + token)
	if err != nil || claims.UserID != "u1" {
		t.Fatalf("prefixed token: claims=%+v err=%v", claims, err)
	}

	// Bare token, as stored clients sometimes send it.
	claims, err = ValidateJWT(token)
	if err != nil || claims.UserID != "u1" {
		t.Fatalf("bare token: claims=%+v err=%v", claims, err)
	}

	if _, err := ValidateJWT(""); err == nil {
		t.Fatal("expected error for empty token")
	}
	if _, err := ValidateJWT("Bearer not.a.token"); err == nil {
		t.Fatal("expected error for garbage token")
	}
}

func contextUserID(r *http.Request) string {
	id, _ := r.Context().Value(globals.UserIDKey).(string)
	return id
}

func TestAuthenticateRequiresValidToken(t *testing.T) {
	var gotUserID string
	handler := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID = contextUserID(r)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler(rec, req, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing token: got %d want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, "u1"))
	handler(rec, req, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid token: got %d want 200", rec.Code)
	}
	if gotUserID != "u1" {
		t.Fatalf("user id in context: got %q want u1", gotUserID)
	}
}

func TestOptionalAuthProceedsAnonymously(t *testing.T) {
	var gotUserID string
	called := false
	handler := OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
		gotUserID = contextUserID(r)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler(rec, req, nil)
	if !called || gotUserID != "" {
		t.Fatalf("anonymous request: called=%v userID=%q", called, gotUserID)
	}

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mintTestToken(t, "u2"))
	handler(rec, req, nil)
	if gotUserID != "u2" {
		t.Fatalf("identified request: got %q want u2", gotUserID)
	}
}
