package auth

import (
	"strings"
	"testing"
	"time"
)

// newTestTokenService creates a TokenService with a fixed, known secret so
// tests are deterministic.
func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	ts, err := NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return ts
}

var testIdentity = Identity{UserID: 1, Username: "admin"}

// =========================================================================
// TOKEN SERVICE CONSTRUCTION TESTS
// =========================================================================

func TestNewTokenService_ShortSecret(t *testing.T) {
	_, err := NewTokenService("short")
	if err == nil {
		t.Fatal("NewTokenService() should reject secrets shorter than 16 chars")
	}
}

func TestNewTokenService_ValidSecret(t *testing.T) {
	_, err := NewTokenService("this-is-16-chars")
	if err != nil {
		t.Fatalf("NewTokenService() unexpected error for valid secret: %v", err)
	}
}

// =========================================================================
// GENERATE TESTS
// =========================================================================

func TestGenerate_ReturnsNonEmptyToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, err := ts.Generate(testIdentity)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if token == "" {
		t.Error("Generate() returned empty token")
	}

	// JWTs have 3 dot-separated parts: header.payload.signature
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Errorf("Generate() token doesn't look like a JWT (got %d parts)", len(parts))
	}
}

// =========================================================================
// VALIDATE TESTS
// =========================================================================

func TestValidate_RoundTrip(t *testing.T) {
	ts := newTestTokenService(t)
	id := Identity{UserID: 42, Username: "admin"}

	token, err := ts.Generate(id)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	got, err := ts.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got.UserID != id.UserID {
		t.Errorf("Validate() UserID = %d, want %d", got.UserID, id.UserID)
	}
	if got.Username != id.Username {
		t.Errorf("Validate() Username = %q, want %q", got.Username, id.Username)
	}
}

// TestValidate_LifetimeWindow pins the 8-hour validity window: a token that
// has 1 minute left is accepted, one that expired 1 minute ago is rejected.
func TestValidate_LifetimeWindow(t *testing.T) {
	ts := newTestTokenService(t)

	// A minute of remaining lifetime stands in for "7h59m into the 8h window".
	stillValid, err := ts.GenerateWithDuration(testIdentity, time.Minute)
	if err != nil {
		t.Fatalf("GenerateWithDuration() error = %v", err)
	}
	if _, err := ts.Validate(stillValid); err != nil {
		t.Errorf("Validate() rejected a token with a minute of lifetime left: %v", err)
	}

	expired, err := ts.GenerateWithDuration(testIdentity, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateWithDuration() error = %v", err)
	}
	if _, err := ts.Validate(expired); err == nil {
		t.Error("Validate() accepted a token that expired a minute ago")
	}
}

func TestValidate_TamperedToken(t *testing.T) {
	ts := newTestTokenService(t)

	token, _ := ts.Generate(testIdentity)

	// Flip a character in the signature (the part after the 2nd dot)
	tampered := token[:len(token)-2] + "xx"

	if _, err := ts.Validate(tampered); err == nil {
		t.Error("Validate() accepted a tampered token")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	ts1 := newTestTokenService(t)
	ts2, err := NewTokenService("a-completely-different-secret!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}

	token, _ := ts1.Generate(testIdentity)

	if _, err := ts2.Validate(token); err == nil {
		t.Error("Validate() accepted a token signed with a different secret")
	}
}

func TestValidate_Garbage(t *testing.T) {
	ts := newTestTokenService(t)

	for _, input := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := ts.Validate(input); err == nil {
			t.Errorf("Validate(%q) accepted garbage input", input)
		}
	}
}
