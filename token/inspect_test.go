package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func buildToken(t *testing.T, claims map[string]any) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, err := json.Marshal(claims)
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}

func TestInspectReadsClaims(t *testing.T) {
	issued := time.Now().Add(-time.Minute).Truncate(time.Second)
	expires := time.Now().Add(time.Hour).Truncate(time.Second)

	value := buildToken(t, map[string]any{
		"accountId": "a1",
		"iat":       issued.Unix(),
		"exp":       expires.Unix(),
	})

	info, err := Inspect(value)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.AccountID != "a1" {
		t.Fatalf("unexpected account id %q", info.AccountID)
	}
	if !info.IssuedAt.Equal(issued) || !info.ExpiresAt.Equal(expires) {
		t.Fatalf("unexpected times %+v", info)
	}
}

func TestInspectFallsBackToSubject(t *testing.T) {
	value := buildToken(t, map[string]any{"sub": "a2"})
	info, err := Inspect(value)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.AccountID != "a2" {
		t.Fatalf("expected subject fallback, got %q", info.AccountID)
	}
}

func TestInspectRejectsOpaqueValues(t *testing.T) {
	for _, value := range []string{"", "opaque-temp-token", "a.b", "not.a.token"} {
		if _, err := Inspect(value); !errors.Is(err, ErrNotAToken) {
			t.Fatalf("expected ErrNotAToken for %q, got %v", value, err)
		}
	}
}

func TestExpired(t *testing.T) {
	now := time.Now()

	past := buildToken(t, map[string]any{"exp": now.Add(-time.Minute).Unix()})
	if !Expired(past, now) {
		t.Fatal("expected past exp to report expired")
	}

	future := buildToken(t, map[string]any{"exp": now.Add(time.Hour).Unix()})
	if Expired(future, now) {
		t.Fatal("future exp must not report expired")
	}

	// Opaque values and exp-less tokens defer to the server.
	if Expired("opaque-temp-token", now) {
		t.Fatal("opaque values must not report expired")
	}
	noExp := buildToken(t, map[string]any{"accountId": "a1"})
	if Expired(noExp, now) {
		t.Fatal("exp-less tokens must not report expired")
	}
}
