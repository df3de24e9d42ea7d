package goAuthClient

import (
	"context"
	"errors"
	"testing"
)

func TestLoginCommitsAccount(t *testing.T) {
	ft := newFakeTransport()
	engine, notifier := newTestEngine(t, ft, func(cfg *Config) {
		cfg.Session.RefreshOnCommit = true
	})

	ft.respond("POST "+pathLogin, loginResponse{
		AccountID: "a1",
		Account:   fullAccount("a1"),
	})
	ft.respond("GET "+pathSession, sessionDocument{
		HasSession:       true,
		AccountIDs:       []string{"a1"},
		CurrentAccountID: "a1",
		IsValid:          true,
	})
	ft.respond("GET "+pathAccountSummaries, summariesResponse{
		Summaries: []AccountSummary{{ID: "a1", Kind: KindLocal, Status: StatusActive}},
	})

	result, err := engine.Login(context.Background(), Credentials{Email: "a1@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if result.Phase != PhaseSuccess || result.AccountID != "a1" {
		t.Fatalf("unexpected result %+v", result)
	}
	if engine.Phase() != PhaseSuccess {
		t.Fatalf("expected success phase, got %v", engine.Phase())
	}

	state, ok := engine.GetAccount("a1")
	if !ok || !state.Full() {
		t.Fatal("expected full account cached after login")
	}
	if !notifier.hasSubscribed("a1") {
		t.Fatal("expected notifier subscription for committed account")
	}

	snapshot := engine.Session()
	if !snapshot.HasSession || snapshot.CurrentAccountID != "a1" {
		t.Fatalf("expected reconciled session, got %+v", snapshot)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)

	ft.fail("POST "+pathLogin, apiCodeInvalidCredentials, 401)

	if _, err := engine.Login(context.Background(), Credentials{Email: "a@b.c", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if engine.Phase() != PhaseFailed {
		t.Fatalf("expected failed phase, got %v", engine.Phase())
	}
	if engine.GlobalError() == nil {
		t.Fatal("expected global error after failed login")
	}
}

func TestLoginValidationSkipsNetwork(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)

	if _, err := engine.Login(context.Background(), Credentials{Email: "a@b.c"}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got := ft.callCount("POST " + pathLogin); got != 0 {
		t.Fatalf("expected no login request, got %d", got)
	}
}

func TestLoginTwoFactorRequired(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)

	ft.respond("POST "+pathLogin, loginResponse{
		RequiresTwoFactor: true,
		TempToken:         "temp-token",
		AccountID:         "a1",
	})

	result, err := engine.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !result.RequiresTwoFactor || result.Phase != PhaseRequiresTwoFactor {
		t.Fatalf("expected two-factor challenge, got %+v", result)
	}

	status := engine.TwoFactorStatus()
	if !status.Live || status.AccountID != "a1" {
		t.Fatalf("expected live challenge for a1, got %+v", status)
	}
	if status.AttemptsRemaining != DefaultConfig().TwoFactor.MaxAttempts {
		t.Fatalf("expected full attempt budget, got %d", status.AttemptsRemaining)
	}
	if engine.Session().HasSession {
		t.Fatal("session must not change before the second factor completes")
	}
}

func TestNewLoginReplacesPriorChallenge(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)

	ft.respond("POST "+pathLogin, loginResponse{
		RequiresTwoFactor: true,
		TempToken:         "temp-token",
		AccountID:         "a1",
	})
	ft.fail("POST "+pathTwoFactorVerify, apiCodeInvalidTwoFactor, 401)

	if _, err := engine.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := engine.VerifyTwoFactor(context.Background(), "000000", false); !errors.Is(err, ErrChallengeInvalidCode) {
		t.Fatalf("expected ErrChallengeInvalidCode, got %v", err)
	}

	// The second login response wins ownership of the challenge slot and
	// restores the full attempt budget.
	if _, err := engine.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"}); err != nil {
		t.Fatalf("second Login failed: %v", err)
	}
	status := engine.TwoFactorStatus()
	if status.AttemptsRemaining != DefaultConfig().TwoFactor.MaxAttempts {
		t.Fatalf("expected reset attempt budget, got %d", status.AttemptsRemaining)
	}
}

func TestEngineNilSafety(t *testing.T) {
	var engine *Engine
	if _, err := engine.Login(context.Background(), Credentials{Email: "a", Password: "b"}); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
	if engine.Phase() != PhaseIdle {
		t.Fatal("nil engine must report idle phase")
	}
	engine.Close()
}
