package goAuthClient

import (
	"context"
	"errors"
	"testing"
)

func TestLogoutClearStatePromotesNext(t *testing.T) {
	ft := newFakeTransport()
	engine, notifier := newTestEngine(t, ft, nil)
	seedSession(t, engine, ft, "a1", "a2")

	ft.respond("POST "+pathLogout, map[string]any{})
	if err := engine.Logout(context.Background(), "a1", true); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	snapshot := engine.Session()
	if snapshot.Contains("a1") {
		t.Fatal("a1 must leave the session on hard logout")
	}
	if snapshot.CurrentAccountID != "a2" {
		t.Fatalf("expected a2 promoted to current, got %q", snapshot.CurrentAccountID)
	}
	if _, ok := engine.GetAccount("a1"); ok {
		t.Fatal("a1 cache entry must be purged")
	}
	if !notifier.hasUnsubscribed("a1") {
		t.Fatal("expected notifier unsubscribe for a1")
	}
}

func TestLogoutClearStatePromotesPastDisabled(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)
	seedSession(t, engine, ft, "a1", "a2", "a3")

	ft.respond("POST "+pathLogout, map[string]any{})
	if err := engine.Logout(context.Background(), "a2", false); err != nil {
		t.Fatalf("soft logout failed: %v", err)
	}
	if err := engine.Logout(context.Background(), "a1", true); err != nil {
		t.Fatalf("hard logout failed: %v", err)
	}

	// a2 is disabled and cannot be switched to, so promotion must land on
	// a3 even though a2 comes first in the remaining list.
	snapshot := engine.Session()
	if snapshot.CurrentAccountID != "a3" {
		t.Fatalf("expected promotion to skip the disabled account, got %q", snapshot.CurrentAccountID)
	}
	if err := engine.SetCurrentAccount(context.Background(), "a2"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
}

func TestLogoutDisableKeepsEntry(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)
	seedSession(t, engine, ft, "a1", "a2")

	ft.respond("POST "+pathLogout, map[string]any{})
	if err := engine.Logout(context.Background(), "a1", false); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	state, ok := engine.GetAccount("a1")
	if !ok || !state.Disabled {
		t.Fatalf("expected a1 tracked and disabled, got %+v ok=%v", state, ok)
	}
	if _, inActive := engine.ListActiveAccounts()["a1"]; inActive {
		t.Fatal("disabled account must not appear in the active view")
	}

	snapshot := engine.Session()
	if !snapshot.Contains("a1") {
		t.Fatal("soft logout keeps the account in the session list")
	}
	if snapshot.CurrentAccountID != "a2" {
		t.Fatalf("expected current repointed to a2, got %q", snapshot.CurrentAccountID)
	}
}

func TestLogoutDefaultsToCurrent(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)
	seedSession(t, engine, ft, "a1", "a2")

	ft.respond("POST "+pathLogout, map[string]any{})
	if err := engine.Logout(context.Background(), "", true); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if engine.Session().Contains("a1") {
		t.Fatal("expected the current account a1 logged out")
	}
}

func TestLogoutWithoutCurrent(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)

	if err := engine.Logout(context.Background(), "", true); !errors.Is(err, ErrNoCurrentAccount) {
		t.Fatalf("expected ErrNoCurrentAccount, got %v", err)
	}
}

func TestLogoutRemoteFailureKeepsLocalState(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)
	seedSession(t, engine, ft, "a1", "a2")

	ft.fail("POST "+pathLogout, "UNAVAILABLE", 503)
	if err := engine.Logout(context.Background(), "a1", true); err == nil {
		t.Fatal("expected error from remote failure")
	}
	if !engine.Session().Contains("a1") {
		t.Fatal("single-account logout must not change local state when the server refused")
	}
	if _, ok := engine.GetAccount("a1"); !ok {
		t.Fatal("cache entry must survive a refused logout")
	}
}

func TestLogoutAllClearsEvenOnRemoteFailure(t *testing.T) {
	ft := newFakeTransport()
	engine, notifier := newTestEngine(t, ft, nil)
	seedSession(t, engine, ft, "a1", "a2")

	ft.fail("POST "+pathLogoutAll, "UNAVAILABLE", 503)
	if err := engine.LogoutAll(context.Background()); err == nil {
		t.Fatal("expected remote error surfaced")
	}

	if engine.Session().HasSession {
		t.Fatal("local session must be cleared regardless of remote outcome")
	}
	if len(engine.ListAllAccounts()) != 0 {
		t.Fatal("account cache must be empty after logout-all")
	}
	if engine.Phase() != PhaseIdle {
		t.Fatalf("expected idle phase, got %v", engine.Phase())
	}
	if !notifier.hasUnsubscribed("a1") || !notifier.hasUnsubscribed("a2") {
		t.Fatal("expected every account unsubscribed")
	}
}

func TestReactivate(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)
	seedSession(t, engine, ft, "a1", "a2")

	if err := engine.Reactivate(context.Background(), "zz"); !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}

	engine.accounts.SetDisabled("a2", true)
	if err := engine.Reactivate(context.Background(), "a2"); err != nil {
		t.Fatalf("Reactivate failed: %v", err)
	}
	if engine.accounts.IsDisabled("a2") {
		t.Fatal("expected a2 re-enabled")
	}
}

func TestRemovePurgesAccount(t *testing.T) {
	ft := newFakeTransport()
	engine, notifier := newTestEngine(t, ft, nil)
	seedSession(t, engine, ft, "a1", "a2")

	if err := engine.Remove(context.Background(), "a1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if engine.Session().Contains("a1") {
		t.Fatal("removed account must leave the session")
	}
	if _, ok := engine.GetAccount("a1"); ok {
		t.Fatal("removed account must leave the cache")
	}
	if !notifier.hasUnsubscribed("a1") {
		t.Fatal("expected notifier unsubscribe")
	}
}
