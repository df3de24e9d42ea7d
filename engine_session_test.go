package goAuthClient

import (
	"context"
	"errors"
	"testing"
)

func TestRefreshSessionReplacesSnapshot(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)

	seedSession(t, engine, ft, "a1", "a2")

	snapshot := engine.Session()
	if !snapshot.HasSession || !snapshot.Valid {
		t.Fatalf("expected live session, got %+v", snapshot)
	}
	if len(snapshot.AccountIDs) != 2 || snapshot.CurrentAccountID != "a1" {
		t.Fatalf("unexpected snapshot %+v", snapshot)
	}

	for _, id := range []string{"a1", "a2"} {
		state, ok := engine.GetAccount(id)
		if !ok || state.Summary == nil {
			t.Fatalf("expected summary cached for %s", id)
		}
	}
}

func TestRefreshSessionNormalizesInvalidCurrent(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)

	ft.respond("GET "+pathSession, sessionDocument{
		HasSession:       true,
		AccountIDs:       []string{"a1"},
		CurrentAccountID: "someone-else",
		IsValid:          true,
	})
	ft.respond("GET "+pathAccountSummaries, summariesResponse{})

	if err := engine.RefreshSession(context.Background()); err != nil {
		t.Fatalf("RefreshSession failed: %v", err)
	}
	if got := engine.Session().CurrentAccountID; got != "" {
		t.Fatalf("current id outside the session must be dropped, got %q", got)
	}
}

func TestRefreshSessionFailureKeepsPrior(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)

	seedSession(t, engine, ft, "a1")

	ft.fail("GET "+pathSession, "UNAVAILABLE", 503)
	if err := engine.RefreshSession(context.Background()); !errors.Is(err, ErrSessionRefreshFailed) {
		t.Fatalf("expected ErrSessionRefreshFailed, got %v", err)
	}

	snapshot := engine.Session()
	if !snapshot.HasSession || snapshot.CurrentAccountID != "a1" {
		t.Fatalf("prior snapshot must survive a failed refresh, got %+v", snapshot)
	}
	if engine.SessionError() == nil {
		t.Fatal("expected session error slot populated")
	}

	// A later successful refresh clears the slot.
	ft.respond("GET "+pathSession, sessionDocument{
		HasSession:       true,
		AccountIDs:       []string{"a1"},
		CurrentAccountID: "a1",
		IsValid:          true,
	})
	if err := engine.RefreshSession(context.Background()); err != nil {
		t.Fatalf("RefreshSession failed: %v", err)
	}
	if engine.SessionError() != nil {
		t.Fatal("expected session error cleared after success")
	}
}

func TestSummariesNeverOverwriteFullRecords(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)

	ft.respond("POST "+pathLogin, loginResponse{
		AccountID: "a1",
		Account:   fullAccount("a1"),
	})
	if _, err := engine.Login(context.Background(), Credentials{Email: "a@b.c", Password: "pw"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	seedSession(t, engine, ft, "a1", "a2")

	state, ok := engine.GetAccount("a1")
	if !ok || !state.Full() {
		t.Fatal("full record must survive a summary refresh")
	}
	if state.Account.FirstName != "Test" {
		t.Fatalf("full record fields lost: %+v", state.Account)
	}

	state, ok = engine.GetAccount("a2")
	if !ok || state.Full() {
		t.Fatal("a2 should be summary-only")
	}
}

func TestSetCurrentAccountRejectsLocally(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)
	seedSession(t, engine, ft, "a1", "a2")

	if err := engine.SetCurrentAccount(context.Background(), "zz"); !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("expected ErrUnknownAccount, got %v", err)
	}
	engine.accounts.SetDisabled("a2", true)
	if err := engine.SetCurrentAccount(context.Background(), "a2"); !errors.Is(err, ErrAccountDisabled) {
		t.Fatalf("expected ErrAccountDisabled, got %v", err)
	}
	if got := ft.callCount("POST " + pathSessionCurrent); got != 0 {
		t.Fatalf("rejected switches must not reach the network, got %d calls", got)
	}
	if got := engine.Session().CurrentAccountID; got != "a1" {
		t.Fatalf("current pointer must be untouched, got %q", got)
	}
}

func TestSetCurrentAccountWithoutSession(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)

	if err := engine.SetCurrentAccount(context.Background(), "a1"); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestSetCurrentAccountMovesPointer(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)
	seedSession(t, engine, ft, "a1", "a2")

	ft.respond("POST "+pathSessionCurrent, map[string]any{})
	if err := engine.SetCurrentAccount(context.Background(), "a2"); err != nil {
		t.Fatalf("SetCurrentAccount failed: %v", err)
	}
	if got := engine.Session().CurrentAccountID; got != "a2" {
		t.Fatalf("expected current a2, got %q", got)
	}

	state, ok := engine.CurrentAccount()
	if !ok || state.Summary == nil || state.Summary.ID != "a2" {
		t.Fatalf("CurrentAccount mismatch: %+v ok=%v", state, ok)
	}
}

func TestSetCurrentAccountRemoteFailureKeepsPointer(t *testing.T) {
	ft := newFakeTransport()
	engine, _ := newTestEngine(t, ft, nil)
	seedSession(t, engine, ft, "a1", "a2")

	ft.fail("POST "+pathSessionCurrent, "UNAVAILABLE", 503)
	if err := engine.SetCurrentAccount(context.Background(), "a2"); err == nil {
		t.Fatal("expected error from remote failure")
	}
	if got := engine.Session().CurrentAccountID; got != "a1" {
		t.Fatalf("pointer must not move without server acknowledgement, got %q", got)
	}
}
