package goAuthClient

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MrEthical07/goAuthClient/transport"
)

type fakeHandler func(body any) (json.RawMessage, error)

// fakeTransport is an in-memory transport.Client with a route table keyed
// by "METHOD /path". Query strings are stripped before lookup unless a route
// with the full key exists.
type fakeTransport struct {
	mu     sync.Mutex
	routes map[string]fakeHandler
	calls  []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{routes: map[string]fakeHandler{}}
}

func (f *fakeTransport) route(key string, h fakeHandler) {
	f.mu.Lock()
	f.routes[key] = h
	f.mu.Unlock()
}

func (f *fakeTransport) respond(key string, v any) {
	f.route(key, func(any) (json.RawMessage, error) {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		return raw, nil
	})
}

func (f *fakeTransport) fail(key, code string, status int) {
	f.route(key, func(any) (json.RawMessage, error) {
		return nil, &transport.APIError{Code: code, StatusCode: status}
	})
}

func (f *fakeTransport) do(method, path string, body any) (json.RawMessage, error) {
	key := method + " " + path
	f.mu.Lock()
	f.calls = append(f.calls, key)
	handler := f.routes[key]
	if handler == nil {
		if i := strings.Index(path, "?"); i >= 0 {
			handler = f.routes[method+" "+path[:i]]
		}
	}
	f.mu.Unlock()
	if handler == nil {
		return nil, fmt.Errorf("no route for %s", key)
	}
	return handler(body)
}

func (f *fakeTransport) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return f.do("GET", path, nil)
}

func (f *fakeTransport) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return f.do("POST", path, body)
}

func (f *fakeTransport) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return f.do("PATCH", path, body)
}

func (f *fakeTransport) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return f.do("DELETE", path, nil)
}

func (f *fakeTransport) callCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, call := range f.calls {
		if strings.HasPrefix(call, prefix) {
			count++
		}
	}
	return count
}

type recordNotifier struct {
	mu           sync.Mutex
	subscribed   []string
	unsubscribed []string
}

func (n *recordNotifier) Subscribe(id string) {
	n.mu.Lock()
	n.subscribed = append(n.subscribed, id)
	n.mu.Unlock()
}

func (n *recordNotifier) Unsubscribe(id string) {
	n.mu.Lock()
	n.unsubscribed = append(n.unsubscribed, id)
	n.mu.Unlock()
}

func (n *recordNotifier) Connected() bool { return true }

func (n *recordNotifier) hasSubscribed(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, s := range n.subscribed {
		if s == id {
			return true
		}
	}
	return false
}

func (n *recordNotifier) hasUnsubscribed(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, s := range n.unsubscribed {
		if s == id {
			return true
		}
	}
	return false
}

func newTestEngine(t *testing.T, ft *fakeTransport, mutate func(*Config)) (*Engine, *recordNotifier) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.Audit.Enabled = false
	cfg.Session.RefreshOnCommit = false
	if mutate != nil {
		mutate(&cfg)
	}

	notifier := &recordNotifier{}
	engine, err := New().
		WithConfig(cfg).
		WithTransport(ft).
		WithNotifier(notifier).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine, notifier
}

func fullAccount(id string) *Account {
	return &Account{
		ID:          id,
		Kind:        KindLocal,
		Status:      StatusActive,
		FirstName:   "Test",
		LastName:    "User",
		DisplayName: "Test User",
		Email:       id + "@example.com",
	}
}

// seedSession drives a refresh so the engine tracks the given accounts with
// the first id as current.
func seedSession(t *testing.T, engine *Engine, ft *fakeTransport, ids ...string) {
	t.Helper()

	ft.respond("GET "+pathSession, sessionDocument{
		HasSession:       true,
		AccountIDs:       ids,
		CurrentAccountID: ids[0],
		IsValid:          true,
	})
	summaries := summariesResponse{}
	for _, id := range ids {
		summaries.Summaries = append(summaries.Summaries, AccountSummary{
			ID:     id,
			Kind:   KindLocal,
			Status: StatusActive,
		})
	}
	ft.respond("GET "+pathAccountSummaries, summaries)

	if err := engine.RefreshSession(context.Background()); err != nil {
		t.Fatalf("RefreshSession failed: %v", err)
	}
}

// unsignedToken builds a decodable but unsigned JWT carrying accountId and
// exp claims, the shape temp tokens arrive in.
func unsignedToken(t *testing.T, accountID string, expiresAt time.Time) string {
	t.Helper()

	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{
		"accountId": accountID,
		"exp":       expiresAt.Unix(),
	})
	if err != nil {
		t.Fatalf("marshal claims: %v", err)
	}
	return header + "." + base64.RawURLEncoding.EncodeToString(payload) + "."
}
