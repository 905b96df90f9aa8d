package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/sweet_shop/internal/db"
	"github.com/Skotchmaster/sweet_shop/internal/events"
	"github.com/Skotchmaster/sweet_shop/internal/repo"
	"github.com/Skotchmaster/sweet_shop/internal/tokens"
)

// recorder keeps every published event in memory.
type recorder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) Close() error { return nil }

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()
	store, err := db.OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(store) })
	return repo.New(store)
}

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	return &AuthService{
		Repo:   newTestRepo(t),
		Tokens: tokens.NewIssuer([]byte("test-secret"), time.Hour),
	}
}

func newCatalogService(t *testing.T) (*CatalogService, *recorder) {
	t.Helper()
	rec := &recorder{}
	return NewCatalogService(newTestRepo(t), rec), rec
}

var errBroker = errors.New("broker down")
