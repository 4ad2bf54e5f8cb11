package session

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type mockStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string]string)}
}

func (m *mockStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *mockStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.data[key]
	if !ok {
		return "", redislib.Nil
	}
	return val, nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

func (m *mockStore) SessionKey(accessID string) string {
	return fmt.Sprintf("sess:%s", accessID)
}

func TestManagerGenerateHasSessionRevoke(t *testing.T) {
	store := newMockStore()
	manager := NewManagerWithStore(store, store, time.Hour)
	accessID := NewAccessID()

	ok, err := manager.HasSession(context.Background(), accessID)
	if err != nil {
		t.Fatalf("HasSession: %v", err)
	}
	if ok {
		t.Fatal("session must not exist before Generate")
	}

	if err := manager.Generate(context.Background(), accessID); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	ok, err = manager.HasSession(context.Background(), accessID)
	if err != nil {
		t.Fatalf("HasSession: %v", err)
	}
	if !ok {
		t.Fatal("session must exist after Generate")
	}

	if err := manager.Revoke(context.Background(), accessID); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	ok, err = manager.HasSession(context.Background(), accessID)
	if err != nil {
		t.Fatalf("HasSession: %v", err)
	}
	if ok {
		t.Fatal("session must be gone after Revoke")
	}
}

func TestManagerRejectsBlankAccessID(t *testing.T) {
	store := newMockStore()
	manager := NewManagerWithStore(store, store, time.Hour)

	if err := manager.Generate(context.Background(), "  "); err == nil {
		t.Fatal("blank access id must be rejected")
	}
	if ok, err := manager.HasSession(context.Background(), ""); err != nil || ok {
		t.Fatalf("blank access id must read as no session, got ok=%v err=%v", ok, err)
	}
	if err := manager.Revoke(context.Background(), ""); err == nil {
		t.Fatal("blank access id must be rejected")
	}
}
