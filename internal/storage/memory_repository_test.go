package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMemoryRepository(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	if _, err := repo.Get(ctx, "k"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Put(ctx, "k", "v1"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := repo.Put(ctx, "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, err := repo.Get(ctx, "k"); err != nil || got != "v2" {
		t.Fatalf("unexpected get: %q (%v)", got, err)
	}
	if err := repo.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "k"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepositoryHonoursCancelledContext(t *testing.T) {
	repo := NewMemoryRepository()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.Put(ctx, "k", "v"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	repo, err := Open(context.Background(), Options{Backend: BackendMemory})
	if err != nil {
		t.Fatalf("open memory: %v", err)
	}
	if _, ok := repo.(*MemoryRepository); !ok {
		t.Fatalf("expected memory repository, got %T", repo)
	}

	repo, err = Open(context.Background(), Options{Backend: BackendSQLite, SQLitePath: filepath.Join(t.TempDir(), "open.db")})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer repo.Close()
	if _, ok := repo.(*SQLiteRepository); !ok {
		t.Fatalf("expected sqlite repository, got %T", repo)
	}

	if _, err := Open(context.Background(), Options{Backend: "etcd"}); err == nil {
		t.Fatal("expected unknown backend error")
	}
}
