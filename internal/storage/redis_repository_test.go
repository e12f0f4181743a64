package storage

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedisRepo(t *testing.T, prefix string) (*RedisRepository, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo, err := NewRedisRepository(client, prefix)
	if err != nil {
		t.Fatalf("new redis repo: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo, mr
}

func TestRedisPutGetDelete(t *testing.T) {
	repo, mr := setupRedisRepo(t, "tasklist:")
	ctx := context.Background()

	if _, err := repo.Get(ctx, "TASKS"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}

	if err := repo.Put(ctx, "TASKS", `[]`); err != nil {
		t.Fatalf("put: %v", err)
	}
	raw, err := mr.Get("tasklist:TASKS")
	if err != nil || raw != `[]` {
		t.Fatalf("expected prefixed key in redis, got %q (%v)", raw, err)
	}
	if mr.TTL("tasklist:TASKS") != 0 {
		t.Fatalf("expected key without expiry, got ttl %v", mr.TTL("tasklist:TASKS"))
	}

	got, err := repo.Get(ctx, "TASKS")
	if err != nil || got != `[]` {
		t.Fatalf("unexpected get: %q (%v)", got, err)
	}

	if err := repo.Delete(ctx, "TASKS"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "TASKS"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
}

func TestRedisGetPropagatesServerErrors(t *testing.T) {
	repo, mr := setupRedisRepo(t, "")
	mr.SetError("READONLY")
	if _, err := repo.Get(context.Background(), "TASKS"); err == nil || err == ErrNotFound {
		t.Fatalf("expected server error, got %v", err)
	}
}

func TestOpenRedisAcceptsURLAndAddr(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	for _, target := range []string{"redis://" + mr.Addr() + "/0", mr.Addr()} {
		repo, err := OpenRedis(context.Background(), target, "")
		if err != nil {
			t.Fatalf("open %q: %v", target, err)
		}
		_ = repo.Close()
	}
}
