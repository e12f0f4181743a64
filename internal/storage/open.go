package storage

import (
	"context"
	"fmt"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Options struct {
	Backend     string
	SQLitePath  string
	RedisURL    string
	RedisPrefix string
}

func Open(ctx context.Context, opts Options) (Repository, error) {
	switch opts.Backend {
	case BackendSQLite, "":
		repo, err := OpenSQLite(opts.SQLitePath)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case BackendRedis:
		repo, err := OpenRedis(ctx, opts.RedisURL, opts.RedisPrefix)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case BackendMemory:
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", opts.Backend)
	}
}
