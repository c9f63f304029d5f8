package store

import (
	"context"
	"errors"
	"strings"
)

const (
	EngineJSON   = "json"
	EngineSQLite = "sqlite"
)

// KV is the raw persistence capability: read and overwrite text values by key.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// NewByEngine opens the key-value engine named by engine.
func NewByEngine(engine string, path string) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineSQLite:
		return Open(path)
	case EngineJSON:
		return NewJSONFile(path)
	default:
		return nil, errors.New("unsupported store engine: " + engine)
	}
}
