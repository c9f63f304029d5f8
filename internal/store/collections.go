package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Nithya059/Tech-Titans-Sathvik-ar-quiz-trainer/internal/model"
)

// Keys of the persisted collections.
const (
	FavoritesKey   = "arQuizSaved"
	RecentScansKey = "arQuizRecentScan"
	StatsKey       = "arQuizStats"
)

// Collections reads and writes the typed records kept in a KV.
// Nothing is cached: every read goes to the KV and every write replaces the key.
type Collections struct {
	kv KV
}

// NewCollections wraps kv.
func NewCollections(kv KV) *Collections {
	return &Collections{kv: kv}
}

// Favorites returns the saved questions, or an empty slice when absent or corrupt.
func (c *Collections) Favorites(ctx context.Context) ([]model.FavoriteEntry, error) {
	return readList[model.FavoriteEntry](ctx, c.kv, FavoritesKey)
}

// SetFavorites replaces the saved questions.
func (c *Collections) SetFavorites(ctx context.Context, entries []model.FavoriteEntry) error {
	if entries == nil {
		entries = []model.FavoriteEntry{}
	}
	return c.write(ctx, FavoritesKey, entries)
}

// RecentScans returns the scan log, or an empty slice when absent or corrupt.
func (c *Collections) RecentScans(ctx context.Context) ([]model.RecentScanEntry, error) {
	return readList[model.RecentScanEntry](ctx, c.kv, RecentScansKey)
}

// SetRecentScans replaces the scan log.
func (c *Collections) SetRecentScans(ctx context.Context, entries []model.RecentScanEntry) error {
	if entries == nil {
		entries = []model.RecentScanEntry{}
	}
	return c.write(ctx, RecentScansKey, entries)
}

// Stats returns the stats record, or nil when none has been written or the value is corrupt.
func (c *Collections) Stats(ctx context.Context) (*model.StatsRecord, error) {
	raw, ok, err := c.kv.Get(ctx, StatsKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", StatsKey, err)
	}
	if !ok {
		return nil, nil
	}
	var rec *model.StatsRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, nil
	}
	if rec == nil || rec.Attempts < 1 {
		return nil, nil
	}
	return rec, nil
}

// SetStats replaces the stats record.
func (c *Collections) SetStats(ctx context.Context, rec model.StatsRecord) error {
	return c.write(ctx, StatsKey, rec)
}

func readList[T any](ctx context.Context, kv KV, key string) ([]T, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok {
		return []T{}, nil
	}
	var entries []T
	if err := json.Unmarshal([]byte(raw), &entries); err != nil || entries == nil {
		// Corrupt data reads as absent.
		return []T{}, nil
	}
	return entries, nil
}

func (c *Collections) write(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := c.kv.Set(ctx, key, string(data)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
