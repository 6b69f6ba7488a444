// Package repo persists trail records and answers fuzzy name lookups
// against the record store.
package repo

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/summitlab/trailguide/internal/model"
	"github.com/summitlab/trailguide/internal/store"
)

// KeyPrefix namespaces persisted trail records within the store.
const KeyPrefix = "trail_data_"

// TrailRepository reads and writes trail records keyed by display name.
type TrailRepository struct {
	kv store.KVStore
}

// New creates a repository over the given store.
func New(kv store.KVStore) *TrailRepository {
	return &TrailRepository{kv: kv}
}

// DeriveKey returns the storage key for a trail name. No normalization
// beyond the namespace prefix: lookups normalize, keys do not.
func DeriveKey(name string) string {
	return KeyPrefix + name
}

// FindByFuzzyName scans all stored records for a bidirectional
// case-insensitive substring match between query and record name: either
// contains the other. Entries that fail to parse or lack a name are skipped,
// never fatal. When several records match, the longest stored name wins;
// ties fall back to enumeration order.
func (r *TrailRepository) FindByFuzzyName(ctx context.Context, query string) (*model.TrailRecord, error) {
	norm := strings.ToLower(strings.TrimSpace(query))
	if norm == "" {
		return nil, nil
	}

	keys, err := r.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return nil, eris.Wrap(err, "repo: list trail keys")
	}

	var best *model.TrailRecord
	for _, key := range keys {
		value, ok, err := r.kv.Get(ctx, key)
		if err != nil || !ok {
			continue
		}

		var rec model.TrailRecord
		if err := json.Unmarshal([]byte(value), &rec); err != nil {
			zap.L().Debug("repo: skipping malformed cache entry",
				zap.String("key", key), zap.Error(err))
			continue
		}
		if rec.Name == "" {
			zap.L().Debug("repo: skipping nameless cache entry", zap.String("key", key))
			continue
		}

		name := strings.ToLower(rec.Name)
		if !strings.Contains(norm, name) && !strings.Contains(name, norm) {
			continue
		}
		if best == nil || len(rec.Name) > len(best.Name) {
			matched := rec
			best = &matched
		}
	}
	return best, nil
}

// Persist writes the record under its derived key, overwriting any prior
// value.
func (r *TrailRepository) Persist(ctx context.Context, rec *model.TrailRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return eris.Wrap(err, "repo: marshal trail record")
	}
	if err := r.kv.Set(ctx, DeriveKey(rec.Name), string(data)); err != nil {
		return eris.Wrapf(err, "repo: persist %s", rec.Name)
	}
	return nil
}
