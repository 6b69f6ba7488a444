// Package plans keeps the user's ordered collection of saved trail guides.
package plans

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/summitlab/trailguide/internal/model"
	"github.com/summitlab/trailguide/internal/store"
)

// LedgerKey is the single well-known key the whole serialized list lives
// under. Every mutation rewrites the blob in full.
const LedgerKey = "trail_plans_v1"

// Ledger is a user-scoped ordered sequence of trail records, unique by
// exact name. Entries are copies: saving never aliases a live guide record.
type Ledger struct {
	kv store.KVStore
}

// New creates a ledger over the given store.
func New(kv store.KVStore) *Ledger {
	return &Ledger{kv: kv}
}

// List returns the saved plans in order. An absent or unreadable blob is an
// empty ledger, not an error surfaced to the caller.
func (l *Ledger) List(ctx context.Context) ([]model.TrailRecord, error) {
	value, ok, err := l.kv.Get(ctx, LedgerKey)
	if err != nil {
		return nil, eris.Wrap(err, "plans: read ledger")
	}
	if !ok || value == "" {
		return nil, nil
	}

	var recs []model.TrailRecord
	if err := json.Unmarshal([]byte(value), &recs); err != nil {
		zap.L().Warn("plans: malformed ledger blob, treating as empty", zap.Error(err))
		return nil, nil
	}
	return recs, nil
}

// Upsert saves a record by name. An existing entry is replaced in place;
// a new one is appended to the end of the list.
func (l *Ledger) Upsert(ctx context.Context, rec model.TrailRecord) error {
	return l.save(ctx, rec, false)
}

// PromoteFromGuide saves the actively viewed guide after a user edit. An
// existing entry is replaced in place; a new one is prepended, since an
// explicit edit-promotion ranks higher for visibility than a plain save.
func (l *Ledger) PromoteFromGuide(ctx context.Context, rec model.TrailRecord) error {
	return l.save(ctx, rec, true)
}

func (l *Ledger) save(ctx context.Context, rec model.TrailRecord, prepend bool) error {
	if rec.Name == "" {
		return eris.New("plans: cannot save a nameless record")
	}

	recs, err := l.List(ctx)
	if err != nil {
		return err
	}

	entry := rec.Clone()
	replaced := false
	for i := range recs {
		if recs[i].Name == entry.Name {
			recs[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		if prepend {
			recs = append([]model.TrailRecord{entry}, recs...)
		} else {
			recs = append(recs, entry)
		}
	}
	return l.write(ctx, recs)
}

// Remove deletes the entry with the exact name. Removing an absent name is
// a no-op.
func (l *Ledger) Remove(ctx context.Context, name string) error {
	recs, err := l.List(ctx)
	if err != nil {
		return err
	}
	out := recs[:0]
	for _, r := range recs {
		if r.Name != name {
			out = append(out, r)
		}
	}
	if len(out) == len(recs) {
		return nil
	}
	return l.write(ctx, out)
}

func (l *Ledger) write(ctx context.Context, recs []model.TrailRecord) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return eris.Wrap(err, "plans: marshal ledger")
	}
	if err := l.kv.Set(ctx, LedgerKey, string(data)); err != nil {
		return eris.Wrap(err, "plans: write ledger")
	}
	return nil
}
