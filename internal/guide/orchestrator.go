// Package guide coordinates the staged acquisition protocol: cache-first
// lookup, a blocking basic fetch that unlocks the guide, two concurrent
// slower fetches merging independently into the same record, and a single
// persistence once everything has settled.
package guide

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/summitlab/trailguide/internal/model"
)

// ErrGuideNotFound is the user-facing failure when the basic stage cannot
// produce a guide. It is the only blocking error a search surfaces.
var ErrGuideNotFound = eris.New("guide: guide could not be found")

// Repository is the persistence surface the orchestrator needs.
type Repository interface {
	FindByFuzzyName(ctx context.Context, query string) (*model.TrailRecord, error)
	Persist(ctx context.Context, rec *model.TrailRecord) error
}

// StageGenerator runs the three independent generation stages.
type StageGenerator interface {
	FetchBasic(ctx context.Context, query string) (*model.BasicFields, error)
	FetchMisc(ctx context.Context, query string, basic model.BasicFields) (*model.MiscFields, error)
	FetchRoutes(ctx context.Context, query string, basic model.BasicFields) (*model.RouteFields, error)
}

// Orchestrator owns the in-flight record of the active search. A new search
// cancels the one before it; callbacks and persistence of a superseded
// search are suppressed so a stale response can never overwrite a newer
// request's record.
type Orchestrator struct {
	repo   Repository
	stages StageGenerator

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

// New creates an orchestrator.
func New(repo Repository, stages StageGenerator) *Orchestrator {
	return &Orchestrator{repo: repo, stages: stages}
}

// Search runs the full protocol for query. onUpdate, if non-nil, receives
// up to three record snapshots: once when the basic stage resolves and once
// as each concurrent stage merges, in whichever order the provider answers.
// The returned record is the final merged result; on a cache hit it is the
// cached record and no provider call is made.
func (o *Orchestrator) Search(ctx context.Context, query string, onUpdate func(model.TrailRecord)) (*model.TrailRecord, error) {
	generation, ctx := o.begin(ctx)
	log := zap.L().With(
		zap.String("request_id", uuid.New().String()),
		zap.String("query", query),
	)

	cached, err := o.repo.FindByFuzzyName(ctx, query)
	if err != nil {
		// A failed scan is a miss, not a failure.
		log.Warn("guide: cache lookup failed", zap.Error(err))
	}
	if cached != nil {
		log.Info("guide: cache hit", zap.String("name", cached.Name))
		o.emit(generation, onUpdate, cached.Clone())
		return cached, nil
	}

	basic, err := o.stages.FetchBasic(ctx, query)
	if err != nil {
		log.Error("guide: basic stage failed", zap.Error(err))
		return nil, eris.Wrapf(ErrGuideNotFound, "basic stage: %v", err)
	}

	rec := model.NewRecord(*basic)
	log.Info("guide: basic ready", zap.String("name", rec.Name))
	o.emit(generation, onUpdate, rec.Clone())

	// Misc and routes run concurrently and merge in arrival order. Each
	// failure is recovered to an empty contribution; the goroutines always
	// return nil so the join waits for both to settle rather than racing
	// to the first error.
	var recMu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		misc, err := o.stages.FetchMisc(gctx, query, *basic)
		if err != nil {
			log.Warn("guide: misc stage failed", zap.Error(err))
			return nil
		}
		recMu.Lock()
		misc.ApplyTo(&rec)
		snap := rec.Clone()
		recMu.Unlock()
		log.Info("guide: misc merged")
		o.emit(generation, onUpdate, snap)
		return nil
	})

	g.Go(func() error {
		routes, err := o.stages.FetchRoutes(gctx, query, *basic)
		if err != nil {
			log.Warn("guide: routes stage failed", zap.Error(err))
			return nil
		}
		recMu.Lock()
		routes.ApplyTo(&rec)
		snap := rec.Clone()
		recMu.Unlock()
		log.Info("guide: routes merged", zap.Int("segments", len(rec.RouteSegments)))
		o.emit(generation, onUpdate, snap)
		return nil
	})

	_ = g.Wait() // all-settled join; stage errors were already recovered

	if o.current() != generation {
		// Superseded mid-flight: hand back what we built, persist nothing.
		return &rec, nil
	}
	if err := o.repo.Persist(ctx, &rec); err != nil {
		// Store writes are expected to succeed; a failure degrades to an
		// unpersisted but fully usable record.
		log.Warn("guide: persist failed", zap.Error(err))
	} else {
		log.Info("guide: persisted", zap.String("name", rec.Name))
	}
	return &rec, nil
}

// SaveEdit re-persists a user-edited record immediately.
func (o *Orchestrator) SaveEdit(ctx context.Context, rec *model.TrailRecord) error {
	if rec.Name == "" {
		return eris.New("guide: cannot save a nameless record")
	}
	return o.repo.Persist(ctx, rec)
}

// begin supersedes any in-flight search and returns this request's
// generation plus a context cancelled by the next begin.
func (o *Orchestrator) begin(parent context.Context) (uint64, context.Context) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.cancel != nil {
		o.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	o.cancel = cancel
	o.generation++
	return o.generation, ctx
}

func (o *Orchestrator) current() uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.generation
}

// emit delivers a snapshot unless the request has been superseded.
func (o *Orchestrator) emit(generation uint64, onUpdate func(model.TrailRecord), snap model.TrailRecord) {
	if onUpdate == nil || o.current() != generation {
		return
	}
	onUpdate(snap)
}
