package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/HarmoniqaOrg/PharmOS/internal/models"
	"github.com/HarmoniqaOrg/PharmOS/internal/storage"
)

// stubbed in tests
var now = time.Now

// Registry is the single owner of the model catalog, version records and
// deployment slots. It is constructed once at startup and passed by
// handle to every collaborator.
//
// Readers resolve against an immutable snapshot behind an atomic pointer
// and never block. Mutations run under one writer mutex: they build a new
// snapshot, commit the delta through the StateStore, and only then swap
// the pointer, so a failed commit is invisible to readers.
type Registry struct {
	mu        sync.Mutex
	current   atomic.Pointer[snapshot]
	store     StateStore
	artifacts storage.ArtifactStore
	codecs    *Codecs
	cache     *slotCache
	log       *zap.Logger
}

// New builds a registry and rehydrates its snapshot from the state store.
func New(ctx context.Context, store StateStore, artifacts storage.ArtifactStore, codecs *Codecs, log *zap.Logger) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if codecs == nil {
		codecs = NewCodecs()
	}

	entries, records, slots, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading registry state: %v", ErrPersistence, err)
	}

	snap := newSnapshot()
	for _, e := range entries {
		snap.models[e.ModelID] = e
	}
	for _, r := range records {
		snap.versions[r.Key()] = r
	}
	for _, s := range slots {
		snap.deployments[s.DeploymentName] = s
	}

	reg := &Registry{
		store:     store,
		artifacts: artifacts,
		codecs:    codecs,
		log:       log,
	}
	reg.current.Store(snap)

	log.Info("registry state loaded",
		zap.Int("models", len(snap.models)),
		zap.Int("versions", len(snap.versions)),
		zap.Int("deployments", len(snap.deployments)))

	return reg, nil
}

// EnableSlotCache turns on read-through caching of active deployment
// slots. Entries are invalidated on deploy and rollback.
func (r *Registry) EnableSlotCache(client *redis.Client, ttl time.Duration) {
	r.cache = newSlotCache(client, ttl)
}

// commit persists the delta and, only on success, publishes the snapshot.
func (r *Registry) commit(ctx context.Context, next *snapshot, cs ChangeSet) error {
	if err := r.store.Commit(ctx, cs); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	r.current.Store(next)
	return nil
}

// RegisterModel creates a new model lineage with no versions.
func (r *Registry) RegisterModel(ctx context.Context, modelID, modelType, description string) (*models.ModelEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.current.Load()
	if _, ok := snap.models[modelID]; ok {
		return nil, fmt.Errorf("%w: model %q", ErrAlreadyExists, modelID)
	}

	entry := &models.ModelEntry{
		ModelID:     modelID,
		ModelType:   modelType,
		Description: description,
		CreatedAt:   now(),
		Status:      models.ModelStatusActive,
	}

	next := snap.clone()
	next.models[modelID] = entry
	if err := r.commit(ctx, next, ChangeSet{Models: []*models.ModelEntry{entry}}); err != nil {
		return nil, err
	}

	r.log.Info("model registered", zap.String("model_id", modelID), zap.String("model_type", modelType))
	return entry, nil
}

// GetModel returns the catalog entry for modelID.
func (r *Registry) GetModel(modelID string) (*models.ModelEntry, error) {
	snap := r.current.Load()
	entry, ok := snap.models[modelID]
	if !ok {
		return nil, fmt.Errorf("%w: model %q", ErrNotFound, modelID)
	}
	return entry, nil
}

// ListModels returns every catalog entry ordered by model id.
func (r *Registry) ListModels() []*models.ModelEntry {
	snap := r.current.Load()
	entries := make([]*models.ModelEntry, 0, len(snap.models))
	for _, e := range snap.models {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ModelID < entries[j].ModelID
	})
	return entries
}

// ArchiveModel flips a lineage to archived. Archived lineages keep their
// versions but refuse new ones; entries are never removed.
func (r *Registry) ArchiveModel(ctx context.Context, modelID string) (*models.ModelEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.current.Load()
	entry, ok := snap.models[modelID]
	if !ok {
		return nil, fmt.Errorf("%w: model %q", ErrNotFound, modelID)
	}
	if entry.Status == models.ModelStatusArchived {
		return entry, nil
	}

	archived := entry.Clone()
	archived.Status = models.ModelStatusArchived

	next := snap.clone()
	next.models[modelID] = archived
	if err := r.commit(ctx, next, ChangeSet{Models: []*models.ModelEntry{archived}}); err != nil {
		return nil, err
	}

	r.log.Info("model archived", zap.String("model_id", modelID))
	return archived, nil
}
