package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/HarmoniqaOrg/PharmOS/internal/models"
	"github.com/HarmoniqaOrg/PharmOS/internal/storage"
)

// CreateVersionOptions carries the optional inputs of CreateVersion.
type CreateVersionOptions struct {
	TrainingData       []string
	PerformanceMetrics map[string]float64
	Metadata           map[string]interface{}
	ParentVersion      string
}

// CreateVersion stores a new immutable version of a registered model.
//
// Ordering is deliberate: the artifact is written and fingerprinted
// before any metadata is committed, and the version record plus catalog
// update commit together. The only possible inconsistency after a crash
// is therefore "artifact written, metadata not committed", which the
// orphan sweeper reclaims.
func (r *Registry) CreateVersion(ctx context.Context, modelID, version string, artifact ModelArtifact, opts CreateVersionOptions) (*models.VersionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.current.Load()
	entry, ok := snap.models[modelID]
	if !ok {
		return nil, fmt.Errorf("%w: model %q is not registered", ErrNotFound, modelID)
	}
	if entry.Status == models.ModelStatusArchived {
		return nil, fmt.Errorf("%w: model %q is archived", ErrInvalidOperation, modelID)
	}
	key := models.VersionKey(modelID, version)
	if _, ok := snap.versions[key]; ok {
		return nil, fmt.Errorf("%w: version %q for model %q", ErrAlreadyExists, version, modelID)
	}

	trainingHash := ""
	if len(opts.TrainingData) > 0 {
		trainingHash = storage.TrainingDataDigest(opts.TrainingData)
	}

	payload, err := artifact.Serialize()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize model instance: %w", err)
	}

	digest, err := r.artifacts.Put(ctx, modelID, version, payload)
	if err != nil {
		return nil, fmt.Errorf("%w: storing artifact: %v", ErrPersistence, err)
	}

	record := &models.VersionRecord{
		ModelID:            modelID,
		Version:            version,
		ModelType:          entry.ModelType,
		CreatedAt:          now(),
		Metadata:           models.JSON(opts.Metadata),
		PerformanceMetrics: models.FloatMap(opts.PerformanceMetrics),
		TrainingDataHash:   trainingHash,
		ModelHash:          digest,
		DeploymentStatus:   models.DeploymentStatusCreated,
		ParentVersion:      opts.ParentVersion,
		Tags:               models.StringList{},
	}
	if record.Metadata == nil {
		record.Metadata = models.JSON{}
	}
	if record.PerformanceMetrics == nil {
		record.PerformanceMetrics = models.FloatMap{}
	}

	updated := entry.Clone()
	updated.LatestVersion = version
	updated.TotalVersions++

	next := snap.clone()
	next.versions[key] = record
	next.models[modelID] = updated

	cs := ChangeSet{
		Models:   []*models.ModelEntry{updated},
		Versions: []*models.VersionRecord{record},
	}
	if err := r.commit(ctx, next, cs); err != nil {
		// The payload is already durable; flag the orphan for the sweeper
		// rather than guessing at cleanup.
		r.log.Warn("version metadata commit failed, artifact orphaned",
			zap.String("model_id", modelID), zap.String("version", version))
		return nil, err
	}

	r.log.Info("version created",
		zap.String("model_id", modelID),
		zap.String("version", version),
		zap.String("model_hash", digest))
	return record, nil
}

// LoadedModel is a deserialized model instance plus its version metadata.
type LoadedModel struct {
	Instance ModelArtifact
	Record   *models.VersionRecord
}

// LoadModel retrieves and deserializes a stored version. An empty version
// resolves to the lineage's latest version. The payload is verified
// against the recorded model hash before decoding.
func (r *Registry) LoadModel(ctx context.Context, modelID, version string) (*LoadedModel, error) {
	snap := r.current.Load()
	entry, ok := snap.models[modelID]
	if !ok {
		return nil, fmt.Errorf("%w: model %q", ErrNotFound, modelID)
	}
	if version == "" {
		if entry.LatestVersion == "" {
			return nil, fmt.Errorf("%w: no versions available for model %q", ErrNotFound, modelID)
		}
		version = entry.LatestVersion
	}
	record, ok := snap.versions[models.VersionKey(modelID, version)]
	if !ok {
		return nil, fmt.Errorf("%w: version %q for model %q", ErrNotFound, version, modelID)
	}

	payload, err := r.artifacts.Get(ctx, modelID, version)
	if err != nil {
		if errors.Is(err, storage.ErrArtifactNotFound) {
			return nil, fmt.Errorf("%w: artifact for %s", ErrNotFound, record.Key())
		}
		return nil, fmt.Errorf("%w: fetching artifact: %v", ErrPersistence, err)
	}
	if storage.Digest(payload) != record.ModelHash {
		return nil, fmt.Errorf("%w: artifact digest mismatch for %s", ErrPersistence, record.Key())
	}

	instance, err := r.codecs.Decode(record.ModelType, payload)
	if err != nil {
		return nil, err
	}
	return &LoadedModel{Instance: instance, Record: record}, nil
}

// HasVersion reports whether a version record exists. Used by the orphan
// sweeper to reconcile stored artifacts.
func (r *Registry) HasVersion(modelID, version string) bool {
	snap := r.current.Load()
	_, ok := snap.versions[models.VersionKey(modelID, version)]
	return ok
}

// TagVersion adds a tag with set semantics; re-adding is a no-op.
func (r *Registry) TagVersion(ctx context.Context, modelID, version, tag string) (*models.VersionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.current.Load()
	record, ok := snap.versions[models.VersionKey(modelID, version)]
	if !ok {
		return nil, fmt.Errorf("%w: version %q for model %q", ErrNotFound, version, modelID)
	}
	if record.Tags.Contains(tag) {
		return record, nil
	}

	tagged := record.Clone()
	tagged.Tags = append(tagged.Tags, tag)

	next := snap.clone()
	next.versions[tagged.Key()] = tagged
	if err := r.commit(ctx, next, ChangeSet{Versions: []*models.VersionRecord{tagged}}); err != nil {
		return nil, err
	}
	return tagged, nil
}

// UpdatePerformanceMetrics merges metrics into the record, last write
// wins per key. Model hash and deployment status are unaffected.
func (r *Registry) UpdatePerformanceMetrics(ctx context.Context, modelID, version string, metrics map[string]float64) (*models.VersionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.current.Load()
	record, ok := snap.versions[models.VersionKey(modelID, version)]
	if !ok {
		return nil, fmt.Errorf("%w: version %q for model %q", ErrNotFound, version, modelID)
	}

	updated := record.Clone()
	for k, v := range metrics {
		updated.PerformanceMetrics[k] = v
	}

	next := snap.clone()
	next.versions[updated.Key()] = updated
	if err := r.commit(ctx, next, ChangeSet{Versions: []*models.VersionRecord{updated}}); err != nil {
		return nil, err
	}
	return updated, nil
}

// VersionComparison is the result of CompareVersions.
type VersionComparison struct {
	ModelID             string                   `json:"model_id"`
	Version1            *models.VersionRecord    `json:"version1"`
	Version2            *models.VersionRecord    `json:"version2"`
	PerformanceDelta    map[string]float64       `json:"performance_delta"`
	ModelHashDiffers    bool                     `json:"model_hash_differs"`
	TrainingDataDiffers bool                     `json:"training_data_differs"`
}

// CompareVersions reports both records plus per-metric deltas. A metric
// missing from one side counts as 0.0 — a documented policy that
// conflates "never measured" with "measured as zero", preserved here
// rather than reinterpreted.
func (r *Registry) CompareVersions(modelID, version1, version2 string) (*VersionComparison, error) {
	snap := r.current.Load()
	v1, ok := snap.versions[models.VersionKey(modelID, version1)]
	if !ok {
		return nil, fmt.Errorf("%w: version %q for model %q", ErrNotFound, version1, modelID)
	}
	v2, ok := snap.versions[models.VersionKey(modelID, version2)]
	if !ok {
		return nil, fmt.Errorf("%w: version %q for model %q", ErrNotFound, version2, modelID)
	}

	delta := make(map[string]float64)
	for k := range v1.PerformanceMetrics {
		delta[k] = v2.PerformanceMetrics[k] - v1.PerformanceMetrics[k]
	}
	for k := range v2.PerformanceMetrics {
		if _, seen := delta[k]; !seen {
			delta[k] = v2.PerformanceMetrics[k]
		}
	}

	return &VersionComparison{
		ModelID:             modelID,
		Version1:            v1,
		Version2:            v2,
		PerformanceDelta:    delta,
		ModelHashDiffers:    v1.ModelHash != v2.ModelHash,
		TrainingDataDiffers: v1.TrainingDataHash != v2.TrainingDataHash,
	}, nil
}

// ListVersions returns version records newest first. An empty modelID
// lists across all models.
func (r *Registry) ListVersions(modelID string) ([]*models.VersionRecord, error) {
	snap := r.current.Load()

	var records []*models.VersionRecord
	if modelID != "" {
		if _, ok := snap.models[modelID]; !ok {
			return nil, fmt.Errorf("%w: model %q", ErrNotFound, modelID)
		}
		records = snap.modelVersions(modelID)
	} else {
		records = make([]*models.VersionRecord, 0, len(snap.versions))
		for _, r := range snap.versions {
			records = append(records, r)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].Version > records[j].Version
	})
	return records, nil
}

// GetVersion returns one version record.
func (r *Registry) GetVersion(modelID, version string) (*models.VersionRecord, error) {
	snap := r.current.Load()
	record, ok := snap.versions[models.VersionKey(modelID, version)]
	if !ok {
		return nil, fmt.Errorf("%w: version %q for model %q", ErrNotFound, version, modelID)
	}
	return record, nil
}

// DeleteVersion removes a version and its artifact. Deployed versions and
// the lineage's latest version are protected unless force is set. If the
// deleted version was latest, the remaining version with the greatest
// creation time becomes latest.
func (r *Registry) DeleteVersion(ctx context.Context, modelID, version string, force bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.current.Load()
	key := models.VersionKey(modelID, version)
	record, ok := snap.versions[key]
	if !ok {
		return fmt.Errorf("%w: version %q for model %q", ErrNotFound, version, modelID)
	}
	entry := snap.models[modelID]

	if record.DeploymentStatus == models.DeploymentStatusDeployed && !force {
		return fmt.Errorf("%w: cannot delete deployed version %q; use force to override", ErrInvalidOperation, version)
	}
	if entry != nil && entry.LatestVersion == version && !force {
		return fmt.Errorf("%w: cannot delete latest version %q; use force to override", ErrInvalidOperation, version)
	}

	if err := r.artifacts.Delete(ctx, modelID, version); err != nil {
		return fmt.Errorf("%w: deleting artifact: %v", ErrPersistence, err)
	}

	next := snap.clone()
	delete(next.versions, key)

	cs := ChangeSet{RemoveVersions: []VersionKey{{ModelID: modelID, Version: version}}}
	if entry != nil {
		updated := entry.Clone()
		updated.TotalVersions--
		if updated.LatestVersion == version {
			updated.LatestVersion = latestRemaining(next, modelID)
		}
		next.models[modelID] = updated
		cs.Models = []*models.ModelEntry{updated}
	}

	if err := r.commit(ctx, next, cs); err != nil {
		return err
	}

	r.log.Info("version deleted",
		zap.String("model_id", modelID),
		zap.String("version", version),
		zap.Bool("force", force))
	return nil
}

// latestRemaining picks the surviving version with the greatest creation
// time (version string breaks exact ties), or "" if none remain.
func latestRemaining(snap *snapshot, modelID string) string {
	var best *models.VersionRecord
	for _, r := range snap.modelVersions(modelID) {
		if best == nil ||
			r.CreatedAt.After(best.CreatedAt) ||
			(r.CreatedAt.Equal(best.CreatedAt) && r.Version > best.Version) {
			best = r
		}
	}
	if best == nil {
		return ""
	}
	return best.Version
}
