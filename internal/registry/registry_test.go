package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/HarmoniqaOrg/PharmOS/internal/models"
	"github.com/HarmoniqaOrg/PharmOS/internal/storage"
)

// memStore is an in-memory StateStore. failAfter makes the Nth commit
// from now fail, which is how the deployment compensation path is
// exercised.
type memStore struct {
	models      map[string]*models.ModelEntry
	versions    map[string]*models.VersionRecord
	deployments map[string]*models.DeploymentSlot
	failAfter   int
	commits     int
}

func newMemStore() *memStore {
	return &memStore{
		models:      make(map[string]*models.ModelEntry),
		versions:    make(map[string]*models.VersionRecord),
		deployments: make(map[string]*models.DeploymentSlot),
	}
}

func (s *memStore) Load(ctx context.Context) ([]*models.ModelEntry, []*models.VersionRecord, []*models.DeploymentSlot, error) {
	var entries []*models.ModelEntry
	var records []*models.VersionRecord
	var slots []*models.DeploymentSlot
	for _, e := range s.models {
		entries = append(entries, e)
	}
	for _, r := range s.versions {
		records = append(records, r)
	}
	for _, d := range s.deployments {
		slots = append(slots, d)
	}
	return entries, records, slots, nil
}

func (s *memStore) Commit(ctx context.Context, cs ChangeSet) error {
	s.commits++
	if s.failAfter > 0 {
		s.failAfter--
		if s.failAfter == 0 {
			return fmt.Errorf("simulated store failure")
		}
	}
	for _, e := range cs.Models {
		s.models[e.ModelID] = e
	}
	for _, r := range cs.Versions {
		s.versions[r.Key()] = r
	}
	for _, k := range cs.RemoveVersions {
		delete(s.versions, models.VersionKey(k.ModelID, k.Version))
	}
	for _, d := range cs.Deployments {
		s.deployments[d.DeploymentName] = d
	}
	return nil
}

// testModel is a minimal artifact for exercising the registry.
type testModel struct {
	Name   string  `json:"name"`
	Weight float64 `json:"weight"`
}

func (m *testModel) ModelType() string { return "test" }

func (m *testModel) Serialize() ([]byte, error) { return json.Marshal(m) }

func testCodecs() *Codecs {
	c := NewCodecs()
	c.Register("test", func(payload []byte) (ModelArtifact, error) {
		var m testModel
		if err := json.Unmarshal(payload, &m); err != nil {
			return nil, err
		}
		return &m, nil
	})
	return c
}

func newTestRegistry(t *testing.T) (*Registry, *memStore, *storage.LocalStore) {
	t.Helper()

	store := newMemStore()
	artifacts, err := storage.NewLocalStore(t.TempDir())
	assert.NoError(t, err)

	reg, err := New(context.Background(), store, artifacts, testCodecs(), nil)
	assert.NoError(t, err)
	return reg, store, artifacts
}

// stubNow pins the clock and advances it by a second on every call, so
// created_at ordering is deterministic.
func stubNow(t *testing.T) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}
	t.Cleanup(func() { now = time.Now })
}

func TestRegisterModel(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ctx := context.Background()

	entry, err := reg.RegisterModel(ctx, "tox-predictor", "test", "acute toxicity")
	assert.NoError(t, err)
	assert.Equal(t, "tox-predictor", entry.ModelID)
	assert.Equal(t, "test", entry.ModelType)
	assert.Equal(t, models.ModelStatusActive, entry.Status)
	assert.Equal(t, 0, entry.TotalVersions)
	assert.Empty(t, entry.LatestVersion)

	// durable
	assert.NotNil(t, store.models["tox-predictor"])

	_, err = reg.RegisterModel(ctx, "tox-predictor", "other-type", "duplicate attempt")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// the original entry survives the rejected registration untouched
	kept, err := reg.GetModel("tox-predictor")
	assert.NoError(t, err)
	assert.Equal(t, "test", kept.ModelType)
	assert.Equal(t, "acute toxicity", kept.Description)
	assert.Equal(t, entry.CreatedAt, kept.CreatedAt)
	assert.Equal(t, "acute toxicity", store.models["tox-predictor"].Description)
}

func TestGetModelNotFound(t *testing.T) {
	reg, _, _ := newTestRegistry(t)

	_, err := reg.GetModel("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListModelsSorted(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	for _, id := range []string{"zeta", "alpha", "mid"} {
		_, err := reg.RegisterModel(ctx, id, "test", "")
		assert.NoError(t, err)
	}

	entries := reg.ListModels()
	assert.Len(t, entries, 3)
	assert.Equal(t, "alpha", entries[0].ModelID)
	assert.Equal(t, "mid", entries[1].ModelID)
	assert.Equal(t, "zeta", entries[2].ModelID)
}

func TestArchiveModel(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.RegisterModel(ctx, "m1", "test", "")
	assert.NoError(t, err)

	archived, err := reg.ArchiveModel(ctx, "m1")
	assert.NoError(t, err)
	assert.Equal(t, models.ModelStatusArchived, archived.Status)

	// idempotent
	again, err := reg.ArchiveModel(ctx, "m1")
	assert.NoError(t, err)
	assert.Equal(t, models.ModelStatusArchived, again.Status)

	_, err = reg.ArchiveModel(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegisterModelCommitFailureLeavesNoState(t *testing.T) {
	reg, store, _ := newTestRegistry(t)
	ctx := context.Background()

	store.failAfter = 1
	_, err := reg.RegisterModel(ctx, "m1", "test", "")
	assert.ErrorIs(t, err, ErrPersistence)

	// failed commit must not be visible to readers
	_, err = reg.GetModel("m1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, reg.ListModels())
}

func TestNewRehydratesState(t *testing.T) {
	store := newMemStore()
	artifacts, err := storage.NewLocalStore(t.TempDir())
	assert.NoError(t, err)
	ctx := context.Background()

	reg, err := New(ctx, store, artifacts, testCodecs(), nil)
	assert.NoError(t, err)
	_, err = reg.RegisterModel(ctx, "m1", "test", "")
	assert.NoError(t, err)
	_, err = reg.CreateVersion(ctx, "m1", "1.0.0", &testModel{Name: "a"}, CreateVersionOptions{})
	assert.NoError(t, err)
	_, err = reg.Deploy(ctx, "m1", "1.0.0", "production", true)
	assert.NoError(t, err)

	// a fresh registry over the same store sees everything
	reg2, err := New(ctx, store, artifacts, testCodecs(), nil)
	assert.NoError(t, err)

	entry, err := reg2.GetModel("m1")
	assert.NoError(t, err)
	assert.Equal(t, "1.0.0", entry.LatestVersion)
	assert.True(t, reg2.HasVersion("m1", "1.0.0"))

	slot, _, err := reg2.DeploymentStatus(ctx, "production")
	assert.NoError(t, err)
	assert.NotNil(t, slot)
	assert.Equal(t, "1.0.0", slot.Version)
}

func TestErrorTaxonomyIsDistinguishable(t *testing.T) {
	reg, _, _ := newTestRegistry(t)
	ctx := context.Background()

	_, err := reg.GetModel("nope")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrAlreadyExists))

	_, _ = reg.RegisterModel(ctx, "m1", "test", "")
	_, err = reg.RegisterModel(ctx, "m1", "test", "")
	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assert.False(t, errors.Is(err, ErrNotFound))
}
