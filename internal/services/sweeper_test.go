package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/HarmoniqaOrg/PharmOS/internal/models"
	"github.com/HarmoniqaOrg/PharmOS/internal/registry"
	"github.com/HarmoniqaOrg/PharmOS/internal/storage"
)

// nullStore keeps nothing; sweeper tests only care about the snapshot
// the registry builds in memory.
type nullStore struct{}

func (nullStore) Load(ctx context.Context) ([]*models.ModelEntry, []*models.VersionRecord, []*models.DeploymentSlot, error) {
	return nil, nil, nil, nil
}

func (nullStore) Commit(ctx context.Context, cs registry.ChangeSet) error { return nil }

func setupSweeperFixture(t *testing.T) (*registry.Registry, *storage.LocalStore, string) {
	t.Helper()

	root := t.TempDir()
	store, err := storage.NewLocalStore(root)
	assert.NoError(t, err)

	reg, err := registry.New(context.Background(), nullStore{}, store, nil, nil)
	assert.NoError(t, err)

	ctx := context.Background()
	_, err = reg.RegisterModel(ctx, "m1", "qsar", "")
	assert.NoError(t, err)
	_, err = reg.CreateVersion(ctx, "m1", "1.0.0",
		&registry.RawArtifact{Type: "qsar", Payload: []byte("tracked")}, registry.CreateVersionOptions{})
	assert.NoError(t, err)

	// an artifact no version record points at, old enough to be past
	// any in-flight metadata commit
	_, err = store.Put(ctx, "m1", "0.9.0", []byte("orphan"))
	assert.NoError(t, err)
	backdateArtifact(t, root, "m1", "0.9.0")

	return reg, store, root
}

func backdateArtifact(t *testing.T, root, modelID, version string) {
	t.Helper()
	old := time.Now().Add(-time.Hour)
	path := filepath.Join(root, modelID, version, "model.bin")
	assert.NoError(t, os.Chtimes(path, old, old))
}

func TestSweepReportsOrphans(t *testing.T) {
	reg, store, _ := setupSweeperFixture(t)

	sweeper := NewOrphanSweeper(reg, store, time.Minute, false, nil)
	assert.Equal(t, 1, sweeper.Sweep())

	// report-only mode keeps the payload
	_, err := store.Get(context.Background(), "m1", "0.9.0")
	assert.NoError(t, err)

	// counted again on the next pass
	assert.Equal(t, 1, sweeper.Sweep())
}

func TestSweepRemovesOrphans(t *testing.T) {
	reg, store, _ := setupSweeperFixture(t)
	ctx := context.Background()

	sweeper := NewOrphanSweeper(reg, store, time.Minute, true, nil)
	assert.Equal(t, 1, sweeper.Sweep())

	_, err := store.Get(ctx, "m1", "0.9.0")
	assert.ErrorIs(t, err, storage.ErrArtifactNotFound)

	// the tracked artifact is untouched
	payload, err := store.Get(ctx, "m1", "1.0.0")
	assert.NoError(t, err)
	assert.Equal(t, []byte("tracked"), payload)

	assert.Equal(t, 0, sweeper.Sweep())
}

func TestSweepLeavesFreshArtifactsAlone(t *testing.T) {
	reg, store, root := setupSweeperFixture(t)
	ctx := context.Background()

	// a just-written payload with no record yet, as during version
	// creation between the artifact write and the metadata commit
	_, err := store.Put(ctx, "m1", "2.0.0", []byte("in flight"))
	assert.NoError(t, err)

	sweeper := NewOrphanSweeper(reg, store, time.Minute, true, nil)
	assert.Equal(t, 1, sweeper.Sweep())

	// only the backdated orphan was removed
	payload, err := store.Get(ctx, "m1", "2.0.0")
	assert.NoError(t, err)
	assert.Equal(t, []byte("in flight"), payload)

	// once past the grace window it counts like any other orphan
	backdateArtifact(t, root, "m1", "2.0.0")
	assert.Equal(t, 1, sweeper.Sweep())
	_, err = store.Get(ctx, "m1", "2.0.0")
	assert.ErrorIs(t, err, storage.ErrArtifactNotFound)
}

func TestSweepCleanStore(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	assert.NoError(t, err)
	reg, err := registry.New(context.Background(), nullStore{}, store, nil, nil)
	assert.NoError(t, err)

	sweeper := NewOrphanSweeper(reg, store, time.Minute, true, nil)
	assert.Equal(t, 0, sweeper.Sweep())
}

func TestSweeperStartStop(t *testing.T) {
	reg, store, _ := setupSweeperFixture(t)

	sweeper := NewOrphanSweeper(reg, store, 10*time.Millisecond, false, nil)
	done := make(chan struct{})
	go func() {
		sweeper.Start()
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	sweeper.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop")
	}
}
