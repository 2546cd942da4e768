package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(t.TempDir())
	assert.NoError(t, err)
	return store
}

func TestLocalStorePutGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	payload := []byte(`{"name":"qsar-v1"}`)
	digest, err := store.Put(ctx, "m1", "1.0.0", payload)
	assert.NoError(t, err)

	sum := sha256.Sum256(payload)
	assert.Equal(t, hex.EncodeToString(sum[:]), digest)

	got, err := store.Get(ctx, "m1", "1.0.0")
	assert.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestLocalStorePutOverwrites(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "m1", "1.0.0", []byte("old"))
	assert.NoError(t, err)
	digest, err := store.Put(ctx, "m1", "1.0.0", []byte("new"))
	assert.NoError(t, err)
	assert.Equal(t, Digest([]byte("new")), digest)

	got, err := store.Get(ctx, "m1", "1.0.0")
	assert.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestLocalStoreGetMissing(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "m1", "1.0.0")
	assert.ErrorIs(t, err, ErrArtifactNotFound)
}

func TestLocalStoreDeleteIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Put(ctx, "m1", "1.0.0", []byte("x"))
	assert.NoError(t, err)

	assert.NoError(t, store.Delete(ctx, "m1", "1.0.0"))
	_, err = store.Get(ctx, "m1", "1.0.0")
	assert.ErrorIs(t, err, ErrArtifactNotFound)

	// repeated delete succeeds
	assert.NoError(t, store.Delete(ctx, "m1", "1.0.0"))
}

func TestLocalStoreListKeys(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	keys, err := store.ListKeys()
	assert.NoError(t, err)
	assert.Empty(t, keys)

	_, err = store.Put(ctx, "m1", "1.0.0", []byte("a"))
	assert.NoError(t, err)
	_, err = store.Put(ctx, "m1", "2.0.0", []byte("b"))
	assert.NoError(t, err)
	_, err = store.Put(ctx, "m2", "1.0.0", []byte("c"))
	assert.NoError(t, err)

	keys, err = store.ListKeys()
	assert.NoError(t, err)
	assert.Len(t, keys, 3)

	addresses := make(map[string]bool)
	for _, k := range keys {
		addresses[k.ModelID+":"+k.Version] = true
		// commit time comes from the filesystem
		assert.WithinDuration(t, time.Now(), k.ModTime, time.Minute)
	}
	assert.True(t, addresses["m1:1.0.0"])
	assert.True(t, addresses["m1:2.0.0"])
	assert.True(t, addresses["m2:1.0.0"])
}

func TestDigest(t *testing.T) {
	assert.Equal(t, Digest([]byte("abc")), Digest([]byte("abc")))
	assert.NotEqual(t, Digest([]byte("abc")), Digest([]byte("abd")))
	assert.Len(t, Digest(nil), 64)
}

func TestTrainingDataDigestOrderIndependent(t *testing.T) {
	a := TrainingDataDigest([]string{"batch-1", "batch-2", "batch-3"})
	b := TrainingDataDigest([]string{"batch-3", "batch-1", "batch-2"})
	assert.Equal(t, a, b)

	c := TrainingDataDigest([]string{"batch-1"})
	assert.NotEqual(t, a, c)
}

func TestTrainingDataDigestDoesNotMutateInput(t *testing.T) {
	refs := []string{"z", "a", "m"}
	TrainingDataDigest(refs)
	assert.Equal(t, []string{"z", "a", "m"}, refs)
}
