package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
)

// ErrArtifactNotFound is returned by Get when no payload is stored
// under the requested (model id, version) address.
var ErrArtifactNotFound = errors.New("artifact not found")

// ArtifactStore persists opaque serialized model payloads addressed by
// (model id, version). Put must not make a payload visible to readers
// until the write has fully completed, and returns the content digest of
// the bytes written. Delete is idempotent after the first successful call.
type ArtifactStore interface {
	Put(ctx context.Context, modelID, version string, payload []byte) (string, error)
	Get(ctx context.Context, modelID, version string) ([]byte, error)
	Delete(ctx context.Context, modelID, version string) error
}

// Digest returns the hex sha256 content digest of payload. It is an
// integrity fingerprint, not a security guarantee.
func Digest(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// TrainingDataDigest fingerprints a set of training inputs. Inputs are
// sorted into canonical order first so the digest is independent of the
// order the caller supplied them in.
func TrainingDataDigest(inputs []string) string {
	sorted := make([]string, len(inputs))
	copy(sorted, inputs)
	sort.Strings(sorted)
	return Digest([]byte(strings.Join(sorted, "")))
}
