package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const artifactFileName = "model.bin"

// LocalStore keeps one payload per (model id, version) under
// root/<model_id>/<version>/model.bin. Writes go to a temp file in the
// same directory and are renamed into place, so a reader never observes
// a partially written payload at the final path.
type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact root: %w", err)
	}
	return &LocalStore{root: root}, nil
}

func (s *LocalStore) path(modelID, version string) string {
	return filepath.Join(s.root, modelID, version, artifactFileName)
}

func (s *LocalStore) Put(ctx context.Context, modelID, version string, payload []byte) (string, error) {
	dir := filepath.Dir(s.path(modelID, version))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create artifact dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, artifactFileName+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp artifact: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close artifact: %w", err)
	}
	if err := os.Rename(tmpName, s.path(modelID, version)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to commit artifact: %w", err)
	}

	// The digest is recorded from the committed bytes, never from the
	// in-memory payload, so a short write can never be fingerprinted.
	written, err := os.ReadFile(s.path(modelID, version))
	if err != nil {
		return "", fmt.Errorf("failed to read back artifact: %w", err)
	}
	return Digest(written), nil
}

func (s *LocalStore) Get(ctx context.Context, modelID, version string) ([]byte, error) {
	payload, err := os.ReadFile(s.path(modelID, version))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s:%s", ErrArtifactNotFound, modelID, version)
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return payload, nil
}

func (s *LocalStore) Delete(ctx context.Context, modelID, version string) error {
	// RemoveAll succeeds on a missing path, which gives Delete its
	// idempotency on repeated calls.
	if err := os.RemoveAll(filepath.Join(s.root, modelID, version)); err != nil {
		return fmt.Errorf("failed to delete artifact: %w", err)
	}
	return nil
}

// ArtifactKey addresses one stored payload. ModTime is when the payload
// was committed; the orphan sweeper uses it to leave freshly written
// artifacts alone while their metadata commit may still be in flight.
type ArtifactKey struct {
	ModelID string
	Version string
	ModTime time.Time
}

// ListKeys enumerates every stored payload. Used by the orphan sweeper to
// reconcile artifacts against the version records.
func (s *LocalStore) ListKeys() ([]ArtifactKey, error) {
	var keys []ArtifactKey

	modelDirs, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifact root: %w", err)
	}
	for _, md := range modelDirs {
		if !md.IsDir() {
			continue
		}
		versionDirs, err := os.ReadDir(filepath.Join(s.root, md.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to list model dir: %w", err)
		}
		for _, vd := range versionDirs {
			if !vd.IsDir() {
				continue
			}
			if info, err := os.Stat(s.path(md.Name(), vd.Name())); err == nil {
				keys = append(keys, ArtifactKey{
					ModelID: md.Name(),
					Version: vd.Name(),
					ModTime: info.ModTime(),
				})
			}
		}
	}
	return keys, nil
}
