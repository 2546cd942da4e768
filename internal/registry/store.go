package registry

import (
	"context"

	"github.com/HarmoniqaOrg/PharmOS/internal/models"
)

// VersionKey addresses one version record for deletion.
type VersionKey struct {
	ModelID string
	Version string
}

// ChangeSet is the durable delta of one mutating operation. A store
// applies the whole set atomically or not at all, which is what lets the
// registry swap its snapshot pointer only after a successful commit.
type ChangeSet struct {
	Models         []*models.ModelEntry
	Versions       []*models.VersionRecord
	RemoveVersions []VersionKey
	Deployments    []*models.DeploymentSlot
}

func (cs ChangeSet) Empty() bool {
	return len(cs.Models) == 0 && len(cs.Versions) == 0 &&
		len(cs.RemoveVersions) == 0 && len(cs.Deployments) == 0
}

// StateStore persists the three registry collections. Load is called once
// at construction to rebuild the in-memory snapshot after a restart.
type StateStore interface {
	Load(ctx context.Context) ([]*models.ModelEntry, []*models.VersionRecord, []*models.DeploymentSlot, error)
	Commit(ctx context.Context, cs ChangeSet) error
}
