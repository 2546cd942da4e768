package registry

import (
	"github.com/HarmoniqaOrg/PharmOS/internal/models"
)

// snapshot is one immutable view of the three registry collections.
// Mutating operations build a new snapshot and commit it by swapping the
// registry's current pointer; entries reachable from a published snapshot
// are never mutated in place.
type snapshot struct {
	models      map[string]*models.ModelEntry     // keyed by model_id
	versions    map[string]*models.VersionRecord  // keyed by model_id:version
	deployments map[string]*models.DeploymentSlot // keyed by deployment_name
}

func newSnapshot() *snapshot {
	return &snapshot{
		models:      make(map[string]*models.ModelEntry),
		versions:    make(map[string]*models.VersionRecord),
		deployments: make(map[string]*models.DeploymentSlot),
	}
}

// clone shallow-copies the maps; callers replace entries wholesale with
// cloned structs rather than editing shared ones.
func (s *snapshot) clone() *snapshot {
	next := &snapshot{
		models:      make(map[string]*models.ModelEntry, len(s.models)),
		versions:    make(map[string]*models.VersionRecord, len(s.versions)),
		deployments: make(map[string]*models.DeploymentSlot, len(s.deployments)),
	}
	for k, v := range s.models {
		next.models[k] = v
	}
	for k, v := range s.versions {
		next.versions[k] = v
	}
	for k, v := range s.deployments {
		next.deployments[k] = v
	}
	return next
}

// modelVersions returns every version record belonging to modelID
func (s *snapshot) modelVersions(modelID string) []*models.VersionRecord {
	var records []*models.VersionRecord
	for _, r := range s.versions {
		if r.ModelID == modelID {
			records = append(records, r)
		}
	}
	return records
}
