package registry

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/HarmoniqaOrg/PharmOS/internal/models"
)

// Deploy points deploymentName at (modelID, version) and records the
// replaced slot as one level of rollback history.
//
// Status transitions follow created -> deployed -> {superseded,
// rolled_back}. Redeploying the version a slot already serves is a no-op
// and changes no state.
//
// The slot write and the version-status write are two separate store
// commits. If the second fails and rollbackOnFailure is set, the prior
// slot is restored best-effort before the error surfaces; without a prior
// deployment (or with rollbackOnFailure off) the partial slot write is
// left in place and the caller decides how to recover.
func (r *Registry) Deploy(ctx context.Context, modelID, version, deploymentName string, rollbackOnFailure bool) (*models.DeploymentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.current.Load()
	target, ok := snap.versions[models.VersionKey(modelID, version)]
	if !ok {
		return nil, fmt.Errorf("%w: version %s", ErrNotFound, models.VersionKey(modelID, version))
	}

	current := snap.deployments[deploymentName]
	if current != nil && current.ModelID == modelID && current.Version == version {
		return current, nil
	}

	slot := &models.DeploymentSlot{
		DeploymentName: deploymentName,
		ModelID:        modelID,
		Version:        version,
		DeployedAt:     now(),
		Status:         models.SlotStatusActive,
	}
	if current != nil {
		slot.PreviousDeployment = current.Ref()
	}

	if err := r.store.Commit(ctx, ChangeSet{Deployments: []*models.DeploymentSlot{slot}}); err != nil {
		return nil, fmt.Errorf("%w: writing deployment slot: %v", ErrPersistence, err)
	}

	changed := make([]*models.VersionRecord, 0, 2)
	deployed := target.Clone()
	deployed.DeploymentStatus = models.DeploymentStatusDeployed
	changed = append(changed, deployed)

	if current != nil {
		// The superseded record may have been force-deleted; skip silently
		if prev, ok := snap.versions[models.VersionKey(current.ModelID, current.Version)]; ok {
			superseded := prev.Clone()
			superseded.DeploymentStatus = models.DeploymentStatusSuperseded
			changed = append(changed, superseded)
		}
	}

	if err := r.store.Commit(ctx, ChangeSet{Versions: changed}); err != nil {
		if rollbackOnFailure && current != nil {
			if restoreErr := r.store.Commit(ctx, ChangeSet{Deployments: []*models.DeploymentSlot{current}}); restoreErr != nil {
				r.log.Error("failed to restore previous deployment slot",
					zap.String("deployment", deploymentName), zap.Error(restoreErr))
			}
		} else {
			r.log.Warn("deployment left partially applied",
				zap.String("deployment", deploymentName), zap.Error(err))
		}
		return nil, fmt.Errorf("%w: updating version statuses: %v", ErrPersistence, err)
	}

	next := snap.clone()
	next.deployments[deploymentName] = slot
	for _, rec := range changed {
		next.versions[rec.Key()] = rec
	}
	r.current.Store(next)
	r.cache.invalidate(ctx, deploymentName)

	r.log.Info("version deployed",
		zap.String("deployment", deploymentName),
		zap.String("model_id", modelID),
		zap.String("version", version))
	return slot, nil
}

// Rollback restores deploymentName to its previous deployment. Only one
// level of history exists: the restored slot carries whatever previous
// deployment it had at its original deploy time, so an immediate second
// rollback fails unless that slot had history of its own.
func (r *Registry) Rollback(ctx context.Context, deploymentName string) (*models.DeploymentSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.current.Load()
	current, ok := snap.deployments[deploymentName]
	if !ok {
		return nil, fmt.Errorf("%w: deployment %q", ErrNotFound, deploymentName)
	}
	prev := current.PreviousDeployment
	if prev == nil {
		return nil, fmt.Errorf("%w: no previous deployment to roll back to", ErrInvalidOperation)
	}

	restored := &models.DeploymentSlot{
		DeploymentName:     deploymentName,
		ModelID:            prev.ModelID,
		Version:            prev.Version,
		DeployedAt:         now(),
		Status:             models.SlotStatusActive,
		PreviousDeployment: prev.PreviousDeployment,
		RollbackFrom:       current.Ref(),
	}

	changed := make([]*models.VersionRecord, 0, 2)
	if from, ok := snap.versions[models.VersionKey(current.ModelID, current.Version)]; ok {
		rolledBack := from.Clone()
		rolledBack.DeploymentStatus = models.DeploymentStatusRolledBack
		changed = append(changed, rolledBack)
	}
	if to, ok := snap.versions[models.VersionKey(prev.ModelID, prev.Version)]; ok {
		deployed := to.Clone()
		deployed.DeploymentStatus = models.DeploymentStatusDeployed
		changed = append(changed, deployed)
	}

	next := snap.clone()
	next.deployments[deploymentName] = restored
	for _, rec := range changed {
		next.versions[rec.Key()] = rec
	}

	cs := ChangeSet{
		Deployments: []*models.DeploymentSlot{restored},
		Versions:    changed,
	}
	if err := r.commit(ctx, next, cs); err != nil {
		return nil, err
	}
	r.cache.invalidate(ctx, deploymentName)

	r.log.Info("deployment rolled back",
		zap.String("deployment", deploymentName),
		zap.String("model_id", restored.ModelID),
		zap.String("version", restored.Version))
	return restored, nil
}

// DeploymentStatus returns the active slot for deploymentName plus the
// version record it points at. A nil slot means nothing is deployed.
func (r *Registry) DeploymentStatus(ctx context.Context, deploymentName string) (*models.DeploymentSlot, *models.VersionRecord, error) {
	snap := r.current.Load()

	slot := r.cache.get(ctx, deploymentName)
	if slot == nil {
		var ok bool
		slot, ok = snap.deployments[deploymentName]
		if !ok {
			return nil, nil, nil
		}
		r.cache.set(ctx, slot)
	}

	record := snap.versions[models.VersionKey(slot.ModelID, slot.Version)]
	return slot, record, nil
}
