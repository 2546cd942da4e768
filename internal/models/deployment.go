package models

import "time"

// SlotStatusActive is the status of every live deployment slot.
const SlotStatusActive = "active"

// DeploymentRef is the snapshot of a slot's contents carried as rollback
// history. It keeps the full prior contents, including the chain the prior
// slot itself carried at deploy time; the one-level-undo rule is enforced
// by the rollback logic consuming it, not by truncating the snapshot.
type DeploymentRef struct {
	ModelID            string         `json:"model_id"`
	Version            string         `json:"version"`
	DeployedAt         time.Time      `json:"deployed_at"`
	Status             string         `json:"status"`
	PreviousDeployment *DeploymentRef `json:"previous_deployment,omitempty"`
	RollbackFrom       *DeploymentRef `json:"rollback_from,omitempty"`
}

// DeploymentSlot maps a deployment name (e.g. "production") to the
// currently active version. Slots are only ever overwritten, never deleted.
// RollbackFrom is populated only when the slot was produced by a rollback.
type DeploymentSlot struct {
	DeploymentName     string         `gorm:"primarykey" json:"deployment_name"`
	ModelID            string         `gorm:"not null" json:"model_id"`
	Version            string         `gorm:"not null" json:"version"`
	DeployedAt         time.Time      `json:"deployed_at"`
	Status             string         `gorm:"not null;default:'active'" json:"status"`
	PreviousDeployment *DeploymentRef `gorm:"serializer:json" json:"previous_deployment,omitempty"`
	RollbackFrom       *DeploymentRef `gorm:"serializer:json" json:"rollback_from,omitempty"`
}

func (DeploymentSlot) TableName() string {
	return "registry_deployments"
}

// Ref snapshots the slot contents for use as rollback history
func (s *DeploymentSlot) Ref() *DeploymentRef {
	return &DeploymentRef{
		ModelID:            s.ModelID,
		Version:            s.Version,
		DeployedAt:         s.DeployedAt,
		Status:             s.Status,
		PreviousDeployment: s.PreviousDeployment,
		RollbackFrom:       s.RollbackFrom,
	}
}

// Clone returns an independent copy (history refs are immutable once written,
// so sharing them between snapshots is safe)
func (s *DeploymentSlot) Clone() *DeploymentSlot {
	c := *s
	return &c
}
