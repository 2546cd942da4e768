package models

import "time"

type ModelStatus string

const (
	ModelStatusActive   ModelStatus = "active"
	ModelStatusArchived ModelStatus = "archived"
)

// ModelEntry is one registered model lineage. LatestVersion is a weak
// reference into the versions collection (lookup only, no ownership);
// it is empty while the lineage has no versions.
type ModelEntry struct {
	ModelID       string      `gorm:"primarykey" json:"model_id"`
	ModelType     string      `gorm:"not null" json:"model_type"`
	Description   string      `json:"description"`
	CreatedAt     time.Time   `json:"created_at"`
	LatestVersion string      `json:"latest_version,omitempty"`
	TotalVersions int         `gorm:"not null;default:0" json:"total_versions"`
	Status        ModelStatus `gorm:"index;not null;default:'active'" json:"status"`
}

func (ModelEntry) TableName() string {
	return "registry_models"
}

// Clone returns an independent copy safe to mutate in a new snapshot
func (m *ModelEntry) Clone() *ModelEntry {
	c := *m
	return &c
}
