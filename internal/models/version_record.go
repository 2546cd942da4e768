package models

import "time"

type DeploymentStatus string

const (
	DeploymentStatusCreated    DeploymentStatus = "created"
	DeploymentStatusDeployed   DeploymentStatus = "deployed"
	DeploymentStatusSuperseded DeploymentStatus = "superseded"
	DeploymentStatusRolledBack DeploymentStatus = "rolled_back"
)

// VersionRecord describes one immutable artifact version. After creation
// only PerformanceMetrics, Tags and DeploymentStatus may change; ModelHash
// is computed once from the stored artifact bytes and never recomputed.
type VersionRecord struct {
	ID                 uint             `gorm:"primarykey" json:"-"`
	ModelID            string           `gorm:"uniqueIndex:idx_model_version;not null" json:"model_id"`
	Version            string           `gorm:"uniqueIndex:idx_model_version;not null" json:"version"`
	ModelType          string           `json:"model_type"`
	CreatedAt          time.Time        `json:"created_at"`
	Metadata           JSON             `gorm:"type:json" json:"metadata"`
	PerformanceMetrics FloatMap         `gorm:"type:json" json:"performance_metrics"`
	TrainingDataHash   string           `json:"training_data_hash,omitempty"`
	ModelHash          string           `json:"model_hash"`
	DeploymentStatus   DeploymentStatus `gorm:"index;not null;default:'created'" json:"deployment_status"`
	ParentVersion      string           `json:"parent_version,omitempty"`
	Tags               StringList       `gorm:"type:json" json:"tags"`
}

func (VersionRecord) TableName() string {
	return "registry_versions"
}

// Key returns the composite "model_id:version" key, unique across the registry
func (r *VersionRecord) Key() string {
	return VersionKey(r.ModelID, r.Version)
}

func VersionKey(modelID, version string) string {
	return modelID + ":" + version
}

// Clone deep-copies the record so snapshot mutations never alias maps
func (r *VersionRecord) Clone() *VersionRecord {
	c := *r
	if r.Metadata != nil {
		c.Metadata = make(JSON, len(r.Metadata))
		for k, v := range r.Metadata {
			c.Metadata[k] = v
		}
	}
	if r.PerformanceMetrics != nil {
		c.PerformanceMetrics = make(FloatMap, len(r.PerformanceMetrics))
		for k, v := range r.PerformanceMetrics {
			c.PerformanceMetrics[k] = v
		}
	}
	if r.Tags != nil {
		c.Tags = make(StringList, len(r.Tags))
		copy(c.Tags, r.Tags)
	}
	return &c
}
