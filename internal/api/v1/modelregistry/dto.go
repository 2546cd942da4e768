package modelregistry

import (
	"github.com/HarmoniqaOrg/PharmOS/internal/models"
	"github.com/HarmoniqaOrg/PharmOS/internal/registry"
)

type RegisterModelRequest struct {
	ModelID     string `json:"model_id" binding:"required"`
	ModelType   string `json:"model_type" binding:"required"`
	Description string `json:"description"`
}

// CreateVersionRequest carries an already-serialized model payload
// (base64 over JSON) produced by a training pipeline.
type CreateVersionRequest struct {
	Version            string                 `json:"version" binding:"required"`
	Payload            []byte                 `json:"payload" binding:"required"`
	TrainingData       []string               `json:"training_data"`
	PerformanceMetrics map[string]float64     `json:"performance_metrics"`
	Metadata           map[string]interface{} `json:"metadata"`
	ParentVersion      string                 `json:"parent_version"`
}

type TagVersionRequest struct {
	Tag string `json:"tag" binding:"required"`
}

type UpdateMetricsRequest struct {
	Metrics map[string]float64 `json:"metrics" binding:"required"`
}

type DeployRequest struct {
	ModelID           string `json:"model_id" binding:"required"`
	Version           string `json:"version" binding:"required"`
	DeploymentName    string `json:"deployment_name"`
	RollbackOnFailure *bool  `json:"rollback_on_failure"`
}

type ModelListResponse struct {
	Models []*models.ModelEntry `json:"models"`
	Total  int                  `json:"total"`
}

type VersionListResponse struct {
	ModelID       string                  `json:"model_id,omitempty"`
	Versions      []*models.VersionRecord `json:"versions"`
	TotalVersions int                     `json:"total_versions"`
}

type CreateVersionResponse struct {
	ModelID    string `json:"model_id"`
	Version    string `json:"version"`
	VersionKey string `json:"version_key"`
	ModelHash  string `json:"model_hash"`
}

type LoadModelResponse struct {
	ModelID     string                `json:"model_id"`
	Version     string                `json:"version"`
	Payload     []byte                `json:"payload"`
	VersionInfo *models.VersionRecord `json:"version_info"`
}

type CompareResponse struct {
	Comparison *registry.VersionComparison `json:"comparison"`
}

type DeploymentStatusResponse struct {
	DeploymentName string                 `json:"deployment_name"`
	Status         string                 `json:"status"`
	Deployment     *models.DeploymentSlot `json:"deployment,omitempty"`
	VersionInfo    *models.VersionRecord  `json:"version_info,omitempty"`
}
