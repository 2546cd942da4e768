package modelregistry

import (
	"github.com/gin-gonic/gin"

	"github.com/HarmoniqaOrg/PharmOS/internal/registry"
)

// RegisterRoutes mounts the registry API under the given group.
func RegisterRoutes(rg *gin.RouterGroup, reg *registry.Registry) {
	h := NewHandler(reg)

	modelGroup := rg.Group("/models")
	{
		modelGroup.POST("", h.RegisterModel)
		modelGroup.GET("", h.ListModels)
		modelGroup.GET("/:model_id", h.GetModel)
		modelGroup.POST("/:model_id/archive", h.ArchiveModel)
		modelGroup.GET("/:model_id/load", h.LoadModel)
		modelGroup.GET("/:model_id/compare", h.CompareVersions)

		modelGroup.POST("/:model_id/versions", h.CreateVersion)
		modelGroup.GET("/:model_id/versions", h.ListModelVersions)
		modelGroup.GET("/:model_id/versions/:version", h.GetVersion)
		modelGroup.DELETE("/:model_id/versions/:version", h.DeleteVersion)
		modelGroup.POST("/:model_id/versions/:version/tags", h.TagVersion)
		modelGroup.PATCH("/:model_id/versions/:version/metrics", h.UpdateMetrics)
	}

	rg.GET("/versions", h.ListAllVersions)

	deployGroup := rg.Group("/deployments")
	{
		deployGroup.POST("", h.Deploy)
		deployGroup.GET("/:deployment_name", h.DeploymentStatus)
		deployGroup.POST("/:deployment_name/rollback", h.Rollback)
	}
}
