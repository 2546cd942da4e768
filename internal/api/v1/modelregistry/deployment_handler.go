package modelregistry

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HarmoniqaOrg/PharmOS/internal/utils"
)

const defaultDeploymentName = "production"

// Deploy godoc
// @Summary Deploy a version to a named slot
// @Description Points the deployment slot at the given version. The replaced deployment is kept as rollback history. deployment_name defaults to "production", rollback_on_failure to true.
// @Tags deployments
// @Accept json
// @Produce json
// @Param request body DeployRequest true "Deployment details"
// @Success 200 {object} utils.Response{data=models.DeploymentSlot}
// @Failure 404 {object} utils.Response
// @Router /deployments [post]
func (h *Handler) Deploy(c *gin.Context) {
	var req DeployRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	name := req.DeploymentName
	if name == "" {
		name = defaultDeploymentName
	}
	rollbackOnFailure := true
	if req.RollbackOnFailure != nil {
		rollbackOnFailure = *req.RollbackOnFailure
	}

	slot, err := h.Registry.Deploy(c.Request.Context(), req.ModelID, req.Version, name, rollbackOnFailure)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Version deployed", slot))
}

// Rollback godoc
// @Summary Roll a deployment back to its previous version
// @Tags deployments
// @Produce json
// @Param deployment_name path string true "Deployment name"
// @Success 200 {object} utils.Response{data=models.DeploymentSlot}
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /deployments/{deployment_name}/rollback [post]
func (h *Handler) Rollback(c *gin.Context) {
	slot, err := h.Registry.Rollback(c.Request.Context(), c.Param("deployment_name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Deployment rolled back", slot))
}

// DeploymentStatus godoc
// @Summary Get the state of a named deployment slot
// @Tags deployments
// @Produce json
// @Param deployment_name path string true "Deployment name"
// @Success 200 {object} utils.Response{data=DeploymentStatusResponse}
// @Router /deployments/{deployment_name} [get]
func (h *Handler) DeploymentStatus(c *gin.Context) {
	name := c.Param("deployment_name")

	slot, record, err := h.Registry.DeploymentStatus(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := DeploymentStatusResponse{DeploymentName: name, Status: "no_deployment"}
	if slot != nil {
		resp.Status = slot.Status
		resp.Deployment = slot
		resp.VersionInfo = record
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", resp))
}
