package modelregistry

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HarmoniqaOrg/PharmOS/internal/models"
	"github.com/HarmoniqaOrg/PharmOS/internal/registry"
	"github.com/HarmoniqaOrg/PharmOS/internal/utils"
)

// Handler relays registry operations over HTTP. The registry instance is
// injected at startup; handlers hold no state of their own.
type Handler struct {
	Registry *registry.Registry
}

func NewHandler(reg *registry.Registry) *Handler {
	return &Handler{Registry: reg}
}

// statusForError maps the registry error taxonomy to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, registry.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, registry.ErrInvalidOperation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), utils.NewErrorResponse(err.Error()))
}

// RegisterModel godoc
// @Summary Register a new model lineage
// @Tags models
// @Accept json
// @Produce json
// @Param request body RegisterModelRequest true "Model details"
// @Success 201 {object} utils.Response{data=models.ModelEntry}
// @Failure 409 {object} utils.Response
// @Router /models [post]
func (h *Handler) RegisterModel(c *gin.Context) {
	var req RegisterModelRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	entry, err := h.Registry.RegisterModel(c.Request.Context(), req.ModelID, req.ModelType, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Model registered successfully", entry))
}

// ListModels godoc
// @Summary List registered models
// @Tags models
// @Produce json
// @Success 200 {object} utils.Response{data=ModelListResponse}
// @Router /models [get]
func (h *Handler) ListModels(c *gin.Context) {
	entries := h.Registry.ListModels()
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", ModelListResponse{
		Models: entries,
		Total:  len(entries),
	}))
}

// GetModel godoc
// @Summary Get one model lineage
// @Tags models
// @Produce json
// @Param model_id path string true "Model ID"
// @Success 200 {object} utils.Response{data=models.ModelEntry}
// @Failure 404 {object} utils.Response
// @Router /models/{model_id} [get]
func (h *Handler) GetModel(c *gin.Context) {
	entry, err := h.Registry.GetModel(c.Param("model_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", entry))
}

// ArchiveModel godoc
// @Summary Archive a model lineage
// @Tags models
// @Produce json
// @Param model_id path string true "Model ID"
// @Success 200 {object} utils.Response{data=models.ModelEntry}
// @Failure 404 {object} utils.Response
// @Router /models/{model_id}/archive [post]
func (h *Handler) ArchiveModel(c *gin.Context) {
	entry, err := h.Registry.ArchiveModel(c.Request.Context(), c.Param("model_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Model archived", entry))
}

// CreateVersion godoc
// @Summary Create a new version of a model
// @Tags versions
// @Accept json
// @Produce json
// @Param model_id path string true "Model ID"
// @Param request body CreateVersionRequest true "Version details"
// @Success 201 {object} utils.Response{data=CreateVersionResponse}
// @Failure 404 {object} utils.Response
// @Failure 409 {object} utils.Response
// @Router /models/{model_id}/versions [post]
func (h *Handler) CreateVersion(c *gin.Context) {
	modelID := c.Param("model_id")

	var req CreateVersionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	entry, err := h.Registry.GetModel(modelID)
	if err != nil {
		respondError(c, err)
		return
	}

	artifact := &registry.RawArtifact{Type: entry.ModelType, Payload: req.Payload}
	record, err := h.Registry.CreateVersion(c.Request.Context(), modelID, req.Version, artifact, registry.CreateVersionOptions{
		TrainingData:       req.TrainingData,
		PerformanceMetrics: req.PerformanceMetrics,
		Metadata:           req.Metadata,
		ParentVersion:      req.ParentVersion,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, utils.NewSuccessResponse("Version created", CreateVersionResponse{
		ModelID:    record.ModelID,
		Version:    record.Version,
		VersionKey: record.Key(),
		ModelHash:  record.ModelHash,
	}))
}

// ListModelVersions godoc
// @Summary List versions of one model, newest first
// @Tags versions
// @Produce json
// @Param model_id path string true "Model ID"
// @Success 200 {object} utils.Response{data=VersionListResponse}
// @Failure 404 {object} utils.Response
// @Router /models/{model_id}/versions [get]
func (h *Handler) ListModelVersions(c *gin.Context) {
	modelID := c.Param("model_id")
	records, err := h.Registry.ListVersions(modelID)
	if err != nil {
		respondError(c, err)
		return
	}
	if records == nil {
		records = []*models.VersionRecord{}
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", VersionListResponse{
		ModelID:       modelID,
		Versions:      records,
		TotalVersions: len(records),
	}))
}

// ListAllVersions godoc
// @Summary List versions across all models, newest first
// @Tags versions
// @Produce json
// @Success 200 {object} utils.Response{data=VersionListResponse}
// @Router /versions [get]
func (h *Handler) ListAllVersions(c *gin.Context) {
	records, err := h.Registry.ListVersions("")
	if err != nil {
		respondError(c, err)
		return
	}
	if records == nil {
		records = []*models.VersionRecord{}
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", VersionListResponse{
		Versions:      records,
		TotalVersions: len(records),
	}))
}

// GetVersion godoc
// @Summary Get one version record
// @Tags versions
// @Produce json
// @Param model_id path string true "Model ID"
// @Param version path string true "Version"
// @Success 200 {object} utils.Response{data=models.VersionRecord}
// @Failure 404 {object} utils.Response
// @Router /models/{model_id}/versions/{version} [get]
func (h *Handler) GetVersion(c *gin.Context) {
	record, err := h.Registry.GetVersion(c.Param("model_id"), c.Param("version"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", record))
}

// DeleteVersion godoc
// @Summary Delete a version
// @Description Deployed versions and the latest version are protected unless force=true.
// @Tags versions
// @Produce json
// @Param model_id path string true "Model ID"
// @Param version path string true "Version"
// @Param force query bool false "Override safety checks"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /models/{model_id}/versions/{version} [delete]
func (h *Handler) DeleteVersion(c *gin.Context) {
	force := c.Query("force") == "true"
	err := h.Registry.DeleteVersion(c.Request.Context(), c.Param("model_id"), c.Param("version"), force)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Version deleted", nil))
}

// TagVersion godoc
// @Summary Add a tag to a version
// @Tags versions
// @Accept json
// @Produce json
// @Param model_id path string true "Model ID"
// @Param version path string true "Version"
// @Param request body TagVersionRequest true "Tag"
// @Success 200 {object} utils.Response{data=models.VersionRecord}
// @Failure 404 {object} utils.Response
// @Router /models/{model_id}/versions/{version}/tags [post]
func (h *Handler) TagVersion(c *gin.Context) {
	var req TagVersionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	record, err := h.Registry.TagVersion(c.Request.Context(), c.Param("model_id"), c.Param("version"), req.Tag)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Tag added", record))
}

// UpdateMetrics godoc
// @Summary Merge performance metrics into a version
// @Tags versions
// @Accept json
// @Produce json
// @Param model_id path string true "Model ID"
// @Param version path string true "Version"
// @Param request body UpdateMetricsRequest true "Metrics"
// @Success 200 {object} utils.Response{data=models.VersionRecord}
// @Failure 404 {object} utils.Response
// @Router /models/{model_id}/versions/{version}/metrics [patch]
func (h *Handler) UpdateMetrics(c *gin.Context) {
	var req UpdateMetricsRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	record, err := h.Registry.UpdatePerformanceMetrics(c.Request.Context(), c.Param("model_id"), c.Param("version"), req.Metrics)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Performance metrics updated", record))
}

// CompareVersions godoc
// @Summary Compare two versions of a model
// @Tags versions
// @Produce json
// @Param model_id path string true "Model ID"
// @Param v1 query string true "First version"
// @Param v2 query string true "Second version"
// @Success 200 {object} utils.Response{data=CompareResponse}
// @Failure 404 {object} utils.Response
// @Router /models/{model_id}/compare [get]
func (h *Handler) CompareVersions(c *gin.Context) {
	v1 := c.Query("v1")
	v2 := c.Query("v2")
	if v1 == "" || v2 == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse("query parameters v1 and v2 are required"))
		return
	}

	comparison, err := h.Registry.CompareVersions(c.Param("model_id"), v1, v2)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", CompareResponse{Comparison: comparison}))
}

// LoadModel godoc
// @Summary Load a stored model payload
// @Description Returns the serialized payload plus version metadata. Defaults to the latest version.
// @Tags versions
// @Produce json
// @Param model_id path string true "Model ID"
// @Param version query string false "Version (defaults to latest)"
// @Success 200 {object} utils.Response{data=LoadModelResponse}
// @Failure 404 {object} utils.Response
// @Router /models/{model_id}/load [get]
func (h *Handler) LoadModel(c *gin.Context) {
	loaded, err := h.Registry.LoadModel(c.Request.Context(), c.Param("model_id"), c.Query("version"))
	if err != nil {
		respondError(c, err)
		return
	}

	payload, err := loaded.Instance.Serialize()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Success", LoadModelResponse{
		ModelID:     loaded.Record.ModelID,
		Version:     loaded.Record.Version,
		Payload:     payload,
		VersionInfo: loaded.Record,
	}))
}
