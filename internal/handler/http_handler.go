package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-io-live/uid-service/internal/generator"
	"github.com/weiawesome/wes-io-live/uid-service/internal/service"
	"github.com/weiawesome/wes-io-live/uid-service/pkg/log"
	"github.com/weiawesome/wes-io-live/uid-service/pkg/response"
	"github.com/weiawesome/wes-io-live/uid-service/pkg/uid"
)

// GenerateRequest is the optional body of a generate call.
type GenerateRequest struct {
	Count int `json:"count"`
}

// IDsResponse carries generated IDs.
type IDsResponse struct {
	Profile string   `json:"profile,omitempty"`
	IDs     []string `json:"ids"`
}

// ValidateResponse reports whether an ID belongs to a profile.
type ValidateResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Handler handles HTTP requests for the ID service.
type Handler struct {
	idService service.IDService
}

// NewHandler creates a new HTTP handler.
func NewHandler(idService service.IDService) *Handler {
	return &Handler{idService: idService}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")
	{
		api.POST("/ids", h.GenerateCustom)

		profiles := api.Group("/profiles")
		{
			profiles.GET("", h.ListProfiles)
			profiles.POST("/:profile/ids", h.Generate)
			profiles.GET("/:profile/validate", h.Validate)
			profiles.GET("/:profile/inspect", h.Inspect)
		}
	}
}

// ListProfiles lists the configured profiles.
func (h *Handler) ListProfiles(c *gin.Context) {
	response.Success(c, h.idService.Profiles())
}

// Generate issues one or more IDs from a profile.
func (h *Handler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	profile := c.Param("profile")

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		l.Warn().Err(err).Msg("failed to bind generate request")
		response.BadRequest(c, err.Error())
		return
	}
	if req.Count == 0 {
		req.Count = 1
	}

	ids, err := h.idService.GenerateBatch(ctx, profile, req.Count)
	if err != nil {
		l.Error().Err(err).Str(log.FieldProfile, profile).Int(log.FieldCount, req.Count).Msg("failed to generate ids")
		writeError(c, err)
		return
	}

	response.Success(c, IDsResponse{Profile: profile, IDs: ids})
}

// GenerateCustom issues IDs from caller-supplied generator settings.
func (h *Handler) GenerateCustom(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req service.CustomRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		l.Warn().Err(err).Msg("failed to bind custom generate request")
		response.BadRequest(c, err.Error())
		return
	}

	ids, err := h.idService.GenerateCustom(ctx, &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to generate custom ids")
		writeError(c, err)
		return
	}

	response.Success(c, IDsResponse{IDs: ids})
}

// Validate checks an ID against a profile.
func (h *Handler) Validate(c *gin.Context) {
	ctx := c.Request.Context()
	profile := c.Param("profile")

	err := h.idService.Validate(ctx, profile, c.Query("id"))
	switch {
	case err == nil:
		response.Success(c, ValidateResponse{Valid: true})
	case errors.Is(err, generator.ErrInvalidID):
		response.Success(c, ValidateResponse{Valid: false, Reason: err.Error()})
	default:
		writeError(c, err)
	}
}

// Inspect reports what can be read back from an ID.
func (h *Handler) Inspect(c *gin.Context) {
	ctx := c.Request.Context()
	profile := c.Param("profile")

	info, err := h.idService.Inspect(ctx, profile, c.Query("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, info)
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownProfile):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidBatchCount),
		errors.Is(err, service.ErrSizeTooLarge),
		errors.Is(err, generator.ErrInvalidID),
		uid.IsConfigError(err):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrCollision):
		response.Conflict(c, err.Error())
	case errors.Is(err, uid.ErrEntropyUnavailable):
		response.ServiceUnavailable(c, response.CodeEntropyUnavailable, "entropy source unavailable")
	default:
		response.InternalError(c, "failed to process request")
	}
}
