package http

import (
	"net/http"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"
	apperrors "stagecast/pkg/errors"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto its HTTP status and writes the
// structured error body shared by all handlers.
func respondError(c *gin.Context, err error) {
	appErr := apperrors.FromDomain(err)
	c.JSON(appErr.HTTPStatus, gin.H{
		"error":   string(appErr.Code),
		"message": appErr.Message,
	})
}

type SessionHandler struct {
	controller ports.SessionController
}

func NewSessionHandler(controller ports.SessionController) *SessionHandler {
	return &SessionHandler{controller: controller}
}

func (h *SessionHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/session", h.GetSession)
		api.POST("/session/live", h.GoLive)
		api.DELETE("/session/live", h.StopBroadcast)
		api.POST("/session/recording", h.StartRecording)
		api.DELETE("/session/recording", h.StopRecording)
		api.PUT("/session/layout", h.SetLayout)
		api.GET("/session/settings", h.GetSettings)
		api.PUT("/session/settings", h.UpdateSettings)
		api.GET("/session/invite", h.GetInviteLink)
		api.GET("/session/artifacts", h.GetArtifacts)
	}
}

// GetSession returns the composed view model for the whole studio.
func (h *SessionHandler) GetSession(c *gin.Context) {
	vm, err := h.controller.GetViewModel(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vm)
}

func (h *SessionHandler) GoLive(c *gin.Context) {
	if err := h.controller.GoLive(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	h.respondWithState(c)
}

func (h *SessionHandler) StopBroadcast(c *gin.Context) {
	if err := h.controller.StopBroadcast(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	h.respondWithState(c)
}

func (h *SessionHandler) StartRecording(c *gin.Context) {
	if err := h.controller.StartRecording(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	h.respondWithState(c)
}

func (h *SessionHandler) StopRecording(c *gin.Context) {
	if err := h.controller.StopRecording(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	h.respondWithState(c)
}

func (h *SessionHandler) SetLayout(c *gin.Context) {
	var req struct {
		Layout string `json:"layout" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.controller.SetLayout(c.Request.Context(), domain.LayoutMode(req.Layout)); err != nil {
		respondError(c, err)
		return
	}
	h.respondWithState(c)
}

func (h *SessionHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"settings": h.controller.Settings(c.Request.Context()),
	})
}

func (h *SessionHandler) UpdateSettings(c *gin.Context) {
	var req struct {
		Resolution  string `json:"resolution" binding:"required"`
		FrameRate   string `json:"frame_rate" binding:"required"`
		EchoCancel  bool   `json:"echo_cancel"`
		ShowNames   bool   `json:"show_names"`
		MirrorVideo bool   `json:"mirror_video"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	settings := domain.StudioSettings{
		Resolution:  domain.Resolution(req.Resolution),
		FrameRate:   domain.FrameRate(req.FrameRate),
		EchoCancel:  req.EchoCancel,
		ShowNames:   req.ShowNames,
		MirrorVideo: req.MirrorVideo,
	}
	if err := h.controller.UpdateSettings(c.Request.Context(), settings); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

func (h *SessionHandler) GetInviteLink(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"invite_link": h.controller.InviteLink(),
	})
}

// GetArtifacts returns the recording artifacts of the last finished
// session, if that session recorded.
func (h *SessionHandler) GetArtifacts(c *gin.Context) {
	artifacts := h.controller.LastArtifacts()
	if artifacts == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no recording artifacts available"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"artifacts": artifacts})
}

func (h *SessionHandler) respondWithState(c *gin.Context) {
	vm, err := h.controller.GetViewModel(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vm)
}
