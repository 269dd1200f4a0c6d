package http

import (
	"context"
	"net/http"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type ParticipantHandler struct {
	controller   ports.SessionController
	participants ports.ParticipantService
}

func NewParticipantHandler(
	controller ports.SessionController,
	participants ports.ParticipantService,
) *ParticipantHandler {
	return &ParticipantHandler{
		controller:   controller,
		participants: participants,
	}
}

func (h *ParticipantHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/participants", h.ListParticipants)
		api.POST("/participants/camera", h.StartLocalCamera)
		api.POST("/participants/screen-share", h.StartScreenShare)
		api.POST("/participants/guests", h.AddGuest)
		api.DELETE("/participants/:id", h.RemoveParticipant)
		api.DELETE("/participants/:id/screen-share", h.EndScreenShare)
		api.POST("/participants/:id/stage", h.ToggleStage)
		api.POST("/participants/:id/mute", h.ToggleMute)
		api.POST("/participants/:id/video", h.ToggleVideo)
	}
}

func (h *ParticipantHandler) ListParticipants(c *gin.Context) {
	participants, err := h.participants.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]domain.ParticipantView, 0, len(participants))
	for _, p := range participants {
		views = append(views, domain.ViewOf(p))
	}
	c.JSON(http.StatusOK, gin.H{"participants": views})
}

func (h *ParticipantHandler) StartLocalCamera(c *gin.Context) {
	var req struct {
		DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.controller.StartLocalCamera(c.Request.Context(), req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"participant": domain.ViewOf(participant)})
}

func (h *ParticipantHandler) StartScreenShare(c *gin.Context) {
	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.DisplayName == "" {
		req.DisplayName = "Screen Share"
	}

	participant, err := h.controller.StartScreenShare(c.Request.Context(), req.DisplayName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"participant": domain.ViewOf(participant)})
}

func (h *ParticipantHandler) AddGuest(c *gin.Context) {
	var req struct {
		DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
		OnStage     bool   `json:"on_stage"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := h.controller.AddGuest(c.Request.Context(), req.DisplayName, req.OnStage)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"participant": domain.ViewOf(participant)})
}

// RemoveParticipant is idempotent: removing an unknown participant
// succeeds so a double click on the UI does not surface an error.
func (h *ParticipantHandler) RemoveParticipant(c *gin.Context) {
	id := domain.ParticipantID(c.Param("id"))

	if err := h.controller.RemoveParticipant(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (h *ParticipantHandler) EndScreenShare(c *gin.Context) {
	id := domain.ParticipantID(c.Param("id"))

	if err := h.controller.EndScreenShare(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ended"})
}

func (h *ParticipantHandler) ToggleStage(c *gin.Context) {
	h.toggle(c, h.controller.ToggleStage)
}

func (h *ParticipantHandler) ToggleMute(c *gin.Context) {
	h.toggle(c, h.controller.ToggleMute)
}

func (h *ParticipantHandler) ToggleVideo(c *gin.Context) {
	h.toggle(c, h.controller.ToggleVideo)
}

func (h *ParticipantHandler) toggle(c *gin.Context, fn func(ctx context.Context, id domain.ParticipantID) error) {
	id := domain.ParticipantID(c.Param("id"))

	if err := fn(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	participant, err := h.participants.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"participant": domain.ViewOf(participant)})
}
