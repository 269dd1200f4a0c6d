package http

import (
	"net/http"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type DestinationHandler struct {
	controller   ports.SessionController
	destinations ports.DestinationService
}

func NewDestinationHandler(
	controller ports.SessionController,
	destinations ports.DestinationService,
) *DestinationHandler {
	return &DestinationHandler{
		controller:   controller,
		destinations: destinations,
	}
}

func (h *DestinationHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/destinations", h.ListDestinations)
		api.GET("/destinations/share-links", h.GetShareLinks)
		api.POST("/destinations", h.AddDestination)
		api.POST("/destinations/:id/toggle", h.ToggleDestination)
		api.DELETE("/destinations/:id", h.RemoveDestination)
	}
}

func (h *DestinationHandler) ListDestinations(c *gin.Context) {
	destinations, err := h.destinations.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	// Credentials never leave the API boundary.
	views := make([]domain.DestView, 0, len(destinations))
	for _, d := range destinations {
		views = append(views, domain.DestViewOf(d))
	}
	c.JSON(http.StatusOK, gin.H{"destinations": views})
}

func (h *DestinationHandler) GetShareLinks(c *gin.Context) {
	links, err := h.destinations.ShareLinks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"share_links": links})
}

func (h *DestinationHandler) AddDestination(c *gin.Context) {
	var req struct {
		Platform    string `json:"platform" binding:"required"`
		DisplayName string `json:"display_name"`
		URL         string `json:"url"`
		StreamKey   string `json:"stream_key"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	creds := domain.Credentials{
		URL:       req.URL,
		StreamKey: req.StreamKey,
	}
	destination, err := h.controller.AddDestination(c.Request.Context(),
		domain.Platform(req.Platform), req.DisplayName, creds)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"destination": domain.DestViewOf(destination)})
}

func (h *DestinationHandler) ToggleDestination(c *gin.Context) {
	id := domain.DestinationID(c.Param("id"))

	destination, err := h.controller.ToggleDestination(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"destination": domain.DestViewOf(destination)})
}

func (h *DestinationHandler) RemoveDestination(c *gin.Context) {
	id := domain.DestinationID(c.Param("id"))

	if err := h.controller.RemoveDestination(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
