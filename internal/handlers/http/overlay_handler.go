package http

import (
	"net/http"

	"stagecast/internal/core/domain"
	"stagecast/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type OverlayHandler struct {
	controller ports.SessionController
	overlays   ports.OverlayService
}

func NewOverlayHandler(
	controller ports.SessionController,
	overlays ports.OverlayService,
) *OverlayHandler {
	return &OverlayHandler{
		controller: controller,
		overlays:   overlays,
	}
}

func (h *OverlayHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/banners", h.ListBanners)
		api.GET("/banners/active", h.GetActiveBanner)
		api.POST("/banners", h.SubmitBanner)
		api.POST("/banners/:id/toggle", h.ToggleBanner)
	}
}

func (h *OverlayHandler) ListBanners(c *gin.Context) {
	banners, err := h.overlays.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

func (h *OverlayHandler) GetActiveBanner(c *gin.Context) {
	banner, err := h.overlays.Active(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if banner == nil {
		c.JSON(http.StatusOK, gin.H{"banner": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banner": banner})
}

// SubmitBanner creates a banner and activates it immediately, replacing
// whichever banner was showing before.
func (h *OverlayHandler) SubmitBanner(c *gin.Context) {
	var req struct {
		Text  string `json:"text" binding:"required"`
		Style string `json:"style"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	style := domain.BannerStatic
	if req.Style == string(domain.BannerScrolling) {
		style = domain.BannerScrolling
	}

	banner, err := h.controller.SubmitBanner(c.Request.Context(), req.Text, style)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"banner": banner})
}

func (h *OverlayHandler) ToggleBanner(c *gin.Context) {
	id := domain.BannerID(c.Param("id"))

	banner, err := h.controller.ToggleBanner(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banner": banner})
}
