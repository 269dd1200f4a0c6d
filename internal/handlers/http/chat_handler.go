package http

import (
	"net/http"

	"stagecast/internal/core/ports"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	chat ports.ChatService
}

func NewChatHandler(chat ports.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

func (h *ChatHandler) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/chat", h.ListMessages)
		api.POST("/chat", h.PostMessage)
	}
}

func (h *ChatHandler) ListMessages(c *gin.Context) {
	messages, err := h.chat.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req struct {
		Sender string `json:"sender" binding:"required,min=1,max=100"`
		Text   string `json:"text" binding:"required,min=1,max=500"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.chat.Post(c.Request.Context(), req.Sender, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}
