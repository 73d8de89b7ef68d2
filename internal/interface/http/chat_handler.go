package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-travel-assistant/internal/application"
	"github.com/oksasatya/go-travel-assistant/internal/interface/middleware"
	"github.com/oksasatya/go-travel-assistant/pkg/response"
)

type ChatHandler struct {
	Svc    *application.ChatService
	Logger logrus.FieldLogger
}

func NewChatHandler(svc *application.ChatService, logger logrus.FieldLogger) *ChatHandler {
	return &ChatHandler{Svc: svc, Logger: logger}
}

// emptiness is checked by the service so blank prompts get the same message
type chatRequest struct {
	UserPrompt string `json:"userPrompt" binding:"prompt"`
}

// Chat POST /api/ai/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	out, err := h.Svc.Chat(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), req.UserPrompt)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	// raw model output; sanitizing before render is the client's job
	response.Success(c, http.StatusOK, "OK", gin.H{"response": out})
}

// History GET /api/ai/history?size=N
func (h *ChatHandler) History(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	items, err := h.Svc.Recent(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), size)
	if err != nil {
		response.Fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "Chat history", gin.H{"items": items})
}
