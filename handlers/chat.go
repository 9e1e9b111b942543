package handlers

import (
	"net/http"

	"calmwave/models"
	"calmwave/services/chat"
	"calmwave/utils"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	Chat chat.ChatService
}

func NewChatHandler(svc chat.ChatService) *ChatHandler {
	return &ChatHandler{Chat: svc}
}

func (h *ChatHandler) ListChannelsHandler(c *gin.Context) {
	list, err := h.Chat.ListChannels(c.Request.Context())
	if err != nil {
		utils.RespondError(c, "Failed to list channels", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *ChatHandler) CreateChannelHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req models.ChannelRequest
	if !bindJSON(c, &req) {
		return
	}
	ch, err := h.Chat.CreateChannel(c.Request.Context(), s, req.Name)
	if err != nil {
		utils.RespondError(c, "Failed to create channel", err)
		return
	}
	c.JSON(http.StatusCreated, ch)
}

func (h *ChatHandler) ListMessagesHandler(c *gin.Context) {
	msgs, err := h.Chat.ListMessages(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, "Failed to list messages", err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *ChatHandler) PostMessageHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req models.MessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.Chat.PostMessage(c.Request.Context(), s, c.Param("id"), req.Text)
	if err != nil {
		utils.RespondError(c, "Failed to post message", err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}
