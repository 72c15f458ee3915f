package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/http/response"
	"github.com/studyloop/studyloop-backend/internal/services"
)

type ChatHandler struct {
	chatService services.ChatService
}

func NewChatHandler(chatService services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (ch *ChatHandler) SendMessage(c *gin.Context) {
	var req struct {
		WorkspaceID uuid.UUID `json:"workspace_id" binding:"required"`
		ChatID      uuid.UUID `json:"chat_id"`
		Content     string    `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	msg, err := ch.chatService.SendMessage(c.Request.Context(), req.WorkspaceID, req.ChatID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, msg)
}

func (ch *ChatHandler) History(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	chatID, err := uuidParam(c, "chatID")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	messages, err := ch.chatService.History(c.Request.Context(), wsID, chatID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"messages": messages})
}
