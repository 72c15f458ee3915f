package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/http/response"
	"github.com/studyloop/studyloop-backend/internal/services"
)

type VideoGenHandler struct {
	videoService services.VideoGenService
}

func NewVideoGenHandler(videoService services.VideoGenService) *VideoGenHandler {
	return &VideoGenHandler{videoService: videoService}
}

func (vh *VideoGenHandler) GenerateScript(c *gin.Context) {
	var req struct {
		WorkspaceID uuid.UUID `json:"workspace_id" binding:"required"`
		Topic       string    `json:"topic" binding:"required"`
		Style       string    `json:"style"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	gen, err := vh.videoService.GenerateScript(c.Request.Context(), services.GenerateVideoScriptInput{
		WorkspaceID: req.WorkspaceID,
		Topic:       req.Topic,
		Style:       req.Style,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gen)
}

func (vh *VideoGenHandler) Get(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	genID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	gen, err := vh.videoService.GetGeneration(c.Request.Context(), wsID, genID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gen)
}

func (vh *VideoGenHandler) List(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	gens, err := vh.videoService.ListGenerations(c.Request.Context(), wsID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"generations": gens})
}
