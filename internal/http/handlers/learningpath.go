package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/http/response"
	"github.com/studyloop/studyloop-backend/internal/services"
)

type LearningPathHandler struct {
	pathService services.LearningPathService
}

func NewLearningPathHandler(pathService services.LearningPathService) *LearningPathHandler {
	return &LearningPathHandler{pathService: pathService}
}

func (lh *LearningPathHandler) Generate(c *gin.Context) {
	var req struct {
		WorkspaceID uuid.UUID `json:"workspace_id" binding:"required"`
		Topic       string    `json:"topic" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	path, err := lh.pathService.GeneratePath(c.Request.Context(), req.WorkspaceID, req.Topic)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, path)
}

func (lh *LearningPathHandler) Get(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	pathID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	path, err := lh.pathService.GetPath(c.Request.Context(), wsID, pathID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, path)
}

func (lh *LearningPathHandler) List(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	paths, err := lh.pathService.ListPaths(c.Request.Context(), wsID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"paths": paths})
}

func (lh *LearningPathHandler) SetStepCompletion(c *gin.Context) {
	pathID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	stepID, err := uuidParam(c, "stepID")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	var req struct {
		WorkspaceID uuid.UUID `json:"workspace_id" binding:"required"`
		Completed   *bool     `json:"completed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	path, err := lh.pathService.SetStepCompletion(c.Request.Context(), req.WorkspaceID, pathID, stepID, *req.Completed)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, path)
}

func (lh *LearningPathHandler) Delete(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	pathID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	if err := lh.pathService.DeletePath(c.Request.Context(), wsID, pathID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"ok": true})
}
