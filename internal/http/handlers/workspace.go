package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/studyloop/studyloop-backend/internal/http/response"
	"github.com/studyloop/studyloop-backend/internal/services"
)

type WorkspaceHandler struct {
	workspaceService services.WorkspaceService
}

func NewWorkspaceHandler(workspaceService services.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

func (wh *WorkspaceHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	ws, err := wh.workspaceService.CreateWorkspace(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ws)
}

func (wh *WorkspaceHandler) List(c *gin.Context) {
	workspaces, err := wh.workspaceService.ListWorkspaces(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"workspaces": workspaces})
}

func (wh *WorkspaceHandler) Get(c *gin.Context) {
	wsID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	ws, err := wh.workspaceService.GetWorkspace(c.Request.Context(), wsID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ws)
}

func (wh *WorkspaceHandler) Rename(c *gin.Context) {
	wsID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	ws, err := wh.workspaceService.RenameWorkspace(c.Request.Context(), wsID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ws)
}

func (wh *WorkspaceHandler) Delete(c *gin.Context) {
	wsID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	if err := wh.workspaceService.DeleteWorkspace(c.Request.Context(), wsID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"ok": true})
}
