package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/http/response"
	"github.com/studyloop/studyloop-backend/internal/services"
)

type FolderHandler struct {
	folderService services.FolderService
}

func NewFolderHandler(folderService services.FolderService) *FolderHandler {
	return &FolderHandler{folderService: folderService}
}

func (fh *FolderHandler) Create(c *gin.Context) {
	var req struct {
		WorkspaceID uuid.UUID  `json:"workspace_id" binding:"required"`
		ParentID    *uuid.UUID `json:"parent_id"`
		Name        string     `json:"name" binding:"required"`
		Color       string     `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	folder, err := fh.folderService.CreateFolder(c.Request.Context(), services.CreateFolderInput{
		WorkspaceID: req.WorkspaceID,
		ParentID:    req.ParentID,
		Name:        req.Name,
		Color:       req.Color,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, folder)
}

func (fh *FolderHandler) List(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	folders, err := fh.folderService.ListFolders(c.Request.Context(), wsID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"folders": folders})
}

func (fh *FolderHandler) Update(c *gin.Context) {
	folderID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	var req struct {
		WorkspaceID uuid.UUID `json:"workspace_id" binding:"required"`
		Name        *string   `json:"name"`
		Color       *string   `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	folder, err := fh.folderService.UpdateFolder(c.Request.Context(), req.WorkspaceID, folderID, services.UpdateFolderInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, folder)
}

func (fh *FolderHandler) Delete(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	folderID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	if err := fh.folderService.DeleteFolder(c.Request.Context(), wsID, folderID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"ok": true})
}

func (fh *FolderHandler) AddItem(c *gin.Context) {
	folderID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	var req struct {
		WorkspaceID uuid.UUID `json:"workspace_id" binding:"required"`
		ItemID      uuid.UUID `json:"item_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	if err := fh.folderService.AddItemToFolder(c.Request.Context(), req.WorkspaceID, folderID, req.ItemID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"ok": true})
}

func (fh *FolderHandler) RemoveItem(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	folderID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	itemID, err := uuidParam(c, "itemID")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	if err := fh.folderService.RemoveItemFromFolder(c.Request.Context(), wsID, folderID, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"ok": true})
}

func (fh *FolderHandler) ListItems(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	folderID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	items, err := fh.folderService.ListFolderItems(c.Request.Context(), wsID, folderID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"items": items})
}
