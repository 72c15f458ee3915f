package handlers

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/http/response"
	"github.com/studyloop/studyloop-backend/internal/services"
)

// Uploads over this size are rejected before extraction.
const maxUploadBytes = 50 << 20

type ItemHandler struct {
	itemService services.ItemService
}

func NewItemHandler(itemService services.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

func (ih *ItemHandler) Upload(c *gin.Context) {
	wsRaw := c.PostForm("workspace_id")
	wsID, err := uuid.Parse(wsRaw)
	if err != nil {
		response.BadRequest(c, fmt.Errorf("invalid workspace_id"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, fmt.Errorf("file required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		response.BadRequest(c, fmt.Errorf("file exceeds %d bytes", maxUploadBytes))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		response.Error(c, err)
		return
	}

	item, err := ih.itemService.UploadFile(c.Request.Context(), services.UploadFileInput{
		WorkspaceID: wsID,
		FileName:    fileHeader.Filename,
		MimeType:    fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

func (ih *ItemHandler) AddLink(c *gin.Context) {
	var req struct {
		WorkspaceID uuid.UUID `json:"workspace_id" binding:"required"`
		URL         string    `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	item, err := ih.itemService.AddLink(c.Request.Context(), req.WorkspaceID, req.URL)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

func (ih *ItemHandler) List(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	items, err := ih.itemService.ListItems(c.Request.Context(), wsID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"items": items})
}

func (ih *ItemHandler) Get(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	itemID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	item, err := ih.itemService.GetItem(c.Request.Context(), wsID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

func (ih *ItemHandler) Rename(c *gin.Context) {
	itemID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	var req struct {
		WorkspaceID uuid.UUID `json:"workspace_id" binding:"required"`
		DisplayName string    `json:"display_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	item, err := ih.itemService.RenameItem(c.Request.Context(), req.WorkspaceID, itemID, req.DisplayName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

func (ih *ItemHandler) Delete(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	itemID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	if err := ih.itemService.DeleteItem(c.Request.Context(), wsID, itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"ok": true})
}
