package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/http/response"
	"github.com/studyloop/studyloop-backend/internal/services"
)

type ResearchHandler struct {
	researchService services.ResearchService
}

func NewResearchHandler(researchService services.ResearchService) *ResearchHandler {
	return &ResearchHandler{researchService: researchService}
}

func (rh *ResearchHandler) Run(c *gin.Context) {
	var req struct {
		WorkspaceID uuid.UUID `json:"workspace_id" binding:"required"`
		Query       string    `json:"query" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	record, err := rh.researchService.RunQuery(c.Request.Context(), req.WorkspaceID, req.Query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

func (rh *ResearchHandler) Get(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	queryID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	record, err := rh.researchService.GetQuery(c.Request.Context(), wsID, queryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, record)
}

func (rh *ResearchHandler) List(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	records, err := rh.researchService.ListQueries(c.Request.Context(), wsID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"queries": records})
}
