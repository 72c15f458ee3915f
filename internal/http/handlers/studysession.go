package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/http/response"
	"github.com/studyloop/studyloop-backend/internal/services"
)

type StudySessionHandler struct {
	sessionService services.StudySessionService
}

func NewStudySessionHandler(sessionService services.StudySessionService) *StudySessionHandler {
	return &StudySessionHandler{sessionService: sessionService}
}

func (sh *StudySessionHandler) Start(c *gin.Context) {
	var req struct {
		WorkspaceID  uuid.UUID  `json:"workspace_id" binding:"required"`
		ItemID       *uuid.UUID `json:"item_id"`
		Topic        string     `json:"topic" binding:"required"`
		NumQuestions int        `json:"num_questions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	session, err := sh.sessionService.StartSession(c.Request.Context(), services.StartSessionInput{
		WorkspaceID:  req.WorkspaceID,
		ItemID:       req.ItemID,
		Topic:        req.Topic,
		NumQuestions: req.NumQuestions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, session)
}

func (sh *StudySessionHandler) SubmitAnswer(c *gin.Context) {
	sessionID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	var req struct {
		WorkspaceID   uuid.UUID `json:"workspace_id" binding:"required"`
		QuestionIndex *int      `json:"question_index" binding:"required"`
		Answer        string    `json:"answer" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	result, err := sh.sessionService.SubmitAnswer(c.Request.Context(), req.WorkspaceID, sessionID, *req.QuestionIndex, req.Answer)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func (sh *StudySessionHandler) Get(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	sessionID, err := uuidParam(c, "id")
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	session, err := sh.sessionService.GetSession(c.Request.Context(), wsID, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, session)
}

func (sh *StudySessionHandler) List(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	sessions, err := sh.sessionService.ListSessions(c.Request.Context(), wsID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"sessions": sessions})
}
