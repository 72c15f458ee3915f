package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyloop/studyloop-backend/internal/http/response"
	"github.com/studyloop/studyloop-backend/internal/services"
)

type QuizHandler struct {
	quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func (qh *QuizHandler) Generate(c *gin.Context) {
	var req struct {
		WorkspaceID  uuid.UUID `json:"workspace_id" binding:"required"`
		ItemID       uuid.UUID `json:"item_id" binding:"required"`
		NumQuestions int       `json:"num_questions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	questions, err := qh.quizService.GenerateQuiz(c.Request.Context(), services.GenerateQuizInput{
		WorkspaceID:  req.WorkspaceID,
		ItemID:       req.ItemID,
		NumQuestions: req.NumQuestions,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"questions": questions})
}

func (qh *QuizHandler) SaveResult(c *gin.Context) {
	var req struct {
		WorkspaceID uuid.UUID                 `json:"workspace_id" binding:"required"`
		ItemID      *uuid.UUID                `json:"item_id"`
		Answers     []services.QuestionAnswer `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	result, err := qh.quizService.SaveResult(c.Request.Context(), services.SaveQuizResultInput{
		WorkspaceID: req.WorkspaceID,
		ItemID:      req.ItemID,
		Answers:     req.Answers,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

func (qh *QuizHandler) ListResults(c *gin.Context) {
	wsID, err := workspaceIDQuery(c)
	if err != nil {
		response.BadRequest(c, err)
		return
	}
	results, err := qh.quizService.ListResults(c.Request.Context(), wsID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"results": results})
}
