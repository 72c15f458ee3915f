package app

import (
	"github.com/gin-gonic/gin"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/server"
)

func wireRouter(log *logger.Logger, handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		Log:                 log,
		AuthMiddleware:      middleware.Auth,
		HealthHandler:       handlers.Health,
		AuthHandler:         handlers.Auth,
		UserHandler:         handlers.User,
		WorkspaceHandler:    handlers.Workspace,
		ItemHandler:         handlers.Item,
		FolderHandler:       handlers.Folder,
		QuizHandler:         handlers.Quiz,
		ChatHandler:         handlers.Chat,
		LearningPathHandler: handlers.LearningPath,
		StudySessionHandler: handlers.StudySession,
		ResearchHandler:     handlers.Research,
		VideoGenHandler:     handlers.VideoGen,
	})
}
