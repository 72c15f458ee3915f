package server

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/studyloop/studyloop-backend/internal/http/handlers"
	httpMW "github.com/studyloop/studyloop-backend/internal/http/middleware"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler       *httpH.HealthHandler
	AuthHandler         *httpH.AuthHandler
	UserHandler         *httpH.UserHandler
	WorkspaceHandler    *httpH.WorkspaceHandler
	ItemHandler         *httpH.ItemHandler
	FolderHandler       *httpH.FolderHandler
	QuizHandler         *httpH.QuizHandler
	ChatHandler         *httpH.ChatHandler
	LearningPathHandler *httpH.LearningPathHandler
	StudySessionHandler *httpH.StudySessionHandler
	ResearchHandler     *httpH.ResearchHandler
	VideoGenHandler     *httpH.VideoGenHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("studyloop"))
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
			api.POST("/refresh", cfg.AuthHandler.Refresh)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.AuthHandler != nil {
			protected.POST("/logout", cfg.AuthHandler.Logout)
		}

		if cfg.UserHandler != nil {
			protected.GET("/user", cfg.UserHandler.GetMe)
		}

		if cfg.WorkspaceHandler != nil {
			protected.GET("/workspaces", cfg.WorkspaceHandler.List)
			protected.POST("/workspaces", cfg.WorkspaceHandler.Create)
			protected.GET("/workspaces/:id", cfg.WorkspaceHandler.Get)
			protected.PATCH("/workspaces/:id", cfg.WorkspaceHandler.Rename)
			protected.DELETE("/workspaces/:id", cfg.WorkspaceHandler.Delete)
		}

		if cfg.ItemHandler != nil {
			protected.POST("/items", cfg.ItemHandler.Upload)
			protected.POST("/items/link", cfg.ItemHandler.AddLink)
			protected.GET("/items", cfg.ItemHandler.List)
			protected.GET("/items/:id", cfg.ItemHandler.Get)
			protected.PATCH("/items/:id", cfg.ItemHandler.Rename)
			protected.DELETE("/items/:id", cfg.ItemHandler.Delete)
		}

		if cfg.FolderHandler != nil {
			protected.POST("/folders", cfg.FolderHandler.Create)
			protected.GET("/folders", cfg.FolderHandler.List)
			protected.PATCH("/folders/:id", cfg.FolderHandler.Update)
			protected.DELETE("/folders/:id", cfg.FolderHandler.Delete)
			protected.GET("/folders/:id/items", cfg.FolderHandler.ListItems)
			protected.POST("/folders/:id/items", cfg.FolderHandler.AddItem)
			protected.DELETE("/folders/:id/items/:itemID", cfg.FolderHandler.RemoveItem)
		}

		if cfg.QuizHandler != nil {
			protected.POST("/quiz/generate", cfg.QuizHandler.Generate)
			protected.POST("/quiz/results", cfg.QuizHandler.SaveResult)
			protected.GET("/quiz/results", cfg.QuizHandler.ListResults)
		}

		if cfg.ChatHandler != nil {
			protected.POST("/chat", cfg.ChatHandler.SendMessage)
			protected.GET("/chat/:chatID", cfg.ChatHandler.History)
		}

		if cfg.LearningPathHandler != nil {
			protected.POST("/learning-paths/generate", cfg.LearningPathHandler.Generate)
			protected.GET("/learning-paths", cfg.LearningPathHandler.List)
			protected.GET("/learning-paths/:id", cfg.LearningPathHandler.Get)
			protected.DELETE("/learning-paths/:id", cfg.LearningPathHandler.Delete)
			protected.PATCH("/learning-paths/:id/steps/:stepID", cfg.LearningPathHandler.SetStepCompletion)
		}

		if cfg.StudySessionHandler != nil {
			protected.POST("/study-sessions", cfg.StudySessionHandler.Start)
			protected.GET("/study-sessions", cfg.StudySessionHandler.List)
			protected.GET("/study-sessions/:id", cfg.StudySessionHandler.Get)
			protected.POST("/study-sessions/:id/answers", cfg.StudySessionHandler.SubmitAnswer)
		}

		if cfg.ResearchHandler != nil {
			protected.POST("/research", cfg.ResearchHandler.Run)
			protected.GET("/research", cfg.ResearchHandler.List)
			protected.GET("/research/:id", cfg.ResearchHandler.Get)
		}

		if cfg.VideoGenHandler != nil {
			protected.POST("/videos/script", cfg.VideoGenHandler.GenerateScript)
			protected.GET("/videos", cfg.VideoGenHandler.List)
			protected.GET("/videos/:id", cfg.VideoGenHandler.Get)
		}
	}

	return r
}
