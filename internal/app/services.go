package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/prompts"
	"github.com/studyloop/studyloop-backend/internal/services"
)

type Services struct {
	Avatar       services.AvatarService
	Auth         services.AuthService
	User         services.UserService
	Workspace    services.WorkspaceService
	Extraction   services.ExtractionService
	Item         services.ItemService
	Folder       services.FolderService
	Quiz         services.QuizService
	Chat         services.ChatService
	LearningPath services.LearningPathService
	StudySession services.StudySessionService
	Research     services.ResearchService
	VideoGen     services.VideoGenService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, c Clients) (Services, error) {
	log.Info("Wiring services...")

	promptSet, err := prompts.Load()
	if err != nil {
		return Services{}, fmt.Errorf("load prompts: %w", err)
	}

	avatar, err := services.NewAvatarService(db, log, r.User, c.Storage)
	if err != nil {
		// Registration works without avatars; keep going.
		log.Warn("avatar service unavailable", "error", err)
		avatar = nil
	}

	auth := services.NewAuthService(db, log, r.User, r.UserToken, r.Workspace, avatar,
		cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	user := services.NewUserService(db, log, r.User)
	workspace := services.NewWorkspaceService(db, log, r.Workspace)
	extraction := services.NewExtractionService(log, c.YouTube, c.Scraper, c.Cache)
	item := services.NewItemService(db, log, r.Workspace, r.DashboardItem, r.ItemFolder, c.Storage, extraction)
	folder := services.NewFolderService(db, log, r.Workspace, r.Folder, r.DashboardItem, r.ItemFolder)
	quiz := services.NewQuizService(db, log, r.Workspace, r.DashboardItem, r.QuizResult, c.LLMRouter, promptSet)
	chat := services.NewChatService(db, log, r.Workspace, r.DashboardItem, r.ChatMessage, c.LLMRouter, promptSet)
	learningPath := services.NewLearningPathService(db, log, r.Workspace, r.LearningPath, r.LearningStep, c.LLMRouter, promptSet)
	studySession := services.NewStudySessionService(db, log, r.Workspace, r.StudySession, r.DashboardItem, c.LLMRouter, promptSet)
	research := services.NewResearchService(db, log, r.Workspace, r.DashboardItem, r.ResearchQuery, c.LLMRouter, promptSet)
	videoGen := services.NewVideoGenService(db, log, r.Workspace, r.VideoGeneration, c.LLMRouter, promptSet)

	return Services{
		Avatar:       avatar,
		Auth:         auth,
		User:         user,
		Workspace:    workspace,
		Extraction:   extraction,
		Item:         item,
		Folder:       folder,
		Quiz:         quiz,
		Chat:         chat,
		LearningPath: learningPath,
		StudySession: studySession,
		Research:     research,
		VideoGen:     videoGen,
	}, nil
}
