package app

import (
	httpH "github.com/studyloop/studyloop-backend/internal/http/handlers"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
)

type Handlers struct {
	Health       *httpH.HealthHandler
	Auth         *httpH.AuthHandler
	User         *httpH.UserHandler
	Workspace    *httpH.WorkspaceHandler
	Item         *httpH.ItemHandler
	Folder       *httpH.FolderHandler
	Quiz         *httpH.QuizHandler
	Chat         *httpH.ChatHandler
	LearningPath *httpH.LearningPathHandler
	StudySession *httpH.StudySessionHandler
	Research     *httpH.ResearchHandler
	VideoGen     *httpH.VideoGenHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(),
		Auth:         httpH.NewAuthHandler(s.Auth),
		User:         httpH.NewUserHandler(s.User),
		Workspace:    httpH.NewWorkspaceHandler(s.Workspace),
		Item:         httpH.NewItemHandler(s.Item),
		Folder:       httpH.NewFolderHandler(s.Folder),
		Quiz:         httpH.NewQuizHandler(s.Quiz),
		Chat:         httpH.NewChatHandler(s.Chat),
		LearningPath: httpH.NewLearningPathHandler(s.LearningPath),
		StudySession: httpH.NewStudySessionHandler(s.StudySession),
		Research:     httpH.NewResearchHandler(s.Research),
		VideoGen:     httpH.NewVideoGenHandler(s.VideoGen),
	}
}
