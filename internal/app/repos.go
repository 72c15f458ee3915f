package app

import (
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/repos"
)

type Repos struct {
	User            repos.UserRepo
	UserToken       repos.UserTokenRepo
	Workspace       repos.WorkspaceRepo
	DashboardItem   repos.DashboardItemRepo
	Folder          repos.FolderRepo
	ItemFolder      repos.ItemFolderRepo
	QuizResult      repos.QuizResultRepo
	ChatMessage     repos.ChatMessageRepo
	LearningPath    repos.LearningPathRepo
	LearningStep    repos.LearningStepRepo
	StudySession    repos.StudySessionRepo
	ResearchQuery   repos.ResearchQueryRepo
	VideoGeneration repos.VideoGenerationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:            repos.NewUserRepo(db, log),
		UserToken:       repos.NewUserTokenRepo(db, log),
		Workspace:       repos.NewWorkspaceRepo(db, log),
		DashboardItem:   repos.NewDashboardItemRepo(db, log),
		Folder:          repos.NewFolderRepo(db, log),
		ItemFolder:      repos.NewItemFolderRepo(db, log),
		QuizResult:      repos.NewQuizResultRepo(db, log),
		ChatMessage:     repos.NewChatMessageRepo(db, log),
		LearningPath:    repos.NewLearningPathRepo(db, log),
		LearningStep:    repos.NewLearningStepRepo(db, log),
		StudySession:    repos.NewStudySessionRepo(db, log),
		ResearchQuery:   repos.NewResearchQueryRepo(db, log),
		VideoGeneration: repos.NewVideoGenerationRepo(db, log),
	}
}
