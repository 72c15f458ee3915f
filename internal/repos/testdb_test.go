package repos

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

// openTestDB gives each test its own in-memory sqlite database with the
// full schema migrated.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Workspace{},
		&types.DashboardItem{},
		&types.Folder{},
		&types.ItemFolder{},
		&types.QuizResult{},
		&types.ChatMessage{},
		&types.LearningPath{},
		&types.LearningStep{},
		&types.StudySession{},
		&types.ResearchQuery{},
		&types.VideoGeneration{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func seedUser(t *testing.T, db *gorm.DB) *types.User {
	t.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     uuid.NewString() + "@example.com",
		Password:  "hashed",
		FirstName: "Test",
		LastName:  "User",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedWorkspace(t *testing.T, db *gorm.DB, userID uuid.UUID) *types.Workspace {
	t.Helper()
	ws := &types.Workspace{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      "Test Workspace",
		IsDefault: true,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := db.Create(ws).Error; err != nil {
		t.Fatalf("seed workspace: %v", err)
	}
	return ws
}

func seedItem(t *testing.T, db *gorm.DB, wsID uuid.UUID, name string) *types.DashboardItem {
	t.Helper()
	item := &types.DashboardItem{
		ID:          uuid.New(),
		WorkspaceID: wsID,
		Kind:        "file",
		DisplayName: name,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func seedFolder(t *testing.T, db *gorm.DB, wsID uuid.UUID, name string) *types.Folder {
	t.Helper()
	f := &types.Folder{
		ID:          uuid.New(),
		WorkspaceID: wsID,
		Name:        name,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("seed folder: %v", err)
	}
	return f
}
