package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/studyloop/studyloop-backend/internal/pkg/ctxutil"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/apierr"
	"github.com/studyloop/studyloop-backend/internal/repos"
	"github.com/studyloop/studyloop-backend/internal/types"
)

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		completed int64
		total     int64
		want      int
	}{
		{0, 0, 0},
		{0, 5, 0},
		{1, 5, 20},
		{1, 3, 33},
		{2, 3, 67},
		{5, 5, 100},
		{3, 7, 43},
	}
	for _, tt := range tests {
		if got := progressPercent(tt.completed, tt.total); got != tt.want {
			t.Fatalf("progressPercent(%d, %d) = %d, want %d", tt.completed, tt.total, got, tt.want)
		}
	}
}

type pathFixture struct {
	db      *gorm.DB
	svc     LearningPathService
	userCtx context.Context
	ws      *types.Workspace
}

func newPathFixture(t *testing.T) *pathFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{}, &types.Workspace{}, &types.LearningPath{}, &types.LearningStep{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	user := &types.User{
		ID: uuid.New(), Email: "p@example.com", Password: "x",
		FirstName: "P", LastName: "T",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	ws := &types.Workspace{
		ID: uuid.New(), UserID: user.ID, Name: "WS", IsDefault: true,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	if err := db.Create(ws).Error; err != nil {
		t.Fatalf("seed workspace: %v", err)
	}

	svc := NewLearningPathService(db, log,
		repos.NewWorkspaceRepo(db, log),
		repos.NewLearningPathRepo(db, log),
		repos.NewLearningStepRepo(db, log),
		nil, nil,
	)
	ctx := ctxutil.WithRequestData(context.Background(),
		&ctxutil.RequestData{UserID: user.ID, Email: user.Email})

	return &pathFixture{db: db, svc: svc, userCtx: ctx, ws: ws}
}

func (f *pathFixture) seedPath(t *testing.T, numSteps int) (*types.LearningPath, []*types.LearningStep) {
	t.Helper()
	path := &types.LearningPath{
		ID: uuid.New(), UserID: f.ws.UserID, WorkspaceID: f.ws.ID, Title: "Linear Algebra",
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	if err := f.db.Create(path).Error; err != nil {
		t.Fatalf("seed path: %v", err)
	}
	steps := make([]*types.LearningStep, 0, numSteps)
	for i := 0; i < numSteps; i++ {
		step := &types.LearningStep{
			ID: uuid.New(), PathID: path.ID, Position: i + 1, Title: "Step",
			CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
		}
		if err := f.db.Create(step).Error; err != nil {
			t.Fatalf("seed step: %v", err)
		}
		steps = append(steps, step)
	}
	return path, steps
}

func TestSetStepCompletion_PersistsRecomputedProgress(t *testing.T) {
	f := newPathFixture(t)
	path, steps := f.seedPath(t, 3)

	got, err := f.svc.SetStepCompletion(f.userCtx, f.ws.ID, path.ID, steps[0].ID, true)
	if err != nil {
		t.Fatalf("complete step: %v", err)
	}
	if got.Progress != 33 {
		t.Fatalf("returned progress = %d, want 33", got.Progress)
	}

	var stored types.LearningPath
	if err := f.db.First(&stored, "id = ?", path.ID).Error; err != nil {
		t.Fatalf("reload path: %v", err)
	}
	if stored.Progress != 33 {
		t.Fatalf("stored progress = %d, want 33", stored.Progress)
	}

	if got, err = f.svc.SetStepCompletion(f.userCtx, f.ws.ID, path.ID, steps[1].ID, true); err != nil {
		t.Fatalf("complete second step: %v", err)
	}
	if got.Progress != 67 {
		t.Fatalf("progress = %d, want 67", got.Progress)
	}

	// Un-completing recomputes downward.
	if got, err = f.svc.SetStepCompletion(f.userCtx, f.ws.ID, path.ID, steps[0].ID, false); err != nil {
		t.Fatalf("uncomplete step: %v", err)
	}
	if got.Progress != 33 {
		t.Fatalf("progress = %d, want 33 after uncomplete", got.Progress)
	}
	if err := f.db.First(&stored, "id = ?", path.ID).Error; err != nil {
		t.Fatalf("reload path: %v", err)
	}
	if stored.Progress != 33 {
		t.Fatalf("stored progress = %d, want 33 after uncomplete", stored.Progress)
	}
}

func TestSetStepCompletion_RejectsStepFromAnotherPath(t *testing.T) {
	f := newPathFixture(t)
	path, _ := f.seedPath(t, 2)
	_, otherSteps := f.seedPath(t, 1)

	_, err := f.svc.SetStepCompletion(f.userCtx, f.ws.ID, path.ID, otherSteps[0].ID, true)
	if err == nil {
		t.Fatalf("expected error for step outside the path")
	}
	if apierr.From(err).Status != 404 {
		t.Fatalf("expected 404, got %d", apierr.From(err).Status)
	}
}
