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

type folderFixture struct {
	db      *gorm.DB
	svc     FolderService
	userCtx context.Context
	ws      *types.Workspace
}

func newFolderFixture(t *testing.T) *folderFixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{}, &types.Workspace{}, &types.DashboardItem{},
		&types.Folder{}, &types.ItemFolder{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}

	user := &types.User{
		ID: uuid.New(), Email: "f@example.com", Password: "x",
		FirstName: "F", LastName: "T",
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

	svc := NewFolderService(db, log,
		repos.NewWorkspaceRepo(db, log),
		repos.NewFolderRepo(db, log),
		repos.NewDashboardItemRepo(db, log),
		repos.NewItemFolderRepo(db, log),
	)
	ctx := ctxutil.WithRequestData(context.Background(),
		&ctxutil.RequestData{UserID: user.ID, Email: user.Email})

	return &folderFixture{db: db, svc: svc, userCtx: ctx, ws: ws}
}

func (f *folderFixture) seedItem(t *testing.T, name string) *types.DashboardItem {
	t.Helper()
	item := &types.DashboardItem{
		ID: uuid.New(), WorkspaceID: f.ws.ID, Kind: "file", DisplayName: name,
		CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}
	if err := f.db.Create(item).Error; err != nil {
		t.Fatalf("seed item: %v", err)
	}
	return item
}

func TestFolderService_DeleteRemovesLinksAndKeepsItems(t *testing.T) {
	f := newFolderFixture(t)

	folder, err := f.svc.CreateFolder(f.userCtx, CreateFolderInput{WorkspaceID: f.ws.ID, Name: "Bio"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	item := f.seedItem(t, "a.pdf")
	if err := f.svc.AddItemToFolder(f.userCtx, f.ws.ID, folder.ID, item.ID); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := f.svc.DeleteFolder(f.userCtx, f.ws.ID, folder.ID); err != nil {
		t.Fatalf("delete folder: %v", err)
	}

	var linkCount int64
	if err := f.db.Model(&types.ItemFolder{}).Count(&linkCount).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if linkCount != 0 {
		t.Fatalf("links remain after folder delete: %d", linkCount)
	}
	var itemCount int64
	if err := f.db.Model(&types.DashboardItem{}).Count(&itemCount).Error; err != nil {
		t.Fatalf("count items: %v", err)
	}
	if itemCount != 1 {
		t.Fatalf("item should survive folder delete, count = %d", itemCount)
	}
}

func TestFolderService_DeleteRejectsWithSubfolders(t *testing.T) {
	f := newFolderFixture(t)

	parent, err := f.svc.CreateFolder(f.userCtx, CreateFolderInput{WorkspaceID: f.ws.ID, Name: "Parent"})
	if err != nil {
		t.Fatalf("create parent: %v", err)
	}
	if _, err := f.svc.CreateFolder(f.userCtx, CreateFolderInput{
		WorkspaceID: f.ws.ID, ParentID: &parent.ID, Name: "Child",
	}); err != nil {
		t.Fatalf("create child: %v", err)
	}

	err = f.svc.DeleteFolder(f.userCtx, f.ws.ID, parent.ID)
	if err == nil {
		t.Fatalf("expected error deleting folder with subfolders")
	}
	if apierr.From(err).Status != 400 {
		t.Fatalf("expected 400, got %d", apierr.From(err).Status)
	}
}

func TestFolderService_AddItemIdempotent(t *testing.T) {
	f := newFolderFixture(t)

	folder, err := f.svc.CreateFolder(f.userCtx, CreateFolderInput{WorkspaceID: f.ws.ID, Name: "Bio"})
	if err != nil {
		t.Fatalf("create folder: %v", err)
	}
	item := f.seedItem(t, "a.pdf")

	for i := 0; i < 2; i++ {
		if err := f.svc.AddItemToFolder(f.userCtx, f.ws.ID, folder.ID, item.ID); err != nil {
			t.Fatalf("add item attempt %d: %v", i+1, err)
		}
	}
	items, err := f.svc.ListFolderItems(f.userCtx, f.ws.ID, folder.ID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected one linked item, got %d", len(items))
	}
}

func TestFolderService_RejectsForeignWorkspace(t *testing.T) {
	f := newFolderFixture(t)

	strangerCtx := ctxutil.WithRequestData(context.Background(),
		&ctxutil.RequestData{UserID: uuid.New(), Email: "stranger@example.com"})

	_, err := f.svc.CreateFolder(strangerCtx, CreateFolderInput{WorkspaceID: f.ws.ID, Name: "Nope"})
	if err == nil {
		t.Fatalf("expected error for foreign workspace")
	}
	if apierr.From(err).Status != 403 {
		t.Fatalf("expected 403, got %d", apierr.From(err).Status)
	}
}

func TestFolderService_UnauthenticatedContext(t *testing.T) {
	f := newFolderFixture(t)

	_, err := f.svc.ListFolders(context.Background(), f.ws.ID)
	if err == nil {
		t.Fatalf("expected error without request data")
	}
	if apierr.From(err).Status != 401 {
		t.Fatalf("expected 401, got %d", apierr.From(err).Status)
	}
}
