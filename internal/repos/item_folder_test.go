package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/types"
)

func TestItemFolderRepo_LinkLifecycle(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	ctx := context.Background()

	user := seedUser(t, db)
	ws := seedWorkspace(t, db, user.ID)
	folder := seedFolder(t, db, ws.ID, "Biology")
	itemA := seedItem(t, db, ws.ID, "a.pdf")
	itemB := seedItem(t, db, ws.ID, "b.pdf")

	linkRepo := NewItemFolderRepo(db, log)

	for _, item := range []*types.DashboardItem{itemA, itemB} {
		err := linkRepo.Create(ctx, nil, &types.ItemFolder{
			ID:        uuid.New(),
			ItemID:    item.ID,
			FolderID:  folder.ID,
			CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("create link: %v", err)
		}
	}

	count, err := linkRepo.CountByFolderID(ctx, nil, folder.ID)
	if err != nil {
		t.Fatalf("count links: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	if err := linkRepo.DeleteLink(ctx, nil, itemA.ID, folder.ID); err != nil {
		t.Fatalf("delete link: %v", err)
	}
	links, err := linkRepo.ListByFolderID(ctx, nil, folder.ID)
	if err != nil {
		t.Fatalf("list links: %v", err)
	}
	if len(links) != 1 || links[0].ItemID != itemB.ID {
		t.Fatalf("unexpected remaining links: %+v", links)
	}
}

func TestItemFolderRepo_DuplicateLinkRejected(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	ctx := context.Background()

	user := seedUser(t, db)
	ws := seedWorkspace(t, db, user.ID)
	folder := seedFolder(t, db, ws.ID, "Biology")
	item := seedItem(t, db, ws.ID, "a.pdf")

	linkRepo := NewItemFolderRepo(db, log)

	link := func() *types.ItemFolder {
		return &types.ItemFolder{ID: uuid.New(), ItemID: item.ID, FolderID: folder.ID, CreatedAt: time.Now().UTC()}
	}
	if err := linkRepo.Create(ctx, nil, link()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	err := linkRepo.Create(ctx, nil, link())
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
}

func TestItemFolderRepo_DeleteByFolderIDKeepsItems(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	ctx := context.Background()

	user := seedUser(t, db)
	ws := seedWorkspace(t, db, user.ID)
	folder := seedFolder(t, db, ws.ID, "Biology")
	item := seedItem(t, db, ws.ID, "a.pdf")

	linkRepo := NewItemFolderRepo(db, log)
	itemRepo := NewDashboardItemRepo(db, log)

	err := linkRepo.Create(ctx, nil, &types.ItemFolder{
		ID: uuid.New(), ItemID: item.ID, FolderID: folder.ID, CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create link: %v", err)
	}

	if err := linkRepo.DeleteByFolderID(ctx, nil, folder.ID); err != nil {
		t.Fatalf("delete by folder: %v", err)
	}
	count, err := linkRepo.CountByFolderID(ctx, nil, folder.ID)
	if err != nil {
		t.Fatalf("count links: %v", err)
	}
	if count != 0 {
		t.Fatalf("links remain after DeleteByFolderID: %d", count)
	}

	// The item itself survives; only the membership is gone.
	if _, err := itemRepo.GetByID(ctx, nil, item.ID); err != nil {
		t.Fatalf("item should survive link removal: %v", err)
	}
}

func TestItemFolderRepo_DeleteByItemID(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	ctx := context.Background()

	user := seedUser(t, db)
	ws := seedWorkspace(t, db, user.ID)
	folderA := seedFolder(t, db, ws.ID, "A")
	folderB := seedFolder(t, db, ws.ID, "B")
	item := seedItem(t, db, ws.ID, "a.pdf")

	linkRepo := NewItemFolderRepo(db, log)
	for _, f := range []*types.Folder{folderA, folderB} {
		err := linkRepo.Create(ctx, nil, &types.ItemFolder{
			ID: uuid.New(), ItemID: item.ID, FolderID: f.ID, CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatalf("create link: %v", err)
		}
	}

	if err := linkRepo.DeleteByItemID(ctx, nil, item.ID); err != nil {
		t.Fatalf("delete by item: %v", err)
	}
	for _, f := range []*types.Folder{folderA, folderB} {
		count, err := linkRepo.CountByFolderID(ctx, nil, f.ID)
		if err != nil {
			t.Fatalf("count links: %v", err)
		}
		if count != 0 {
			t.Fatalf("folder %s still has %d links", f.Name, count)
		}
	}
}
