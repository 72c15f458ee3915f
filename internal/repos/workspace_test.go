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

func TestWorkspaceRepo_GetDefaultByUserID(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	ctx := context.Background()

	user := seedUser(t, db)
	def := seedWorkspace(t, db, user.ID)
	extra := &types.Workspace{
		ID:        uuid.New(),
		UserID:    user.ID,
		Name:      "Second",
		IsDefault: false,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := db.Create(extra).Error; err != nil {
		t.Fatalf("seed extra workspace: %v", err)
	}

	wsRepo := NewWorkspaceRepo(db, log)

	got, err := wsRepo.GetDefaultByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("get default: %v", err)
	}
	if got.ID != def.ID {
		t.Fatalf("got workspace %s, want default %s", got.ID, def.ID)
	}

	all, err := wsRepo.ListByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("list returned %d workspaces, want 2", len(all))
	}
}

func TestWorkspaceRepo_GetByIDMissing(t *testing.T) {
	db := openTestDB(t)
	wsRepo := NewWorkspaceRepo(db, testLogger(t))

	_, err := wsRepo.GetByID(context.Background(), nil, uuid.New())
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestWorkspaceRepo_UpdateName(t *testing.T) {
	db := openTestDB(t)
	log := testLogger(t)
	ctx := context.Background()

	user := seedUser(t, db)
	ws := seedWorkspace(t, db, user.ID)
	wsRepo := NewWorkspaceRepo(db, log)

	if err := wsRepo.UpdateName(ctx, nil, ws.ID, "Renamed"); err != nil {
		t.Fatalf("update name: %v", err)
	}
	got, err := wsRepo.GetByID(ctx, nil, ws.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Renamed" {
		t.Fatalf("name = %q, want Renamed", got.Name)
	}
}
