package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/ctxutil"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/apierr"
	"github.com/studyloop/studyloop-backend/internal/repos"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type WorkspaceService interface {
	CreateWorkspace(ctx context.Context, name string) (*types.Workspace, error)
	GetWorkspace(ctx context.Context, wsID uuid.UUID) (*types.Workspace, error)
	GetDefaultWorkspace(ctx context.Context) (*types.Workspace, error)
	ListWorkspaces(ctx context.Context) ([]*types.Workspace, error)
	RenameWorkspace(ctx context.Context, wsID uuid.UUID, name string) (*types.Workspace, error)
	DeleteWorkspace(ctx context.Context, wsID uuid.UUID) error
}

type workspaceService struct {
	db            *gorm.DB
	log           *logger.Logger
	workspaceRepo repos.WorkspaceRepo
}

func NewWorkspaceService(db *gorm.DB, log *logger.Logger, workspaceRepo repos.WorkspaceRepo) WorkspaceService {
	return &workspaceService{
		db:            db,
		log:           log.With("service", "WorkspaceService"),
		workspaceRepo: workspaceRepo,
	}
}

func (ws *workspaceService) CreateWorkspace(ctx context.Context, name string) (*types.Workspace, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Unauthorized(fmt.Errorf("not logged in"))
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.Invalid(fmt.Errorf("workspace name required"))
	}

	workspace := &types.Workspace{
		ID:     uuid.New(),
		UserID: rd.UserID,
		Name:   name,
	}
	if err := ws.workspaceRepo.Create(ctx, nil, workspace); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return workspace, nil
}

func (ws *workspaceService) GetWorkspace(ctx context.Context, wsID uuid.UUID) (*types.Workspace, error) {
	return ownedWorkspace(ctx, ws.workspaceRepo, wsID)
}

func (ws *workspaceService) GetDefaultWorkspace(ctx context.Context) (*types.Workspace, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Unauthorized(fmt.Errorf("not logged in"))
	}
	workspace, err := ws.workspaceRepo.GetDefaultByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("lookup default workspace: %w", err)
	}
	return workspace, nil
}

func (ws *workspaceService) ListWorkspaces(ctx context.Context) ([]*types.Workspace, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, apierr.Unauthorized(fmt.Errorf("not logged in"))
	}
	return ws.workspaceRepo.ListByUserID(ctx, nil, rd.UserID)
}

func (ws *workspaceService) RenameWorkspace(ctx context.Context, wsID uuid.UUID, name string) (*types.Workspace, error) {
	workspace, err := ownedWorkspace(ctx, ws.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.Invalid(fmt.Errorf("workspace name required"))
	}
	if err := ws.workspaceRepo.UpdateName(ctx, nil, workspace.ID, name); err != nil {
		return nil, fmt.Errorf("rename workspace: %w", err)
	}
	workspace.Name = name
	return workspace, nil
}

func (ws *workspaceService) DeleteWorkspace(ctx context.Context, wsID uuid.UUID) error {
	workspace, err := ownedWorkspace(ctx, ws.workspaceRepo, wsID)
	if err != nil {
		return err
	}
	// The default workspace anchors all content and cannot be removed.
	if workspace.IsDefault {
		return apierr.Invalid(fmt.Errorf("default workspace cannot be deleted"))
	}
	if err := ws.workspaceRepo.Delete(ctx, nil, workspace.ID); err != nil {
		return fmt.Errorf("delete workspace: %w", err)
	}
	return nil
}
