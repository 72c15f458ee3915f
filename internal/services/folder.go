package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/apierr"
	"github.com/studyloop/studyloop-backend/internal/repos"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type CreateFolderInput struct {
	WorkspaceID uuid.UUID
	ParentID    *uuid.UUID
	Name        string
	Color       string
}

type UpdateFolderInput struct {
	Name  *string
	Color *string
}

type FolderService interface {
	CreateFolder(ctx context.Context, in CreateFolderInput) (*types.Folder, error)
	ListFolders(ctx context.Context, wsID uuid.UUID) ([]*types.Folder, error)
	UpdateFolder(ctx context.Context, wsID, folderID uuid.UUID, in UpdateFolderInput) (*types.Folder, error)
	DeleteFolder(ctx context.Context, wsID, folderID uuid.UUID) error
	AddItemToFolder(ctx context.Context, wsID, folderID, itemID uuid.UUID) error
	RemoveItemFromFolder(ctx context.Context, wsID, folderID, itemID uuid.UUID) error
	ListFolderItems(ctx context.Context, wsID, folderID uuid.UUID) ([]*types.DashboardItem, error)
}

type folderService struct {
	db             *gorm.DB
	log            *logger.Logger
	workspaceRepo  repos.WorkspaceRepo
	folderRepo     repos.FolderRepo
	itemRepo       repos.DashboardItemRepo
	itemFolderRepo repos.ItemFolderRepo
}

func NewFolderService(
	db *gorm.DB,
	log *logger.Logger,
	workspaceRepo repos.WorkspaceRepo,
	folderRepo repos.FolderRepo,
	itemRepo repos.DashboardItemRepo,
	itemFolderRepo repos.ItemFolderRepo,
) FolderService {
	return &folderService{
		db:             db,
		log:            log.With("service", "FolderService"),
		workspaceRepo:  workspaceRepo,
		folderRepo:     folderRepo,
		itemRepo:       itemRepo,
		itemFolderRepo: itemFolderRepo,
	}
}

func (fs *folderService) CreateFolder(ctx context.Context, in CreateFolderInput) (*types.Folder, error) {
	ws, err := ownedWorkspace(ctx, fs.workspaceRepo, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apierr.Invalid(fmt.Errorf("folder name required"))
	}
	if in.ParentID != nil {
		parent, err := fs.getWorkspaceFolder(ctx, ws.ID, *in.ParentID)
		if err != nil {
			return nil, err
		}
		in.ParentID = &parent.ID
	}

	folder := &types.Folder{
		ID:          uuid.New(),
		WorkspaceID: ws.ID,
		ParentID:    in.ParentID,
		Name:        name,
		Color:       strings.TrimSpace(in.Color),
	}
	if err := fs.folderRepo.Create(ctx, nil, folder); err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	return folder, nil
}

func (fs *folderService) ListFolders(ctx context.Context, wsID uuid.UUID) ([]*types.Folder, error) {
	ws, err := ownedWorkspace(ctx, fs.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	return fs.folderRepo.ListByWorkspaceID(ctx, nil, ws.ID)
}

func (fs *folderService) UpdateFolder(ctx context.Context, wsID, folderID uuid.UUID, in UpdateFolderInput) (*types.Folder, error) {
	ws, err := ownedWorkspace(ctx, fs.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	folder, err := fs.getWorkspaceFolder(ctx, ws.ID, folderID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, apierr.Invalid(fmt.Errorf("folder name required"))
		}
		updates["name"] = name
		folder.Name = name
	}
	if in.Color != nil {
		updates["color"] = strings.TrimSpace(*in.Color)
		folder.Color = strings.TrimSpace(*in.Color)
	}
	if len(updates) == 0 {
		return folder, nil
	}
	if err := fs.folderRepo.Update(ctx, nil, folder.ID, updates); err != nil {
		return nil, fmt.Errorf("update folder: %w", err)
	}
	return folder, nil
}

func (fs *folderService) DeleteFolder(ctx context.Context, wsID, folderID uuid.UUID) error {
	ws, err := ownedWorkspace(ctx, fs.workspaceRepo, wsID)
	if err != nil {
		return err
	}
	folder, err := fs.getWorkspaceFolder(ctx, ws.ID, folderID)
	if err != nil {
		return err
	}

	children, err := fs.folderRepo.ListByParentID(ctx, nil, folder.ID)
	if err != nil {
		return fmt.Errorf("list child folders: %w", err)
	}
	if len(children) > 0 {
		return apierr.Invalid(fmt.Errorf("folder has %d subfolders; delete or move them first", len(children)))
	}

	// Items survive folder deletion; only the membership rows go, and
	// they go before the folder itself inside one transaction.
	return fs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := fs.itemFolderRepo.DeleteByFolderID(ctx, tx, folder.ID); err != nil {
			return fmt.Errorf("delete item links: %w", err)
		}
		if err := fs.folderRepo.Delete(ctx, tx, folder.ID); err != nil {
			return fmt.Errorf("delete folder: %w", err)
		}
		return nil
	})
}

func (fs *folderService) AddItemToFolder(ctx context.Context, wsID, folderID, itemID uuid.UUID) error {
	ws, err := ownedWorkspace(ctx, fs.workspaceRepo, wsID)
	if err != nil {
		return err
	}
	folder, err := fs.getWorkspaceFolder(ctx, ws.ID, folderID)
	if err != nil {
		return err
	}
	item, err := fs.getWorkspaceItem(ctx, ws.ID, itemID)
	if err != nil {
		return err
	}

	link := &types.ItemFolder{
		ID:       uuid.New(),
		ItemID:   item.ID,
		FolderID: folder.ID,
	}
	if err := fs.itemFolderRepo.Create(ctx, nil, link); err != nil {
		// The unique index makes re-adding idempotent at the API level.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("link item to folder: %w", err)
	}
	return nil
}

func (fs *folderService) RemoveItemFromFolder(ctx context.Context, wsID, folderID, itemID uuid.UUID) error {
	ws, err := ownedWorkspace(ctx, fs.workspaceRepo, wsID)
	if err != nil {
		return err
	}
	folder, err := fs.getWorkspaceFolder(ctx, ws.ID, folderID)
	if err != nil {
		return err
	}
	if err := fs.itemFolderRepo.DeleteLink(ctx, nil, itemID, folder.ID); err != nil {
		return fmt.Errorf("unlink item from folder: %w", err)
	}
	return nil
}

func (fs *folderService) ListFolderItems(ctx context.Context, wsID, folderID uuid.UUID) ([]*types.DashboardItem, error) {
	ws, err := ownedWorkspace(ctx, fs.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	folder, err := fs.getWorkspaceFolder(ctx, ws.ID, folderID)
	if err != nil {
		return nil, err
	}
	links, err := fs.itemFolderRepo.ListByFolderID(ctx, nil, folder.ID)
	if err != nil {
		return nil, fmt.Errorf("list folder links: %w", err)
	}

	items := make([]*types.DashboardItem, 0, len(links))
	for _, link := range links {
		item, err := fs.itemRepo.GetByID(ctx, nil, link.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, fmt.Errorf("lookup linked item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (fs *folderService) getWorkspaceFolder(ctx context.Context, wsID, folderID uuid.UUID) (*types.Folder, error) {
	folder, err := fs.folderRepo.GetByID(ctx, nil, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("folder %s not found", folderID))
		}
		return nil, fmt.Errorf("lookup folder: %w", err)
	}
	if folder.WorkspaceID != wsID {
		return nil, apierr.NotFound(fmt.Errorf("folder %s not found in workspace %s", folderID, wsID))
	}
	return folder, nil
}

func (fs *folderService) getWorkspaceItem(ctx context.Context, wsID, itemID uuid.UUID) (*types.DashboardItem, error) {
	item, err := fs.itemRepo.GetByID(ctx, nil, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("item %s not found", itemID))
		}
		return nil, fmt.Errorf("lookup item: %w", err)
	}
	if item.WorkspaceID != wsID {
		return nil, apierr.NotFound(fmt.Errorf("item %s not found in workspace %s", itemID, wsID))
	}
	return item, nil
}
