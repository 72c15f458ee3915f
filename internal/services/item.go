package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/clients/appwrite"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/apierr"
	"github.com/studyloop/studyloop-backend/internal/repos"
	"github.com/studyloop/studyloop-backend/internal/types"
)

const (
	ItemKindFile = "file"
	ItemKindLink = "link"
)

type UploadFileInput struct {
	WorkspaceID uuid.UUID
	FileName    string
	MimeType    string
	Data        []byte
}

type ItemService interface {
	UploadFile(ctx context.Context, in UploadFileInput) (*types.DashboardItem, error)
	AddLink(ctx context.Context, wsID uuid.UUID, rawURL string) (*types.DashboardItem, error)
	GetItem(ctx context.Context, wsID, itemID uuid.UUID) (*types.DashboardItem, error)
	ListItems(ctx context.Context, wsID uuid.UUID) ([]*types.DashboardItem, error)
	RenameItem(ctx context.Context, wsID, itemID uuid.UUID, displayName string) (*types.DashboardItem, error)
	DeleteItem(ctx context.Context, wsID, itemID uuid.UUID) error
}

type itemService struct {
	db             *gorm.DB
	log            *logger.Logger
	workspaceRepo  repos.WorkspaceRepo
	itemRepo       repos.DashboardItemRepo
	itemFolderRepo repos.ItemFolderRepo
	storage        appwrite.StorageClient
	extraction     ExtractionService
}

func NewItemService(
	db *gorm.DB,
	log *logger.Logger,
	workspaceRepo repos.WorkspaceRepo,
	itemRepo repos.DashboardItemRepo,
	itemFolderRepo repos.ItemFolderRepo,
	storage appwrite.StorageClient,
	extraction ExtractionService,
) ItemService {
	return &itemService{
		db:             db,
		log:            log.With("service", "ItemService"),
		workspaceRepo:  workspaceRepo,
		itemRepo:       itemRepo,
		itemFolderRepo: itemFolderRepo,
		storage:        storage,
		extraction:     extraction,
	}
}

func (is *itemService) UploadFile(ctx context.Context, in UploadFileInput) (*types.DashboardItem, error) {
	ws, err := ownedWorkspace(ctx, is.workspaceRepo, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if len(in.Data) == 0 {
		return nil, apierr.Invalid(fmt.Errorf("empty file"))
	}
	fileName := strings.TrimSpace(in.FileName)
	if fileName == "" {
		return nil, apierr.Invalid(fmt.Errorf("file name required"))
	}

	itemID := uuid.New()
	file, err := is.storage.Upload(ctx, itemID.String(), fileName, in.Data)
	if err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	// Extraction failure does not lose the upload; the item is stored
	// without text and chat simply cannot cite it.
	extractedText, err := is.extraction.ExtractFromFile(fileName, in.MimeType, in.Data)
	if err != nil {
		is.log.Warn("text extraction failed", "file_name", fileName, "error", err)
		extractedText = ""
	}

	item := &types.DashboardItem{
		ID:            itemID,
		WorkspaceID:   ws.ID,
		Kind:          ItemKindFile,
		DisplayName:   fileName,
		StorageID:     file.ID,
		MimeType:      in.MimeType,
		SizeBytes:     int64(len(in.Data)),
		ExtractedText: extractedText,
	}
	if err := is.itemRepo.Create(ctx, nil, item); err != nil {
		// Keep storage consistent with the database on failure.
		if delErr := is.storage.Delete(ctx, file.ID); delErr != nil {
			is.log.Warn("orphaned storage object after create failure", "storage_id", file.ID, "error", delErr)
		}
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

func (is *itemService) AddLink(ctx context.Context, wsID uuid.UUID, rawURL string) (*types.DashboardItem, error) {
	ws, err := ownedWorkspace(ctx, is.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}

	content, err := is.extraction.ExtractFromURL(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(content.Title)
	if displayName == "" {
		displayName = rawURL
	}
	meta, _ := json.Marshal(map[string]string{"link_kind": string(content.Kind)})

	item := &types.DashboardItem{
		ID:            uuid.New(),
		WorkspaceID:   ws.ID,
		Kind:          ItemKindLink,
		DisplayName:   displayName,
		SourceURL:     rawURL,
		ExtractedText: content.Text,
		Metadata:      datatypes.JSON(meta),
	}
	if err := is.itemRepo.Create(ctx, nil, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

func (is *itemService) GetItem(ctx context.Context, wsID, itemID uuid.UUID) (*types.DashboardItem, error) {
	ws, err := ownedWorkspace(ctx, is.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	return is.getWorkspaceItem(ctx, ws.ID, itemID)
}

func (is *itemService) ListItems(ctx context.Context, wsID uuid.UUID) ([]*types.DashboardItem, error) {
	ws, err := ownedWorkspace(ctx, is.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	return is.itemRepo.ListByWorkspaceID(ctx, nil, ws.ID)
}

func (is *itemService) RenameItem(ctx context.Context, wsID, itemID uuid.UUID, displayName string) (*types.DashboardItem, error) {
	ws, err := ownedWorkspace(ctx, is.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, apierr.Invalid(fmt.Errorf("display name required"))
	}
	item, err := is.getWorkspaceItem(ctx, ws.ID, itemID)
	if err != nil {
		return nil, err
	}
	if err := is.itemRepo.UpdateDisplayName(ctx, nil, item.ID, displayName); err != nil {
		return nil, fmt.Errorf("rename item: %w", err)
	}
	item.DisplayName = displayName
	return item, nil
}

func (is *itemService) DeleteItem(ctx context.Context, wsID, itemID uuid.UUID) error {
	ws, err := ownedWorkspace(ctx, is.workspaceRepo, wsID)
	if err != nil {
		return err
	}
	item, err := is.getWorkspaceItem(ctx, ws.ID, itemID)
	if err != nil {
		return err
	}

	// Folder links go first so a failed delete never leaves dangling
	// membership rows.
	if err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := is.itemFolderRepo.DeleteByItemID(ctx, tx, item.ID); err != nil {
			return fmt.Errorf("delete folder links: %w", err)
		}
		if err := is.itemRepo.Delete(ctx, tx, item.ID); err != nil {
			return fmt.Errorf("delete item: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	// Storage cleanup is best effort once the row is gone.
	if item.StorageID != "" {
		if err := is.storage.Delete(ctx, item.StorageID); err != nil {
			is.log.Warn("failed to delete stored file (ignored)", "storage_id", item.StorageID, "error", err)
		}
	}
	return nil
}

func (is *itemService) getWorkspaceItem(ctx context.Context, wsID, itemID uuid.UUID) (*types.DashboardItem, error) {
	item, err := is.itemRepo.GetByID(ctx, nil, itemID)
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
