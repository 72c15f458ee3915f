package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type FolderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, folder *types.Folder) error
	GetByID(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) (*types.Folder, error)
	ListByWorkspaceID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) ([]*types.Folder, error)
	ListByParentID(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]*types.Folder, error)
	Update(ctx context.Context, tx *gorm.DB, folderID uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) error
}

type folderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFolderRepo(db *gorm.DB, baseLog *logger.Logger) FolderRepo {
	return &folderRepo{db: db, log: baseLog.With("repo", "FolderRepo")}
}

func (fr *folderRepo) Create(ctx context.Context, tx *gorm.DB, folder *types.Folder) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).Create(folder).Error
}

func (fr *folderRepo) GetByID(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) (*types.Folder, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var result types.Folder
	if err := transaction.WithContext(ctx).
		Where("id = ?", folderID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (fr *folderRepo) ListByWorkspaceID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) ([]*types.Folder, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.Folder
	if err := transaction.WithContext(ctx).
		Where("workspace_id = ?", wsID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *folderRepo) ListByParentID(ctx context.Context, tx *gorm.DB, parentID uuid.UUID) ([]*types.Folder, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.Folder
	if err := transaction.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *folderRepo) Update(ctx context.Context, tx *gorm.DB, folderID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Folder{}).
		Where("id = ?", folderID).
		Updates(updates).Error
}

func (fr *folderRepo) Delete(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", folderID).
		Delete(&types.Folder{}).Error
}
