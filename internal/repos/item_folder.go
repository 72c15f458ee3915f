package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type ItemFolderRepo interface {
	Create(ctx context.Context, tx *gorm.DB, link *types.ItemFolder) error
	ListByFolderID(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) ([]*types.ItemFolder, error)
	CountByFolderID(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) (int64, error)
	DeleteLink(ctx context.Context, tx *gorm.DB, itemID, folderID uuid.UUID) error
	DeleteByFolderID(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) error
	DeleteByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
}

type itemFolderRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewItemFolderRepo(db *gorm.DB, baseLog *logger.Logger) ItemFolderRepo {
	return &itemFolderRepo{db: db, log: baseLog.With("repo", "ItemFolderRepo")}
}

func (lr *itemFolderRepo) Create(ctx context.Context, tx *gorm.DB, link *types.ItemFolder) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).Create(link).Error
}

func (lr *itemFolderRepo) ListByFolderID(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) ([]*types.ItemFolder, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var results []*types.ItemFolder
	if err := transaction.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (lr *itemFolderRepo) CountByFolderID(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.ItemFolder{}).
		Where("folder_id = ?", folderID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (lr *itemFolderRepo) DeleteLink(ctx context.Context, tx *gorm.DB, itemID, folderID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Where("item_id = ? AND folder_id = ?", itemID, folderID).
		Delete(&types.ItemFolder{}).Error
}

func (lr *itemFolderRepo) DeleteByFolderID(ctx context.Context, tx *gorm.DB, folderID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Where("folder_id = ?", folderID).
		Delete(&types.ItemFolder{}).Error
}

func (lr *itemFolderRepo) DeleteByItemID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}
	return transaction.WithContext(ctx).
		Where("item_id = ?", itemID).
		Delete(&types.ItemFolder{}).Error
}
