package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type DashboardItemRepo interface {
	Create(ctx context.Context, tx *gorm.DB, item *types.DashboardItem) error
	GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.DashboardItem, error)
	ListByWorkspaceID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) ([]*types.DashboardItem, error)
	UpdateDisplayName(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, displayName string) error
	Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error
}

type dashboardItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDashboardItemRepo(db *gorm.DB, baseLog *logger.Logger) DashboardItemRepo {
	return &dashboardItemRepo{db: db, log: baseLog.With("repo", "DashboardItemRepo")}
}

func (ir *dashboardItemRepo) Create(ctx context.Context, tx *gorm.DB, item *types.DashboardItem) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).Create(item).Error
}

func (ir *dashboardItemRepo) GetByID(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) (*types.DashboardItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var result types.DashboardItem
	if err := transaction.WithContext(ctx).
		Where("id = ?", itemID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ir *dashboardItemRepo) ListByWorkspaceID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) ([]*types.DashboardItem, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var results []*types.DashboardItem
	if err := transaction.WithContext(ctx).
		Where("workspace_id = ?", wsID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *dashboardItemRepo) UpdateDisplayName(ctx context.Context, tx *gorm.DB, itemID uuid.UUID, displayName string) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Model(&types.DashboardItem{}).
		Where("id = ?", itemID).
		Update("display_name", displayName).Error
}

func (ir *dashboardItemRepo) Delete(ctx context.Context, tx *gorm.DB, itemID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", itemID).
		Delete(&types.DashboardItem{}).Error
}
