package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type WorkspaceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, ws *types.Workspace) error
	GetByID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) (*types.Workspace, error)
	GetDefaultByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Workspace, error)
	ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Workspace, error)
	UpdateName(ctx context.Context, tx *gorm.DB, wsID uuid.UUID, name string) error
	Delete(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) error
}

type workspaceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewWorkspaceRepo(db *gorm.DB, baseLog *logger.Logger) WorkspaceRepo {
	return &workspaceRepo{db: db, log: baseLog.With("repo", "WorkspaceRepo")}
}

func (wr *workspaceRepo) Create(ctx context.Context, tx *gorm.DB, ws *types.Workspace) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).Create(ws).Error
}

func (wr *workspaceRepo) GetByID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) (*types.Workspace, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var result types.Workspace
	if err := transaction.WithContext(ctx).
		Where("id = ?", wsID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (wr *workspaceRepo) GetDefaultByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Workspace, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var result types.Workspace
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND is_default = ?", userID, true).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (wr *workspaceRepo) ListByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Workspace, error) {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	var results []*types.Workspace
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (wr *workspaceRepo) UpdateName(ctx context.Context, tx *gorm.DB, wsID uuid.UUID, name string) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Workspace{}).
		Where("id = ?", wsID).
		Update("name", name).Error
}

func (wr *workspaceRepo) Delete(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = wr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", wsID).
		Delete(&types.Workspace{}).Error
}
