package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type VideoGenerationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, gen *types.VideoGeneration) error
	GetByID(ctx context.Context, tx *gorm.DB, genID uuid.UUID) (*types.VideoGeneration, error)
	ListByWorkspaceID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) ([]*types.VideoGeneration, error)
	Update(ctx context.Context, tx *gorm.DB, genID uuid.UUID, updates map[string]interface{}) error
}

type videoGenerationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVideoGenerationRepo(db *gorm.DB, baseLog *logger.Logger) VideoGenerationRepo {
	return &videoGenerationRepo{db: db, log: baseLog.With("repo", "VideoGenerationRepo")}
}

func (vr *videoGenerationRepo) Create(ctx context.Context, tx *gorm.DB, gen *types.VideoGeneration) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).Create(gen).Error
}

func (vr *videoGenerationRepo) GetByID(ctx context.Context, tx *gorm.DB, genID uuid.UUID) (*types.VideoGeneration, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var result types.VideoGeneration
	if err := transaction.WithContext(ctx).
		Where("id = ?", genID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (vr *videoGenerationRepo) ListByWorkspaceID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) ([]*types.VideoGeneration, error) {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	var results []*types.VideoGeneration
	if err := transaction.WithContext(ctx).
		Where("workspace_id = ?", wsID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (vr *videoGenerationRepo) Update(ctx context.Context, tx *gorm.DB, genID uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = vr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.VideoGeneration{}).
		Where("id = ?", genID).
		Updates(updates).Error
}
