package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type LearningPathRepo interface {
	Create(ctx context.Context, tx *gorm.DB, path *types.LearningPath) error
	GetByID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) (*types.LearningPath, error)
	GetByIDWithSteps(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) (*types.LearningPath, error)
	ListByWorkspaceID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) ([]*types.LearningPath, error)
	UpdateProgress(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, progress int) error
	Delete(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) error
}

type learningPathRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningPathRepo(db *gorm.DB, baseLog *logger.Logger) LearningPathRepo {
	return &learningPathRepo{db: db, log: baseLog.With("repo", "LearningPathRepo")}
}

func (pr *learningPathRepo) Create(ctx context.Context, tx *gorm.DB, path *types.LearningPath) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).Create(path).Error
}

func (pr *learningPathRepo) GetByID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) (*types.LearningPath, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.LearningPath
	if err := transaction.WithContext(ctx).
		Where("id = ?", pathID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *learningPathRepo) GetByIDWithSteps(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) (*types.LearningPath, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var result types.LearningPath
	if err := transaction.WithContext(ctx).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", pathID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (pr *learningPathRepo) ListByWorkspaceID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) ([]*types.LearningPath, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	var results []*types.LearningPath
	if err := transaction.WithContext(ctx).
		Where("workspace_id = ?", wsID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *learningPathRepo) UpdateProgress(ctx context.Context, tx *gorm.DB, pathID uuid.UUID, progress int) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.LearningPath{}).
		Where("id = ?", pathID).
		Update("progress", progress).Error
}

func (pr *learningPathRepo) Delete(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ?", pathID).
		Delete(&types.LearningPath{}).Error
}
