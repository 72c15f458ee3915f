package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type LearningStepRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, steps []*types.LearningStep) error
	GetByID(ctx context.Context, tx *gorm.DB, stepID uuid.UUID) (*types.LearningStep, error)
	ListByPathID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) ([]*types.LearningStep, error)
	SetCompleted(ctx context.Context, tx *gorm.DB, stepID uuid.UUID, completed bool) error
	CountByPathID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) (total int64, completed int64, err error)
	DeleteByPathID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) error
}

type learningStepRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningStepRepo(db *gorm.DB, baseLog *logger.Logger) LearningStepRepo {
	return &learningStepRepo{db: db, log: baseLog.With("repo", "LearningStepRepo")}
}

func (sr *learningStepRepo) CreateBatch(ctx context.Context, tx *gorm.DB, steps []*types.LearningStep) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	if len(steps) == 0 {
		return nil
	}
	return transaction.WithContext(ctx).Create(&steps).Error
}

func (sr *learningStepRepo) GetByID(ctx context.Context, tx *gorm.DB, stepID uuid.UUID) (*types.LearningStep, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var result types.LearningStep
	if err := transaction.WithContext(ctx).
		Where("id = ?", stepID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (sr *learningStepRepo) ListByPathID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) ([]*types.LearningStep, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var results []*types.LearningStep
	if err := transaction.WithContext(ctx).
		Where("path_id = ?", pathID).
		Order("position ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (sr *learningStepRepo) SetCompleted(ctx context.Context, tx *gorm.DB, stepID uuid.UUID, completed bool) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	updates := map[string]interface{}{"completed": completed}
	if completed {
		now := time.Now().UTC()
		updates["completed_at"] = &now
	} else {
		updates["completed_at"] = nil
	}
	return transaction.WithContext(ctx).
		Model(&types.LearningStep{}).
		Where("id = ?", stepID).
		Updates(updates).Error
}

func (sr *learningStepRepo) CountByPathID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) (int64, int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	var total int64
	if err := transaction.WithContext(ctx).
		Model(&types.LearningStep{}).
		Where("path_id = ?", pathID).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	var completed int64
	if err := transaction.WithContext(ctx).
		Model(&types.LearningStep{}).
		Where("path_id = ? AND completed = ?", pathID, true).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

func (sr *learningStepRepo) DeleteByPathID(ctx context.Context, tx *gorm.DB, pathID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}
	return transaction.WithContext(ctx).
		Where("path_id = ?", pathID).
		Delete(&types.LearningStep{}).Error
}
