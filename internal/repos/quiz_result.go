package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type QuizResultRepo interface {
	Create(ctx context.Context, tx *gorm.DB, result *types.QuizResult) error
	GetByID(ctx context.Context, tx *gorm.DB, resultID uuid.UUID) (*types.QuizResult, error)
	ListByWorkspaceID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) ([]*types.QuizResult, error)
}

type quizResultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuizResultRepo(db *gorm.DB, baseLog *logger.Logger) QuizResultRepo {
	return &quizResultRepo{db: db, log: baseLog.With("repo", "QuizResultRepo")}
}

func (qr *quizResultRepo) Create(ctx context.Context, tx *gorm.DB, result *types.QuizResult) error {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	return transaction.WithContext(ctx).Create(result).Error
}

func (qr *quizResultRepo) GetByID(ctx context.Context, tx *gorm.DB, resultID uuid.UUID) (*types.QuizResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var result types.QuizResult
	if err := transaction.WithContext(ctx).
		Where("id = ?", resultID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (qr *quizResultRepo) ListByWorkspaceID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) ([]*types.QuizResult, error) {
	transaction := tx
	if transaction == nil {
		transaction = qr.db
	}
	var results []*types.QuizResult
	if err := transaction.WithContext(ctx).
		Where("workspace_id = ?", wsID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
