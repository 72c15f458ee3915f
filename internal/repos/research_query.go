package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type ResearchQueryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, query *types.ResearchQuery) error
	GetByID(ctx context.Context, tx *gorm.DB, queryID uuid.UUID) (*types.ResearchQuery, error)
	ListByWorkspaceID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) ([]*types.ResearchQuery, error)
}

type researchQueryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResearchQueryRepo(db *gorm.DB, baseLog *logger.Logger) ResearchQueryRepo {
	return &researchQueryRepo{db: db, log: baseLog.With("repo", "ResearchQueryRepo")}
}

func (rr *researchQueryRepo) Create(ctx context.Context, tx *gorm.DB, query *types.ResearchQuery) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).Create(query).Error
}

func (rr *researchQueryRepo) GetByID(ctx context.Context, tx *gorm.DB, queryID uuid.UUID) (*types.ResearchQuery, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.ResearchQuery
	if err := transaction.WithContext(ctx).
		Where("id = ?", queryID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (rr *researchQueryRepo) ListByWorkspaceID(ctx context.Context, tx *gorm.DB, wsID uuid.UUID) ([]*types.ResearchQuery, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.ResearchQuery
	if err := transaction.WithContext(ctx).
		Where("workspace_id = ?", wsID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
