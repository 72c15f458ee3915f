package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/clients/llm"
	"github.com/studyloop/studyloop-backend/internal/pkg/ctxutil"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/apierr"
	"github.com/studyloop/studyloop-backend/internal/prompts"
	"github.com/studyloop/studyloop-backend/internal/repos"
	"github.com/studyloop/studyloop-backend/internal/types"
)

type LearningPathService interface {
	GeneratePath(ctx context.Context, wsID uuid.UUID, topic string) (*types.LearningPath, error)
	GetPath(ctx context.Context, wsID, pathID uuid.UUID) (*types.LearningPath, error)
	ListPaths(ctx context.Context, wsID uuid.UUID) ([]*types.LearningPath, error)
	SetStepCompletion(ctx context.Context, wsID, pathID, stepID uuid.UUID, completed bool) (*types.LearningPath, error)
	DeletePath(ctx context.Context, wsID, pathID uuid.UUID) error
}

type learningPathService struct {
	db            *gorm.DB
	log           *logger.Logger
	workspaceRepo repos.WorkspaceRepo
	pathRepo      repos.LearningPathRepo
	stepRepo      repos.LearningStepRepo
	llmRouter     *llm.Router
	prompts       *prompts.Set
}

func NewLearningPathService(
	db *gorm.DB,
	log *logger.Logger,
	workspaceRepo repos.WorkspaceRepo,
	pathRepo repos.LearningPathRepo,
	stepRepo repos.LearningStepRepo,
	llmRouter *llm.Router,
	promptSet *prompts.Set,
) LearningPathService {
	return &learningPathService{
		db:            db,
		log:           log.With("service", "LearningPathService"),
		workspaceRepo: workspaceRepo,
		pathRepo:      pathRepo,
		stepRepo:      stepRepo,
		llmRouter:     llmRouter,
		prompts:       promptSet,
	}
}

func (ls *learningPathService) GeneratePath(ctx context.Context, wsID uuid.UUID, topic string) (*types.LearningPath, error) {
	ws, err := ownedWorkspace(ctx, ls.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, apierr.Invalid(fmt.Errorf("topic required"))
	}

	content, err := ls.llmRouter.Chat(ctx, []llm.Message{
		{Role: "system", Content: ls.prompts.LearningPathSystem},
		{Role: "user", Content: fmt.Sprintf("Create a learning path for: %s", topic)},
	}, &llm.Options{Temperature: 0.5})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Steps       []struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"steps"`
	}
	if err := decodeLLMJSON(content, &parsed); err != nil {
		return nil, apierr.Unavailable(fmt.Errorf("path generation returned malformed output: %w", err))
	}
	if len(parsed.Steps) == 0 {
		return nil, apierr.Unavailable(fmt.Errorf("path generation returned no steps"))
	}
	if strings.TrimSpace(parsed.Title) == "" {
		parsed.Title = topic
	}

	path := &types.LearningPath{
		ID:          uuid.New(),
		UserID:      ctxutil.UserID(ctx),
		WorkspaceID: ws.ID,
		Title:       parsed.Title,
		Description: parsed.Description,
	}
	steps := make([]*types.LearningStep, 0, len(parsed.Steps))
	for i, s := range parsed.Steps {
		steps = append(steps, &types.LearningStep{
			ID:          uuid.New(),
			PathID:      path.ID,
			Position:    i + 1,
			Title:       s.Title,
			Description: s.Description,
		})
	}

	if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ls.pathRepo.Create(ctx, tx, path); err != nil {
			return fmt.Errorf("create path: %w", err)
		}
		if err := ls.stepRepo.CreateBatch(ctx, tx, steps); err != nil {
			return fmt.Errorf("create steps: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return ls.pathRepo.GetByIDWithSteps(ctx, nil, path.ID)
}

func (ls *learningPathService) GetPath(ctx context.Context, wsID, pathID uuid.UUID) (*types.LearningPath, error) {
	ws, err := ownedWorkspace(ctx, ls.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	path, err := ls.pathRepo.GetByIDWithSteps(ctx, nil, pathID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("learning path %s not found", pathID))
		}
		return nil, fmt.Errorf("lookup path: %w", err)
	}
	if path.WorkspaceID != ws.ID {
		return nil, apierr.NotFound(fmt.Errorf("learning path %s not found in workspace %s", pathID, wsID))
	}
	return path, nil
}

func (ls *learningPathService) ListPaths(ctx context.Context, wsID uuid.UUID) ([]*types.LearningPath, error) {
	ws, err := ownedWorkspace(ctx, ls.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	return ls.pathRepo.ListByWorkspaceID(ctx, nil, ws.ID)
}

func (ls *learningPathService) SetStepCompletion(ctx context.Context, wsID, pathID, stepID uuid.UUID, completed bool) (*types.LearningPath, error) {
	path, err := ls.GetPath(ctx, wsID, pathID)
	if err != nil {
		return nil, err
	}

	step, err := ls.stepRepo.GetByID(ctx, nil, stepID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("step %s not found", stepID))
		}
		return nil, fmt.Errorf("lookup step: %w", err)
	}
	if step.PathID != path.ID {
		return nil, apierr.NotFound(fmt.Errorf("step %s not found in path %s", stepID, pathID))
	}

	// The flag flip and the progress recompute commit together.
	if err := ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ls.stepRepo.SetCompleted(ctx, tx, step.ID, completed); err != nil {
			return fmt.Errorf("set step completion: %w", err)
		}
		total, done, err := ls.stepRepo.CountByPathID(ctx, tx, path.ID)
		if err != nil {
			return fmt.Errorf("count steps: %w", err)
		}
		if err := ls.pathRepo.UpdateProgress(ctx, tx, path.ID, progressPercent(done, total)); err != nil {
			return fmt.Errorf("update progress: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return ls.pathRepo.GetByIDWithSteps(ctx, nil, path.ID)
}

func (ls *learningPathService) DeletePath(ctx context.Context, wsID, pathID uuid.UUID) error {
	path, err := ls.GetPath(ctx, wsID, pathID)
	if err != nil {
		return err
	}
	return ls.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ls.stepRepo.DeleteByPathID(ctx, tx, path.ID); err != nil {
			return fmt.Errorf("delete steps: %w", err)
		}
		if err := ls.pathRepo.Delete(ctx, tx, path.ID); err != nil {
			return fmt.Errorf("delete path: %w", err)
		}
		return nil
	})
}

// progressPercent is round(100 * completed / total), 0 for empty paths.
func progressPercent(completed, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
