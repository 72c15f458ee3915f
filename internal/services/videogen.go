package services

import (
	"context"
	"errors"
	"fmt"
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

const (
	VideoStatusPending   = "pending"
	VideoStatusCompleted = "completed"
	VideoStatusFailed    = "failed"
)

type GenerateVideoScriptInput struct {
	WorkspaceID uuid.UUID
	Topic       string
	Style       string
}

type VideoGenService interface {
	GenerateScript(ctx context.Context, in GenerateVideoScriptInput) (*types.VideoGeneration, error)
	GetGeneration(ctx context.Context, wsID, genID uuid.UUID) (*types.VideoGeneration, error)
	ListGenerations(ctx context.Context, wsID uuid.UUID) ([]*types.VideoGeneration, error)
}

type videoGenService struct {
	db            *gorm.DB
	log           *logger.Logger
	workspaceRepo repos.WorkspaceRepo
	videoRepo     repos.VideoGenerationRepo
	llmRouter     *llm.Router
	prompts       *prompts.Set
}

func NewVideoGenService(
	db *gorm.DB,
	log *logger.Logger,
	workspaceRepo repos.WorkspaceRepo,
	videoRepo repos.VideoGenerationRepo,
	llmRouter *llm.Router,
	promptSet *prompts.Set,
) VideoGenService {
	return &videoGenService{
		db:            db,
		log:           log.With("service", "VideoGenService"),
		workspaceRepo: workspaceRepo,
		videoRepo:     videoRepo,
		llmRouter:     llmRouter,
		prompts:       promptSet,
	}
}

func (vs *videoGenService) GenerateScript(ctx context.Context, in GenerateVideoScriptInput) (*types.VideoGeneration, error) {
	ws, err := ownedWorkspace(ctx, vs.workspaceRepo, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		return nil, apierr.Invalid(fmt.Errorf("topic required"))
	}

	gen := &types.VideoGeneration{
		ID:          uuid.New(),
		UserID:      ctxutil.UserID(ctx),
		WorkspaceID: ws.ID,
		Topic:       topic,
		Style:       strings.TrimSpace(in.Style),
		Status:      VideoStatusPending,
	}
	if err := vs.videoRepo.Create(ctx, nil, gen); err != nil {
		return nil, fmt.Errorf("create video generation: %w", err)
	}

	userPrompt := fmt.Sprintf("Write a video script about: %s", topic)
	if gen.Style != "" {
		userPrompt += fmt.Sprintf("\nStyle: %s", gen.Style)
	}
	script, err := vs.llmRouter.Chat(ctx, []llm.Message{
		{Role: "system", Content: vs.prompts.VideoScriptSystem},
		{Role: "user", Content: userPrompt},
	}, &llm.Options{Temperature: 0.7})
	if err != nil {
		// The row keeps the failure detail so the client can retry.
		if updErr := vs.videoRepo.Update(ctx, nil, gen.ID, map[string]interface{}{
			"status":       VideoStatusFailed,
			"error_detail": err.Error(),
		}); updErr != nil {
			vs.log.Warn("failed to mark generation failed", "generation_id", gen.ID, "error", updErr)
		}
		return nil, err
	}

	if err := vs.videoRepo.Update(ctx, nil, gen.ID, map[string]interface{}{
		"status": VideoStatusCompleted,
		"script": script,
	}); err != nil {
		return nil, fmt.Errorf("save script: %w", err)
	}
	gen.Status = VideoStatusCompleted
	gen.Script = script
	return gen, nil
}

func (vs *videoGenService) GetGeneration(ctx context.Context, wsID, genID uuid.UUID) (*types.VideoGeneration, error) {
	ws, err := ownedWorkspace(ctx, vs.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	gen, err := vs.videoRepo.GetByID(ctx, nil, genID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("video generation %s not found", genID))
		}
		return nil, fmt.Errorf("lookup video generation: %w", err)
	}
	if gen.WorkspaceID != ws.ID {
		return nil, apierr.NotFound(fmt.Errorf("video generation %s not found in workspace %s", genID, wsID))
	}
	return gen, nil
}

func (vs *videoGenService) ListGenerations(ctx context.Context, wsID uuid.UUID) ([]*types.VideoGeneration, error) {
	ws, err := ownedWorkspace(ctx, vs.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	return vs.videoRepo.ListByWorkspaceID(ctx, nil, ws.ID)
}
