package services

import (
	"context"
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
	chatRoleUser      = "user"
	chatRoleAssistant = "assistant"

	// How much workspace material and history goes into each prompt.
	chatContextBudget = 16000
	chatHistoryLimit  = 20
)

type ChatService interface {
	SendMessage(ctx context.Context, wsID, chatID uuid.UUID, content string) (*types.ChatMessage, error)
	History(ctx context.Context, wsID, chatID uuid.UUID) ([]*types.ChatMessage, error)
}

type chatService struct {
	db            *gorm.DB
	log           *logger.Logger
	workspaceRepo repos.WorkspaceRepo
	itemRepo      repos.DashboardItemRepo
	messageRepo   repos.ChatMessageRepo
	llmRouter     *llm.Router
	prompts       *prompts.Set
}

func NewChatService(
	db *gorm.DB,
	log *logger.Logger,
	workspaceRepo repos.WorkspaceRepo,
	itemRepo repos.DashboardItemRepo,
	messageRepo repos.ChatMessageRepo,
	llmRouter *llm.Router,
	promptSet *prompts.Set,
) ChatService {
	return &chatService{
		db:            db,
		log:           log.With("service", "ChatService"),
		workspaceRepo: workspaceRepo,
		itemRepo:      itemRepo,
		messageRepo:   messageRepo,
		llmRouter:     llmRouter,
		prompts:       promptSet,
	}
}

func (cs *chatService) SendMessage(ctx context.Context, wsID, chatID uuid.UUID, content string) (*types.ChatMessage, error) {
	ws, err := ownedWorkspace(ctx, cs.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apierr.Invalid(fmt.Errorf("message content required"))
	}
	if chatID == uuid.Nil {
		chatID = uuid.New()
	}
	userID := ctxutil.UserID(ctx)

	userMsg := &types.ChatMessage{
		ID:      uuid.New(),
		ChatID:  chatID,
		UserID:  userID,
		Role:    chatRoleUser,
		Content: content,
	}
	if err := cs.messageRepo.Create(ctx, nil, userMsg); err != nil {
		return nil, fmt.Errorf("persist user message: %w", err)
	}

	messages, err := cs.buildPrompt(ctx, ws.ID, chatID)
	if err != nil {
		return nil, err
	}

	reply, err := cs.llmRouter.Chat(ctx, messages, &llm.Options{Temperature: 0.7})
	if err != nil {
		return nil, err
	}

	assistantMsg := &types.ChatMessage{
		ID:      uuid.New(),
		ChatID:  chatID,
		UserID:  userID,
		Role:    chatRoleAssistant,
		Content: reply,
	}
	if err := cs.messageRepo.Create(ctx, nil, assistantMsg); err != nil {
		return nil, fmt.Errorf("persist assistant message: %w", err)
	}
	return assistantMsg, nil
}

func (cs *chatService) History(ctx context.Context, wsID, chatID uuid.UUID) ([]*types.ChatMessage, error) {
	if _, err := ownedWorkspace(ctx, cs.workspaceRepo, wsID); err != nil {
		return nil, err
	}
	userID := ctxutil.UserID(ctx)
	all, err := cs.messageRepo.ListByChatID(ctx, nil, chatID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	// A chat belongs to whoever wrote into it.
	for _, m := range all {
		if m.UserID != userID {
			return nil, apierr.NotFound(fmt.Errorf("chat %s not found", chatID))
		}
	}
	return all, nil
}

// buildPrompt assembles system context from workspace material plus the
// recent turns of this chat, most recent last.
func (cs *chatService) buildPrompt(ctx context.Context, wsID, chatID uuid.UUID) ([]llm.Message, error) {
	items, err := cs.itemRepo.ListByWorkspaceID(ctx, nil, wsID)
	if err != nil {
		return nil, fmt.Errorf("list workspace items: %w", err)
	}

	var contextBuf strings.Builder
	remaining := chatContextBudget
	for _, item := range items {
		text := strings.TrimSpace(item.ExtractedText)
		if text == "" || remaining <= 0 {
			continue
		}
		chunk := truncateForPrompt(text, remaining)
		fmt.Fprintf(&contextBuf, "--- %s ---\n%s\n\n", item.DisplayName, chunk)
		remaining -= len(chunk)
	}

	system := cs.prompts.ChatSystem
	if contextBuf.Len() > 0 {
		system = fmt.Sprintf("%s\n\nWorkspace material:\n%s", system, contextBuf.String())
	}
	messages := []llm.Message{{Role: "system", Content: system}}

	history, err := cs.messageRepo.ListByChatID(ctx, nil, chatID)
	if err != nil {
		return nil, fmt.Errorf("list chat history: %w", err)
	}
	if len(history) > chatHistoryLimit {
		history = history[len(history)-chatHistoryLimit:]
	}
	for _, m := range history {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	return messages, nil
}
