package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/studyloop/studyloop-backend/internal/clients/llm"
	"github.com/studyloop/studyloop-backend/internal/pkg/ctxutil"
	"github.com/studyloop/studyloop-backend/internal/pkg/logger"
	"github.com/studyloop/studyloop-backend/internal/platform/apierr"
	"github.com/studyloop/studyloop-backend/internal/prompts"
	"github.com/studyloop/studyloop-backend/internal/repos"
	"github.com/studyloop/studyloop-backend/internal/types"
)

// QuizQuestion is one generated multiple-choice question.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answer_index"`
	Topic       string   `json:"topic"`
}

// QuestionAnswer is one graded answer in a submitted quiz result.
type QuestionAnswer struct {
	Question string `json:"question"`
	Topic    string `json:"topic"`
	Correct  bool   `json:"correct"`
}

// TopicStats is the per-topic accuracy in a quiz result.
type TopicStats struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

type GenerateQuizInput struct {
	WorkspaceID  uuid.UUID
	ItemID       uuid.UUID
	NumQuestions int
}

type SaveQuizResultInput struct {
	WorkspaceID uuid.UUID
	ItemID      *uuid.UUID
	Answers     []QuestionAnswer
}

type QuizService interface {
	GenerateQuiz(ctx context.Context, in GenerateQuizInput) ([]QuizQuestion, error)
	SaveResult(ctx context.Context, in SaveQuizResultInput) (*types.QuizResult, error)
	ListResults(ctx context.Context, wsID uuid.UUID) ([]*types.QuizResult, error)
}

type quizService struct {
	db            *gorm.DB
	log           *logger.Logger
	workspaceRepo repos.WorkspaceRepo
	itemRepo      repos.DashboardItemRepo
	quizRepo      repos.QuizResultRepo
	llmRouter     *llm.Router
	prompts       *prompts.Set
}

func NewQuizService(
	db *gorm.DB,
	log *logger.Logger,
	workspaceRepo repos.WorkspaceRepo,
	itemRepo repos.DashboardItemRepo,
	quizRepo repos.QuizResultRepo,
	llmRouter *llm.Router,
	promptSet *prompts.Set,
) QuizService {
	return &quizService{
		db:            db,
		log:           log.With("service", "QuizService"),
		workspaceRepo: workspaceRepo,
		itemRepo:      itemRepo,
		quizRepo:      quizRepo,
		llmRouter:     llmRouter,
		prompts:       promptSet,
	}
}

func (qs *quizService) GenerateQuiz(ctx context.Context, in GenerateQuizInput) ([]QuizQuestion, error) {
	ws, err := ownedWorkspace(ctx, qs.workspaceRepo, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if in.NumQuestions <= 0 {
		in.NumQuestions = 5
	}
	if in.NumQuestions > 20 {
		return nil, apierr.Invalid(fmt.Errorf("at most 20 questions per quiz"))
	}

	item, err := qs.itemRepo.GetByID(ctx, nil, in.ItemID)
	if err != nil || item.WorkspaceID != ws.ID {
		return nil, apierr.NotFound(fmt.Errorf("item %s not found", in.ItemID))
	}
	if strings.TrimSpace(item.ExtractedText) == "" {
		return nil, apierr.Invalid(fmt.Errorf("item has no extracted text to quiz on"))
	}

	userPrompt := fmt.Sprintf("Generate %d questions from this material:\n\n%s",
		in.NumQuestions, truncateForPrompt(item.ExtractedText, 24000))
	content, err := qs.llmRouter.Chat(ctx, []llm.Message{
		{Role: "system", Content: qs.prompts.QuizSystem},
		{Role: "user", Content: userPrompt},
	}, &llm.Options{Temperature: 0.4})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Questions []QuizQuestion `json:"questions"`
	}
	if err := decodeLLMJSON(content, &parsed); err != nil {
		return nil, apierr.Unavailable(fmt.Errorf("quiz generation returned malformed output: %w", err))
	}
	if len(parsed.Questions) == 0 {
		return nil, apierr.Unavailable(fmt.Errorf("quiz generation returned no questions"))
	}
	return parsed.Questions, nil
}

func (qs *quizService) SaveResult(ctx context.Context, in SaveQuizResultInput) (*types.QuizResult, error) {
	ws, err := ownedWorkspace(ctx, qs.workspaceRepo, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if len(in.Answers) == 0 {
		return nil, apierr.Invalid(fmt.Errorf("answers required"))
	}

	score := 0
	for _, a := range in.Answers {
		if a.Correct {
			score++
		}
	}
	breakdown, weakest, strongest := AnalyzeTopics(in.Answers)

	answersJSON, _ := json.Marshal(in.Answers)
	breakdownJSON, _ := json.Marshal(breakdown)
	weakestJSON, _ := json.Marshal(weakest)
	strongestJSON, _ := json.Marshal(strongest)

	result := &types.QuizResult{
		ID:              uuid.New(),
		UserID:          ctxutil.UserID(ctx),
		WorkspaceID:     ws.ID,
		ItemID:          in.ItemID,
		Score:           score,
		TotalQuestions:  len(in.Answers),
		Answers:         datatypes.JSON(answersJSON),
		TopicBreakdown:  datatypes.JSON(breakdownJSON),
		WeakestTopics:   datatypes.JSON(weakestJSON),
		StrongestTopics: datatypes.JSON(strongestJSON),
	}
	if err := qs.quizRepo.Create(ctx, nil, result); err != nil {
		return nil, fmt.Errorf("save quiz result: %w", err)
	}
	return result, nil
}

func (qs *quizService) ListResults(ctx context.Context, wsID uuid.UUID) ([]*types.QuizResult, error) {
	ws, err := ownedWorkspace(ctx, qs.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	return qs.quizRepo.ListByWorkspaceID(ctx, nil, ws.ID)
}

// AnalyzeTopics buckets per-topic accuracy. Topics under 70 percent are
// weakest, 80 and above are strongest, and the 70 to 79 band lands in
// neither list. Output slices are sorted for stable responses.
func AnalyzeTopics(answers []QuestionAnswer) (map[string]TopicStats, []string, []string) {
	breakdown := make(map[string]TopicStats)
	for _, a := range answers {
		topic := strings.TrimSpace(a.Topic)
		if topic == "" {
			topic = "general"
		}
		stats := breakdown[topic]
		stats.Total++
		if a.Correct {
			stats.Correct++
		}
		breakdown[topic] = stats
	}

	weakest := []string{}
	strongest := []string{}
	for topic, stats := range breakdown {
		stats.Percent = int(math.Round(100 * float64(stats.Correct) / float64(stats.Total)))
		breakdown[topic] = stats
		switch {
		case stats.Percent < 70:
			weakest = append(weakest, topic)
		case stats.Percent >= 80:
			strongest = append(strongest, topic)
		}
	}
	sort.Strings(weakest)
	sort.Strings(strongest)
	return breakdown, weakest, strongest
}
