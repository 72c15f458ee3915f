package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

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

const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"

	minDifficulty = 1
	maxDifficulty = 5

	// Difficulty moves up after this many consecutive correct answers
	// and down after this many consecutive misses.
	streakToAdvance = 3
	missesToEase    = 2
)

// SessionQuestion is one generated open-ended question.
type SessionQuestion struct {
	Question       string `json:"question"`
	ExpectedAnswer string `json:"expected_answer"`
	Difficulty     int    `json:"difficulty"`
}

// AnswerLogEntry records one submitted answer.
type AnswerLogEntry struct {
	QuestionIndex int       `json:"question_index"`
	Answer        string    `json:"answer"`
	Correct       bool      `json:"correct"`
	AnsweredAt    time.Time `json:"answered_at"`
}

type StartSessionInput struct {
	WorkspaceID  uuid.UUID
	ItemID       *uuid.UUID
	Topic        string
	NumQuestions int
}

// SubmitAnswerResult is what the caller sees after grading.
type SubmitAnswerResult struct {
	Correct        bool                `json:"correct"`
	ExpectedAnswer string              `json:"expected_answer"`
	Session        *types.StudySession `json:"session"`
}

type StudySessionService interface {
	StartSession(ctx context.Context, in StartSessionInput) (*types.StudySession, error)
	SubmitAnswer(ctx context.Context, wsID, sessionID uuid.UUID, questionIndex int, answer string) (*SubmitAnswerResult, error)
	GetSession(ctx context.Context, wsID, sessionID uuid.UUID) (*types.StudySession, error)
	ListSessions(ctx context.Context, wsID uuid.UUID) ([]*types.StudySession, error)
}

type studySessionService struct {
	db            *gorm.DB
	log           *logger.Logger
	workspaceRepo repos.WorkspaceRepo
	sessionRepo   repos.StudySessionRepo
	itemRepo      repos.DashboardItemRepo
	llmRouter     *llm.Router
	prompts       *prompts.Set
}

func NewStudySessionService(
	db *gorm.DB,
	log *logger.Logger,
	workspaceRepo repos.WorkspaceRepo,
	sessionRepo repos.StudySessionRepo,
	itemRepo repos.DashboardItemRepo,
	llmRouter *llm.Router,
	promptSet *prompts.Set,
) StudySessionService {
	return &studySessionService{
		db:            db,
		log:           log.With("service", "StudySessionService"),
		workspaceRepo: workspaceRepo,
		sessionRepo:   sessionRepo,
		itemRepo:      itemRepo,
		llmRouter:     llmRouter,
		prompts:       promptSet,
	}
}

func (ss *studySessionService) StartSession(ctx context.Context, in StartSessionInput) (*types.StudySession, error) {
	ws, err := ownedWorkspace(ctx, ss.workspaceRepo, in.WorkspaceID)
	if err != nil {
		return nil, err
	}
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		return nil, apierr.Invalid(fmt.Errorf("topic required"))
	}
	if in.NumQuestions <= 0 {
		in.NumQuestions = 5
	}
	if in.NumQuestions > 20 {
		return nil, apierr.Invalid(fmt.Errorf("at most 20 questions per session"))
	}

	userPrompt := fmt.Sprintf("Generate %d questions on the topic: %s", in.NumQuestions, topic)
	if in.ItemID != nil {
		item, err := ss.itemRepo.GetByID(ctx, nil, *in.ItemID)
		if err != nil || item.WorkspaceID != ws.ID {
			return nil, apierr.NotFound(fmt.Errorf("item %s not found", *in.ItemID))
		}
		if strings.TrimSpace(item.ExtractedText) != "" {
			userPrompt += "\n\nBase the questions on this material:\n" + truncateForPrompt(item.ExtractedText, 16000)
		}
	}

	content, err := ss.llmRouter.Chat(ctx, []llm.Message{
		{Role: "system", Content: ss.prompts.StudySessionSystem},
		{Role: "user", Content: userPrompt},
	}, &llm.Options{Temperature: 0.5})
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Questions []SessionQuestion `json:"questions"`
	}
	if err := decodeLLMJSON(content, &parsed); err != nil {
		return nil, apierr.Unavailable(fmt.Errorf("question generation returned malformed output: %w", err))
	}
	if len(parsed.Questions) == 0 {
		return nil, apierr.Unavailable(fmt.Errorf("question generation returned no questions"))
	}

	questionsJSON, _ := json.Marshal(parsed.Questions)
	session := &types.StudySession{
		ID:             uuid.New(),
		UserID:         ctxutil.UserID(ctx),
		WorkspaceID:    ws.ID,
		ItemID:         in.ItemID,
		Topic:          topic,
		Status:         SessionStatusActive,
		Difficulty:     minDifficulty,
		Questions:      datatypes.JSON(questionsJSON),
		AnswerLog:      datatypes.JSON([]byte("[]")),
		QuestionsTotal: len(parsed.Questions),
	}
	if err := ss.sessionRepo.Create(ctx, nil, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (ss *studySessionService) SubmitAnswer(ctx context.Context, wsID, sessionID uuid.UUID, questionIndex int, answer string) (*SubmitAnswerResult, error) {
	session, err := ss.GetSession(ctx, wsID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != SessionStatusActive {
		return nil, apierr.Invalid(fmt.Errorf("session is %s", session.Status))
	}

	var questions []SessionQuestion
	if err := json.Unmarshal(session.Questions, &questions); err != nil {
		return nil, fmt.Errorf("decode session questions: %w", err)
	}
	if questionIndex < 0 || questionIndex >= len(questions) {
		return nil, apierr.Invalid(fmt.Errorf("question index %d out of range", questionIndex))
	}

	var answerLog []AnswerLogEntry
	if len(session.AnswerLog) > 0 {
		if err := json.Unmarshal(session.AnswerLog, &answerLog); err != nil {
			return nil, fmt.Errorf("decode answer log: %w", err)
		}
	}
	for _, e := range answerLog {
		if e.QuestionIndex == questionIndex {
			return nil, apierr.Invalid(fmt.Errorf("question %d already answered", questionIndex))
		}
	}

	expected := questions[questionIndex].ExpectedAnswer
	correct := evaluateAnswer(answer, expected)

	answerLog = append(answerLog, AnswerLogEntry{
		QuestionIndex: questionIndex,
		Answer:        answer,
		Correct:       correct,
		AnsweredAt:    time.Now().UTC(),
	})
	applyAnswer(session, correct)

	logJSON, _ := json.Marshal(answerLog)
	session.AnswerLog = datatypes.JSON(logJSON)
	if len(answerLog) >= session.QuestionsTotal {
		session.Status = SessionStatusCompleted
	}

	if err := ss.sessionRepo.Save(ctx, nil, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return &SubmitAnswerResult{Correct: correct, ExpectedAnswer: expected, Session: session}, nil
}

func (ss *studySessionService) GetSession(ctx context.Context, wsID, sessionID uuid.UUID) (*types.StudySession, error) {
	ws, err := ownedWorkspace(ctx, ss.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	session, err := ss.sessionRepo.GetByID(ctx, nil, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("session %s not found", sessionID))
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if session.WorkspaceID != ws.ID {
		return nil, apierr.NotFound(fmt.Errorf("session %s not found in workspace %s", sessionID, wsID))
	}
	return session, nil
}

func (ss *studySessionService) ListSessions(ctx context.Context, wsID uuid.UUID) ([]*types.StudySession, error) {
	ws, err := ownedWorkspace(ctx, ss.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	return ss.sessionRepo.ListByWorkspaceID(ctx, nil, ws.ID)
}

// applyAnswer updates counters, streaks and adaptive difficulty for one
// graded answer.
func applyAnswer(session *types.StudySession, correct bool) {
	if correct {
		session.CorrectCount++
		session.CurrentStreak++
		session.CurrentMissRun = 0
		if session.CurrentStreak >= streakToAdvance {
			if session.Difficulty < maxDifficulty {
				session.Difficulty++
			}
			session.CurrentStreak = 0
		}
		return
	}
	session.IncorrectCount++
	session.CurrentMissRun++
	session.CurrentStreak = 0
	if session.CurrentMissRun >= missesToEase {
		if session.Difficulty > minDifficulty {
			session.Difficulty--
		}
		session.CurrentMissRun = 0
	}
}

// evaluateAnswer grades by normalized containment in either direction.
// Open-ended answers rarely match verbatim, so "photosynthesis" passes
// against "the process of photosynthesis".
func evaluateAnswer(answer, expected string) bool {
	a := normalizeAnswer(answer)
	e := normalizeAnswer(expected)
	if a == "" || e == "" {
		return false
	}
	return strings.Contains(a, e) || strings.Contains(e, a)
}

func normalizeAnswer(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == ' ':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
