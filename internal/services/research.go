package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
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

// Finding is one relevant excerpt pulled from workspace material.
type Finding struct {
	ItemID      uuid.UUID `json:"item_id"`
	DisplayName string    `json:"display_name"`
	Excerpt     string    `json:"excerpt"`
	Score       int       `json:"score"`
}

type ResearchService interface {
	RunQuery(ctx context.Context, wsID uuid.UUID, query string) (*types.ResearchQuery, error)
	GetQuery(ctx context.Context, wsID, queryID uuid.UUID) (*types.ResearchQuery, error)
	ListQueries(ctx context.Context, wsID uuid.UUID) ([]*types.ResearchQuery, error)
}

type researchService struct {
	db            *gorm.DB
	log           *logger.Logger
	workspaceRepo repos.WorkspaceRepo
	itemRepo      repos.DashboardItemRepo
	researchRepo  repos.ResearchQueryRepo
	llmRouter     *llm.Router
	prompts       *prompts.Set
}

func NewResearchService(
	db *gorm.DB,
	log *logger.Logger,
	workspaceRepo repos.WorkspaceRepo,
	itemRepo repos.DashboardItemRepo,
	researchRepo repos.ResearchQueryRepo,
	llmRouter *llm.Router,
	promptSet *prompts.Set,
) ResearchService {
	return &researchService{
		db:            db,
		log:           log.With("service", "ResearchService"),
		workspaceRepo: workspaceRepo,
		itemRepo:      itemRepo,
		researchRepo:  researchRepo,
		llmRouter:     llmRouter,
		prompts:       promptSet,
	}
}

const (
	maxFindings    = 8
	excerptRadius  = 600
	researchBudget = 20000
)

func (rs *researchService) RunQuery(ctx context.Context, wsID uuid.UUID, query string) (*types.ResearchQuery, error) {
	ws, err := ownedWorkspace(ctx, rs.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apierr.Invalid(fmt.Errorf("query required"))
	}

	items, err := rs.itemRepo.ListByWorkspaceID(ctx, nil, ws.ID)
	if err != nil {
		return nil, fmt.Errorf("list workspace items: %w", err)
	}

	findings, err := gatherFindings(ctx, query, items)
	if err != nil {
		return nil, err
	}

	synthesis, err := rs.synthesize(ctx, query, findings)
	if err != nil {
		return nil, err
	}

	findingsJSON, _ := json.Marshal(findings)
	record := &types.ResearchQuery{
		ID:          uuid.New(),
		UserID:      ctxutil.UserID(ctx),
		WorkspaceID: ws.ID,
		Query:       query,
		Findings:    datatypes.JSON(findingsJSON),
		Synthesis:   synthesis,
	}
	if err := rs.researchRepo.Create(ctx, nil, record); err != nil {
		return nil, fmt.Errorf("save research query: %w", err)
	}
	return record, nil
}

func (rs *researchService) GetQuery(ctx context.Context, wsID, queryID uuid.UUID) (*types.ResearchQuery, error) {
	ws, err := ownedWorkspace(ctx, rs.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	record, err := rs.researchRepo.GetByID(ctx, nil, queryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound(fmt.Errorf("research query %s not found", queryID))
		}
		return nil, fmt.Errorf("lookup research query: %w", err)
	}
	if record.WorkspaceID != ws.ID {
		return nil, apierr.NotFound(fmt.Errorf("research query %s not found in workspace %s", queryID, wsID))
	}
	return record, nil
}

func (rs *researchService) ListQueries(ctx context.Context, wsID uuid.UUID) ([]*types.ResearchQuery, error) {
	ws, err := ownedWorkspace(ctx, rs.workspaceRepo, wsID)
	if err != nil {
		return nil, err
	}
	return rs.researchRepo.ListByWorkspaceID(ctx, nil, ws.ID)
}

// gatherFindings scans every item's extracted text concurrently and
// keeps the best-scoring excerpts.
func gatherFindings(ctx context.Context, query string, items []*types.DashboardItem) ([]Finding, error) {
	terms := queryTerms(query)

	var mu sync.Mutex
	var findings []Finding

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, item := range items {
		item := item
		if strings.TrimSpace(item.ExtractedText) == "" {
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			score, excerpt := bestExcerpt(item.ExtractedText, terms)
			if score == 0 {
				return nil
			}
			mu.Lock()
			findings = append(findings, Finding{
				ItemID:      item.ID,
				DisplayName: item.DisplayName,
				Excerpt:     excerpt,
				Score:       score,
			})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(findings, func(i, j int) bool { return findings[i].Score > findings[j].Score })
	if len(findings) > maxFindings {
		findings = findings[:maxFindings]
	}
	return findings, nil
}

func (rs *researchService) synthesize(ctx context.Context, query string, findings []Finding) (string, error) {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Question: %s\n\n", query)
	if len(findings) == 0 {
		buf.WriteString("No workspace material matched the question. Answer from general knowledge and say so.\n")
	} else {
		buf.WriteString("Relevant excerpts from the user's material:\n\n")
		remaining := researchBudget
		for _, f := range findings {
			chunk := truncateForPrompt(f.Excerpt, remaining)
			fmt.Fprintf(&buf, "--- %s ---\n%s\n\n", f.DisplayName, chunk)
			remaining -= len(chunk)
			if remaining <= 0 {
				break
			}
		}
	}

	return rs.llmRouter.Chat(ctx, []llm.Message{
		{Role: "system", Content: rs.prompts.ResearchSystem},
		{Role: "user", Content: buf.String()},
	}, &llm.Options{Temperature: 0.3})
}

// bestExcerpt scores text by query term hits and returns a window
// around the densest match.
func bestExcerpt(text string, terms []string) (int, string) {
	if len(terms) == 0 {
		return 0, ""
	}
	lower := strings.ToLower(text)

	total := 0
	firstHit := -1
	for _, term := range terms {
		idx := strings.Index(lower, term)
		if idx < 0 {
			continue
		}
		total += strings.Count(lower, term)
		if firstHit < 0 || idx < firstHit {
			firstHit = idx
		}
	}
	if total == 0 {
		return 0, ""
	}

	start := firstHit - excerptRadius/2
	if start < 0 {
		start = 0
	}
	end := start + excerptRadius
	if end > len(text) {
		end = len(text)
	}
	return total, strings.TrimSpace(text[start:end])
}

func queryTerms(query string) []string {
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		w = strings.Trim(w, ".,;:!?\"'()")
		// Short words are mostly stopwords and match everything.
		if len(w) >= 4 {
			terms = append(terms, w)
		}
	}
	return terms
}
