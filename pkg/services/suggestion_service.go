package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/ids"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/llm"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/prompts"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/repositories"
)

// Normalization defaults for suggestions with missing fields.
const (
	defaultPriority       = models.PriorityMedium
	defaultEstimatedHours = 5
	defaultSuggestedRole  = "Developer"
	suggestionTemperature = 0.7
)

// rawSuggestion is the shape we accept from the model before normalization.
// EstimatedHours arrives as json.Number-ish free text often enough that we
// take it as a float and truncate.
type rawSuggestion struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Priority       string  `json:"priority"`
	EstimatedHours float64 `json:"estimatedHours"`
	SuggestedRole  string  `json:"suggestedRole"`
}

// SuggestionService asks the generative-AI collaborator for task proposals,
// normalizes whatever comes back into structured records, and persists them.
type SuggestionService interface {
	// Generate returns the stored suggestions for the given goal and role.
	// The result is always a non-nil slice when err is nil.
	Generate(ctx context.Context, projectGoal, userRole string) ([]*models.Suggestion, error)
}

type suggestionService struct {
	client llm.LLMClient
	repo   repositories.SuggestionRepository
	logger *zap.Logger
}

// NewSuggestionService creates a new SuggestionService.
func NewSuggestionService(client llm.LLMClient, repo repositories.SuggestionRepository, logger *zap.Logger) SuggestionService {
	return &suggestionService{
		client: client,
		repo:   repo,
		logger: logger.Named("suggestion-service"),
	}
}

var _ SuggestionService = (*suggestionService)(nil)

func (s *suggestionService) Generate(ctx context.Context, projectGoal, userRole string) ([]*models.Suggestion, error) {
	role := models.RoleUser
	if userRole == models.RoleAdmin {
		role = models.RoleAdmin
	}

	text, err := s.client.GenerateResponse(ctx,
		prompts.SuggestionPrompt(projectGoal),
		prompts.SuggestionSystemMessage(role),
		suggestionTemperature)
	if err != nil {
		return nil, fmt.Errorf("generate suggestions: %w", err)
	}

	raw := parseSuggestions(text, role, s.logger)

	now := time.Now().UTC()
	suggestions := make([]*models.Suggestion, 0, len(raw))
	for _, r := range raw {
		suggestion := &models.Suggestion{
			ID:               ids.New(ids.PrefixSuggestion),
			Title:            r.Title,
			Description:      r.Description,
			Priority:         r.Priority,
			EstimatedHours:   int(r.EstimatedHours),
			OriginalPrompt:   projectGoal,
			GeneratedForRole: role,
			CreatedAt:        now,
			Status:           models.SuggestionStatus,
		}
		if suggestion.Priority == "" {
			suggestion.Priority = defaultPriority
		}
		if suggestion.EstimatedHours == 0 {
			suggestion.EstimatedHours = defaultEstimatedHours
		}
		if role == models.RoleAdmin {
			suggestion.SuggestedRole = r.SuggestedRole
			if suggestion.SuggestedRole == "" {
				suggestion.SuggestedRole = defaultSuggestedRole
			}
		}
		suggestions = append(suggestions, suggestion)
	}

	if err := s.repo.InsertBatch(ctx, suggestions); err != nil {
		return nil, fmt.Errorf("store suggestions: %w", err)
	}

	return suggestions, nil
}

// parseSuggestions turns the model's free-form response into raw suggestion
// records. Strict JSON first (fenced code blocks included); a single object
// is wrapped into a one-element list. When no JSON can be extracted, falls
// back to splitting lines on the first colon as "title: description".
func parseSuggestions(text, role string, logger *zap.Logger) []rawSuggestion {
	if jsonStr, err := llm.ExtractJSON(text); err == nil {
		var list []rawSuggestion
		if err := json.Unmarshal([]byte(jsonStr), &list); err == nil {
			return list
		}
		var single rawSuggestion
		if err := json.Unmarshal([]byte(jsonStr), &single); err == nil {
			return []rawSuggestion{single}
		}
	}

	logger.Warn("model response was not valid JSON, using line heuristic",
		zap.String("role", role),
		zap.Int("response_len", len(text)))

	var out []rawSuggestion
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		title, description, found := strings.Cut(line, ":")
		title = strings.TrimSpace(title)
		description = strings.TrimSpace(description)
		if title == "" {
			title = fmt.Sprintf("Task %d", i+1)
		}
		if !found || description == "" {
			description = "No description provided"
		}

		raw := rawSuggestion{
			Title:          title,
			Description:    description,
			Priority:       defaultPriority,
			EstimatedHours: defaultEstimatedHours,
		}
		if role == models.RoleAdmin {
			raw.SuggestedRole = defaultSuggestedRole
		}
		out = append(out, raw)
	}

	return out
}
