package repositories

import (
	"context"
	"fmt"

	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/database"
	"github.com/blastgamer59/Smart-Taskflow-AI-powered-Collaborative-Workflow-Manager/pkg/models"
)

// SuggestionRepository persists generated task suggestions for history.
// Suggestions are write-only from the service's point of view; the
// generation endpoint returns them directly and nothing reads them back.
type SuggestionRepository interface {
	InsertBatch(ctx context.Context, suggestions []*models.Suggestion) error
}

// suggestionRepository implements SuggestionRepository using PostgreSQL.
type suggestionRepository struct {
	db *database.DB
}

// NewSuggestionRepository creates a new suggestion repository.
func NewSuggestionRepository(db *database.DB) SuggestionRepository {
	return &suggestionRepository{db: db}
}

func (r *suggestionRepository) InsertBatch(ctx context.Context, suggestions []*models.Suggestion) error {
	if len(suggestions) == 0 {
		return nil
	}

	batch := `
		INSERT INTO ai_suggestions
			(id, title, description, priority, estimated_hours, suggested_role, original_prompt, generated_for_role, created_at, status)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10)`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, s := range suggestions {
		_, err := tx.Exec(ctx, batch,
			s.ID,
			s.Title,
			s.Description,
			s.Priority,
			s.EstimatedHours,
			s.SuggestedRole,
			s.OriginalPrompt,
			s.GeneratedForRole,
			s.CreatedAt,
			s.Status,
		)
		if err != nil {
			return fmt.Errorf("failed to insert suggestion: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit suggestions: %w", err)
	}

	return nil
}

// Ensure suggestionRepository implements SuggestionRepository at compile time.
var _ SuggestionRepository = (*suggestionRepository)(nil)
