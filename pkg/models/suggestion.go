package models

import "time"

// SuggestionStatus is the fixed status stamped on stored suggestions. A
// suggestion only becomes a Task through an explicit task-creation call.
const SuggestionStatus = "suggestion"

// Suggestion is a structured task proposal produced by the generative-AI
// collaborator, persisted for audit and history.
type Suggestion struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Priority         string    `json:"priority"`
	EstimatedHours   int       `json:"estimatedHours"`
	SuggestedRole    string    `json:"suggestedRole,omitempty"` // admin-generated only
	OriginalPrompt   string    `json:"originalPrompt"`
	GeneratedForRole string    `json:"generatedForRole"`
	CreatedAt        time.Time `json:"createdAt"`
	Status           string    `json:"status"`
}
