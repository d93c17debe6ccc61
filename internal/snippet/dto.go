// AngelaMos | 2026
// dto.go

package snippet

import (
	"time"

	"github.com/carterperez-dev/snipvault/internal/tag"
)

type CreateSnippetRequest struct {
	Title       string   `json:"title"        validate:"required,min=1,max=255"`
	Description *string  `json:"description"  validate:"omitempty,max=2000"`
	CodeContent string   `json:"code_content" validate:"required"`
	LanguageID  string   `json:"language_id"  validate:"required,uuid"`
	Tags        []string `json:"tags"         validate:"omitempty,dive,uuid"`
}

type UpdateSnippetRequest struct {
	Title       string   `json:"title"        validate:"required,min=1,max=255"`
	Description *string  `json:"description"  validate:"omitempty,max=2000"`
	CodeContent string   `json:"code_content" validate:"required"`
	LanguageID  string   `json:"language_id"  validate:"required,uuid"`
	Tags        []string `json:"tags"         validate:"omitempty,dive,uuid"`
}

type SearchRequest struct {
	Query      string `validate:"required,min=2"`
	LanguageID string `validate:"omitempty,uuid"`
	TagID      string `validate:"omitempty,uuid"`
}

type SnippetResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description"`
	CodeContent string            `json:"code_content"`
	Language    string            `json:"language"`
	LanguageID  string            `json:"language_id"`
	Tags        []tag.TagResponse `json:"tags"`
	IsFavorited *bool             `json:"is_favorited,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func toSnippetResponse(s *Snippet, tags []tag.Tag) SnippetResponse {
	return SnippetResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		CodeContent: s.CodeContent,
		Language:    s.LanguageName,
		LanguageID:  s.LanguageID,
		Tags:        tag.ToTagResponses(tags),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// EntityPage wraps a snippet listing that hangs off a taxonomy entity, echoing
// the entity's name alongside the page.
type EntityPage struct {
	Language *string `json:"language,omitempty"`
	Tag      *string `json:"tag,omitempty"`
	Snippets any     `json:"snippets"`
}
