// AngelaMos | 2026
// dto.go

package language

import (
	"time"
)

type CreateLanguageRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=50"`
	Alias string `json:"alias" validate:"required,min=1,max=50"`
}

type UpdateLanguageRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=50"`
	Alias string `json:"alias" validate:"required,min=1,max=50"`
}

type LanguageResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Alias     string    `json:"alias"`
	CreatedAt time.Time `json:"created_at"`
}

func ToLanguageResponse(l *Language) LanguageResponse {
	return LanguageResponse{
		ID:        l.ID,
		Name:      l.Name,
		Alias:     l.Alias,
		CreatedAt: l.CreatedAt,
	}
}

func ToLanguageResponses(langs []Language) []LanguageResponse {
	out := make([]LanguageResponse, 0, len(langs))
	for i := range langs {
		out = append(out, ToLanguageResponse(&langs[i]))
	}
	return out
}
