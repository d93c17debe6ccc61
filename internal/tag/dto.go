// AngelaMos | 2026
// dto.go

package tag

import (
	"time"
)

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type UpdateTagRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Global    bool      `json:"global"`
	CreatedAt time.Time `json:"created_at"`
}

func ToTagResponse(t *Tag) TagResponse {
	return TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		Global:    t.IsGlobal(),
		CreatedAt: t.CreatedAt,
	}
}

func ToTagResponses(tags []Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for i := range tags {
		out = append(out, ToTagResponse(&tags[i]))
	}
	return out
}
