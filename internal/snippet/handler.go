// AngelaMos | 2026
// handler.go

package snippet

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/carterperez-dev/snipvault/internal/core"
	"github.com/carterperez-dev/snipvault/internal/middleware"
)

// pathID validates a route parameter as a UUID. A malformed ID can never
// match a row, so it reads the same as an absent one.
func pathID(r *http.Request, name string) (string, bool) {
	id := chi.URLParam(r, name)
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Route("/snippets", func(r chi.Router) {
			r.Get("/", h.List)
			r.Post("/", h.Create)
			r.Get("/search", h.Search)
			r.Get("/{snippetID}", h.Get)
			r.Put("/{snippetID}", h.Update)
			r.Delete("/{snippetID}", h.Delete)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", h.ListFavorites)
			r.Post("/{snippetID}", h.Favorite)
			r.Delete("/{snippetID}", h.Unfavorite)
		})

		r.Get("/languages/{languageID}/snippets", h.ListByLanguage)
		r.Get("/tags/{tagID}/snippets", h.ListByTag)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationErrors(err))
		return
	}

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	snippetID, ok := pathID(r, "snippetID")
	if !ok {
		core.NotFound(w, "snippet")
		return
	}

	resp, err := h.service.Get(r.Context(), userID, snippetID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page, perPage := core.ParsePagination(r)

	result, err := h.service.List(r.Context(), userID, page, perPage)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	snippetID, ok := pathID(r, "snippetID")
	if !ok {
		core.NotFound(w, "snippet")
		return
	}

	var req UpdateSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationErrors(err))
		return
	}

	resp, err := h.service.Update(r.Context(), userID, snippetID, req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	snippetID, ok := pathID(r, "snippetID")
	if !ok {
		core.NotFound(w, "snippet")
		return
	}

	if err := h.service.Delete(r.Context(), userID, snippetID); err != nil {
		h.writeError(w, err)
		return
	}

	core.OKMessage(w, "Snippet deleted successfully")
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page, perPage := core.ParsePagination(r)

	req := SearchRequest{
		Query:      r.URL.Query().Get("query"),
		LanguageID: r.URL.Query().Get("language_id"),
		TagID:      r.URL.Query().Get("tag_id"),
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationErrors(err))
		return
	}

	result, err := h.service.Search(r.Context(), userID, req, page, perPage)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) ListByLanguage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page, perPage := core.ParsePagination(r)

	languageID, ok := pathID(r, "languageID")
	if !ok {
		core.NotFound(w, "language")
		return
	}

	result, err := h.service.ListByLanguage(
		r.Context(), userID, languageID, page, perPage,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "language")
			return
		}
		h.writeError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) ListByTag(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page, perPage := core.ParsePagination(r)

	tagID, ok := pathID(r, "tagID")
	if !ok {
		core.NotFound(w, "tag")
		return
	}

	result, err := h.service.ListByTag(
		r.Context(), userID, tagID, page, perPage,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tag")
			return
		}
		h.writeError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) Favorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	snippetID, ok := pathID(r, "snippetID")
	if !ok {
		core.NotFound(w, "snippet")
		return
	}

	already, err := h.service.Favorite(r.Context(), userID, snippetID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if already {
		core.OKMessage(w, "Snippet is already in favorites")
		return
	}

	core.OKMessage(w, "Snippet added to favorites")
}

func (h *Handler) Unfavorite(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	snippetID, ok := pathID(r, "snippetID")
	if !ok {
		core.NotFound(w, "snippet")
		return
	}

	if err := h.service.Unfavorite(r.Context(), userID, snippetID); err != nil {
		h.writeError(w, err)
		return
	}

	core.OKMessage(w, "Snippet removed from favorites")
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page, perPage := core.ParsePagination(r)

	result, err := h.service.ListFavorites(r.Context(), userID, page, perPage)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, result)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, core.ErrNotFound) {
		core.NotFound(w, "snippet")
		return
	}
	if core.IsAppError(err) {
		core.JSONError(w, err)
		return
	}
	core.InternalServerError(w, err)
}
