// AngelaMos | 2026
// handler.go

package language

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/carterperez-dev/snipvault/internal/core"
)

// A malformed route ID can never match a row, so it reads as absent.
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
	requireAdmin func(http.Handler) http.Handler,
) {
	r.Get("/guest/languages", h.List)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)
		r.Get("/languages/{languageID}", h.Get)
	})

	r.Route("/admin/languages", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(requireAdmin)
		r.Post("/", h.Create)
		r.Put("/{languageID}", h.Update)
		r.Delete("/{languageID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	langs, err := h.service.List(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToLanguageResponses(langs))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "languageID")
	if !ok {
		core.NotFound(w, "language")
		return
	}

	lang, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "language")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToLanguageResponse(lang))
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationErrors(err))
		return
	}

	lang, err := h.service.Create(r.Context(), req)
	if err != nil {
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToLanguageResponse(lang))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "languageID")
	if !ok {
		core.NotFound(w, "language")
		return
	}

	var req UpdateLanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationErrors(err))
		return
	}

	lang, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "language")
			return
		}
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToLanguageResponse(lang))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "languageID")
	if !ok {
		core.NotFound(w, "language")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "language")
			return
		}
		if core.IsAppError(err) {
			core.JSONError(w, err)
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OKMessage(w, "Language deleted successfully")
}
