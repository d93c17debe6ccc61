// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Envelope is the uniform response shape: success plus exactly one of
// data, message, or errors.
type Envelope struct {
	Success bool        `json:"success"`
	Data    any         `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  FieldErrors `json:"errors,omitempty"`
}

type PageMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

type Page struct {
	Items any      `json:"items"`
	Meta  PageMeta `json:"meta"`
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // best-effort response write
	_ = json.NewEncoder(w).Encode(env)
}

func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: data})
}

func OKMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, Envelope{Success: true, Message: message})
}

func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Data: data})
}

func CreatedMessage(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func NewPage(items any, page, perPage, total int) Page {
	totalPages := 0
	if perPage > 0 {
		totalPages = (total + perPage - 1) / perPage
	}
	return Page{
		Items: items,
		Meta: PageMeta{
			Page:       page,
			PerPage:    perPage,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

func Paginated(w http.ResponseWriter, items any, page, perPage, total int) {
	OK(w, NewPage(items, page, perPage, total))
}

const (
	DefaultPerPage = 15
	MaxPerPage     = 100
)

// ParsePagination reads page/per_page query params, clamping to sane bounds.
func ParsePagination(r *http.Request) (page, perPage int) {
	page = 1
	perPage = DefaultPerPage

	if v := r.URL.Query().Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}

	if v := r.URL.Query().Get("per_page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			perPage = n
		}
	}

	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	return page, perPage
}

func BadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, Envelope{
		Success: false,
		Message: message,
	})
}

func UnprocessableEntity(w http.ResponseWriter, fields FieldErrors) {
	writeJSON(w, http.StatusUnprocessableEntity, Envelope{
		Success: false,
		Errors:  fields,
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	if message == "" {
		message = "unauthorized"
	}
	writeJSON(w, http.StatusUnauthorized, Envelope{
		Success: false,
		Message: message,
	})
}

func Forbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = "forbidden"
	}
	writeJSON(w, http.StatusForbidden, Envelope{
		Success: false,
		Message: message,
	})
}

func NotFound(w http.ResponseWriter, resource string) {
	writeJSON(w, http.StatusNotFound, Envelope{
		Success: false,
		Message: resource + " not found",
	})
}

func Conflict(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusConflict, Envelope{
		Success: false,
		Message: message,
	})
}

func InternalServerError(w http.ResponseWriter, err error) {
	slog.Error("internal server error", "error", err)
	writeJSON(w, http.StatusInternalServerError, Envelope{
		Success: false,
		Message: "internal server error",
	})
}

// JSONError writes an AppError with its own status, or falls back to a 500.
func JSONError(w http.ResponseWriter, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		InternalServerError(w, err)
		return
	}

	if len(appErr.Fields) > 0 {
		writeJSON(w, appErr.Status, Envelope{
			Success: false,
			Errors:  appErr.Fields,
		})
		return
	}

	writeJSON(w, appErr.Status, Envelope{
		Success: false,
		Message: appErr.Message,
	})
}

// FormatValidationErrors turns validator.ValidationErrors into the envelope's
// field error map, mirroring how the API reports per-field problems.
func FormatValidationErrors(err error) FieldErrors {
	fields := FieldErrors{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		fields["request"] = "invalid request"
		return fields
	}

	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = name + " is required"
		case "email":
			fields[name] = name + " must be a valid email address"
		case "min":
			fields[name] = name + " must be at least " + fe.Param() + " characters"
		case "max":
			fields[name] = name + " must be at most " + fe.Param() + " characters"
		case "uuid":
			fields[name] = name + " must be a valid id"
		default:
			fields[name] = name + " is invalid"
		}
	}

	return fields
}
