package in

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"upmind/internal/modules/journal/dto"
	journalin "upmind/internal/modules/journal/port/in"
	apperrors "upmind/internal/platform/errors"
	"upmind/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase journalin.Usecase
}

func NewHTTPHandler(usecase journalin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

func (h HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Get("/v1/journal", h.list)
	r.Get("/v1/journal/streak", h.streak)
}

func (h HTTPHandler) list(w http.ResponseWriter, r *http.Request) {
	var (
		entries []dto.EntryOutput
		err     error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		entries, err = h.usecase.EntriesForDate(r.Context(), date)
	} else {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err = strconv.Atoi(raw)
			if err != nil || limit < 0 {
				httpx.Fail(w, fmt.Errorf("%w: limit must be a non-negative integer", apperrors.ErrInvalidInput))
				return
			}
		}
		entries, err = h.usecase.ListEntries(r.Context(), limit)
	}
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

func (h HTTPHandler) streak(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.Streak(r.Context())
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
