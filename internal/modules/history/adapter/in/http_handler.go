package in

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"upmind/internal/modules/history/dto"
	historyin "upmind/internal/modules/history/port/in"
	apperrors "upmind/internal/platform/errors"
	"upmind/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase historyin.Usecase
}

func NewHTTPHandler(usecase historyin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

// RegisterRoutes mounts the read side of the task log. Task completion goes
// through the reward handler so XP is always awarded alongside the entry.
func (h HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Get("/v1/tasks", h.list)
	r.Get("/v1/tasks/{id}", h.check)
}

type checkResponse struct {
	ID        string `json:"id"`
	Completed bool   `json:"completed"`
}

type listResponse struct {
	Today int               `json:"today"`
	Tasks []dto.EntryOutput `json:"tasks"`
}

func (h HTTPHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httpx.Fail(w, fmt.Errorf("%w: limit must be a non-negative integer", apperrors.ErrInvalidInput))
			return
		}
		limit = n
	}
	tasks, err := h.usecase.ListTasks(r.Context(), limit)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	today, err := h.usecase.TasksCompletedToday(r.Context())
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, listResponse{Today: today, Tasks: tasks})
}

func (h HTTPHandler) check(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	done, err := h.usecase.IsTaskCompleted(r.Context(), id)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, checkResponse{ID: id, Completed: done})
}
