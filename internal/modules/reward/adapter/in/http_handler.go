package in

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"upmind/internal/modules/reward/dto"
	rewardin "upmind/internal/modules/reward/port/in"
	"upmind/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase rewardin.Usecase
}

func NewHTTPHandler(usecase rewardin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

func (h HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Post("/v1/tasks", h.completeTask)
	r.Post("/v1/journal", h.writeJournal)
	r.Get("/v1/summary", h.summary)
}

func (h HTTPHandler) completeTask(w http.ResponseWriter, r *http.Request) {
	var input dto.CompleteTaskInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.Fail(w, err)
		return
	}
	out, err := h.usecase.CompleteTask(r.Context(), input)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, out)
}

func (h HTTPHandler) writeJournal(w http.ResponseWriter, r *http.Request) {
	var input dto.WriteJournalInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.Fail(w, err)
		return
	}
	out, err := h.usecase.WriteJournal(r.Context(), input)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, out)
}

func (h HTTPHandler) summary(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.Summary(r.Context())
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
