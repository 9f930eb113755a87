package in

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"upmind/internal/modules/streak/dto"
	streakin "upmind/internal/modules/streak/port/in"
	"upmind/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase streakin.Usecase
}

func NewHTTPHandler(usecase streakin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

func (h HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Get("/v1/stats", h.getStats)
	r.Post("/v1/stats/sessions", h.completeSession)
}

func (h HTTPHandler) getStats(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.GetStats(r.Context())
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h HTTPHandler) completeSession(w http.ResponseWriter, r *http.Request) {
	var input dto.CompleteSessionInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.Fail(w, err)
		return
	}
	out, err := h.usecase.CompleteSession(r.Context(), input)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, out)
}
