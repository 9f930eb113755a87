package in

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	phasein "upmind/internal/modules/phase/port/in"
	"upmind/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase phasein.Usecase
}

func NewHTTPHandler(usecase phasein.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

func (h HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Get("/v1/phase/techniques", h.techniques)
	r.Get("/v1/phase", h.status)
}

func (h HTTPHandler) techniques(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.ListTechniques(r.Context())
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h HTTPHandler) status(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.Status(r.Context())
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
