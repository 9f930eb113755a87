package in

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"upmind/internal/modules/xp/dto"
	xpin "upmind/internal/modules/xp/port/in"
	"upmind/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase xpin.Usecase
}

func NewHTTPHandler(usecase xpin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

func (h HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Get("/v1/xp", h.getLedger)
	r.Post("/v1/xp", h.addXP)
}

func (h HTTPHandler) getLedger(w http.ResponseWriter, r *http.Request) {
	out, err := h.usecase.GetLedger(r.Context())
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h HTTPHandler) addXP(w http.ResponseWriter, r *http.Request) {
	var input dto.AddXPInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.Fail(w, err)
		return
	}
	out, err := h.usecase.AddXP(r.Context(), input)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
