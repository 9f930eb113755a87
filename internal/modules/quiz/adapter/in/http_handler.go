package in

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"upmind/internal/modules/quiz/dto"
	quizin "upmind/internal/modules/quiz/port/in"
	"upmind/internal/platform/httpx"
)

type HTTPHandler struct {
	usecase quizin.Usecase
}

func NewHTTPHandler(usecase quizin.Usecase) HTTPHandler {
	return HTTPHandler{usecase: usecase}
}

func (h HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Post("/v1/quiz", h.generate)
}

func (h HTTPHandler) generate(w http.ResponseWriter, r *http.Request) {
	var input dto.GenerateInput
	if err := httpx.Decode(r, &input); err != nil {
		httpx.Fail(w, err)
		return
	}
	out, err := h.usecase.Generate(r.Context(), input)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, out)
}
