package in_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quizin "upmind/internal/modules/quiz/adapter/in"
	"upmind/internal/modules/quiz/dto"
	"upmind/internal/modules/quiz/service"
	"upmind/internal/modules/quiz/usecase"
)

func newRouter() http.Handler {
	r := chi.NewRouter()
	quizin.NewHTTPHandler(usecase.NewInteractor(service.NewQuizService(nil, nil, nil))).RegisterRoutes(r)
	return r
}

func TestPostQuizReturnsFallback(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	body := `{"title":"Hooks","techStack":["React"],"difficulty":"beginner","category":"coding"}`
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/quiz", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	var out dto.GenerateOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Fallback)
	require.Len(t, out.Questions, 1)
	assert.Contains(t, out.Questions[0].Question, "React")
}

func TestPostQuizValidation(t *testing.T) {
	t.Parallel()
	for _, body := range []string{`{"title":""}`, `{"title":"x","difficulty":"legendary"}`, `{"title":"x","unknown":1}`, `not json`} {
		rec := httptest.NewRecorder()
		newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/quiz", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
	}
}
