package in_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	historyhttp "upmind/internal/modules/history/adapter/in"
	historyout "upmind/internal/modules/history/adapter/out"
	"upmind/internal/modules/history/dto"
	"upmind/internal/modules/history/service"
	"upmind/internal/modules/history/usecase"
	"upmind/internal/platform/kv"
)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return time.Date(2026, 2, 25, 9, 0, 0, 0, time.UTC) }

func TestHTTPListAndCheck(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := service.NewHistoryService(ctx, fixedClock{}, historyout.NewKVHistoryStore(kv.NewMemoryStore()), nil, nil)
	uc := usecase.NewInteractor(svc)
	_, err := uc.CompleteTask(ctx, dto.CompleteTaskInput{TaskID: "mini-1", XPEarned: 45, ActivityType: "mini-task"})
	require.NoError(t, err)

	r := chi.NewRouter()
	historyhttp.NewHTTPHandler(uc).RegisterRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tasks/mini-1", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"mini-1","completed":true}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tasks?limit=5", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Today int               `json:"today"`
		Tasks []dto.EntryOutput `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Today)
	require.Len(t, body.Tasks, 1)
	assert.Equal(t, 45, body.Tasks[0].XPEarned)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/tasks?limit=-2", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
