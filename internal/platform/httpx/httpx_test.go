package httpx_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "upmind/internal/platform/errors"
	"upmind/internal/platform/httpx"
)

func TestStatusFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, http.StatusBadRequest, httpx.StatusFor(fmt.Errorf("x: %w", apperrors.ErrInvalidInput)))
	assert.Equal(t, http.StatusNotFound, httpx.StatusFor(apperrors.ErrNoActiveSession))
	assert.Equal(t, http.StatusConflict, httpx.StatusFor(apperrors.ErrActiveSessionExists))
	assert.Equal(t, http.StatusServiceUnavailable, httpx.StatusFor(apperrors.ErrProviderUnavailable))
	assert.Equal(t, http.StatusInternalServerError, httpx.StatusFor(errors.New("disk")))
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	var body struct {
		Amount int `json:"amount"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"amount":5,"extra":1}`))
	err := httpx.Decode(req, &body)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	rec := httptest.NewRecorder()
	httpx.Fail(rec, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}
