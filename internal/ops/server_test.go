package ops

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	err  error
	runs int
}

func (r *stubRunner) RunCycle(context.Context) error {
	r.runs++
	return r.err
}

func TestHealthEndpoint(t *testing.T) {
	srv := NewServer(0, &stubRunner{}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRunEndpoint(t *testing.T) {
	runner := &stubRunner{}
	srv := NewServer(0, runner, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, runner.runs)
}

func TestRunEndpointCycleError(t *testing.T) {
	runner := &stubRunner{err: fmt.Errorf("list items: connection reset")}
	srv := NewServer(0, runner, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRunEndpointRejectsGet(t *testing.T) {
	runner := &stubRunner{}
	srv := NewServer(0, runner, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/run", nil)
	rec := httptest.NewRecorder()
	srv.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, 0, runner.runs)
}
