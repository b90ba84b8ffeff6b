package httpadapter_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/couchcryptid/landmask-etl/internal/adapter/httpadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReadiness struct {
	err error
}

func (m *mockReadiness) CheckReadiness(_ context.Context) error { return m.err }

type staticMap struct {
	doc []byte
}

func (m *staticMap) Latest() ([]byte, bool) { return m.doc, m.doc != nil }

func newTestServer(readyErr error, maps httpadapter.MapSource) *httpadapter.Server {
	return httpadapter.NewServer(":0", &mockReadiness{err: readyErr}, maps, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func serve(srv *httpadapter.Server, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthzReturns200(t *testing.T) {
	rec := serve(newTestServer(nil, nil), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decodeBody(t, rec)["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := serve(newTestServer(nil, nil), "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ready", decodeBody(t, rec)["status"])
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	rec := serve(newTestServer(errors.New("pipeline has not published a land map yet"), nil), "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "not ready", body["status"])
	assert.Equal(t, "pipeline has not published a land map yet", body["error"])
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(newTestServer(nil, nil), "/metrics")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestMapServesLatestDocument(t *testing.T) {
	doc := []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`)
	rec := serve(newTestServer(nil, &staticMap{doc: doc}), "/map.svg")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, doc, rec.Body.Bytes())
}

func TestMapReturns503BeforeFirstRender(t *testing.T) {
	rec := serve(newTestServer(nil, &staticMap{}), "/map.svg")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMapNotRoutedWithoutSource(t *testing.T) {
	rec := serve(newTestServer(nil, nil), "/map.svg")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
