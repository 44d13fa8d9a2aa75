package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/codereviewer/internal/logging"
	"github.com/dmitrijs2005/codereviewer/internal/server/config"
	"github.com/dmitrijs2005/codereviewer/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/codereviewer/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeGenerator struct {
	out      string
	err      error
	gotModel string
}

func (f *fakeGenerator) Generate(_ context.Context, model, _ string) (string, error) {
	f.gotModel = model
	return f.out, f.err
}

type testEnv struct {
	srv     *HTTPServer
	handler http.Handler
	repos   *repomanager.InMemoryRepositoryManager
	gen     *fakeGenerator
	cfg     *config.Config
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>reviewer</h1>"), 0o600))

	cfg := &config.Config{
		SecretKey:             "test-secret",
		TokenValidityDuration: time.Hour,
		BcryptCost:            bcrypt.MinCost,
		StaticDir:             static,
	}

	repos := repomanager.NewInMemoryRepositoryManager()
	gen := &fakeGenerator{out: "1. looks good"}
	us := services.NewUserService(nil, repos, cfg)
	rs := services.NewReviewService(gen, nil, logging.Nop{})

	srv := NewHTTPServer("127.0.0.1:0", logging.Nop{}, us, rs, cfg.StaticDir)
	return &testEnv{srv: srv, handler: srv.Routes(), repos: repos, gen: gen, cfg: cfg}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func (e *testEnv) registerAndLogin(t *testing.T, name, email, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/auth/register", map[string]string{"name": name, "email": email, "password": password}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	return decodeBody(t, rec)["token"].(string)
}
