package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"nexalis-roi/http-server/calculate"
	getreport "nexalis-roi/http-server/report/get"
	"nexalis-roi/internal/config"
	"nexalis-roi/internal/narrative"
	"nexalis-roi/internal/report"
	"nexalis-roi/internal/roi"
	genexcel "nexalis-roi/internal/service/generate-excel"
	"nexalis-roi/internal/service/session"
)

type stubComposer struct {
	text string
}

func (s stubComposer) Compose(ctx context.Context, in roi.Inputs, res roi.Result) (narrative.RelayReply, error) {
	return narrative.RelayReply{Text: s.text + " " + string(in.Industry)}, nil
}

func testConfig(frontendDir string) config.Config {
	return config.Config{
		Env:            envLocal,
		FrontendDir:    frontendDir,
		AllowedOrigins: []string{"http://localhost:5173"},
		AdminLogin:     "admin",
		AdminPass:      "pw",
		Narrative:      config.Narrative{Timeout: time.Second},
	}
}

// newTestServer wires the real services together; the requester calls
// the relay of the same server.
func newTestServer(t *testing.T, frontendDir string) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httptest.NewUnstartedServer(nil)
	requester := narrative.NewRequester(log, "http://"+srv.Listener.Addr().String()+"/api/gemini", time.Second)
	sessions := session.NewService(log, requester, 100)
	excel := genexcel.NewGenerateService(sessions)

	srv.Config.Handler = routes(testConfig(frontendDir), log, sessions, stubComposer{text: "Analyse"}, excel)
	srv.Start()

	t.Cleanup(func() {
		srv.Close()
		sessions.Close()
	})

	return srv
}

func TestRoutes_CalculatePollExport(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "missing"))

	resp, err := http.Post(srv.URL+"/api/calculate", "application/json", strings.NewReader(
		`{"employees":10,"hourlyWage":25,"hoursRepetitive":5,"industry":"Santé"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var calc calculate.Resp
	require.NoError(t, render.DecodeJSON(resp.Body, &calc))
	require.NotEmpty(t, calc.SessionID)
	assert.Equal(t, int64(44075), calc.Submission.Results.AnnualSavings)

	var rep getreport.Resp
	assert.Eventually(t, func() bool {
		r, err := http.Get(srv.URL + "/api/sessions/" + calc.SessionID + "/report")
		if err != nil {
			return false
		}
		defer r.Body.Close()
		if r.StatusCode != http.StatusOK || render.DecodeJSON(r.Body, &rep) != nil {
			return false
		}
		return rep.Submission.Narrative.Status == report.StatusReady
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, "Analyse Santé", rep.Submission.Narrative.Text)

	summary, err := http.Get(srv.URL + "/api/sessions/" + calc.SessionID + "/summary")
	require.NoError(t, err)
	defer summary.Body.Close()
	body, err := io.ReadAll(summary.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Analyse Santé")

	export, err := http.Get(srv.URL + "/api/sessions/" + calc.SessionID + "/export")
	require.NoError(t, err)
	defer export.Body.Close()
	require.Equal(t, http.StatusOK, export.StatusCode)
	_, params, err := mime.ParseMediaType(export.Header.Get("Content-Disposition"))
	require.NoError(t, err)
	assert.Equal(t, "Nexalis_Audit_Santé.xlsx", params["filename"])

	data, err := io.ReadAll(export.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.NoError(t, f.Close())
}

func TestRoutes_UnknownSession(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "missing"))

	resp, err := http.Get(srv.URL + "/api/sessions/0b6d2f1e-8a53-4c1f-9d2e-3f0a4b5c6d7e/report")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRoutes_AdminMetrics(t *testing.T) {
	srv := newTestServer(t, filepath.Join(t.TempDir(), "missing"))

	resp, err := http.Get(srv.URL + "/api/admin/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/admin/metrics", nil)
	require.NoError(t, err)
	req.SetBasicAuth("admin", "pw")

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "roi_active_sessions")
}

func TestRoutes_FrontendFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o600))

	srv := newTestServer(t, dir)

	for path, want := range map[string]string{
		"/":          "<html>app</html>",
		"/resultats": "<html>app</html>",
		"/app.js":    "console.log(1)",
	} {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, want, string(body), path)
	}
}
