package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nexalis-roi/internal/narrative"
	"nexalis-roi/internal/report"
	"nexalis-roi/internal/roi"
	"nexalis-roi/internal/service/session"
)

type MockGetter struct {
	mock.Mock
}

func (m *MockGetter) Current(sessionID string) (session.Submission, error) {
	args := m.Called(sessionID)
	return args.Get(0).(session.Submission), args.Error(1)
}

func withSessionID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("sessionID", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func readySubmission() session.Submission {
	in := roi.DefaultInputs
	res := roi.Compute(in)
	return session.Submission{
		ID:        2,
		Inputs:    in,
		Result:    res,
		Chart:     roi.Chart(res),
		Narrative: &narrative.Narrative{Text: "Automatiser la saisie.", HTML: "<p>Automatiser la saisie.</p>"},
	}
}

func TestGetReport_Success(t *testing.T) {
	mockGetter := new(MockGetter)
	mockGetter.On("Current", "abc").Return(readySubmission(), nil)

	req := withSessionID(httptest.NewRequest(http.MethodGet, "/api/sessions/abc/report", nil), "abc")
	rr := httptest.NewRecorder()

	GetReport(slog.Default(), mockGetter).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp Resp
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, "abc", resp.SessionID)
	assert.Equal(t, report.StatusReady, resp.Submission.Narrative.Status)
	assert.Equal(t, "Automatiser la saisie.", resp.Submission.Narrative.Text)
	assert.Equal(t, int64(44075), resp.Submission.Results.AnnualSavings)

	mockGetter.AssertExpectations(t)
}

func TestGetReport_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "not found", err: session.ErrNotFound, wantCode: http.StatusNotFound},
		{name: "internal", err: errors.New("boom"), wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockGetter := new(MockGetter)
			mockGetter.On("Current", "abc").Return(session.Submission{}, tt.err)

			req := withSessionID(httptest.NewRequest(http.MethodGet, "/api/sessions/abc/report", nil), "abc")
			rr := httptest.NewRecorder()

			GetReport(slog.Default(), mockGetter).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
		})
	}
}

func TestGetReport_MissingSessionID(t *testing.T) {
	mockGetter := new(MockGetter)

	req := httptest.NewRequest(http.MethodGet, "/api/sessions//report", nil)
	rr := httptest.NewRecorder()

	GetReport(slog.Default(), mockGetter).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	mockGetter.AssertNotCalled(t, "Current", mock.Anything)
}

func TestGetSummary_Success(t *testing.T) {
	mockGetter := new(MockGetter)
	mockGetter.On("Current", "abc").Return(readySubmission(), nil)

	req := withSessionID(httptest.NewRequest(http.MethodGet, "/api/sessions/abc/summary", nil), "abc")
	rr := httptest.NewRecorder()

	GetSummary(slog.Default(), mockGetter).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/plain")

	body := rr.Body.String()
	assert.Contains(t, body, report.DocumentTitle)
	assert.Contains(t, body, "Économies annuelles")
	assert.Contains(t, body, "Automatiser la saisie.")
}

func TestGetSummary_NotFound(t *testing.T) {
	mockGetter := new(MockGetter)
	mockGetter.On("Current", "abc").Return(session.Submission{}, session.ErrNotFound)

	req := withSessionID(httptest.NewRequest(http.MethodGet, "/api/sessions/abc/summary", nil), "abc")
	rr := httptest.NewRecorder()

	GetSummary(slog.Default(), mockGetter).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
