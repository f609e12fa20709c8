package calculate

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nexalis-roi/internal/report"
	"nexalis-roi/internal/roi"
	"nexalis-roi/internal/service/session"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) Submit(ctx context.Context, sessionID string, in roi.Inputs) (string, session.Submission, error) {
	args := m.Called(ctx, sessionID, in)

	sub := session.Submission{}
	if args.Get(1) != nil {
		sub = args.Get(1).(session.Submission)
	}

	return args.String(0), sub, args.Error(2)
}

func submissionFor(in roi.Inputs) session.Submission {
	res := roi.Compute(in)
	return session.Submission{ID: 1, Inputs: in, Result: res, Chart: roi.Chart(res)}
}

func TestCalculateROI_Success(t *testing.T) {
	mockSub := new(MockSubmitter)

	in := roi.Inputs{Employees: 10, HourlyWage: 25, HoursRepetitive: 5, Industry: roi.IndustryServices}
	mockSub.On("Submit", mock.Anything, "", in).Return("sess-1", submissionFor(in), nil)

	handler := CalculateROI(slog.Default(), mockSub)

	reqBody := `{
		"employees": 10,
		"hourlyWage": 25,
		"hoursRepetitive": 5,
		"industry": "Services"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var resp Resp
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))

	assert.Equal(t, "sess-1", resp.SessionID)
	assert.Equal(t, int64(1763), resp.Submission.Results.TotalHoursSaved)
	assert.Equal(t, int64(44075), resp.Submission.Results.AnnualSavings)
	assert.Equal(t, int64(132225), resp.Submission.Results.ThreeYearROI)
	assert.Equal(t, 58750.0, resp.Submission.Results.CurrentCost)
	assert.Equal(t, 14675.0, resp.Submission.Results.CostWithAI)
	assert.Equal(t, roi.LabelCurrentCost, resp.Submission.ChartData[0].Name)
	assert.Equal(t, report.StatusGenerating, resp.Submission.Narrative.Status)

	mockSub.AssertExpectations(t)
}

func TestCalculateROI_ExistingSession(t *testing.T) {
	mockSub := new(MockSubmitter)

	in := roi.Inputs{Employees: 3, HourlyWage: 33.3, HoursRepetitive: 1.5, Industry: roi.IndustryTech}
	mockSub.On("Submit", mock.Anything, "sess-1", in).Return("sess-1", submissionFor(in), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(
		`{"sessionId":"sess-1","employees":3,"hourlyWage":33.3,"hoursRepetitive":1.5,"industry":"Technologie"}`))
	rr := httptest.NewRecorder()

	CalculateROI(slog.Default(), mockSub).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	mockSub.AssertExpectations(t)
}

func TestCalculateROI_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: `{`},
		{name: "missing employees", body: `{"hourlyWage":25,"hoursRepetitive":5,"industry":"Services"}`},
		{name: "missing industry", body: `{"employees":10,"hourlyWage":25,"hoursRepetitive":5}`},
		{name: "negative wage", body: `{"employees":10,"hourlyWage":-1,"hoursRepetitive":5,"industry":"Services"}`},
		{name: "negative employees", body: `{"employees":-2,"hourlyWage":25,"hoursRepetitive":5,"industry":"Services"}`},
		{name: "unknown industry", body: `{"employees":10,"hourlyWage":25,"hoursRepetitive":5,"industry":"Pêche"}`},
		{name: "wage overflowing savings", body: `{"employees":10,"hourlyWage":1e20,"hoursRepetitive":5,"industry":"Services"}`},
		{name: "wage overflowing cost", body: `{"employees":10,"hourlyWage":1e308,"hoursRepetitive":5,"industry":"Services"}`},
		{name: "hours above a week", body: `{"employees":10,"hourlyWage":25,"hoursRepetitive":200,"industry":"Services"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSub := new(MockSubmitter)

			req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			CalculateROI(slog.Default(), mockSub).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			mockSub.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCalculateROI_ZeroValuesAccepted(t *testing.T) {
	mockSub := new(MockSubmitter)

	in := roi.Inputs{Employees: 0, HourlyWage: 0, HoursRepetitive: 0, Industry: roi.IndustryOther}
	mockSub.On("Submit", mock.Anything, "", in).Return("sess-2", submissionFor(in), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(
		`{"employees":0,"hourlyWage":0,"hoursRepetitive":0,"industry":"Autre"}`))
	rr := httptest.NewRecorder()

	CalculateROI(slog.Default(), mockSub).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp Resp
	require.NoError(t, render.DecodeJSON(rr.Body, &resp))
	assert.Equal(t, int64(0), resp.Submission.Results.AnnualSavings)
}

func TestCalculateROI_SubmitErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{name: "invalid session", err: session.ErrInvalidSessionID, wantCode: http.StatusBadRequest},
		{name: "internal", err: context.DeadlineExceeded, wantCode: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSub := new(MockSubmitter)
			mockSub.On("Submit", mock.Anything, mock.Anything, mock.Anything).Return("", nil, tt.err)

			req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(
				`{"sessionId":"x","employees":1,"hourlyWage":15,"hoursRepetitive":1,"industry":"Services"}`))
			rr := httptest.NewRecorder()

			CalculateROI(slog.Default(), mockSub).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantCode, rr.Code)
		})
	}
}

func TestCalculateROI_OutOfRangeNamesField(t *testing.T) {
	mockSub := new(MockSubmitter)

	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(
		`{"employees":10,"hourlyWage":1e20,"hoursRepetitive":5,"industry":"Services"}`))
	rr := httptest.NewRecorder()

	CalculateROI(slog.Default(), mockSub).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "hourlyWage")
	assert.Contains(t, rr.Body.String(), roi.ErrOutOfRange.Error())
	mockSub.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything)
}
