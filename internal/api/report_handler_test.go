package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskrail/taskrail-api/internal/domain"
	"github.com/taskrail/taskrail-api/internal/task"
)

func newReportRouter(handler *ReportHandler) chi.Router {
	r := chi.NewRouter()
	r.Post("/reports/", handler.CreateReport)
	r.Get("/reports/", handler.ListReports)
	r.Get("/reports/{report_id}", handler.GetReport)
	return r
}

func TestCreateReportSchedulesGeneration(t *testing.T) {
	t.Parallel()

	reports := newMemReportStore()
	tasks := newMemTaskStore()
	submitter := &recordingSubmitter{}
	handler := NewReportHandler(reports, tasks, submitter, testLogger())
	router := newReportRouter(handler)
	userID := uuid.New()

	now := time.Now().UTC()
	payload, err := json.Marshal(CreateReportRequest{
		Name:      "august summary",
		StartDate: now.AddDate(0, -1, 0),
		StopDate:  now,
	})
	require.NoError(t, err)

	req := authedRequest(http.MethodPost, "/reports/", payload, userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp ReportResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "august summary", resp.Name)
	assert.Equal(t, string(domain.ReportStatusCreated), resp.Status)

	submitted := submitter.tasks()
	require.Len(t, submitted, 1)
	assert.Equal(t, task.TaskTypeReportGeneration, submitted[0].Type())
}

func TestCreateReportDefaultName(t *testing.T) {
	t.Parallel()

	handler := NewReportHandler(newMemReportStore(), newMemTaskStore(), &recordingSubmitter{}, testLogger())
	router := newReportRouter(handler)

	now := time.Now().UTC()
	payload, err := json.Marshal(CreateReportRequest{
		StartDate: now.AddDate(0, -1, 0),
		StopDate:  now,
	})
	require.NoError(t, err)

	req := authedRequest(http.MethodPost, "/reports/", payload, uuid.New())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code)

	var resp ReportResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Name, "report_")
}

func TestCreateReportInvalidPeriod(t *testing.T) {
	t.Parallel()

	handler := NewReportHandler(newMemReportStore(), newMemTaskStore(), &recordingSubmitter{}, testLogger())
	router := newReportRouter(handler)

	now := time.Now().UTC()
	payload, err := json.Marshal(CreateReportRequest{
		StartDate: now,
		StopDate:  now.AddDate(0, -1, 0),
	})
	require.NoError(t, err)

	req := authedRequest(http.MethodPost, "/reports/", payload, uuid.New())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateReportQueueFull(t *testing.T) {
	t.Parallel()

	submitter := &recordingSubmitter{err: task.ErrQueueFull}
	handler := NewReportHandler(newMemReportStore(), newMemTaskStore(), submitter, testLogger())
	router := newReportRouter(handler)

	now := time.Now().UTC()
	payload, err := json.Marshal(CreateReportRequest{
		StartDate: now.AddDate(0, -1, 0),
		StopDate:  now,
	})
	require.NoError(t, err)

	req := authedRequest(http.MethodPost, "/reports/", payload, uuid.New())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetReportScopedToOwner(t *testing.T) {
	t.Parallel()

	reports := newMemReportStore()
	handler := NewReportHandler(reports, newMemTaskStore(), &recordingSubmitter{}, testLogger())
	router := newReportRouter(handler)

	owner := uuid.New()
	now := time.Now().UTC()
	report, err := domain.NewReport(owner, "mine", now.AddDate(0, -1, 0), now)
	require.NoError(t, err)
	require.NoError(t, reports.Create(context.Background(), report))

	req := authedRequest(http.MethodGet, "/reports/"+report.ID.String(), nil, owner)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = authedRequest(http.MethodGet, "/reports/"+report.ID.String(), nil, uuid.New())
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListReports(t *testing.T) {
	t.Parallel()

	reports := newMemReportStore()
	handler := NewReportHandler(reports, newMemTaskStore(), &recordingSubmitter{}, testLogger())
	router := newReportRouter(handler)

	owner := uuid.New()
	now := time.Now().UTC()
	for i := 0; i < 2; i++ {
		report, err := domain.NewReport(owner, "", now.AddDate(0, -1, 0), now)
		require.NoError(t, err)
		require.NoError(t, reports.Create(context.Background(), report))
	}

	req := authedRequest(http.MethodGet, "/reports/", nil, owner)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp []ReportResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp, 2)
}

func TestReportEndToEndThroughRunner(t *testing.T) {
	t.Parallel()

	reports := newMemReportStore()
	tasks := newMemTaskStore()
	userID := uuid.New()

	// Two tasks inside the period, one outside.
	now := time.Now().UTC()
	for _, offset := range []int{-5, -10, -60} {
		start := now.AddDate(0, 0, offset)
		created, err := domain.NewTask(userID, "period task", "", start, start.AddDate(0, 0, 2), nil)
		require.NoError(t, err)
		require.NoError(t, tasks.Create(context.Background(), created))
	}

	runner := task.NewRunner(task.RunnerConfig{WorkerCount: 1, QueueSize: 4}, testLogger())
	runner.Start()
	defer runner.Stop()

	handler := NewReportHandler(reports, tasks, runner, testLogger())
	router := newReportRouter(handler)

	payload, err := json.Marshal(CreateReportRequest{
		StartDate: now.AddDate(0, 0, -30),
		StopDate:  now,
	})
	require.NoError(t, err)

	req := authedRequest(http.MethodPost, "/reports/", payload, userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusAccepted, rec.Code)

	var created ReportResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	reportID, err := uuid.Parse(created.ID)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		stored, err := reports.GetByID(context.Background(), reportID)
		return err == nil && stored.Status == domain.ReportStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	stored, err := reports.GetByID(context.Background(), reportID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.TaskCount)
}
