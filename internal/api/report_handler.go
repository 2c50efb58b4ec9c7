package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/taskrail/taskrail-api/internal/api/shared"
	"github.com/taskrail/taskrail-api/internal/domain"
	"github.com/taskrail/taskrail-api/internal/platform/logger"
	"github.com/taskrail/taskrail-api/internal/store"
	"github.com/taskrail/taskrail-api/internal/task"
)

// TaskSubmitter accepts background tasks for asynchronous execution.
type TaskSubmitter interface {
	Submit(ctx context.Context, t task.Task) error
}

// ReportHandler handles report-related HTTP requests. Creating a report
// persists it in the created state and hands generation to the
// background runner; clients poll for the terminal status.
type ReportHandler struct {
	reportStore store.ReportStore
	taskStore   store.TaskStore
	runner      TaskSubmitter
	logger      *slog.Logger
	validator   *validator.Validate
}

// NewReportHandler creates a new ReportHandler.
// If log is nil, a default logger will be used.
func NewReportHandler(
	reportStore store.ReportStore,
	taskStore store.TaskStore,
	runner TaskSubmitter,
	log *slog.Logger,
) *ReportHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ReportHandler{
		reportStore: reportStore,
		taskStore:   taskStore,
		runner:      runner,
		logger:      log.With(slog.String("component", "report_handler")),
		validator:   validator.New(),
	}
}

// CreateReport handles POST /api/v1/reports/ requests.
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateReportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	report, err := domain.NewReport(userID, req.Name, req.StartDate, req.StopDate)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.reportStore.Create(r.Context(), report); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	generation, err := task.NewReportGenerationTask(report.ID, h.reportStore, h.taskStore, h.logger)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to schedule report generation")
		return
	}

	if err := h.runner.Submit(r.Context(), generation); err != nil {
		// The report row exists but will never advance; surface the
		// saturation to the client rather than leaving it silently stuck.
		log.Error("failed to submit report generation task",
			slog.String("report_id", report.ID.String()),
			slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	log.Info("report generation scheduled",
		slog.String("report_id", report.ID.String()),
		slog.String("user_id", userID.String()))
	shared.RespondWithJSON(w, r, http.StatusAccepted, reportToResponse(report))
}

// ListReports handles GET /api/v1/reports/ requests.
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	reports, err := h.reportStore.ListByUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	responses := make([]ReportResponse, 0, len(reports))
	for _, report := range reports {
		responses = append(responses, reportToResponse(report))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetReport handles GET /api/v1/reports/{report_id} requests, returning
// the report together with its generation status.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	userID, reportID, ok := handleUserIDAndPathUUID(w, r, "report_id", h.logger)
	if !ok {
		return
	}

	report, err := h.reportStore.Get(r.Context(), userID, reportID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reportToResponse(report))
}
