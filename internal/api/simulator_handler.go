package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taskrail/taskrail-api/internal/api/shared"
	"github.com/taskrail/taskrail-api/internal/platform/logger"
	"github.com/taskrail/taskrail-api/internal/task"
)

// SimulatorHandler exposes the long-running work simulator. These
// endpoints are unauthenticated: the simulator holds no user data and
// exists for clients to exercise their polling logic against.
type SimulatorHandler struct {
	simulator *task.Simulator
	logger    *slog.Logger
}

// NewSimulatorHandler creates a new SimulatorHandler.
// If log is nil, a default logger will be used.
func NewSimulatorHandler(simulator *task.Simulator, log *slog.Logger) *SimulatorHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SimulatorHandler{
		simulator: simulator,
		logger:    log.With(slog.String("component", "simulator_handler")),
	}
}

// ScheduleRun handles POST /api/v1/async/{bound} requests. Any integer
// bound is accepted; the simulator normalizes it into a usable window.
func (h *SimulatorHandler) ScheduleRun(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	boundParam := chi.URLParam(r, "bound")
	bound, err := strconv.Atoi(boundParam)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Bound must be an integer")
		return
	}

	runID, window := h.simulator.Schedule(bound)

	log.Info("simulated run scheduled",
		slog.String("run_id", runID.String()),
		slog.Int("requested_bound", bound))

	shared.RespondWithJSON(w, r, http.StatusAccepted, ScheduleRunResponse{
		RunID: runID.String(),
		Floor: window.Floor,
		Bound: window.Bound,
	})
}

// CheckRun handles GET /api/v1/async/{run_id}/check/ requests, returning
// the current lifecycle phase of a scheduled run.
func (h *SimulatorHandler) CheckRun(w http.ResponseWriter, r *http.Request) {
	runID, err := getPathUUID(r, "run_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	phase, err := h.simulator.Status(runID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CheckRunResponse{
		RunID: runID.String(),
		Phase: string(phase),
	})
}
