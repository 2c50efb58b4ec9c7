package task

import (
	"errors"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Phase represents the lifecycle phase of a simulated background run.
type Phase string

// Simulated run phases
const (
	PhaseStart       Phase = "Start"
	PhaseComplete    Phase = "Complete"
	PhaseToBeRemoved Phase = "ToBeRemoved"
)

// Timing constants for the simulated lifecycle, in seconds.
const (
	// WaitingTimeFloor is the minimum simulated work duration.
	WaitingTimeFloor = 30

	// completedRetentionSeconds is how long a completed run stays
	// observable before being flagged for removal.
	completedRetentionSeconds = 600

	// removalGraceSeconds is how long a run flagged for removal stays
	// observable before its entry is dropped.
	removalGraceSeconds = 120
)

// ErrRunNotFound is returned by Status when no run exists for the given ID.
var ErrRunNotFound = errors.New("no task found for this key")

// Window is the normalized sleep window a scheduled run draws its
// simulated work duration from.
type Window struct {
	Floor int `json:"floor"`
	Bound int `json:"bound"`
}

// Simulator tracks long-running simulated work. Each scheduled run gets
// its own generated ID, so concurrent runs with identical bounds never
// collide. Run state is held in memory only.
type Simulator struct {
	mu     sync.Mutex
	runs   map[uuid.UUID]Phase
	logger *slog.Logger

	// sleep and randInt are injectable for tests.
	sleep   func(time.Duration)
	randInt func(n int) int
}

// NewSimulator creates a simulator with real timing.
func NewSimulator(logger *slog.Logger) *Simulator {
	return NewSimulatorWithTiming(logger, time.Sleep, rand.Intn)
}

// NewSimulatorWithTiming creates a simulator with the given sleep and
// random draw functions. Tests use this to step the lifecycle
// deterministically.
func NewSimulatorWithTiming(
	logger *slog.Logger,
	sleep func(time.Duration),
	randInt func(n int) int,
) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{
		runs:    make(map[uuid.UUID]Phase),
		logger:  logger.With(slog.String("component", "simulator")),
		sleep:   sleep,
		randInt: randInt,
	}
}

// normalizeWindow clamps the requested bound to a usable sleep window.
// Bounds below the floor swap with it, and a bound equal to the floor
// is widened so the window is never empty.
func normalizeWindow(bound int) Window {
	floor := WaitingTimeFloor
	if bound < floor {
		floor, bound = bound, floor
	}
	if bound == floor {
		bound += 5
	}
	return Window{Floor: floor, Bound: bound}
}

// Schedule registers a new simulated run and launches its lifecycle in
// the background. It returns the generated run ID and the normalized
// window immediately; the caller polls Status to observe progress.
func (s *Simulator) Schedule(bound int) (uuid.UUID, Window) {
	window := normalizeWindow(bound)
	runID := uuid.New()

	s.setPhase(runID, PhaseStart)
	s.logger.Info("scheduled simulated run",
		slog.String("run_id", runID.String()),
		slog.Int("floor", window.Floor),
		slog.Int("bound", window.Bound))

	go s.run(runID, window)

	return runID, window
}

// Status returns the current phase of a run without blocking.
func (s *Simulator) Status(runID uuid.UUID) (Phase, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	phase, ok := s.runs[runID]
	if !ok {
		return "", ErrRunNotFound
	}
	return phase, nil
}

// run drives a single simulated lifecycle: working for a random
// duration drawn from the window, lingering as complete, then flagged
// for removal, then gone.
func (s *Simulator) run(runID uuid.UUID, window Window) {
	// Both window ends are drawable: [Floor, Bound] inclusive.
	workSeconds := window.Floor + s.randInt(window.Bound-window.Floor+1)
	s.sleep(time.Duration(workSeconds) * time.Second)

	s.setPhase(runID, PhaseComplete)
	s.logger.Info("simulated run completed",
		slog.String("run_id", runID.String()),
		slog.Int("work_seconds", workSeconds))

	s.sleep(completedRetentionSeconds * time.Second)
	s.setPhase(runID, PhaseToBeRemoved)

	s.sleep(removalGraceSeconds * time.Second)
	s.remove(runID)
	s.logger.Info("simulated run removed", slog.String("run_id", runID.String()))
}

func (s *Simulator) setPhase(runID uuid.UUID, phase Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[runID] = phase
}

func (s *Simulator) remove(runID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.runs, runID)
}
