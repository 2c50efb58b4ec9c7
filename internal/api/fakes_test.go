package api

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/taskrail/taskrail-api/internal/domain"
	"github.com/taskrail/taskrail-api/internal/store"
	"github.com/taskrail/taskrail-api/internal/task"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memUserStore is an in-memory store.UserStore for handler tests.
type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
	err   error
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]*domain.User)}
}

var _ store.UserStore = (*memUserStore)(nil)

func (s *memUserStore) Create(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *memUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrUserNotFound
}

func (s *memUserStore) Update(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return store.ErrUserNotFound
	}
	for id, existing := range s.users {
		if id != user.ID && existing.Username == user.Username {
			return store.ErrUsernameExists
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return store.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *memUserStore) WithTx(tx *sql.Tx) store.UserStore { return s }

// memTaskStore is an in-memory store.TaskStore for handler tests.
type memTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task
	err   error
}

func newMemTaskStore() *memTaskStore {
	return &memTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

var _ store.TaskStore = (*memTaskStore)(nil)

func (s *memTaskStore) Create(ctx context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	clone := *t
	s.tasks[t.ID] = &clone
	return nil
}

func (s *memTaskStore) Get(ctx context.Context, userID, taskID uuid.UUID) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	clone := *t
	return &clone, nil
}

func (s *memTaskStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			clone := *t
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memTaskStore) CountInPeriod(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, t := range s.tasks {
		if t.UserID == userID && !t.StartDate.After(to) && !t.StopDate.Before(from) {
			count++
		}
	}
	return count, nil
}

func (s *memTaskStore) Update(ctx context.Context, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.tasks[t.ID]
	if !ok || existing.UserID != t.UserID {
		return store.ErrTaskNotFound
	}
	clone := *t
	s.tasks[t.ID] = &clone
	return nil
}

func (s *memTaskStore) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[taskID]
	if !ok || t.UserID != userID {
		return store.ErrTaskNotFound
	}
	delete(s.tasks, taskID)
	return nil
}

func (s *memTaskStore) WithTx(tx *sql.Tx) store.TaskStore { return s }

// memReportStore is an in-memory store.ReportStore for handler tests.
type memReportStore struct {
	mu      sync.Mutex
	reports map[uuid.UUID]*domain.Report
}

func newMemReportStore() *memReportStore {
	return &memReportStore{reports: make(map[uuid.UUID]*domain.Report)}
}

var _ store.ReportStore = (*memReportStore)(nil)

func (s *memReportStore) Create(ctx context.Context, report *domain.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *report
	s.reports[report.ID] = &clone
	return nil
}

func (s *memReportStore) Get(ctx context.Context, userID, reportID uuid.UUID) (*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[reportID]
	if !ok || report.UserID != userID {
		return nil, store.ErrReportNotFound
	}
	clone := *report
	return &clone, nil
}

func (s *memReportStore) GetByID(ctx context.Context, reportID uuid.UUID) (*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[reportID]
	if !ok {
		return nil, store.ErrReportNotFound
	}
	clone := *report
	return &clone, nil
}

func (s *memReportStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Report
	for _, report := range s.reports {
		if report.UserID == userID {
			clone := *report
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (s *memReportStore) UpdateStatus(ctx context.Context, reportID uuid.UUID, status domain.ReportStatus, taskCount int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.reports[reportID]
	if !ok {
		return store.ErrReportNotFound
	}
	report.Status = status
	report.TaskCount = taskCount
	return nil
}

func (s *memReportStore) WithTx(tx *sql.Tx) store.ReportStore { return s }

// recordingSubmitter captures submitted tasks instead of executing them.
type recordingSubmitter struct {
	mu        sync.Mutex
	submitted []task.Task
	err       error
}

var _ TaskSubmitter = (*recordingSubmitter)(nil)

func (s *recordingSubmitter) Submit(ctx context.Context, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.submitted = append(s.submitted, t)
	return nil
}

func (s *recordingSubmitter) tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]task.Task, len(s.submitted))
	copy(out, s.submitted)
	return out
}
