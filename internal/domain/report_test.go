package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewReport(t *testing.T) {
	userID := uuid.New()

	report, err := NewReport(userID, "may-summary", date(2024, 5, 1), date(2024, 5, 31))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if report.Status != ReportStatusCreated {
		t.Errorf("Expected status %s, got %s", ReportStatusCreated, report.Status)
	}

	// Empty name gets a timestamped default.
	report, err = NewReport(userID, "", date(2024, 5, 1), date(2024, 5, 31))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.HasPrefix(report.Name, "report_") {
		t.Errorf("Expected generated report name, got %s", report.Name)
	}

	// Inverted period is rejected.
	if _, err := NewReport(userID, "bad", date(2024, 5, 31), date(2024, 5, 1)); err != ErrInvalidReportPeriod {
		t.Errorf("Expected error %v, got %v", ErrInvalidReportPeriod, err)
	}

	if _, err := NewReport(uuid.Nil, "x", date(2024, 5, 1), date(2024, 5, 31)); err != ErrEmptyReportUserID {
		t.Errorf("Expected error %v, got %v", ErrEmptyReportUserID, err)
	}
}

func TestReportStatusIsValid(t *testing.T) {
	valid := []ReportStatus{ReportStatusCreated, ReportStatusRunning, ReportStatusCompleted, ReportStatusFailed}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("Expected status %s to be valid", s)
		}
	}
	if ReportStatus("queued").IsValid() {
		t.Error("Expected unknown status to be invalid")
	}

	report := Report{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Name:      "x",
		StartDate: date(2024, 5, 1),
		StopDate:  date(2024, 5, 31),
		Status:    ReportStatus("queued"),
	}
	if err := report.Validate(); err != ErrInvalidReportStatus {
		t.Errorf("Expected error %v, got %v", ErrInvalidReportStatus, err)
	}
}
