package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astro-report-service/internal/database"
	"astro-report-service/internal/models"
)

func newTestSubmission(store ReportStore, notifier *fakeNotifier) *SubmissionService {
	s := NewSubmissionService(store, notifier, testPipelineConfig(), testLogger())
	s.now = func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }
	return s
}

func validKundaliRequest() models.KundaliRequest {
	return models.KundaliRequest{
		Name:         "Asha Sharma",
		DateOfBirth:  "1990-05-15",
		TimeOfBirth:  "14:30",
		PlaceOfBirth: "New Delhi",
		Latitude:     28.6139,
		Longitude:    77.2090,
	}
}

func TestSubmitKundali_CreatesPendingReport(t *testing.T) {
	store := newFakeStore()
	s := newTestSubmission(store, &fakeNotifier{})

	report, err := s.SubmitKundali(context.Background(), "user-1", validKundaliRequest())
	require.NoError(t, err)

	stored := store.get(report.ID)
	require.NotNil(t, stored)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Equal(t, models.ServiceKundali, stored.ServiceType)
	assert.Equal(t, "user-1", stored.UserID)
	assert.Nil(t, stored.ScheduledFor)
	require.NotNil(t, stored.Data.Kundali)
	assert.Equal(t, "northIndian", stored.Data.Kundali.ChartStyle)
	assert.Equal(t, "UTC", stored.Data.Kundali.Timezone)
}

func TestSubmitKundali_AggregatesValidationErrors(t *testing.T) {
	s := newTestSubmission(newFakeStore(), &fakeNotifier{})

	_, err := s.SubmitKundali(context.Background(), "user-1", models.KundaliRequest{
		Name:         "  ",
		DateOfBirth:  "15-05-1990",
		TimeOfBirth:  "2pm",
		PlaceOfBirth: "Delhi",
		Latitude:     95,
	})
	require.Error(t, err)

	msg := UserMessage(err)
	assert.Contains(t, msg, "Name is required")
	assert.Contains(t, msg, "YYYY-MM-DD")
	assert.Contains(t, msg, "HH:MM")
	assert.Contains(t, msg, "Latitude")
	assert.Equal(t, "invalid-argument", ErrorCode(err))
}

func TestSubmitNumerology_SchedulesTwelveHoursOut(t *testing.T) {
	store := newFakeStore()
	s := newTestSubmission(store, &fakeNotifier{})

	resp, err := s.SubmitNumerology(context.Background(), "user-1", models.NumerologyRequest{
		Name:        "Asha Sharma",
		DateOfBirth: "1990-05-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", resp.Status)
	assert.Contains(t, resp.Message, "12 hours")

	stored := store.get(resp.ReportID)
	require.NotNil(t, stored)
	assert.Equal(t, models.StatusScheduled, stored.Status)
	require.NotNil(t, stored.ScheduledFor)
	assert.Equal(t, stored.CreatedAt.Add(12*time.Hour), *stored.ScheduledFor)
	assert.Equal(t, stored.ScheduledFor.Format(time.RFC3339), resp.EstimatedDelivery)
	require.NotNil(t, stored.Data.Numerology)
	assert.Equal(t, "detailed", stored.Data.Numerology.ReportType)
}

func TestSubmitNumerology_CompatibilityRequiresPartnerDate(t *testing.T) {
	s := newTestSubmission(newFakeStore(), &fakeNotifier{})

	_, err := s.SubmitNumerology(context.Background(), "user-1", models.NumerologyRequest{
		Name:                 "Asha Sharma",
		DateOfBirth:          "1990-05-15",
		IncludeCompatibility: true,
	})
	require.Error(t, err)
	assert.Equal(t, "invalid-argument", ErrorCode(err))
	assert.Contains(t, UserMessage(err), "Partner date of birth")
}

func TestSubmitPalmistry_SchedulesTwentyFourHoursOut(t *testing.T) {
	store := newFakeStore()
	s := newTestSubmission(store, &fakeNotifier{})

	resp, err := s.SubmitPalmistry(context.Background(), "user-1", models.PalmistryRequest{
		ImageURL: "https://cdn.test/palm.jpg",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.Message, "24 hours")

	stored := store.get(resp.ReportID)
	require.NotNil(t, stored)
	require.NotNil(t, stored.ScheduledFor)
	assert.Equal(t, stored.CreatedAt.Add(24*time.Hour), *stored.ScheduledFor)
	require.NotNil(t, stored.Data.Palmistry)
	assert.Equal(t, "right", stored.Data.Palmistry.HandType)
	assert.Equal(t, "detailed", stored.Data.Palmistry.AnalysisType)
}

func TestSubmitPalmistry_RejectsBadImageURL(t *testing.T) {
	s := newTestSubmission(newFakeStore(), &fakeNotifier{})

	_, err := s.SubmitPalmistry(context.Background(), "user-1", models.PalmistryRequest{
		ImageURL: "not a url",
	})
	require.Error(t, err)
	assert.Equal(t, "invalid-argument", ErrorCode(err))
}

func TestReportStatus_ScopedToOwner(t *testing.T) {
	store := newFakeStore()
	s := newTestSubmission(store, &fakeNotifier{})

	resp, err := s.SubmitNumerology(context.Background(), "user-1", models.NumerologyRequest{
		Name:        "Asha Sharma",
		DateOfBirth: "1990-05-15",
	})
	require.NoError(t, err)

	status, err := s.ReportStatus(context.Background(), "user-1", resp.ReportID)
	require.NoError(t, err)
	assert.Equal(t, "scheduled", status.Status)
	assert.NotEmpty(t, status.EstimatedDelivery)

	_, err = s.ReportStatus(context.Background(), "user-2", resp.ReportID)
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = s.ReportStatus(context.Background(), "user-1", "missing")
	assert.ErrorIs(t, err, database.ErrNotFound)
}
