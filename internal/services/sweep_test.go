package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astro-report-service/internal/models"
	"astro-report-service/internal/notifications"
	"astro-report-service/internal/render"
)

func scheduledReport(id, userID string, serviceType models.ServiceType, dueAt time.Time) *models.Report {
	return &models.Report{
		ID:          id,
		UserID:      userID,
		ServiceType: serviceType,
		Status:      models.StatusScheduled,
		Data: models.ReportInput{
			Palmistry: &models.PalmistryInput{ImageURL: "https://cdn.test/palm.jpg", HandType: "right", AnalysisType: "detailed"},
		},
		ScheduledFor: &dueAt,
		CreatedAt:    dueAt.Add(-24 * time.Hour),
	}
}

func newTestSweep(store ReportStore, registry ProcessorRegistry, notifier notifications.Notifier) *SweepService {
	return NewSweepService(store, registry, notifier, nil, testPipelineConfig(), testLogger())
}

func TestSweep_SettlesAllWithIsolatedFailures(t *testing.T) {
	store := newFakeStore()
	now := time.Now().UTC()

	okResult := &models.ReportResult{Palmistry: &models.PalmistryResult{OverallReading: "ok"}}
	okFiles := &models.ReportFiles{PDFURL: "https://files.test/report.pdf"}

	require.NoError(t, store.Create(context.Background(), scheduledReport("r1", "u1", models.ServicePalmistry, now.Add(-2*time.Hour))))
	require.NoError(t, store.Create(context.Background(), scheduledReport("r2", "u2", models.ServicePalmistry, now.Add(-time.Hour))))
	require.NoError(t, store.Create(context.Background(), scheduledReport("r3", "u3", models.ServicePalmistry, now.Add(-time.Minute))))

	boom := errors.New("analysis blew up")
	registry := ProcessorRegistry{
		models.ServicePalmistry: &sequenceProcessor{outcomes: map[string]error{"r2": boom}, result: okResult, files: okFiles},
	}
	notifier := &fakeNotifier{}

	summary, err := newTestSweep(store, registry, notifier).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Successful)
	assert.Equal(t, 1, summary.Failed)

	assert.Equal(t, models.StatusCompleted, store.get("r1").Status)
	assert.Equal(t, models.StatusFailed, store.get("r2").Status)
	assert.Equal(t, models.StatusCompleted, store.get("r3").Status)

	failed := store.get("r2")
	require.NotNil(t, failed.Error)
	assert.Equal(t, "analysis blew up", failed.Error.Message)
}

func TestSweep_LeavesFutureReportsAlone(t *testing.T) {
	store := newFakeStore()
	now := time.Now().UTC()

	require.NoError(t, store.Create(context.Background(), scheduledReport("due", "u1", models.ServicePalmistry, now.Add(-time.Hour))))
	require.NoError(t, store.Create(context.Background(), scheduledReport("future", "u2", models.ServicePalmistry, now.Add(time.Hour))))

	registry := ProcessorRegistry{
		models.ServicePalmistry: &fakeProcessor{
			result: &models.ReportResult{Palmistry: &models.PalmistryResult{}},
			files:  &models.ReportFiles{PDFURL: "https://files.test/report.pdf"},
		},
	}

	summary, err := newTestSweep(store, registry, &fakeNotifier{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, models.StatusCompleted, store.get("due").Status)
	assert.Equal(t, models.StatusScheduled, store.get("future").Status)
}

func TestSweep_EmptyBatch(t *testing.T) {
	summary, err := newTestSweep(newFakeStore(), ProcessorRegistry{}, &fakeNotifier{}).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Total)
}

func TestSweep_ClaimLossIsNotAFailure(t *testing.T) {
	store := newFakeStore()
	now := time.Now().UTC()
	report := scheduledReport("r1", "u1", models.ServicePalmistry, now.Add(-time.Hour))
	require.NoError(t, store.Create(context.Background(), report))

	// Claimed by another worker between the query and our claim.
	_, err := store.Claim(context.Background(), "r1", now)
	require.NoError(t, err)

	sweep := newTestSweep(store, ProcessorRegistry{}, &fakeNotifier{})
	require.NoError(t, sweep.processOne(context.Background(), "r1"))
	assert.Equal(t, models.StatusProcessing, store.get("r1").Status)
}

func TestSweep_UnknownServiceTypeFails(t *testing.T) {
	store := newFakeStore()
	now := time.Now().UTC()
	report := scheduledReport("r1", "u1", models.ServiceType("tarot"), now.Add(-time.Hour))
	require.NoError(t, store.Create(context.Background(), report))

	notifier := &fakeNotifier{}
	summary, err := newTestSweep(store, ProcessorRegistry{}, notifier).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Failed)
	stored := store.get("r1")
	assert.Equal(t, models.StatusFailed, stored.Status)
	require.NotNil(t, stored.Error)
	assert.Contains(t, stored.Error.Message, "unknown service type")
}

func TestSweep_SendsReadyNotifications(t *testing.T) {
	store := newFakeStore()
	now := time.Now().UTC()
	require.NoError(t, store.Create(context.Background(), scheduledReport("r1", "u1", models.ServicePalmistry, now.Add(-time.Hour))))

	registry := ProcessorRegistry{
		models.ServicePalmistry: &fakeProcessor{
			result: &models.ReportResult{Palmistry: &models.PalmistryResult{}},
			files:  &models.ReportFiles{PDFURL: "https://files.test/report.pdf"},
		},
	}
	notifier := &fakeNotifier{}

	_, err := newTestSweep(store, registry, notifier).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, notifier.types(), "palmistry_ready")
}

func TestSweep_RecoversProcessorPanic(t *testing.T) {
	store := newFakeStore()
	now := time.Now().UTC()
	require.NoError(t, store.Create(context.Background(), scheduledReport("r1", "u1", models.ServicePalmistry, now.Add(-time.Hour))))
	require.NoError(t, store.Create(context.Background(), scheduledReport("r2", "u2", models.ServicePalmistry, now.Add(-time.Hour))))

	registry := ProcessorRegistry{
		models.ServicePalmistry: &panickyProcessor{
			panicOn: "r1",
			result:  &models.ReportResult{Palmistry: &models.PalmistryResult{}},
			files:   &models.ReportFiles{PDFURL: "https://files.test/report.pdf"},
		},
	}

	summary, err := newTestSweep(store, registry, &fakeNotifier{}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Successful)
	assert.Equal(t, 1, summary.Failed)

	failed := store.get("r1")
	assert.Equal(t, models.StatusFailed, failed.Status)
	require.NotNil(t, failed.Error)
	assert.Contains(t, failed.Error.Message, "processor panic")
	assert.Equal(t, models.StatusCompleted, store.get("r2").Status)
}

func TestSweep_NumerologySubmissionToCompletion(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}

	// Submit as if 13 hours ago so the +12h schedule is already due.
	submittedAt := time.Now().UTC().Add(-13 * time.Hour)
	submission := NewSubmissionService(store, notifier, testPipelineConfig(), testLogger())
	submission.now = func() time.Time { return submittedAt }

	resp, err := submission.SubmitNumerology(context.Background(), "user-1", models.NumerologyRequest{
		Name:        "John Smith",
		DateOfBirth: "1990-05-15",
	})
	require.NoError(t, err)

	stored := store.get(resp.ReportID)
	require.NotNil(t, stored.ScheduledFor)
	assert.Equal(t, submittedAt.Add(12*time.Hour), *stored.ScheduledFor)
	assert.Equal(t, stored.ScheduledFor.Format(time.RFC3339), resp.EstimatedDelivery)

	registry := NewProcessorRegistry(render.NewPDFRenderer(), newFakeUploader(), testRetryConfig(), testLogger())
	summary, err := newTestSweep(store, registry, notifier).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Total)
	assert.Equal(t, 1, summary.Successful)

	completed := store.get(resp.ReportID)
	assert.Equal(t, models.StatusCompleted, completed.Status)
	require.NotNil(t, completed.CalculatedData)
	require.NotNil(t, completed.CalculatedData.Numerology)
	assert.Equal(t, 3, completed.CalculatedData.Numerology.CoreNumbers["lifePathNumber"].Value)
	require.NotNil(t, completed.Files)
	assert.NotEmpty(t, completed.Files.PDFURL)
	assert.Contains(t, notifier.types(), "numerology_ready")
}

// panickyProcessor panics for one report and succeeds for the rest
type panickyProcessor struct {
	panicOn string
	result  *models.ReportResult
	files   *models.ReportFiles
}

func (p *panickyProcessor) Process(_ context.Context, report *models.Report) (*models.ReportResult, *models.ReportFiles, error) {
	if report.ID == p.panicOn {
		panic("nil mount table")
	}
	return p.result, p.files, nil
}

// sequenceProcessor fails only the reports listed in outcomes
type sequenceProcessor struct {
	outcomes map[string]error
	result   *models.ReportResult
	files    *models.ReportFiles
}

func (p *sequenceProcessor) Process(_ context.Context, report *models.Report) (*models.ReportResult, *models.ReportFiles, error) {
	if err := p.outcomes[report.ID]; err != nil {
		return nil, nil, err
	}
	return p.result, p.files, nil
}
