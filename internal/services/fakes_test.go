package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"astro-report-service/internal/config"
	"astro-report-service/internal/database"
	"astro-report-service/internal/models"
	"astro-report-service/internal/notifications"
)

// fakeStore is an in-memory ReportStore that enforces the same state
// machine guards as the MongoDB store.
type fakeStore struct {
	mu        sync.Mutex
	reports   map[string]*models.Report
	createErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{reports: make(map[string]*models.Report)}
}

func (f *fakeStore) Create(_ context.Context, report *models.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	clone := *report
	f.reports[report.ID] = &clone
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	clone := *report
	return &clone, nil
}

func (f *fakeStore) FindDueScheduled(_ context.Context, now time.Time, limit int) ([]models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var due []models.Report
	for _, report := range f.reports {
		if report.Status == models.StatusScheduled && report.ScheduledFor != nil && !report.ScheduledFor.After(now) {
			due = append(due, *report)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].ScheduledFor.Before(*due[j].ScheduledFor)
	})
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (f *fakeStore) Claim(_ context.Context, id string, now time.Time) (*models.Report, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[id]
	if !ok {
		return nil, database.ErrClaimLost
	}
	if report.Status != models.StatusPending && report.Status != models.StatusScheduled {
		return nil, database.ErrClaimLost
	}
	report.Status = models.StatusProcessing
	report.ProcessingStartedAt = &now
	clone := *report
	return &clone, nil
}

func (f *fakeStore) MarkCompleted(_ context.Context, id string, result *models.ReportResult, files *models.ReportFiles, processingTime time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[id]
	if !ok || report.Status != models.StatusProcessing {
		return database.ErrNotFound
	}
	now := time.Now().UTC()
	report.Status = models.StatusCompleted
	report.CalculatedData = result
	report.Files = files
	report.CompletedAt = &now
	report.ProcessingTime = processingTime.Milliseconds()
	return nil
}

func (f *fakeStore) MarkFailed(_ context.Context, id string, reportErr models.ReportError) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[id]
	if !ok || report.Status != models.StatusProcessing {
		return database.ErrNotFound
	}
	now := time.Now().UTC()
	report.Status = models.StatusFailed
	report.Error = &reportErr
	report.FailedAt = &now
	return nil
}

func (f *fakeStore) get(id string) *models.Report {
	f.mu.Lock()
	defer f.mu.Unlock()
	report, ok := f.reports[id]
	if !ok {
		return nil
	}
	clone := *report
	return &clone
}

// fakeUploader records uploads and hands back deterministic URLs
type fakeUploader struct {
	mu      sync.Mutex
	uploads map[string][]byte
	err     error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{uploads: make(map[string][]byte)}
}

func (f *fakeUploader) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.uploads[key] = data
	return "https://files.test/" + key, nil
}

// fakeNotifier records sent notifications
type fakeNotifier struct {
	mu   sync.Mutex
	sent []notifications.Notification
}

func (f *fakeNotifier) Send(_ context.Context, _ string, n notifications.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return nil
}

func (f *fakeNotifier) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var types []string
	for _, n := range f.sent {
		types = append(types, n.Data["type"])
	}
	return types
}

// fakeProcessor returns a fixed outcome for sweep tests
type fakeProcessor struct {
	err    error
	result *models.ReportResult
	files  *models.ReportFiles
}

func (f *fakeProcessor) Process(_ context.Context, _ *models.Report) (*models.ReportResult, *models.ReportFiles, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.result, f.files, nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func testRetryConfig() config.RetryConfig {
	return config.RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2,
	}
}

func testPipelineConfig() config.PipelineConfig {
	return config.PipelineConfig{
		NumerologyDelay:  12 * time.Hour,
		PalmistryDelay:   24 * time.Hour,
		SweepSchedule:    "0 0 * * * *",
		SweepBatchSize:   50,
		SweepTimeout:     9 * time.Minute,
		ImmediateTimeout: 5 * time.Minute,
		KundaliSchema:    "../../schemas/kundali_result.schema.json",
	}
}
