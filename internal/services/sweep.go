package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"astro-report-service/internal/config"
	"astro-report-service/internal/database"
	"astro-report-service/internal/models"
	"astro-report-service/internal/notifications"
)

const sweepLockKey = "report-sweep"

// SweepSummary is the outcome of one sweep run
type SweepSummary struct {
	Total          int
	Successful     int
	Failed         int
	ProcessingTime time.Duration
}

// SweepService periodically picks up due scheduled reports and drives each
// one to a terminal state. A Redis lock keeps concurrent deployments from
// sweeping the same batch.
type SweepService struct {
	store      ReportStore
	registry   ProcessorRegistry
	notifier   notifications.Notifier
	locker     *redislock.Client
	cron       *cron.Cron
	schedule   string
	batchSize  int
	runTimeout time.Duration
	log        *logrus.Logger
	now        func() time.Time
}

// NewSweepService creates the sweep service. The locker may be nil when no
// Redis is configured; the sweep then runs unguarded.
func NewSweepService(store ReportStore, registry ProcessorRegistry, notifier notifications.Notifier, locker *redislock.Client, cfg config.PipelineConfig, log *logrus.Logger) *SweepService {
	return &SweepService{
		store:      store,
		registry:   registry,
		notifier:   notifier,
		locker:     locker,
		cron:       cron.New(cron.WithSeconds()),
		schedule:   cfg.SweepSchedule,
		batchSize:  cfg.SweepBatchSize,
		runTimeout: cfg.SweepTimeout,
		log:        log,
		now:        time.Now,
	}
}

// Start registers the cron entry and starts the scheduler
func (s *SweepService) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
		defer cancel()
		if _, err := s.Run(ctx); err != nil {
			s.log.WithError(err).Error("scheduled report sweep failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register sweep schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.log.WithField("schedule", s.schedule).Info("report sweep scheduler started")
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish
func (s *SweepService) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("report sweep scheduler stopped")
}

// Run executes one sweep: find due reports oldest-first, process each
// concurrently, and report the tally. Failures are isolated per report.
func (s *SweepService) Run(ctx context.Context) (*SweepSummary, error) {
	started := s.now()

	if s.locker != nil {
		lock, err := s.locker.Obtain(ctx, sweepLockKey, s.runTimeout, nil)
		if errors.Is(err, redislock.ErrNotObtained) {
			s.log.Info("sweep already running elsewhere, skipping")
			return &SweepSummary{}, nil
		} else if err != nil {
			return nil, fmt.Errorf("failed to obtain sweep lock: %w", err)
		}
		defer func() {
			_ = lock.Release(ctx)
		}()
	}

	s.log.Info("starting scheduled report processing")

	reports, err := s.store.FindDueScheduled(ctx, started.UTC(), s.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query due reports: %w", err)
	}
	if len(reports) == 0 {
		s.log.Info("no scheduled reports due for processing")
		return &SweepSummary{ProcessingTime: s.now().Sub(started)}, nil
	}

	s.log.WithField("count", len(reports)).Info("found reports to process")

	var wg sync.WaitGroup
	outcomes := make([]error, len(reports))
	for i := range reports {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i] = s.processOne(ctx, reports[i].ID)
		}(i)
	}
	wg.Wait()

	summary := &SweepSummary{Total: len(reports)}
	for _, outcome := range outcomes {
		if outcome == nil {
			summary.Successful++
		} else {
			summary.Failed++
		}
	}
	summary.ProcessingTime = s.now().Sub(started)

	s.log.WithFields(logrus.Fields{
		"total":          summary.Total,
		"successful":     summary.Successful,
		"failed":         summary.Failed,
		"processingTime": summary.ProcessingTime.Milliseconds(),
	}).Info("scheduled report processing completed")

	return summary, nil
}

// processOne drives a single report to a terminal state. A claim loss is not
// an error: another sweep got there first.
func (s *SweepService) processOne(ctx context.Context, reportID string) error {
	claimed := s.now()
	report, err := s.store.Claim(ctx, reportID, claimed.UTC())
	if errors.Is(err, database.ErrClaimLost) {
		s.logStaleProcessing(ctx, reportID, claimed)
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to claim report %s: %w", reportID, err)
	}

	log := s.log.WithFields(logrus.Fields{
		"reportId":    report.ID,
		"userId":      report.UserID,
		"serviceType": report.ServiceType,
	})
	log.Info("processing report")

	processor, ok := s.registry[report.ServiceType]
	if !ok {
		err := fmt.Errorf("unknown service type: %s", report.ServiceType)
		s.failReport(ctx, report, err)
		return err
	}

	result, files, err := runProcessor(ctx, processor, report)
	if err != nil {
		log.WithError(err).Error("report processing failed")
		s.failReport(ctx, report, err)
		return err
	}

	if err := s.store.MarkCompleted(ctx, report.ID, result, files, s.now().Sub(claimed)); err != nil {
		log.WithError(err).Error("failed to persist completed report")
		return err
	}
	log.Info("report completed")

	s.notifyReady(report)
	return nil
}

// runProcessor shields the sweep from a panicking processor: the panic
// becomes that report's failure instead of taking down the whole run.
func runProcessor(ctx context.Context, p ReportProcessor, report *models.Report) (result *models.ReportResult, files *models.ReportFiles, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			files = nil
			err = fmt.Errorf("processor panic: %v", r)
		}
	}()
	return p.Process(ctx, report)
}

// logStaleProcessing runs after a lost claim. A report stuck in processing
// past the sweep budget points at a crashed worker; it needs an operator.
func (s *SweepService) logStaleProcessing(ctx context.Context, reportID string, now time.Time) {
	report, err := s.store.GetByID(ctx, reportID)
	if err != nil {
		s.log.WithField("reportId", reportID).Info("report claimed elsewhere, skipping")
		return
	}
	if report.Status == models.StatusProcessing && report.ProcessingStartedAt != nil &&
		now.Sub(*report.ProcessingStartedAt) > s.runTimeout {
		s.log.WithFields(logrus.Fields{
			"reportId":            report.ID,
			"processingStartedAt": report.ProcessingStartedAt,
		}).Warn("report stuck in processing beyond the sweep budget")
		return
	}
	s.log.WithField("reportId", reportID).Info("report claimed elsewhere, skipping")
}

func (s *SweepService) failReport(ctx context.Context, report *models.Report, cause error) {
	reportErr := models.ReportError{
		Message:   cause.Error(),
		Code:      ErrorCode(cause),
		Timestamp: s.now().UTC(),
	}
	if err := s.store.MarkFailed(ctx, report.ID, reportErr); err != nil {
		s.log.WithError(err).WithField("reportId", report.ID).Error("failed to update report status")
		return
	}

	serviceName := "Palmistry"
	if report.ServiceType == models.ServiceNumerology {
		serviceName = "Numerology"
	}
	s.sendNotification(report.UserID, notifications.ReportFailure(report.ID, serviceName))
}

func (s *SweepService) notifyReady(report *models.Report) {
	var n notifications.Notification
	switch report.ServiceType {
	case models.ServicePalmistry:
		n = notifications.PalmistryReady(report.ID)
	case models.ServiceNumerology:
		n = notifications.NumerologyReady(report.ID)
	default:
		return
	}
	s.sendNotification(report.UserID, n)
}

func (s *SweepService) sendNotification(userID string, n notifications.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.notifier.Send(ctx, userID, n); err != nil {
		s.log.WithError(err).WithField("userId", userID).Warn("failed to send notification")
	}
}
