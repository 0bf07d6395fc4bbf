package services

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"astro-report-service/internal/config"
	"astro-report-service/internal/database"
	"astro-report-service/internal/models"
	"astro-report-service/internal/notifications"
)

// SubmissionService validates incoming requests and creates report documents.
// Palmistry and numerology reports are scheduled for later pickup by the
// sweep; Kundali reports are created pending and handed to the immediate
// processor by the caller.
type SubmissionService struct {
	store    ReportStore
	notifier notifications.Notifier
	validate *validator.Validate
	cfg      config.PipelineConfig
	log      *logrus.Logger
	now      func() time.Time
}

// NewSubmissionService creates a submission service
func NewSubmissionService(store ReportStore, notifier notifications.Notifier, cfg config.PipelineConfig, log *logrus.Logger) *SubmissionService {
	return &SubmissionService{
		store:    store,
		notifier: notifier,
		validate: NewValidator(),
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

// SubmitKundali validates the request and creates a pending Kundali report.
// The caller is expected to process it immediately.
func (s *SubmissionService) SubmitKundali(ctx context.Context, userID string, req models.KundaliRequest) (*models.Report, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	if req.ChartStyle == "" {
		req.ChartStyle = "northIndian"
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	report := &models.Report{
		ID:          uuid.New().String(),
		UserID:      userID,
		ServiceType: models.ServiceKundali,
		Status:      models.StatusPending,
		Data: models.ReportInput{
			Kundali: &models.KundaliInput{
				Name:         req.Name,
				DateOfBirth:  req.DateOfBirth,
				TimeOfBirth:  req.TimeOfBirth,
				PlaceOfBirth: req.PlaceOfBirth,
				Latitude:     req.Latitude,
				Longitude:    req.Longitude,
				Timezone:     req.Timezone,
				ChartStyle:   req.ChartStyle,
			},
		},
		CreatedAt: s.now().UTC(),
	}

	if err := s.store.Create(ctx, report); err != nil {
		return nil, newProcessingError(StageStore, "unavailable", "failed to create report", err)
	}

	s.log.WithFields(logrus.Fields{
		"reportId":    report.ID,
		"userId":      userID,
		"serviceType": report.ServiceType,
	}).Info("report created")

	return report, nil
}

// SubmitPalmistry validates the request and schedules a palmistry report for
// pickup 24 hours from now
func (s *SubmissionService) SubmitPalmistry(ctx context.Context, userID string, req models.PalmistryRequest) (*models.SubmissionResponse, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	if req.HandType == "" {
		req.HandType = "right"
	}
	if req.AnalysisType == "" {
		req.AnalysisType = "detailed"
	}

	input := models.ReportInput{
		Palmistry: &models.PalmistryInput{
			ImageURL:          req.ImageURL,
			HandType:          req.HandType,
			AnalysisType:      req.AnalysisType,
			SpecificQuestions: req.SpecificQuestions,
		},
	}

	return s.schedule(ctx, userID, models.ServicePalmistry, input, s.cfg.PalmistryDelay,
		"Your palmistry analysis has been scheduled and will be ready in 24 hours.", "Palmistry")
}

// SubmitNumerology validates the request and schedules a numerology report
// for pickup 12 hours from now
func (s *SubmissionService) SubmitNumerology(ctx context.Context, userID string, req models.NumerologyRequest) (*models.SubmissionResponse, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}
	if req.IncludeCompatibility && req.PartnerDateOfBirth == "" {
		return nil, newProcessingError(StageValidation, "invalid-argument",
			"Partner date of birth is required when compatibility is requested", nil)
	}

	if req.ReportType == "" {
		req.ReportType = "detailed"
	}

	input := models.ReportInput{
		Numerology: &models.NumerologyInput{
			Name:                 req.Name,
			DateOfBirth:          req.DateOfBirth,
			ReportType:           req.ReportType,
			IncludeCompatibility: req.IncludeCompatibility,
			PartnerDateOfBirth:   req.PartnerDateOfBirth,
		},
	}

	return s.schedule(ctx, userID, models.ServiceNumerology, input, s.cfg.NumerologyDelay,
		"Your numerology report has been scheduled and will be ready in 12 hours.", "Numerology")
}

func (s *SubmissionService) schedule(ctx context.Context, userID string, serviceType models.ServiceType, input models.ReportInput, delay time.Duration, message, serviceName string) (*models.SubmissionResponse, error) {
	now := s.now().UTC()
	scheduledFor := now.Add(delay)

	report := &models.Report{
		ID:           uuid.New().String(),
		UserID:       userID,
		ServiceType:  serviceType,
		Status:       models.StatusScheduled,
		Data:         input,
		ScheduledFor: &scheduledFor,
		CreatedAt:    now,
	}

	if err := s.store.Create(ctx, report); err != nil {
		return nil, newProcessingError(StageStore, "unavailable", "failed to create report", err)
	}

	s.log.WithFields(logrus.Fields{
		"reportId":     report.ID,
		"userId":       userID,
		"serviceType":  serviceType,
		"scheduledFor": scheduledFor.Format(time.RFC3339),
	}).Info("report scheduled")

	// Delivery of the reminder never affects the submission outcome
	go func() {
		nctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		reminder := notifications.ScheduledReminder(report.ID, serviceName, scheduledFor.Format("Jan 2, 3:04 PM MST"))
		if err := s.notifier.Send(nctx, userID, reminder); err != nil {
			s.log.WithError(err).WithField("reportId", report.ID).Warn("failed to send scheduled reminder")
		}
	}()

	return &models.SubmissionResponse{
		ReportID:          report.ID,
		Status:            string(models.StatusScheduled),
		EstimatedDelivery: scheduledFor.Format(time.RFC3339),
		Message:           message,
	}, nil
}

// ReportStatus returns the polling view of a report, scoped to its owner
func (s *SubmissionService) ReportStatus(ctx context.Context, userID, reportID string) (*models.StatusResponse, error) {
	report, err := s.store.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if report.UserID != userID {
		return nil, database.ErrNotFound
	}

	resp := &models.StatusResponse{
		ReportID:       report.ID,
		Status:         string(report.Status),
		Files:          report.Files,
		CalculatedData: report.CalculatedData,
	}
	if report.ScheduledFor != nil && !report.Status.IsTerminal() {
		resp.EstimatedDelivery = report.ScheduledFor.Format(time.RFC3339)
	}
	if report.Error != nil {
		resp.Error = report.Error.Message
	}
	return resp, nil
}
