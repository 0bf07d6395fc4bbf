package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/xeipuuv/gojsonschema"

	"astro-report-service/internal/astro"
	"astro-report-service/internal/config"
	"astro-report-service/internal/database"
	"astro-report-service/internal/models"
	"astro-report-service/internal/notifications"
	"astro-report-service/internal/render"
	"astro-report-service/internal/retry"
	"astro-report-service/internal/storage"
	"astro-report-service/internal/validation"
)

// storedDashaCount caps how many mahadashas are persisted with the report.
// The full sequence still appears in the PDF.
const storedDashaCount = 5

// KundaliProcessor runs the synchronous Kundali pipeline: claim, calculate,
// render, upload, persist. The whole run is bounded by the immediate
// processing timeout.
type KundaliProcessor struct {
	store       ReportStore
	ephemeris   astro.PositionSource
	charts      *render.ChartRenderer
	pdf         *render.PDFRenderer
	artifacts   ArtifactUploader
	schema      *gojsonschema.Schema
	notifier    notifications.Notifier
	interpreter *Interpreter
	retryCfg    retry.Config
	timeout     time.Duration
	log         *logrus.Logger
	now         func() time.Time
}

// NewKundaliProcessor creates the immediate Kundali processor
func NewKundaliProcessor(
	store ReportStore,
	ephemeris astro.PositionSource,
	charts *render.ChartRenderer,
	pdf *render.PDFRenderer,
	artifacts ArtifactUploader,
	schema *gojsonschema.Schema,
	notifier notifications.Notifier,
	interpreter *Interpreter,
	retryCfg config.RetryConfig,
	pipeline config.PipelineConfig,
	log *logrus.Logger,
) *KundaliProcessor {
	return &KundaliProcessor{
		store:       store,
		ephemeris:   ephemeris,
		charts:      charts,
		pdf:         pdf,
		artifacts:   artifacts,
		schema:      schema,
		notifier:    notifier,
		interpreter: interpreter,
		retryCfg: retry.Config{
			MaxAttempts:  retryCfg.MaxAttempts,
			InitialDelay: retryCfg.InitialDelay,
			MaxDelay:     retryCfg.MaxDelay,
			Multiplier:   retryCfg.Multiplier,
		},
		timeout: pipeline.ImmediateTimeout,
		log:     log,
		now:     time.Now,
	}
}

// Process claims the report and runs it to a terminal state. The returned
// response mirrors what is persisted; on failure the report is marked failed
// and the processing error is returned.
func (p *KundaliProcessor) Process(ctx context.Context, reportID string) (*models.KundaliResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	started := p.now()

	report, err := p.store.Claim(ctx, reportID, started.UTC())
	if err != nil {
		if errors.Is(err, database.ErrClaimLost) {
			return nil, err
		}
		return nil, newProcessingError(StageStore, "unavailable", "failed to claim report", err)
	}

	p.log.WithFields(logrus.Fields{
		"reportId": report.ID,
		"userId":   report.UserID,
	}).Info("kundali generation started")

	resp, err := p.run(ctx, report, started)
	if err != nil {
		p.fail(report, err, started)
		return nil, err
	}
	return resp, nil
}

func (p *KundaliProcessor) run(ctx context.Context, report *models.Report, started time.Time) (*models.KundaliResponse, error) {
	input := report.Data.Kundali
	if input == nil {
		return nil, newProcessingError(StageValidation, "invalid-argument", "report has no kundali input", nil)
	}

	positions, err := p.ephemeris.PlanetaryPositions(input.DateOfBirth, input.TimeOfBirth, input.Latitude, input.Longitude, input.Timezone)
	if err != nil {
		return nil, newProcessingError(StageCalculation, "internal", "planetary position calculation failed", err)
	}
	houses, err := p.ephemeris.Houses(input.DateOfBirth, input.TimeOfBirth, input.Latitude, input.Longitude)
	if err != nil {
		return nil, newProcessingError(StageCalculation, "internal", "house calculation failed", err)
	}

	nakshatras := astro.AllNakshatras(positions)
	moonNakshatra, ok := nakshatras["Moon"]
	if !ok {
		return nil, newProcessingError(StageCalculation, "internal", "moon position missing from ephemeris output", nil)
	}

	birthDate, err := time.Parse("2006-01-02", input.DateOfBirth)
	if err != nil {
		return nil, newProcessingError(StageValidation, "invalid-argument", "Date of birth must be in YYYY-MM-DD format", err)
	}
	dashas := astro.VimshottariDasha(birthDate, moonNakshatra)

	lagna := astro.Lagna(houses)
	moonSign := astro.MoonSign(positions)
	sunSign := astro.SunSign(positions)

	p.log.WithFields(logrus.Fields{
		"reportId":      report.ID,
		"lagna":         lagna,
		"moonSign":      moonSign,
		"sunSign":       sunSign,
		"moonNakshatra": moonNakshatra.Nakshatra,
	}).Info("vedic calculations completed")

	chartPNG, err := p.charts.Render(positions, houses, input.ChartStyle)
	if err != nil {
		return nil, newProcessingError(StageRendering, "internal", "chart rendering failed", err)
	}

	chartKey := storage.ArtifactKey(string(models.ServiceKundali), report.UserID, report.ID, "chart.png")
	chartURL, err := retry.Do(ctx, p.retryCfg, p.log, "chart image upload", func(ctx context.Context) (string, error) {
		return p.artifacts.Upload(ctx, chartKey, chartPNG, "image/png")
	})
	if err != nil {
		return nil, p.stageForCtx(ctx, StageStorage, "chart image upload failed", err)
	}

	result := buildKundaliResult(positions, houses, dashas, lagna, moonSign, sunSign, moonNakshatra)
	if err := validation.ValidateKundaliResult(result, p.schema); err != nil {
		return nil, newProcessingError(StageCalculation, "internal", "calculated result failed schema validation", err)
	}

	doc := render.KundaliDocument{
		Input:          *input,
		Positions:      positions,
		Houses:         houses,
		Nakshatras:     nakshatras,
		Dashas:         dashas,
		Lagna:          lagna,
		MoonSign:       moonSign,
		SunSign:        sunSign,
		Interpretation: p.interpreter.InterpretKundali(ctx, result),
	}
	pdfData, err := p.pdf.KundaliPDF(doc)
	if err != nil {
		return nil, newProcessingError(StageRendering, "internal", "pdf rendering failed", err)
	}

	pdfKey := storage.ArtifactKey(string(models.ServiceKundali), report.UserID, report.ID, "report.pdf")
	pdfURL, err := retry.Do(ctx, p.retryCfg, p.log, "pdf upload", func(ctx context.Context) (string, error) {
		return p.artifacts.Upload(ctx, pdfKey, pdfData, "application/pdf")
	})
	if err != nil {
		return nil, p.stageForCtx(ctx, StageStorage, "pdf upload failed", err)
	}

	files := &models.ReportFiles{
		PDFURL:    pdfURL,
		ImageURLs: []string{chartURL},
	}
	stored := &models.ReportResult{Kundali: result}
	elapsed := p.now().Sub(started)

	_, err = retry.Do(ctx, p.retryCfg, p.log, "report completion update", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, p.store.MarkCompleted(ctx, report.ID, stored, files, elapsed)
	})
	if err != nil {
		return nil, p.stageForCtx(ctx, StageStore, "failed to persist completed report", err)
	}

	p.log.WithFields(logrus.Fields{
		"reportId":       report.ID,
		"processingTime": elapsed.Milliseconds(),
	}).Info("kundali generation completed")

	go p.notify(report.UserID, notifications.KundaliReady(report.ID))

	return &models.KundaliResponse{
		ReportID:       report.ID,
		Status:         string(models.StatusCompleted),
		Files:          files,
		Data:           result,
		ProcessingTime: elapsed.Milliseconds(),
	}, nil
}

// fail records the terminal failure. A fresh context is used so the update
// still lands when the processing deadline has expired.
func (p *KundaliProcessor) fail(report *models.Report, cause error, started time.Time) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	p.log.WithFields(logrus.Fields{
		"reportId":       report.ID,
		"userId":         report.UserID,
		"processingTime": p.now().Sub(started).Milliseconds(),
	}).Error(cause.Error())

	reportErr := models.ReportError{
		Message:   cause.Error(),
		Code:      ErrorCode(cause),
		Timestamp: p.now().UTC(),
	}
	if err := p.store.MarkFailed(ctx, report.ID, reportErr); err != nil {
		p.log.WithError(err).WithField("reportId", report.ID).Error("failed to update report status")
		return
	}

	go p.notify(report.UserID, notifications.ReportFailure(report.ID, "Kundali"))
}

func (p *KundaliProcessor) notify(userID string, n notifications.Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := p.notifier.Send(ctx, userID, n); err != nil {
		p.log.WithError(err).WithField("userId", userID).Warn("failed to send notification")
	}
}

// stageForCtx attributes the failure to the timeout when the processing
// deadline expired mid-operation
func (p *KundaliProcessor) stageForCtx(ctx context.Context, stage, message string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return newProcessingError(StageTimeout, "deadline-exceeded", "processing deadline exceeded", err)
	}
	return newProcessingError(stage, "", message, err)
}

func buildKundaliResult(
	positions map[string]astro.PlanetaryPosition,
	houses map[int]astro.HouseCusp,
	dashas []astro.DashaPeriod,
	lagna, moonSign, sunSign string,
	moonNakshatra astro.NakshatraCalculation,
) *models.KundaliResult {
	planetPlacements := make(map[string]models.PlanetPlacement, len(positions))
	for planet, pos := range positions {
		planetPlacements[planet] = models.PlanetPlacement{
			Sign:       pos.Sign,
			Degree:     pos.Degree,
			House:      pos.House,
			Retrograde: pos.Retrograde,
		}
	}

	housePlacements := make(map[string]models.HousePlacement, len(houses))
	for house, cusp := range houses {
		housePlacements[strconv.Itoa(house)] = models.HousePlacement{
			Sign:   cusp.Sign,
			Degree: cusp.DegreeInSign,
		}
	}

	count := storedDashaCount
	if len(dashas) < count {
		count = len(dashas)
	}
	dashaResults := make([]models.DashaPeriodResult, 0, count)
	for _, dasha := range dashas[:count] {
		dashaResults = append(dashaResults, models.DashaPeriodResult{
			Planet:        dasha.Planet,
			StartDate:     dasha.StartDate,
			EndDate:       dasha.EndDate,
			DurationYears: dasha.DurationYears,
			IsBalance:     dasha.IsBalance,
		})
	}

	return &models.KundaliResult{
		Lagna:              lagna,
		MoonSign:           moonSign,
		SunSign:            sunSign,
		MoonNakshatra:      moonNakshatra.Nakshatra,
		MoonNakshatraPada:  moonNakshatra.Pada,
		PlanetaryPositions: planetPlacements,
		Houses:             housePlacements,
		Dashas:             dashaResults,
	}
}
