package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"astro-report-service/internal/config"
	"astro-report-service/internal/models"
	"astro-report-service/internal/numerology"
	"astro-report-service/internal/palmistry"
	"astro-report-service/internal/render"
	"astro-report-service/internal/retry"
	"astro-report-service/internal/storage"
)

// ReportProcessor turns a claimed report's input into its result and
// artifacts. One implementation exists per service type handled by the sweep.
type ReportProcessor interface {
	Process(ctx context.Context, report *models.Report) (*models.ReportResult, *models.ReportFiles, error)
}

// ProcessorRegistry maps service types to their processors
type ProcessorRegistry map[models.ServiceType]ReportProcessor

// NewProcessorRegistry wires the scheduled processors. Kundali is absent on
// purpose: it is processed synchronously at submission and never reaches the
// sweep.
func NewProcessorRegistry(pdf *render.PDFRenderer, artifacts ArtifactUploader, retryCfg config.RetryConfig, log *logrus.Logger) ProcessorRegistry {
	rc := retry.Config{
		MaxAttempts:  retryCfg.MaxAttempts,
		InitialDelay: retryCfg.InitialDelay,
		MaxDelay:     retryCfg.MaxDelay,
		Multiplier:   retryCfg.Multiplier,
	}
	return ProcessorRegistry{
		models.ServicePalmistry:  &PalmistryProcessor{pdf: pdf, artifacts: artifacts, retryCfg: rc, log: log},
		models.ServiceNumerology: &NumerologyProcessor{pdf: pdf, artifacts: artifacts, retryCfg: rc, log: log, now: time.Now},
	}
}

// PalmistryProcessor generates palm reading reports
type PalmistryProcessor struct {
	pdf       *render.PDFRenderer
	artifacts ArtifactUploader
	retryCfg  retry.Config
	log       *logrus.Logger
}

func (p *PalmistryProcessor) Process(ctx context.Context, report *models.Report) (*models.ReportResult, *models.ReportFiles, error) {
	input := report.Data.Palmistry
	if input == nil {
		return nil, nil, newProcessingError(StageValidation, "invalid-argument", "report has no palmistry input", nil)
	}

	analysis := palmistry.Analyze(*input)

	pdfData, err := p.pdf.PalmistryPDF(analysis)
	if err != nil {
		return nil, nil, newProcessingError(StageRendering, "internal", "pdf rendering failed", err)
	}

	pdfURL, err := uploadArtifact(ctx, p.artifacts, p.retryCfg, p.log, report, "report.pdf", pdfData, "application/pdf")
	if err != nil {
		return nil, nil, err
	}

	result := &models.ReportResult{Palmistry: &analysis}
	files := &models.ReportFiles{PDFURL: pdfURL}
	return result, files, nil
}

// NumerologyProcessor generates numerology reports
type NumerologyProcessor struct {
	pdf       *render.PDFRenderer
	artifacts ArtifactUploader
	retryCfg  retry.Config
	log       *logrus.Logger
	now       func() time.Time
}

func (p *NumerologyProcessor) Process(ctx context.Context, report *models.Report) (*models.ReportResult, *models.ReportFiles, error) {
	input := report.Data.Numerology
	if input == nil {
		return nil, nil, newProcessingError(StageValidation, "invalid-argument", "report has no numerology input", nil)
	}

	analysis, err := p.analyze(*input)
	if err != nil {
		return nil, nil, err
	}

	pdfData, err := p.pdf.NumerologyPDF(*analysis)
	if err != nil {
		return nil, nil, newProcessingError(StageRendering, "internal", "pdf rendering failed", err)
	}

	pdfURL, err := uploadArtifact(ctx, p.artifacts, p.retryCfg, p.log, report, "report.pdf", pdfData, "application/pdf")
	if err != nil {
		return nil, nil, err
	}

	result := &models.ReportResult{Numerology: analysis}
	files := &models.ReportFiles{PDFURL: pdfURL}
	return result, files, nil
}

func (p *NumerologyProcessor) analyze(input models.NumerologyInput) (*models.NumerologyResult, error) {
	lifePath, err := numerology.LifePathNumber(input.DateOfBirth)
	if err != nil {
		return nil, newProcessingError(StageCalculation, "internal", "life path calculation failed", err)
	}
	birthday, err := numerology.BirthdayNumber(input.DateOfBirth)
	if err != nil {
		return nil, newProcessingError(StageCalculation, "internal", "birthday number calculation failed", err)
	}

	expression := numerology.ExpressionNumber(input.Name)
	soulUrge := numerology.SoulUrgeNumber(input.Name)
	personality := numerology.PersonalityNumber(input.Name)

	currentYear := p.now().UTC().Year()
	personalYear, err := numerology.PersonalYear(input.DateOfBirth, currentYear)
	if err != nil {
		return nil, newProcessingError(StageCalculation, "internal", "personal year calculation failed", err)
	}
	theme, opportunities, challenges := numerology.PersonalYearTheme(personalYear)

	result := &models.NumerologyResult{
		Name:        input.Name,
		DateOfBirth: input.DateOfBirth,
		ReportType:  input.ReportType,
		CoreNumbers: map[string]models.CoreNumber{
			"lifePathNumber": {
				Value:          lifePath,
				Meaning:        "Your life's purpose and journey",
				Interpretation: numerology.LifePathInterpretation(lifePath),
			},
			"expressionNumber": {
				Value:          expression,
				Meaning:        "Your natural talents and abilities",
				Interpretation: numerology.ExpressionInterpretation(expression),
			},
			"soulUrgeNumber": {
				Value:          soulUrge,
				Meaning:        "Your inner desires and motivations",
				Interpretation: numerology.ExpressionInterpretation(soulUrge),
			},
			"personalityNumber": {
				Value:          personality,
				Meaning:        "How others perceive you",
				Interpretation: numerology.ExpressionInterpretation(personality),
			},
			"birthdayNumber": {
				Value:          birthday,
				Meaning:        "Your special gifts and talents",
				Interpretation: numerology.ExpressionInterpretation(birthday),
			},
		},
		YearlyForecast: models.YearlyForecast{
			PersonalYear:  personalYear,
			Theme:         theme,
			Opportunities: opportunities,
			Challenges:    challenges,
		},
	}

	if input.IncludeCompatibility && input.PartnerDateOfBirth != "" {
		partnerLifePath, err := numerology.LifePathNumber(input.PartnerDateOfBirth)
		if err != nil {
			return nil, newProcessingError(StageCalculation, "internal", "partner life path calculation failed", err)
		}
		score, strengths, compatChallenges := numerology.Compatibility(lifePath, partnerLifePath)
		result.Compatibility = &models.CompatibilityResult{
			PartnerLifePath:    partnerLifePath,
			CompatibilityScore: score,
			Strengths:          strengths,
			Challenges:         compatChallenges,
		}
	}

	return result, nil
}

func uploadArtifact(ctx context.Context, artifacts ArtifactUploader, retryCfg retry.Config, log *logrus.Logger, report *models.Report, name string, data []byte, contentType string) (string, error) {
	key := storage.ArtifactKey(string(report.ServiceType), report.UserID, report.ID, name)
	url, err := retry.Do(ctx, retryCfg, log, fmt.Sprintf("%s upload", name), func(ctx context.Context) (string, error) {
		return artifacts.Upload(ctx, key, data, contentType)
	})
	if err != nil {
		return "", newProcessingError(StageStorage, "unavailable", fmt.Sprintf("%s upload failed", name), err)
	}
	return url, nil
}
