package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"astro-report-service/internal/models"
	"astro-report-service/internal/render"
)

func newTestRegistry(uploader ArtifactUploader) ProcessorRegistry {
	return NewProcessorRegistry(render.NewPDFRenderer(), uploader, testRetryConfig(), testLogger())
}

func TestProcessorRegistry_CoversScheduledServices(t *testing.T) {
	registry := newTestRegistry(newFakeUploader())
	assert.Contains(t, registry, models.ServicePalmistry)
	assert.Contains(t, registry, models.ServiceNumerology)
	assert.NotContains(t, registry, models.ServiceKundali)
}

func TestNumerologyProcessor_ComputesCoreNumbers(t *testing.T) {
	uploader := newFakeUploader()
	registry := newTestRegistry(uploader)

	report := &models.Report{
		ID:          "n1",
		UserID:      "user-1",
		ServiceType: models.ServiceNumerology,
		Status:      models.StatusProcessing,
		Data: models.ReportInput{
			Numerology: &models.NumerologyInput{
				Name:        "John Smith",
				DateOfBirth: "1990-05-15",
				ReportType:  "detailed",
			},
		},
	}

	result, files, err := registry[models.ServiceNumerology].Process(context.Background(), report)
	require.NoError(t, err)

	require.NotNil(t, result.Numerology)
	numbers := result.Numerology.CoreNumbers
	assert.Equal(t, 3, numbers["lifePathNumber"].Value)
	assert.Equal(t, 8, numbers["expressionNumber"].Value)
	assert.Equal(t, 6, numbers["soulUrgeNumber"].Value)
	assert.Equal(t, 11, numbers["personalityNumber"].Value)
	assert.Equal(t, 6, numbers["birthdayNumber"].Value)
	for name, number := range numbers {
		assert.NotEmpty(t, number.Meaning, name)
		assert.NotEmpty(t, number.Interpretation, name)
	}
	assert.NotEmpty(t, result.Numerology.YearlyForecast.Theme)
	assert.Nil(t, result.Numerology.Compatibility)

	require.NotNil(t, files)
	assert.Equal(t, "https://files.test/numerology/user-1/n1/report.pdf", files.PDFURL)
	assert.NotEmpty(t, uploader.uploads["numerology/user-1/n1/report.pdf"])
}

func TestNumerologyProcessor_IncludesCompatibility(t *testing.T) {
	registry := newTestRegistry(newFakeUploader())

	report := &models.Report{
		ID:          "n2",
		UserID:      "user-1",
		ServiceType: models.ServiceNumerology,
		Status:      models.StatusProcessing,
		Data: models.ReportInput{
			Numerology: &models.NumerologyInput{
				Name:                 "John Smith",
				DateOfBirth:          "1990-05-15",
				ReportType:           "comprehensive",
				IncludeCompatibility: true,
				PartnerDateOfBirth:   "1975-12-22",
			},
		},
	}

	result, _, err := registry[models.ServiceNumerology].Process(context.Background(), report)
	require.NoError(t, err)

	compat := result.Numerology.Compatibility
	require.NotNil(t, compat)
	assert.Equal(t, 11, compat.PartnerLifePath)
	assert.GreaterOrEqual(t, compat.CompatibilityScore, 1)
	assert.LessOrEqual(t, compat.CompatibilityScore, 10)
	assert.NotEmpty(t, compat.Strengths)
}

func TestNumerologyProcessor_BadDateFails(t *testing.T) {
	registry := newTestRegistry(newFakeUploader())

	report := &models.Report{
		ID:          "n3",
		UserID:      "user-1",
		ServiceType: models.ServiceNumerology,
		Status:      models.StatusProcessing,
		Data: models.ReportInput{
			Numerology: &models.NumerologyInput{Name: "John Smith", DateOfBirth: "bad"},
		},
	}

	_, _, err := registry[models.ServiceNumerology].Process(context.Background(), report)
	require.Error(t, err)
	assert.Equal(t, "invalid-argument", ErrorCode(err))
}

func TestPalmistryProcessor_GeneratesReading(t *testing.T) {
	uploader := newFakeUploader()
	registry := newTestRegistry(uploader)

	report := &models.Report{
		ID:          "p1",
		UserID:      "user-1",
		ServiceType: models.ServicePalmistry,
		Status:      models.StatusProcessing,
		Data: models.ReportInput{
			Palmistry: &models.PalmistryInput{
				ImageURL:     "https://cdn.test/palm.jpg",
				HandType:     "left",
				AnalysisType: "comprehensive",
			},
		},
	}

	result, files, err := registry[models.ServicePalmistry].Process(context.Background(), report)
	require.NoError(t, err)

	require.NotNil(t, result.Palmistry)
	assert.Equal(t, "left", result.Palmistry.HandType)
	assert.Equal(t, "comprehensive", result.Palmistry.AnalysisType)
	assert.NotEmpty(t, result.Palmistry.LifeLine.Interpretation)
	assert.NotEmpty(t, result.Palmistry.Mounts)
	assert.NotEmpty(t, result.Palmistry.OverallReading)

	require.NotNil(t, files)
	assert.Equal(t, "https://files.test/palmistry/user-1/p1/report.pdf", files.PDFURL)
}

func TestProcessors_RejectMismatchedInput(t *testing.T) {
	registry := newTestRegistry(newFakeUploader())

	report := &models.Report{
		ID:          "x1",
		UserID:      "user-1",
		ServiceType: models.ServicePalmistry,
		Status:      models.StatusProcessing,
		Data:        models.ReportInput{},
	}

	_, _, err := registry[models.ServicePalmistry].Process(context.Background(), report)
	require.Error(t, err)
	assert.Equal(t, "invalid-argument", ErrorCode(err))

	report.ServiceType = models.ServiceNumerology
	_, _, err = registry[models.ServiceNumerology].Process(context.Background(), report)
	require.Error(t, err)
}
