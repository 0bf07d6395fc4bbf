package render

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"astro-report-service/internal/astro"
	"astro-report-service/internal/models"

	"github.com/jung-kurt/gofpdf/v2"
)

// PDFRenderer generates the report PDF artifacts
type PDFRenderer struct{}

// NewPDFRenderer creates a PDF renderer
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// KundaliDocument bundles everything the Kundali PDF presents
type KundaliDocument struct {
	Input      models.KundaliInput
	Positions  map[string]astro.PlanetaryPosition
	Houses     map[int]astro.HouseCusp
	Nakshatras map[string]astro.NakshatraCalculation
	Dashas     []astro.DashaPeriod
	Lagna      string
	MoonSign   string
	SunSign    string

	// Interpretation is an optional narrative section, included when an
	// interpreter is configured
	Interpretation string
}

func newReportPDF(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("{nb}")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(108, 117, 125)
		pdf.SetX(15)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(128, 0, 64)
	pdf.CellFormat(0, 16, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	return pdf
}

func sectionHeader(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(128, 0, 64)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(33, 37, 41)
	pdf.SetFont("Arial", "", 11)
}

func keyValue(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(55, 7, key, "", 0, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
}

// KundaliPDF renders the full Kundali report document
func (r *PDFRenderer) KundaliPDF(doc KundaliDocument) ([]byte, error) {
	pdf := newReportPDF("Kundali Report")

	sectionHeader(pdf, "Birth Details")
	keyValue(pdf, "Name", doc.Input.Name)
	keyValue(pdf, "Date of Birth", doc.Input.DateOfBirth)
	keyValue(pdf, "Time of Birth", doc.Input.TimeOfBirth)
	keyValue(pdf, "Place of Birth", doc.Input.PlaceOfBirth)
	keyValue(pdf, "Coordinates", fmt.Sprintf("%.4f, %.4f", doc.Input.Latitude, doc.Input.Longitude))
	pdf.Ln(4)

	sectionHeader(pdf, "Key Signs")
	keyValue(pdf, "Lagna (Ascendant)", doc.Lagna)
	keyValue(pdf, "Moon Sign (Rashi)", doc.MoonSign)
	keyValue(pdf, "Sun Sign", doc.SunSign)
	if moon, ok := doc.Nakshatras["Moon"]; ok {
		keyValue(pdf, "Moon Nakshatra", fmt.Sprintf("%s (Pada %d)", moon.Nakshatra, moon.Pada))
	}
	pdf.Ln(4)

	sectionHeader(pdf, "Planetary Positions")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(245, 235, 240)
	pdf.CellFormat(35, 8, "Planet", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Sign", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 8, "Degree", "1", 0, "R", true, 0, "")
	pdf.CellFormat(25, 8, "House", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Motion", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, planet := range astro.Planets {
		pos, ok := doc.Positions[planet]
		if !ok {
			continue
		}
		motion := "Direct"
		if pos.Retrograde {
			motion = "Retrograde"
		}
		pdf.CellFormat(35, 7, planet, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, pos.Sign, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", pos.Degree), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", pos.House), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, motion, "1", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	sectionHeader(pdf, "Nakshatras")
	for _, planet := range astro.Planets {
		nak, ok := doc.Nakshatras[planet]
		if !ok {
			continue
		}
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(35, 7, planet, "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, fmt.Sprintf("%s, Pada %d - Lord %s, %s", nak.Nakshatra, nak.Pada, nak.Lord, nak.Quality), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	sectionHeader(pdf, "Vimshottari Dasha Periods")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 8, "Ruler", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Start", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 8, "End", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Years", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Balance", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, dasha := range doc.Dashas {
		balance := ""
		if dasha.IsBalance {
			balance = "Yes"
		}
		pdf.CellFormat(35, 7, dasha.Planet, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, dasha.StartDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(40, 7, dasha.EndDate, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", dasha.DurationYears), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, balance, "1", 1, "C", false, 0, "")
	}

	if doc.Interpretation != "" {
		pdf.Ln(4)
		sectionHeader(pdf, "Interpretation")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, doc.Interpretation, "", "L", false)
	}

	return outputPDF(pdf)
}

// NumerologyPDF renders the numerology report document
func (r *PDFRenderer) NumerologyPDF(result models.NumerologyResult) ([]byte, error) {
	pdf := newReportPDF("Numerology Report")

	sectionHeader(pdf, "Profile")
	keyValue(pdf, "Name", result.Name)
	keyValue(pdf, "Date of Birth", result.DateOfBirth)
	keyValue(pdf, "Report Type", result.ReportType)
	pdf.Ln(4)

	sectionHeader(pdf, "Core Numbers")
	names := make([]string, 0, len(result.CoreNumbers))
	for name := range result.CoreNumbers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		num := result.CoreNumbers[name]
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, fmt.Sprintf("%s: %d", titleCase(name), num.Value), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, fmt.Sprintf("%s. %s", num.Meaning, num.Interpretation), "", "L", false)
		pdf.Ln(2)
	}

	sectionHeader(pdf, "Yearly Forecast")
	keyValue(pdf, "Personal Year", fmt.Sprintf("%d", result.YearlyForecast.PersonalYear))
	keyValue(pdf, "Theme", result.YearlyForecast.Theme)
	keyValue(pdf, "Opportunities", strings.Join(result.YearlyForecast.Opportunities, ", "))
	keyValue(pdf, "Challenges", strings.Join(result.YearlyForecast.Challenges, ", "))

	if result.Compatibility != nil {
		pdf.Ln(4)
		sectionHeader(pdf, "Compatibility")
		keyValue(pdf, "Partner Life Path", fmt.Sprintf("%d", result.Compatibility.PartnerLifePath))
		keyValue(pdf, "Score", fmt.Sprintf("%d/10", result.Compatibility.CompatibilityScore))
		keyValue(pdf, "Strengths", strings.Join(result.Compatibility.Strengths, ", "))
		keyValue(pdf, "Challenges", strings.Join(result.Compatibility.Challenges, ", "))
	}

	return outputPDF(pdf)
}

// PalmistryPDF renders the palmistry report document
func (r *PDFRenderer) PalmistryPDF(result models.PalmistryResult) ([]byte, error) {
	pdf := newReportPDF("Palmistry Analysis")

	sectionHeader(pdf, "Analysis")
	keyValue(pdf, "Hand", result.HandType)
	keyValue(pdf, "Depth", result.AnalysisType)
	pdf.Ln(4)

	sectionHeader(pdf, "Lines")
	for _, line := range []struct {
		name    string
		reading models.LineReading
	}{
		{"Life Line", result.LifeLine},
		{"Heart Line", result.HeartLine},
		{"Head Line", result.HeadLine},
		{"Fate Line", result.FateLine},
	} {
		pdf.SetFont("Arial", "B", 11)
		pdf.CellFormat(0, 7, line.name, "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 6, line.reading.Interpretation, "", "L", false)
		pdf.Ln(2)
	}

	sectionHeader(pdf, "Mounts")
	mounts := make([]string, 0, len(result.Mounts))
	for mount := range result.Mounts {
		mounts = append(mounts, mount)
	}
	sort.Strings(mounts)
	for _, mount := range mounts {
		keyValue(pdf, titleCase(mount), result.Mounts[mount])
	}
	pdf.Ln(4)

	sectionHeader(pdf, "Overall Reading")
	pdf.MultiCell(0, 6, result.OverallReading, "", "L", false)

	return outputPDF(pdf)
}

func outputPDF(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
