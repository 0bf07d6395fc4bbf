package models

import "time"

// ServiceType identifies which analysis a report was requested for
type ServiceType string

const (
	ServiceKundali    ServiceType = "kundali"
	ServicePalmistry  ServiceType = "palmistry"
	ServiceNumerology ServiceType = "numerology"
)

// ReportStatus represents the lifecycle state of a report
type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusScheduled  ReportStatus = "scheduled"
	StatusProcessing ReportStatus = "processing"
	StatusCompleted  ReportStatus = "completed"
	StatusFailed     ReportStatus = "failed"
)

// IsTerminal reports whether no further transition is allowed from s
func (s ReportStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// CanTransition reports whether the state machine allows s -> next.
// Claiming (pending/scheduled -> processing) and terminal updates
// (processing -> completed/failed) are the only legal moves.
func (s ReportStatus) CanTransition(next ReportStatus) bool {
	switch s {
	case StatusPending, StatusScheduled:
		return next == StatusProcessing
	case StatusProcessing:
		return next == StatusCompleted || next == StatusFailed
	default:
		return false
	}
}

// ReportInput is the service-specific submission payload. Exactly one
// field is set, matching the report's ServiceType.
type ReportInput struct {
	Kundali    *KundaliInput    `bson:"kundali,omitempty" json:"kundali,omitempty"`
	Palmistry  *PalmistryInput  `bson:"palmistry,omitempty" json:"palmistry,omitempty"`
	Numerology *NumerologyInput `bson:"numerology,omitempty" json:"numerology,omitempty"`
}

// ReportResult is the service-specific calculated payload, written once
// on success. Exactly one field is set, matching the report's ServiceType.
type ReportResult struct {
	Kundali    *KundaliResult    `bson:"kundali,omitempty" json:"kundali,omitempty"`
	Palmistry  *PalmistryResult  `bson:"palmistry,omitempty" json:"palmistry,omitempty"`
	Numerology *NumerologyResult `bson:"numerology,omitempty" json:"numerology,omitempty"`
}

// ReportFiles holds the generated artifact locations, written once on success
type ReportFiles struct {
	PDFURL    string   `bson:"pdfUrl" json:"pdfUrl"`
	ImageURLs []string `bson:"imageUrls,omitempty" json:"imageUrls,omitempty"`
}

// ReportError captures the failure that terminated a report
type ReportError struct {
	Message   string    `bson:"message" json:"message"`
	Code      string    `bson:"code" json:"code"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// Report is the persisted unit of work, stored in the reports collection
// keyed by its ID. The pipeline owns every field except Data and
// ServiceType, which the submitter supplies at creation time only.
type Report struct {
	ID                  string        `bson:"_id" json:"id"`
	UserID              string        `bson:"userId" json:"userId"`
	ServiceType         ServiceType   `bson:"serviceType" json:"serviceType"`
	Status              ReportStatus  `bson:"status" json:"status"`
	Data                ReportInput   `bson:"data" json:"data"`
	ScheduledFor        *time.Time    `bson:"scheduledFor,omitempty" json:"scheduledFor,omitempty"`
	CalculatedData      *ReportResult `bson:"calculatedData,omitempty" json:"calculatedData,omitempty"`
	Files               *ReportFiles  `bson:"files,omitempty" json:"files,omitempty"`
	Error               *ReportError  `bson:"error,omitempty" json:"error,omitempty"`
	CreatedAt           time.Time     `bson:"createdAt" json:"createdAt"`
	ProcessingStartedAt *time.Time    `bson:"processingStartedAt,omitempty" json:"processingStartedAt,omitempty"`
	CompletedAt         *time.Time    `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
	FailedAt            *time.Time    `bson:"failedAt,omitempty" json:"failedAt,omitempty"`
	ProcessingTime      int64         `bson:"processingTime,omitempty" json:"processingTime,omitempty"` // milliseconds
}

// KundaliInput is the validated birth data for a Kundali report
type KundaliInput struct {
	Name         string  `bson:"name" json:"name"`
	DateOfBirth  string  `bson:"dateOfBirth" json:"dateOfBirth"` // YYYY-MM-DD
	TimeOfBirth  string  `bson:"timeOfBirth" json:"timeOfBirth"` // HH:MM (24-hour)
	PlaceOfBirth string  `bson:"placeOfBirth" json:"placeOfBirth"`
	Latitude     float64 `bson:"latitude" json:"latitude"`
	Longitude    float64 `bson:"longitude" json:"longitude"`
	Timezone     string  `bson:"timezone" json:"timezone"`
	ChartStyle   string  `bson:"chartStyle" json:"chartStyle"`
}

// PalmistryInput is the validated request data for a palmistry analysis
type PalmistryInput struct {
	ImageURL          string   `bson:"imageUrl" json:"imageUrl"`
	HandType          string   `bson:"handType" json:"handType"`         // left, right, both
	AnalysisType      string   `bson:"analysisType" json:"analysisType"` // basic, detailed, comprehensive
	SpecificQuestions []string `bson:"specificQuestions,omitempty" json:"specificQuestions,omitempty"`
}

// NumerologyInput is the validated request data for a numerology report
type NumerologyInput struct {
	Name                 string `bson:"name" json:"name"`
	DateOfBirth          string `bson:"dateOfBirth" json:"dateOfBirth"` // YYYY-MM-DD
	ReportType           string `bson:"reportType" json:"reportType"`   // basic, detailed, comprehensive
	IncludeCompatibility bool   `bson:"includeCompatibility" json:"includeCompatibility"`
	PartnerDateOfBirth   string `bson:"partnerDateOfBirth,omitempty" json:"partnerDateOfBirth,omitempty"`
}

// PlanetPlacement is the stored per-planet summary in a Kundali result
type PlanetPlacement struct {
	Sign       string  `bson:"sign" json:"sign"`
	Degree     float64 `bson:"degree" json:"degree"`
	House      int     `bson:"house" json:"house"`
	Retrograde bool    `bson:"retrograde" json:"retrograde"`
}

// HousePlacement is the stored per-house summary in a Kundali result
type HousePlacement struct {
	Sign   string  `bson:"sign" json:"sign"`
	Degree float64 `bson:"degree" json:"degree"`
}

// DashaPeriodResult is one Vimshottari period in a Kundali result
type DashaPeriodResult struct {
	Planet        string  `bson:"planet" json:"planet"`
	StartDate     string  `bson:"startDate" json:"startDate"`
	EndDate       string  `bson:"endDate" json:"endDate"`
	DurationYears float64 `bson:"durationYears" json:"durationYears"`
	IsBalance     bool    `bson:"isBalance" json:"isBalance"`
}

// KundaliResult is the calculated payload for a completed Kundali report
type KundaliResult struct {
	Lagna              string                     `bson:"lagna" json:"lagna"`
	MoonSign           string                     `bson:"moonSign" json:"moonSign"`
	SunSign            string                     `bson:"sunSign" json:"sunSign"`
	MoonNakshatra      string                     `bson:"moonNakshatra" json:"moonNakshatra"`
	MoonNakshatraPada  int                        `bson:"moonNakshatraPada" json:"moonNakshatraPada"`
	PlanetaryPositions map[string]PlanetPlacement `bson:"planetaryPositions" json:"planetaryPositions"`
	Houses             map[string]HousePlacement  `bson:"houses" json:"houses"`
	Dashas             []DashaPeriodResult        `bson:"dashas" json:"dashas"`
}

// LineReading describes one palm line in a palmistry result
type LineReading struct {
	Length         string `bson:"length,omitempty" json:"length,omitempty"`
	Depth          string `bson:"depth,omitempty" json:"depth,omitempty"`
	Present        bool   `bson:"present,omitempty" json:"present,omitempty"`
	Interpretation string `bson:"interpretation" json:"interpretation"`
}

// PalmistryResult is the calculated payload for a completed palmistry report
type PalmistryResult struct {
	HandType       string            `bson:"handType" json:"handType"`
	AnalysisType   string            `bson:"analysisType" json:"analysisType"`
	LifeLine       LineReading       `bson:"lifeLine" json:"lifeLine"`
	HeartLine      LineReading       `bson:"heartLine" json:"heartLine"`
	HeadLine       LineReading       `bson:"headLine" json:"headLine"`
	FateLine       LineReading       `bson:"fateLine" json:"fateLine"`
	Mounts         map[string]string `bson:"mounts" json:"mounts"`
	OverallReading string            `bson:"overallReading" json:"overallReading"`
}

// CoreNumber is one named number in a numerology result
type CoreNumber struct {
	Value          int    `bson:"value" json:"value"`
	Meaning        string `bson:"meaning" json:"meaning"`
	Interpretation string `bson:"interpretation" json:"interpretation"`
}

// YearlyForecast is the personal-year section of a numerology result
type YearlyForecast struct {
	PersonalYear  int      `bson:"personalYear" json:"personalYear"`
	Theme         string   `bson:"theme" json:"theme"`
	Opportunities []string `bson:"opportunities" json:"opportunities"`
	Challenges    []string `bson:"challenges" json:"challenges"`
}

// CompatibilityResult is the optional partner section of a numerology result
type CompatibilityResult struct {
	PartnerLifePath    int      `bson:"partnerLifePath" json:"partnerLifePath"`
	CompatibilityScore int      `bson:"compatibilityScore" json:"compatibilityScore"`
	Strengths          []string `bson:"strengths" json:"strengths"`
	Challenges         []string `bson:"challenges" json:"challenges"`
}

// NumerologyResult is the calculated payload for a completed numerology report
type NumerologyResult struct {
	Name           string                `bson:"name" json:"name"`
	DateOfBirth    string                `bson:"dateOfBirth" json:"dateOfBirth"`
	ReportType     string                `bson:"reportType" json:"reportType"`
	CoreNumbers    map[string]CoreNumber `bson:"coreNumbers" json:"coreNumbers"`
	YearlyForecast YearlyForecast        `bson:"yearlyForecast" json:"yearlyForecast"`
	Compatibility  *CompatibilityResult  `bson:"compatibility,omitempty" json:"compatibility,omitempty"`
}
