package models

// KundaliRequest represents the request body for an immediate Kundali report
type KundaliRequest struct {
	Name         string  `json:"name" validate:"required,notblank"`
	DateOfBirth  string  `json:"dateOfBirth" validate:"required,dateformat"`
	TimeOfBirth  string  `json:"timeOfBirth" validate:"required,timeformat"`
	PlaceOfBirth string  `json:"placeOfBirth" validate:"required,notblank"`
	Latitude     float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64 `json:"longitude" validate:"min=-180,max=180"`
	Timezone     string  `json:"timezone"`
	ChartStyle   string  `json:"chartStyle" validate:"omitempty,oneof=northIndian southIndian eastIndian western"`
}

// PalmistryRequest represents the request body for a scheduled palmistry analysis
type PalmistryRequest struct {
	ImageURL          string   `json:"imageUrl" validate:"required,url"`
	HandType          string   `json:"handType" validate:"omitempty,oneof=left right both"`
	AnalysisType      string   `json:"analysisType" validate:"omitempty,oneof=basic detailed comprehensive"`
	SpecificQuestions []string `json:"specificQuestions" validate:"omitempty,max=10"`
}

// NumerologyRequest represents the request body for a scheduled numerology report
type NumerologyRequest struct {
	Name                 string `json:"name" validate:"required,notblank"`
	DateOfBirth          string `json:"dateOfBirth" validate:"required,dateformat"`
	ReportType           string `json:"reportType" validate:"omitempty,oneof=basic detailed comprehensive"`
	IncludeCompatibility bool   `json:"includeCompatibility"`
	PartnerDateOfBirth   string `json:"partnerDateOfBirth" validate:"omitempty,dateformat"`
}

// SubmissionResponse is returned when a report has been created
type SubmissionResponse struct {
	ReportID          string `json:"reportId"`
	Status            string `json:"status"`
	EstimatedDelivery string `json:"estimatedDelivery,omitempty"` // RFC 3339
	Message           string `json:"message"`
}

// KundaliResponse is returned by the synchronous Kundali path
type KundaliResponse struct {
	ReportID       string         `json:"reportId"`
	Status         string         `json:"status"`
	Files          *ReportFiles   `json:"files,omitempty"`
	Data           *KundaliResult `json:"data,omitempty"`
	ProcessingTime int64          `json:"processingTime"` // milliseconds
}

// StatusResponse is returned when polling a report by id
type StatusResponse struct {
	ReportID          string        `json:"reportId"`
	Status            string        `json:"status"`
	EstimatedDelivery string        `json:"estimatedDelivery,omitempty"`
	Files             *ReportFiles  `json:"files,omitempty"`
	CalculatedData    *ReportResult `json:"calculatedData,omitempty"`
	Error             string        `json:"error,omitempty"`
}
