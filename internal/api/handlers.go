package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"astro-report-service/internal/database"
	"astro-report-service/internal/middleware"
	"astro-report-service/internal/models"
	"astro-report-service/internal/services"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	submission *services.SubmissionService
	kundali    *services.KundaliProcessor
	log        *logrus.Logger
}

// NewHandlers creates a new handlers instance
func NewHandlers(submission *services.SubmissionService, kundali *services.KundaliProcessor, log *logrus.Logger) *Handlers {
	return &Handlers{
		submission: submission,
		kundali:    kundali,
		log:        log,
	}
}

// GenerateKundaliHandler handles POST /api/reports/kundali. The report is
// processed synchronously and the response carries the finished result.
func (h *Handlers) GenerateKundaliHandler(c *gin.Context) {
	var req models.KundaliRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserID(c)
	report, err := h.submission.SubmitKundali(c.Request.Context(), userID, req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	resp, err := h.kundali.Process(c.Request.Context(), report.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SchedulePalmistryHandler handles POST /api/reports/palmistry
func (h *Handlers) SchedulePalmistryHandler(c *gin.Context) {
	var req models.PalmistryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserID(c)
	resp, err := h.submission.SubmitPalmistry(c.Request.Context(), userID, req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

// ScheduleNumerologyHandler handles POST /api/reports/numerology
func (h *Handlers) ScheduleNumerologyHandler(c *gin.Context) {
	var req models.NumerologyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserID(c)
	resp, err := h.submission.SubmitNumerology(c.Request.Context(), userID, req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, resp)
}

// GetReportStatusHandler handles GET /api/reports/:reportId
func (h *Handlers) GetReportStatusHandler(c *gin.Context) {
	userID := middleware.UserID(c)
	resp, err := h.submission.ReportStatus(c.Request.Context(), userID, c.Param("reportId"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "report not found"})
			return
		}
		h.log.WithError(err).Error("failed to load report status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load report"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// renderError maps processing errors to HTTP responses. Clients see the
// user-facing message; the full error stays in the log.
func (h *Handlers) renderError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrClaimLost) {
		c.JSON(http.StatusConflict, gin.H{"error": "report is already being processed"})
		return
	}

	code := services.ErrorCode(err)
	status := http.StatusInternalServerError
	switch code {
	case "invalid-argument":
		status = http.StatusBadRequest
	case "deadline-exceeded":
		status = http.StatusGatewayTimeout
	case "unavailable":
		status = http.StatusServiceUnavailable
	}

	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error("request failed")
	}
	c.JSON(status, gin.H{
		"error":   code,
		"message": services.UserMessage(err),
	})
}
