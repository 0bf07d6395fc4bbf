// Package notifications delivers best-effort user notifications. Delivery
// failure is logged and never affects the outcome of the job that sent it.
package notifications

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Notification is the payload delivered to a user
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Notifier sends a notification to a user
type Notifier interface {
	Send(ctx context.Context, userID string, n Notification) error
}

// KundaliReady is sent when a Kundali report has been generated
func KundaliReady(reportID string) Notification {
	return Notification{
		Title: "Your Kundali is Ready!",
		Body:  "Your personalized Kundali report has been generated and is ready to view.",
		Data: map[string]string{
			"type":     "kundali_ready",
			"reportId": reportID,
			"action":   "view_report",
		},
	}
}

// PalmistryReady is sent when a palmistry analysis has completed
func PalmistryReady(reportID string) Notification {
	return Notification{
		Title: "Your Palmistry Analysis is Ready!",
		Body:  "Your detailed palm reading has been completed and is ready to view.",
		Data: map[string]string{
			"type":     "palmistry_ready",
			"reportId": reportID,
			"action":   "view_report",
		},
	}
}

// NumerologyReady is sent when a numerology report has completed
func NumerologyReady(reportID string) Notification {
	return Notification{
		Title: "Your Numerology Report is Ready!",
		Body:  "Your personalized numerology analysis has been completed.",
		Data: map[string]string{
			"type":     "numerology_ready",
			"reportId": reportID,
			"action":   "view_report",
		},
	}
}

// ReportFailure is sent when report generation fails terminally
func ReportFailure(reportID, serviceName string) Notification {
	return Notification{
		Title: "Report Generation Failed",
		Body:  fmt.Sprintf("We encountered an issue generating your %s report. Please contact support.", serviceName),
		Data: map[string]string{
			"type":     "report_failed",
			"reportId": reportID,
			"action":   "contact_support",
		},
	}
}

// ScheduledReminder is sent when a report has been scheduled
func ScheduledReminder(reportID, serviceName, estimatedTime string) Notification {
	return Notification{
		Title: fmt.Sprintf("%s Report Scheduled", serviceName),
		Body:  fmt.Sprintf("Your report will be ready by %s. We'll notify you when it's complete.", estimatedTime),
		Data: map[string]string{
			"type":          "report_scheduled",
			"reportId":      reportID,
			"estimatedTime": estimatedTime,
		},
	}
}

// LogNotifier logs notifications instead of delivering them. Used when no
// delivery channel is configured.
type LogNotifier struct {
	log *logrus.Logger
}

// NewLogNotifier creates a log-only notifier
func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Send logs the notification
func (n *LogNotifier) Send(_ context.Context, userID string, notification Notification) error {
	n.log.WithFields(logrus.Fields{
		"userId": userID,
		"title":  notification.Title,
		"data":   notification.Data,
	}).Info("notification (log only)")
	return nil
}
