// Package notify resolves localized alert templates and dispatches SMS
// through an external gateway, degrading to a logged mock send when no
// gateway is configured.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lifeguard-ai/lifeguard-backend/internal/config"
	"github.com/lifeguard-ai/lifeguard-backend/internal/metrics"
	"github.com/lifeguard-ai/lifeguard-backend/internal/models"
)

type DeliveryStatus string

const (
	StatusSent     DeliveryStatus = "sent"
	StatusMockSent DeliveryStatus = "mock_sent"
	StatusFailed   DeliveryStatus = "failed"
	StatusErrored  DeliveryStatus = "error"
)

// DeliveryResult records the outcome of exactly one send attempt.
type DeliveryResult struct {
	Success bool           `json:"success"`
	Status  DeliveryStatus `json:"status"`
	SID     string         `json:"sid,omitempty"`
	To      string         `json:"to"`
	Message string         `json:"message,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// Summary aggregates a bulk send. One recipient failing never aborts
// the batch.
type Summary struct {
	Total   int              `json:"total"`
	Sent    int              `json:"sent"`
	Failed  int              `json:"failed"`
	Details []DeliveryResult `json:"details"`
}

// StatusInfo is the answer to a message-status lookup.
type StatusInfo struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
}

// GatewayError marks a failure reported by the SMS provider itself
// (transport or auth), as opposed to an unexpected local error.
type GatewayError struct {
	Err error
}

func (e *GatewayError) Error() string { return "sms gateway: " + e.Err.Error() }
func (e *GatewayError) Unwrap() error { return e.Err }

// Gateway is the outbound SMS provider. Implementations own connection
// pooling; the service owns timeouts and fallback behavior.
type Gateway interface {
	Publish(ctx context.Context, to, body string) (string, error)
	Status(ctx context.Context, messageID string) (string, error)
}

type Service struct {
	gateway     Gateway // nil runs the service in mock mode
	countryCode string
	defaultLang string
	timeout     time.Duration
}

func NewService(gateway Gateway, cfg config.SMSConfig) *Service {
	if gateway == nil {
		slog.Warn("SMS service running in mock mode, messages will be logged only")
	}
	return &Service{
		gateway:     gateway,
		countryCode: cfg.DefaultCountry,
		defaultLang: cfg.DefaultLanguage,
		timeout:     cfg.SendTimeout,
	}
}

// Send resolves the (language, category) template, substitutes vars
// and dispatches one SMS. It never returns an error: every failure
// mode is absorbed into the result's status.
func (s *Service) Send(ctx context.Context, to, category, language string, vars map[string]string) DeliveryResult {
	if language == "" {
		language = s.defaultLang
	}
	body := substitute(resolveTemplate(language, category), vars)
	to = s.normalizePhone(to)

	res := s.dispatch(ctx, to, body)
	metrics.SMSSentTotal.WithLabelValues(string(res.Status)).Inc()
	return res
}

// SendDisasterAlert sends the localized warning for one disaster type.
func (s *Service) SendDisasterAlert(ctx context.Context, to string, dt models.DisasterType, region string, severity int, language string) DeliveryResult {
	return s.Send(ctx, to, string(dt), language, map[string]string{
		"region":   region,
		"severity": strconv.Itoa(severity),
	})
}

// SendBloodDonorAlert activates a registered donor.
func (s *Service) SendBloodDonorAlert(ctx context.Context, to, bloodType, region, disaster, contactPhone, language string) DeliveryResult {
	return s.Send(ctx, to, CategoryBloodDonor, language, map[string]string{
		"blood_type": bloodType,
		"region":     region,
		"disaster":   disaster,
		"phone":      contactPhone,
	})
}

// SendBulk dispatches to each recipient independently.
func (s *Service) SendBulk(ctx context.Context, recipients []string, category, language string, vars map[string]string) Summary {
	summary := Summary{
		Total:   len(recipients),
		Details: make([]DeliveryResult, 0, len(recipients)),
	}
	for _, to := range recipients {
		res := s.Send(ctx, to, category, language, vars)
		if res.Success {
			summary.Sent++
		} else {
			summary.Failed++
		}
		summary.Details = append(summary.Details, res)
	}
	return summary
}

// Status looks up delivery status for a previously sent message. In
// mock mode a sentinel status is returned.
func (s *Service) Status(ctx context.Context, messageID string) StatusInfo {
	if s.gateway == nil {
		return StatusInfo{MessageID: messageID, Status: "mock"}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	status, err := s.gateway.Status(ctx, messageID)
	if err != nil {
		return StatusInfo{MessageID: messageID, Status: "unknown", Error: err.Error()}
	}
	return StatusInfo{MessageID: messageID, Status: status}
}

func (s *Service) dispatch(ctx context.Context, to, body string) DeliveryResult {
	if s.gateway == nil {
		slog.Info("mock SMS", "to", to, "message", body)
		return DeliveryResult{
			Success: true,
			Status:  StatusMockSent,
			SID:     "MOCK-" + strconv.FormatInt(time.Now().UnixNano(), 10),
			To:      to,
			Message: body,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sid, err := s.gateway.Publish(ctx, to, body)
	if err != nil {
		var gwErr *GatewayError
		if errors.As(err, &gwErr) {
			slog.Error("gateway rejected SMS", "to", to, "error", err)
			return DeliveryResult{Status: StatusFailed, To: to, Error: err.Error()}
		}
		slog.Error("error sending SMS", "to", to, "error", err)
		return DeliveryResult{Status: StatusErrored, To: to, Error: err.Error()}
	}

	slog.Info("SMS sent", "to", to, "sid", sid)
	return DeliveryResult{
		Success: true,
		Status:  StatusSent,
		SID:     sid,
		To:      to,
		Message: body,
	}
}

// normalizePhone prepends the default country code to numbers that
// lack one.
func (s *Service) normalizePhone(to string) string {
	if strings.HasPrefix(to, "+") {
		return to
	}
	return s.countryCode + to
}

// Enabled reports whether a real gateway is configured.
func (s *Service) Enabled() bool { return s.gateway != nil }
