package models

import "time"

type AlertType string

const (
	AlertTypeDisaster     AlertType = "DISASTER"
	AlertTypeDonorRequest AlertType = "DONOR_REQUEST"
)

// Alert is the persisted record of one SMS alert sent (or attempted)
// to one recipient.
type Alert struct {
	ID           string    `json:"id"`
	PredictionID string    `json:"prediction_id,omitempty"`
	Phone        string    `json:"phone"`
	Type         AlertType `json:"type"`
	Message      string    `json:"message"`
	Language     string    `json:"language"`
	Status       string    `json:"status"` // delivery status as reported by the notify service
	CreatedAt    time.Time `json:"created_at"`
}
