package models

import "errors"

// Sentinel errors shared across packages. Services wrap these so
// handlers can map them to HTTP status codes without inspecting
// infrastructure errors.
var (
	ErrNotFound           = errors.New("not found")
	ErrGatewayUnavailable = errors.New("sms gateway unavailable")
)
