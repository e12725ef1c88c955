package ai

import "errors"

// ErrQuotaExceeded indicates the AI provider returned a quota/limit error (HTTP 429 or similar).
var ErrQuotaExceeded = errors.New("ai quota exceeded")

// ErrUnavailable indicates the AI provider could not be reached or returned a server error.
var ErrUnavailable = errors.New("ai provider unavailable")

// ErrNotConfigured indicates no API key was provided for the AI provider.
var ErrNotConfigured = errors.New("ai provider is not configured")
