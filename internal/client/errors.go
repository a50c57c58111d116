// Package client implements the triage result pipeline used by the
// HealthMate front ends: submitting symptom text for analysis, persisting
// and listing past checks against the backend, and keeping a bounded local
// shadow cache for rapid re-display.
package client

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptySymptoms indicates a submission with no usable text; the
	// request is never issued.
	ErrEmptySymptoms = errors.New("symptoms text is required")

	// ErrBusy indicates an analysis is already in flight for this session.
	ErrBusy = errors.New("analysis already in progress")

	// ErrTimeout indicates the analysis deadline elapsed before a response.
	ErrTimeout = errors.New("analysis timed out, please try again")

	// ErrCancelled indicates the operation was superseded by a newer one.
	// Never surfaced to the user.
	ErrCancelled = errors.New("operation cancelled")
)

// ServiceError is a non-success response from the backend, carrying the
// detail message parsed from the error body when one was available.
type ServiceError struct {
	StatusCode int
	Detail     string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error (status %d): %s", e.StatusCode, e.Detail)
}

// NetworkError is a transport failure with no response at all.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// LoadError is a failed history load with a best-effort detail message.
type LoadError struct {
	Detail string
}

func (e *LoadError) Error() string {
	return "failed to load history: " + e.Detail
}

const genericErrorDetail = "The service returned an unexpected response."
