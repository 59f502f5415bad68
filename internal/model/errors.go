package model

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnauthenticated = errors.New("must be authenticated to evaluate projects")

type FieldError struct {
	Field   string
	Message string
}

type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// UpstreamFetchError reports a catalog request that failed before any record
// was applied. StatusCode is zero when no response was received.
type UpstreamFetchError struct {
	StatusCode int
	Err        error
}

func (e *UpstreamFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	}
	if e.Err != nil {
		return "catalog fetch failed: " + e.Err.Error()
	}
	return "catalog fetch failed"
}

func (e *UpstreamFetchError) Unwrap() error {
	return e.Err
}
