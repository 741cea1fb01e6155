// Package errors provides standardized error handling for the keyword analysis service.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeKeywordValidationFailed ErrorCode = "KEYWORD_VALIDATION_FAILED"
	ErrCodeEmptyResultSet          ErrorCode = "EMPTY_RESULT_SET"
	ErrCodeInsufficientData        ErrorCode = "INSUFFICIENT_DATA"

	ErrCodeStoreFetchFailed   ErrorCode = "STORE_FETCH_FAILED"
	ErrCodeSuggestFetchFailed ErrorCode = "SUGGEST_FETCH_FAILED"
	ErrCodeRankingFetchFailed ErrorCode = "RANKING_FETCH_FAILED"
	ErrCodeStoreParseFailed   ErrorCode = "STORE_PARSE_FAILED"
	ErrCodeCountryNotFound    ErrorCode = "COUNTRY_NOT_FOUND"

	ErrCodeCacheUnavailable ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeRequestInvalid   ErrorCode = "REQUEST_INVALID"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewKeywordValidationError creates a non-retryable error for malformed
// top-level input (empty keyword).
func NewKeywordValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeKeywordValidationFailed,
		Message:   "Keyword failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmptyResultSetError creates a non-retryable error for an empty
// search result snapshot. Scoring an empty set is meaningless.
func NewEmptyResultSetError(keyword string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyResultSet,
		Message:   "No apps in search result set",
		Details:   fmt.Sprintf("keyword: %s", keyword),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreFetchFailedError creates a retryable store search error.
// Retrying is the caller's responsibility; the flag only classifies.
func NewStoreFetchFailedError(keyword string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreFetchFailed,
		Message:   "App store search request failed",
		Details:   fmt.Sprintf("keyword: %s, error: %s", keyword, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSuggestFetchFailedError creates a retryable suggestion fetch error.
func NewSuggestFetchFailedError(keyword string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSuggestFetchFailed,
		Message:   "Search suggestion request failed",
		Details:   fmt.Sprintf("keyword: %s, error: %s", keyword, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRankingFetchFailedError creates a retryable category ranking fetch error.
func NewRankingFetchFailedError(collection string, genreID int, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRankingFetchFailed,
		Message:   "Category ranking request failed",
		Details:   fmt.Sprintf("collection: %s, genreId: %d, error: %s", collection, genreID, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreParseFailedError creates a non-retryable store response parse error.
func NewStoreParseFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreParseFailed,
		Message:   "Could not parse app store response",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCountryNotFoundError creates a non-retryable error for an unknown
// store country code.
func NewCountryNotFoundError(country string) *StandardError {
	return &StandardError{
		Code:      ErrCodeCountryNotFound,
		Message:   "Country code not found",
		Details:   fmt.Sprintf("country: %s", country),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error. Cache
// failures never abort an analysis.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Score cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRequestInvalidError creates a non-retryable HTTP request validation error.
func NewRequestInvalidError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeRequestInvalid,
		Message:   "Request payload failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// IsValidation reports whether err is a fail-fast validation error.
func IsValidation(err error) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code == ErrCodeKeywordValidationFailed ||
			se.Code == ErrCodeEmptyResultSet ||
			se.Code == ErrCodeRequestInvalid
	}
	return false
}

// CodeOf returns the error code of err, or empty when err is not a StandardError.
func CodeOf(err error) ErrorCode {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}

// IsRetryable reports whether err is a transient failure the caller may retry.
func IsRetryable(err error) bool {
	var se *StandardError
	if errors.As(err, &se) {
		return se.Retryable
	}
	return false
}
