package aianthropic

import (
	"net/http"
	"strings"

	"github.com/Abraxas-365/mailcraft/pkg/errx"
)

var (
	errorRegistry = errx.NewRegistry("ANTHROPIC")

	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to Anthropic API",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeAuthorization,
		http.StatusUnauthorized,
		"Invalid or missing Anthropic API key",
	)

	ErrAPIRateLimit = errorRegistry.Register(
		"API_RATE_LIMIT",
		errx.TypeExternal,
		http.StatusTooManyRequests,
		"Anthropic API rate limit exceeded",
	)

	ErrAPIOverloaded = errorRegistry.Register(
		"API_OVERLOADED",
		errx.TypeExternal,
		http.StatusServiceUnavailable,
		"Anthropic API is overloaded",
	)

	ErrContextLengthExceeded = errorRegistry.Register(
		"CONTEXT_LENGTH_EXCEEDED",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Context length exceeds model maximum",
	)

	ErrEmptyMessages = errorRegistry.Register(
		"EMPTY_MESSAGES",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Messages array cannot be empty",
	)

	ErrMissingAPIKey = errorRegistry.Register(
		"MISSING_API_KEY",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Anthropic API key not provided",
	)
)

// ParseAnthropicError maps an Anthropic SDK error to an errx.Error
func ParseAnthropicError(err error) *errx.Error {
	if err == nil {
		return nil
	}

	var customErr *errx.Error
	if errx.As(err, &customErr) {
		return customErr
	}

	errLower := strings.ToLower(err.Error())

	var baseErr *errx.ErrorCode
	switch {
	case strings.Contains(errLower, "unauthorized") ||
		strings.Contains(errLower, "invalid x-api-key") ||
		strings.Contains(errLower, "authentication"):
		baseErr = ErrAPIUnauthorized
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "rate_limit"):
		baseErr = ErrAPIRateLimit
	case strings.Contains(errLower, "overloaded"):
		baseErr = ErrAPIOverloaded
	case strings.Contains(errLower, "context length") || strings.Contains(errLower, "too many tokens"):
		baseErr = ErrContextLengthExceeded
	default:
		baseErr = ErrAPIRequest
	}

	return errorRegistry.NewWithCause(baseErr, err)
}
