package providers

import (
	"errors"
	"fmt"
)

type authError struct {
	provider string
	message  string
}

func (e *authError) Error() string {
	return fmt.Sprintf("%s authentication error: %s", e.provider, e.message)
}

type rateLimitError struct {
	provider string
}

func (e *rateLimitError) Error() string {
	return e.provider + " rate limited"
}

type requestError struct {
	provider   string
	statusCode int
	body       string
}

func (e *requestError) Error() string {
	return fmt.Sprintf("%s request failed (status %d): %s", e.provider, e.statusCode, e.body)
}

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// IsRateLimitError checks if an error is a rate-limit error.
func IsRateLimitError(err error) bool {
	var re *rateLimitError
	return errors.As(err, &re)
}

// statusError maps a non-200 HTTP status to the error taxonomy.
func statusError(provider string, status int, body string) error {
	switch {
	case status == 429:
		return &rateLimitError{provider: provider}
	case status == 401 || status == 403:
		return &authError{provider: provider, message: body}
	default:
		return &requestError{provider: provider, statusCode: status, body: body}
	}
}
