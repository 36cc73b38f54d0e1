package adminsdk

import (
	"errors"
	"fmt"
)

const (
	ErrorCodeInvalidRequest = "invalid_request"
	ErrorCodeValidation     = "validation_error"
	ErrorCodeNotFound       = "not_found"
	ErrorCodeRateLimited    = "rate_limit_exceeded"
	ErrorCodeServerError    = "server_error"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// IsValidationError reports whether err rejects an incomplete record.
func IsValidationError(err error) bool {
	return hasCode(err, ErrorCodeValidation)
}

// IsNotFound reports whether err names a record that does not exist.
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

func hasCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}
