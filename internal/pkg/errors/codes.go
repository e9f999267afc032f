package errors

import (
	"fmt"
	"net/http"
)

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int
	Status  int
	Message string
}

// Error codes grouped by module
const (
	Success = 0

	// Common errors (1000-1999)
	ErrInternalServer  = 1000
	ErrInvalidParams   = 1001
	ErrNotFound        = 1002
	ErrTooManyRequests = 1003
	ErrBadRequest      = 1004
	ErrServiceUnavail  = 1005

	// News errors (2000-2999)
	ErrNewsLimitExceeded = 2000
	ErrNewsQueryRequired = 2001
	ErrNewsSearchFailed  = 2002

	// Provider errors (3000-3999)
	ErrProviderTimeout = 3000
	ErrProviderFailed  = 3001
	ErrParseFailed     = 3002

	// Preferences/analytics errors (4000-4999)
	ErrPrefsNotFound    = 4000
	ErrPrefsInvalid     = 4001
	ErrPrefsUnavailable = 4002
)

var codeMap = map[int]Code{
	Success: {Success, http.StatusOK, "Success"},

	ErrInternalServer:  {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:   {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrNotFound:        {ErrNotFound, http.StatusNotFound, "Resource not found"},
	ErrTooManyRequests: {ErrTooManyRequests, http.StatusTooManyRequests, "Too many requests"},
	ErrBadRequest:      {ErrBadRequest, http.StatusBadRequest, "Bad request"},
	ErrServiceUnavail:  {ErrServiceUnavail, http.StatusServiceUnavailable, "Service unavailable"},

	ErrNewsLimitExceeded: {ErrNewsLimitExceeded, http.StatusBadRequest, "Result limit exceeded"},
	ErrNewsQueryRequired: {ErrNewsQueryRequired, http.StatusBadRequest, "Query is required"},
	ErrNewsSearchFailed:  {ErrNewsSearchFailed, http.StatusInternalServerError, "News search failed"},

	ErrProviderTimeout: {ErrProviderTimeout, http.StatusGatewayTimeout, "Provider timeout"},
	ErrProviderFailed:  {ErrProviderFailed, http.StatusBadGateway, "Provider request failed"},
	ErrParseFailed:     {ErrParseFailed, http.StatusBadGateway, "Provider response malformed"},

	ErrPrefsNotFound:    {ErrPrefsNotFound, http.StatusNotFound, "Preferences not found"},
	ErrPrefsInvalid:     {ErrPrefsInvalid, http.StatusBadRequest, "Invalid preferences"},
	ErrPrefsUnavailable: {ErrPrefsUnavailable, http.StatusServiceUnavailable, "Preferences store unavailable"},
}

// GetHTTPStatus returns the HTTP status for an error code
func GetHTTPStatus(code int) int {
	if c, ok := codeMap[code]; ok {
		return c.Status
	}
	return http.StatusInternalServerError
}

// GetMessage returns the message for an error code
func GetMessage(code int) string {
	if c, ok := codeMap[code]; ok {
		return c.Message
	}
	return "Unknown error"
}

// FormatError builds a message with optional details
func FormatError(code int, details ...string) string {
	msg := GetMessage(code)
	if len(details) > 0 && details[0] != "" {
		return fmt.Sprintf("%s: %s", msg, details[0])
	}
	return msg
}
