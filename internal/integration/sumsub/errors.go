package sumsub

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError carries the HTTP status and raw body of a >=400 provider response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sumsub error %d: %s", e.StatusCode, e.Body)
}

// Description extracts the free-text "description" field from the error body,
// falling back to the raw body when it is not a JSON document.
func (e *APIError) Description() string {
	var doc struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(e.Body), &doc); err == nil && doc.Description != "" {
		return doc.Description
	}
	return e.Body
}

// IsConflict reports whether err is a 409 "applicant already exists" response.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == 409
}
