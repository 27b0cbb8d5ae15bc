package shared

import "fmt"

var (
	// Input validation errors
	ErrInvalidInput = fmt.Errorf("invalid input")
	ErrMissingField = fmt.Errorf("missing required field")

	// Authentication errors
	ErrNotAuthenticated = fmt.Errorf("not authenticated")
	ErrBadCredentials   = fmt.Errorf("invalid credentials")

	// Persistence errors
	ErrConflict = fmt.Errorf("already exists")
	ErrNotFound = fmt.Errorf("not found")

	// Upstream API errors
	ErrUpstream = fmt.Errorf("upstream request failed")
)
