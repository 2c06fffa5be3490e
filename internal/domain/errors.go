// Package domain holds the error kinds shared by the store, the session gate
// and the HTTP layer. Callers match them with errors.Is.
package domain

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrAuthentication = errors.New("invalid username or password")
	ErrAuthorization  = errors.New("admin session required")
	ErrNotFound       = errors.New("not found")
	ErrStorage        = errors.New("storage error")
)
