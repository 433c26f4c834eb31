// Package errors provides standardized error types for the dsm CLI tool.
//
// The errors package defines domain-specific error types that enable
// structured error handling and consistent error messages throughout
// the application.
//
// # Error Types
//
// SiteError is the primary error type, containing:
//   - Code: Categorizes the error (NOT_FOUND, ALREADY_EXISTS, etc.)
//   - Message: Human-readable error description
//   - Site: The site identifier involved (if applicable)
//   - Err: The underlying wrapped error (if any)
//
// # Sentinel Errors
//
// Common error scenarios have pre-defined sentinel errors:
//
//	errors.ErrSiteNotFound      // site doesn't exist
//	errors.ErrSiteExists        // site already exists
//	errors.ErrInvalidIdentifier // site id validation failed
//	errors.ErrPortsExhausted    // no free port stride left
//
// # Usage
//
// Creating domain-specific errors:
//
//	// Site not found
//	return errors.NotFound("alpha")
//
//	// Site already exists
//	return errors.AlreadyExists("alpha")
//
//	// Wrapping an underlying error
//	return errors.Wrap(errors.ErrCodeBootstrap, "mysql system tables", err)
//
// # Error Checking
//
// Use errors.Is for sentinel error comparison:
//
//	if errors.Is(err, errors.ErrSiteNotFound) {
//	    // Handle not found case
//	}
//
// Use errors.As for type assertion:
//
//	var siteErr *errors.SiteError
//	if errors.As(err, &siteErr) {
//	    fmt.Printf("Error code: %s, Site: %s\n", siteErr.Code, siteErr.Site)
//	}
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes errors for programmatic handling.
type ErrorCode string

// Error codes for different error categories.
const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"       // Site not found
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"  // Site already exists
	ErrCodeValidation    ErrorCode = "VALIDATION"      // Input validation failed
	ErrCodePorts         ErrorCode = "PORTS_EXHAUSTED" // Port range exhausted
	ErrCodeTemplate      ErrorCode = "TEMPLATE"        // Template rendering failed
	ErrCodeBootstrap     ErrorCode = "BOOTSTRAP"       // Database bootstrap failed
	ErrCodeTimeout       ErrorCode = "TIMEOUT"         // Process start/stop timed out
	ErrCodeDriver        ErrorCode = "DRIVER"          // Service driver error
	ErrCodeConfig        ErrorCode = "CONFIG"          // Configuration error
	ErrCodeInternal      ErrorCode = "INTERNAL"        // Internal/unexpected error
)

// SiteError represents a structured error with context about the operation.
type SiteError struct {
	Code    ErrorCode // Error category
	Message string    // Human-readable message
	Site    string    // Site identifier (if applicable)
	Err     error     // Underlying error (if any)
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	if e.Site != "" && e.Err != nil {
		return fmt.Sprintf("site %s: %s: %v", e.Site, e.Message, e.Err)
	}
	if e.Site != "" {
		return fmt.Sprintf("site %s: %s", e.Site, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for error chain traversal.
func (e *SiteError) Unwrap() error {
	return e.Err
}

// Is reports whether target matches this error.
// Comparison is based on error code.
func (e *SiteError) Is(target error) bool {
	t, ok := target.(*SiteError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Sentinel errors for common error scenarios.
// Use these with errors.Is() for error checking.
var (
	// ErrSiteNotFound indicates the requested site does not exist.
	ErrSiteNotFound = &SiteError{Code: ErrCodeNotFound, Message: "site not found"}

	// ErrSiteExists indicates a site with the same identifier already exists.
	ErrSiteExists = &SiteError{Code: ErrCodeAlreadyExists, Message: "site already exists"}

	// ErrInvalidIdentifier indicates the site identifier is not valid.
	ErrInvalidIdentifier = &SiteError{Code: ErrCodeValidation, Message: "invalid site identifier"}

	// ErrPortsExhausted indicates no free port stride remains in the range.
	ErrPortsExhausted = &SiteError{Code: ErrCodePorts, Message: "port range exhausted"}

	// ErrMissingVariable indicates a template placeholder had no binding.
	ErrMissingVariable = &SiteError{Code: ErrCodeTemplate, Message: "missing template variable"}

	// ErrBootstrapFailed indicates the database bootstrap sequence failed.
	ErrBootstrapFailed = &SiteError{Code: ErrCodeBootstrap, Message: "database bootstrap failed"}

	// ErrStartTimeout indicates a daemon did not come up within the wait budget.
	ErrStartTimeout = &SiteError{Code: ErrCodeTimeout, Message: "process start timed out"}

	// ErrStopTimeout indicates a daemon did not go down within the wait budget.
	ErrStopTimeout = &SiteError{Code: ErrCodeTimeout, Message: "process stop timed out"}

	// ErrDriverNotFound indicates the specified service driver is not available.
	ErrDriverNotFound = &SiteError{Code: ErrCodeDriver, Message: "driver not found"}
)

// NotFound creates an error for a site that doesn't exist.
func NotFound(site string) error {
	return &SiteError{
		Code:    ErrCodeNotFound,
		Message: "site not found",
		Site:    site,
	}
}

// AlreadyExists creates an error for a site that already exists.
func AlreadyExists(site string) error {
	return &SiteError{
		Code:    ErrCodeAlreadyExists,
		Message: "site already exists",
		Site:    site,
	}
}

// InvalidIdentifier creates an error for a malformed site identifier.
func InvalidIdentifier(site string) error {
	return &SiteError{
		Code:    ErrCodeValidation,
		Message: "invalid site identifier, must match [a-zA-Z][a-zA-Z0-9_]{0,23}",
		Site:    site,
	}
}

// MissingVariable creates an error for an unresolved template placeholder.
func MissingVariable(name string) error {
	return &SiteError{
		Code:    ErrCodeTemplate,
		Message: fmt.Sprintf("missing template variable %q", name),
	}
}

// Validation creates a validation error with a custom message.
func Validation(msg string) error {
	return &SiteError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// Wrap creates an error with the specified code, message, and underlying error.
func Wrap(code ErrorCode, msg string, err error) error {
	return &SiteError{
		Code:    code,
		Message: msg,
		Err:     err,
	}
}

// WrapSite creates an error with site context and underlying error.
func WrapSite(code ErrorCode, site string, err error) error {
	return &SiteError{
		Code: code,
		Site: site,
		Err:  err,
	}
}

// Is reports whether any error in err's chain matches target.
// This is a re-export of errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// This is a re-export of errors.As for convenience.
var As = errors.As
