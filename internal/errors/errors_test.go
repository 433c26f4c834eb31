package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestSiteError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *SiteError
		expected string
	}{
		{
			name: "message only",
			err: &SiteError{
				Code:    ErrCodeValidation,
				Message: "invalid input",
			},
			expected: "invalid input",
		},
		{
			name: "with site",
			err: &SiteError{
				Code:    ErrCodeNotFound,
				Message: "site not found",
				Site:    "alpha",
			},
			expected: "site alpha: site not found",
		},
		{
			name: "with underlying error",
			err: &SiteError{
				Code:    ErrCodeConfig,
				Message: "failed to load",
				Err:     fmt.Errorf("file not found"),
			},
			expected: "failed to load: file not found",
		},
		{
			name: "with site and underlying error",
			err: &SiteError{
				Code:    ErrCodeBootstrap,
				Message: "failed to create schema",
				Site:    "demo",
				Err:     fmt.Errorf("connection refused"),
			},
			expected: "site demo: failed to create schema: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			if result != tt.expected {
				t.Errorf("Error() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestSiteError_Unwrap(t *testing.T) {
	underlying := fmt.Errorf("underlying error")
	err := &SiteError{
		Code:    ErrCodeConfig,
		Message: "wrapped error",
		Err:     underlying,
	}

	if err.Unwrap() != underlying {
		t.Errorf("Unwrap() did not return underlying error")
	}

	errNoWrap := &SiteError{
		Code:    ErrCodeValidation,
		Message: "no underlying",
	}

	if errNoWrap.Unwrap() != nil {
		t.Errorf("Unwrap() should return nil when no underlying error")
	}
}

func TestSiteError_Is(t *testing.T) {
	tests := []struct {
		name     string
		err      *SiteError
		target   error
		expected bool
	}{
		{
			name:     "matches sentinel error",
			err:      &SiteError{Code: ErrCodeNotFound, Message: "custom message"},
			target:   ErrSiteNotFound,
			expected: true,
		},
		{
			name:     "different code",
			err:      &SiteError{Code: ErrCodeNotFound},
			target:   ErrSiteExists,
			expected: false,
		},
		{
			name:     "timeout matches either timeout sentinel",
			err:      &SiteError{Code: ErrCodeTimeout, Message: "start"},
			target:   ErrStartTimeout,
			expected: true,
		},
		{
			name:     "non-SiteError target",
			err:      &SiteError{Code: ErrCodeNotFound},
			target:   fmt.Errorf("regular error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errors.Is(tt.err, tt.target) != tt.expected {
				t.Errorf("Is() = %v, want %v", !tt.expected, tt.expected)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		site     string
	}{
		{"NotFound", NotFound("alpha"), ErrSiteNotFound, "alpha"},
		{"AlreadyExists", AlreadyExists("beta"), ErrSiteExists, "beta"},
		{"InvalidIdentifier", InvalidIdentifier("9bad"), ErrInvalidIdentifier, "9bad"},
		{"MissingVariable", MissingVariable("PORT"), ErrMissingVariable, ""},
		{"Validation", Validation("bad input"), ErrInvalidIdentifier, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("expected %v to match sentinel %v", tt.err, tt.sentinel)
			}

			var siteErr *SiteError
			if !errors.As(tt.err, &siteErr) {
				t.Fatalf("expected *SiteError, got %T", tt.err)
			}
			if siteErr.Site != tt.site {
				t.Errorf("expected site %q, got %q", tt.site, siteErr.Site)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	underlying := fmt.Errorf("exit status 1")
	err := Wrap(ErrCodeBootstrap, "mysql system tables", underlying)

	if !errors.Is(err, ErrBootstrapFailed) {
		t.Error("wrapped error should match bootstrap sentinel")
	}
	if !errors.Is(err, underlying) {
		t.Error("wrapped error should match underlying error")
	}
}

func TestWrapSite(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := WrapSite(ErrCodeInternal, "gamma", underlying)

	var siteErr *SiteError
	if !errors.As(err, &siteErr) {
		t.Fatalf("expected *SiteError, got %T", err)
	}
	if siteErr.Site != "gamma" {
		t.Errorf("expected site gamma, got %q", siteErr.Site)
	}
	if !errors.Is(err, underlying) {
		t.Error("wrapped error should match underlying error")
	}
}

func TestMissingVariableMessage(t *testing.T) {
	err := MissingVariable("HTTP_PORT")
	want := `missing template variable "HTTP_PORT"`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
