package domain

import (
	"errors"
	"strings"
)

// FormatError is the typed failure of the format pipeline.
// Kind is one of the ErrConfig*, ErrCannotDownload, ErrCorruptedArtifacts or ErrUnknown sentinels.
type FormatError struct {
	Kind           error
	ConfigPath     string
	Version        string
	DefaultVersion string
	Locations      []string
	Cause          error
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())

	var details []string
	if e.ConfigPath != "" {
		details = append(details, "config="+e.ConfigPath)
	}
	if e.Version != "" {
		details = append(details, "version="+e.Version)
	}
	if e.DefaultVersion != "" {
		details = append(details, "default="+e.DefaultVersion)
	}
	if len(e.Locations) > 0 {
		details = append(details, "artifacts="+strings.Join(e.Locations, ","))
	}
	if len(details) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(details, " "))
		b.WriteString("]")
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Message returns the failure description without the cause chain.
func (e *FormatError) Message() string {
	if e.Cause != nil {
		return strings.TrimSuffix(e.Error(), ": "+e.Cause.Error())
	}
	return e.Error()
}

// Is matches the error kind.
func (e *FormatError) Is(target error) bool {
	return e.Kind == target
}

// Unwrap returns the underlying cause.
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// WithConfigPath returns a copy of the error attributed to the given config path.
func (e *FormatError) WithConfigPath(path string) *FormatError {
	c := *e
	c.ConfigPath = path
	return &c
}

// AsFormatError returns err as a *FormatError. Errors of any other type are
// classified as ErrUnknown with err as the cause.
func AsFormatError(err error) *FormatError {
	if err == nil {
		return nil
	}
	var fe *FormatError
	if errors.As(err, &fe) {
		return fe
	}
	return &FormatError{Kind: ErrUnknown, Cause: err}
}
