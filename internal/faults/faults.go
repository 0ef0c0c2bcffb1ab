// Package faults is the error taxonomy of the service. Every failure that
// crosses a package boundary carries a Kind so callers can map it to an HTTP
// status or a retry decision without string matching.
package faults

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation          Kind = "validation_error"
	KindDimensionMismatch   Kind = "dimension_mismatch"
	KindProviderUnavailable Kind = "provider_unavailable"
	KindModelNotFound       Kind = "model_not_found"
	KindFeedRejected        Kind = "feed_rejected"
	KindQueryRejected       Kind = "query_rejected"
	KindDecryptionFailure   Kind = "decryption_failure"
)

type Fault struct {
	Kind   Kind
	Detail string
	Err    error
}

func (f *Fault) Error() string {
	if f.Err != nil {
		return f.Detail + ": " + f.Err.Error()
	}
	return f.Detail
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func New(kind Kind, detail string) error {
	return &Fault{Kind: kind, Detail: detail}
}

func Newf(kind Kind, format string, args ...any) error {
	return &Fault{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, detail string, err error) error {
	return &Fault{Kind: kind, Detail: detail, Err: err}
}

// KindOf classifies an error. Errors that never got a kind are treated as
// provider trouble, the only failure class that can appear unannounced.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var fault *Fault
	if errors.As(err, &fault) {
		return fault.Kind
	}
	return KindProviderUnavailable
}

// Is reports whether the error carries the given kind.
func Is(err error, kind Kind) bool {
	var fault *Fault
	return errors.As(err, &fault) && fault.Kind == kind
}
