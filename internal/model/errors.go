// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package model

import (
	"errors"
	"fmt"
)

// Configuration errors. They are detected while populating a setup or at
// finalize time and are always fatal to a run.
var (
	ErrSource              = errors.New("invalid source")
	ErrUnknownDistribution = errors.New("unknown distribution")
	ErrInvalidValue        = errors.New("invalid value")
	ErrDuplicateLabel      = errors.New("duplicate label")
	ErrUnknownSystematic   = errors.New("unknown systematic")
	ErrDuplicateConfig     = errors.New("duplicate polarization config")
	ErrFractionSum         = errors.New("polarization fractions do not sum to one")
	ErrMissingSystematic   = errors.New("missing systematic")
)

// State errors signal a violated call contract.
var (
	ErrAlreadyFinalized  = errors.New("setup already finalized")
	ErrSetupFrozen       = errors.New("setup is frozen")
	ErrSetupNotFinalized = errors.New("setup not finalized")
	ErrUnknownEnergy     = errors.New("unknown energy")
)

// ErrDestination is returned when the output destination cannot be written.
var ErrDestination = errors.New("destination not writable")

// Execution errors come from external collaborators.
var (
	ErrSourceRead = errors.New("source read failed")
	ErrConnector  = errors.New("data connector failed")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindConfiguration ErrorKind = "configuration"
	KindState         ErrorKind = "state"
	KindIO            ErrorKind = "io"
	KindExecution     ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err carries an OpError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// KindOf maps a sentinel to its kind. Unknown errors are execution errors.
func KindOf(sentinel error) ErrorKind {
	switch sentinel {
	case ErrSource, ErrUnknownDistribution, ErrInvalidValue, ErrDuplicateLabel,
		ErrUnknownSystematic, ErrDuplicateConfig, ErrFractionSum, ErrMissingSystematic:
		return KindConfiguration
	case ErrAlreadyFinalized, ErrSetupFrozen, ErrSetupNotFinalized, ErrUnknownEnergy:
		return KindState
	case ErrDestination:
		return KindIO
	default:
		return KindExecution
	}
}

// Errorf builds an OpError whose chain contains sentinel.
func Errorf(op string, sentinel error, format string, args ...any) error {
	return &OpError{
		Op:   op,
		Kind: KindOf(sentinel),
		Err:  fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), sentinel),
	}
}

// PathErrorf is Errorf with a file path attached.
func PathErrorf(op, path string, sentinel error, cause error) error {
	err := fmt.Errorf("%w", sentinel)
	if cause != nil {
		err = fmt.Errorf("%w: %w", sentinel, cause)
	}
	return &OpError{
		Op:   op,
		Kind: KindOf(sentinel),
		Path: path,
		Err:  err,
	}
}
