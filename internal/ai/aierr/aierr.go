// Package aierr is the closed set of failures an AI capability can report.
package aierr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	// KindValidation: the caller's input did not satisfy the input shape. The
	// model was never contacted.
	KindValidation Kind = "validation_failed"
	// KindUpstream: the model backend could not be reached or returned an error.
	KindUpstream Kind = "upstream_unavailable"
	// KindContract: the model answered but the answer did not satisfy the output shape.
	KindContract Kind = "output_contract_violated"
)

var (
	ErrValidationFailed       = errors.New("input validation failed")
	ErrUpstreamUnavailable    = errors.New("model backend unavailable")
	ErrOutputContractViolated = errors.New("model output violated contract")
)

type Error struct {
	Kind Kind
	Flow string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Flow, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Flow, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	return target == sentinel(e.Kind)
}

func sentinel(k Kind) error {
	switch k {
	case KindValidation:
		return ErrValidationFailed
	case KindUpstream:
		return ErrUpstreamUnavailable
	case KindContract:
		return ErrOutputContractViolated
	default:
		return nil
	}
}

func Validation(flow string, err error) *Error {
	return &Error{Kind: KindValidation, Flow: flow, Err: err}
}

func Upstream(flow string, err error) *Error {
	return &Error{Kind: KindUpstream, Flow: flow, Err: err}
}

func Contract(flow string, err error) *Error {
	return &Error{Kind: KindContract, Flow: flow, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
