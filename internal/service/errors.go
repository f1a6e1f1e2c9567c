package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Radz112/bonding-curve-exit-badge/internal/classify"
	"github.com/Radz112/bonding-curve-exit-badge/internal/scan"
)

// Kind tags a classification failure for boundary reporting.
type Kind string

const (
	// KindNotFound: no qualifying sell within scan bounds. A
	// classification outcome, not a transport failure.
	KindNotFound Kind = "NOT_FOUND"

	// KindTimeout: the request exceeded its fixed budget. Partial work
	// is discarded and never cached.
	KindTimeout Kind = "TIMEOUT"

	// KindUpstream: a history or metadata provider call failed or
	// returned a malformed response.
	KindUpstream Kind = "UPSTREAM_FAILURE"

	// KindInternal: a registry/scorer mismatch or other bug. Should
	// never occur in correct operation.
	KindInternal Kind = "INTERNAL_INCONSISTENCY"
)

// Error is a tagged classification failure.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classifyError maps an underlying failure onto the error taxonomy.
func classifyError(err error) *Error {
	var noSell *scan.NoSellError
	switch {
	case errors.As(err, &noSell):
		return &Error{Kind: KindNotFound, Message: noSell.Error(), Err: err}
	case errors.Is(err, context.DeadlineExceeded):
		return &Error{Kind: KindTimeout, Message: "request timed out after the classification budget", Err: err}
	case errors.Is(err, classify.ErrUnknownVenue):
		return &Error{Kind: KindInternal, Message: err.Error(), Err: err}
	default:
		return &Error{Kind: KindUpstream, Message: fmt.Sprintf("upstream failure: %v", err), Err: err}
	}
}
