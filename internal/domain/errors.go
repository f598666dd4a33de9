package domain

import "errors"

var (
	// ErrFlowNotFound signals a missing flow.
	ErrFlowNotFound = errors.New("flow not found")
	// ErrInvalidCatalog signals a malformed catalog snapshot.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrResponderError signals a response-phrasing provider failure.
	ErrResponderError = errors.New("responder error")
)
