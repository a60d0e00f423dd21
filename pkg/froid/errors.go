package froid

import (
	"errors"
	"fmt"

	"github.com/TykTechnologies/graphql-froid/pkg/document"
	"github.com/TykTechnologies/graphql-froid/pkg/globalid"
	"github.com/TykTechnologies/graphql-froid/pkg/graphqlerrors"
	"github.com/TykTechnologies/graphql-froid/pkg/jsonvalue"
)

const errorMessagePrefix = "NODE RELAY ERROR"

var (
	ErrMissingVariable       = errors.New("variable is not defined")
	ErrNoRootSelection       = errors.New("document has no top level definition")
	ErrInvalidRepresentation = errors.New("invalid representation")
)

type ErrorKind uint8

const (
	ErrorKindInternal ErrorKind = iota
	ErrorKindMalformedGlobalID
	ErrorKindMissingVariable
	ErrorKindPayloadDeserialization
	ErrorKindNoRootSelection
	ErrorKindInvalidDocument
	ErrorKindInvalidRepresentation
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindMalformedGlobalID:
		return "MalformedGlobalId"
	case ErrorKindMissingVariable:
		return "MissingVariable"
	case ErrorKindPayloadDeserialization:
		return "PayloadDeserializationError"
	case ErrorKindNoRootSelection:
		return "NoRootSelection"
	case ErrorKindInvalidDocument:
		return "InvalidDocument"
	case ErrorKindInvalidRepresentation:
		return "InvalidRepresentation"
	default:
		return "InternalError"
	}
}

// Error is a classified failure of the encode or decode pipeline.
type Error struct {
	Kind      ErrorKind
	Err       error
	Locations []graphqlerrors.Location
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// RequestError renders e as the single error record of a failed response.
// The message is meant for humans only.
func (e *Error) RequestError() graphqlerrors.RequestError {
	return graphqlerrors.RequestError{
		Message:   fmt.Sprintf("%s message: %v kind: %s", errorMessagePrefix, e.Err, e.Kind),
		Locations: e.Locations,
	}
}

func newError(kind ErrorKind, err error, positions ...document.Position) *Error {
	e := &Error{Kind: kind, Err: err}
	for _, position := range positions {
		if position.Line == 0 {
			continue
		}
		e.Locations = append(e.Locations, graphqlerrors.Location{Line: position.Line, Column: position.Column})
	}
	return e
}

// classify wraps err into an *Error, keeping an existing classification.
func classify(err error) *Error {
	var froidErr *Error
	if errors.As(err, &froidErr) {
		return froidErr
	}

	var parseErr *document.ParseError
	switch {
	case errors.As(err, &parseErr):
		return newError(ErrorKindInvalidDocument, err, parseErr.Locations...)
	case errors.Is(err, globalid.ErrMalformed):
		return newError(ErrorKindMalformedGlobalID, err)
	case errors.Is(err, ErrMissingVariable):
		return newError(ErrorKindMissingVariable, err)
	case errors.Is(err, ErrNoRootSelection):
		return newError(ErrorKindNoRootSelection, err)
	case errors.Is(err, ErrInvalidRepresentation):
		return newError(ErrorKindInvalidRepresentation, err)
	case errors.Is(err, jsonvalue.ErrNotObject):
		return newError(ErrorKindPayloadDeserialization, err)
	default:
		return newError(ErrorKindInternal, err)
	}
}
