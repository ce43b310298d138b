package analysis

import (
	"errors"
	"fmt"
)

// Kind classifies why an analysis failed.
type Kind int

const (
	// KindTransport means the call to the model could not be completed.
	KindTransport Kind = iota
	// KindEmptyResponse means the call succeeded but returned no content.
	KindEmptyResponse
	// KindMalformedResponse means content came back but does not fit the schema.
	KindMalformedResponse
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindEmptyResponse:
		return "empty_response"
	case KindMalformedResponse:
		return "malformed_response"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Sentinels matched by errors.Is against an *Error of the same kind.
var (
	ErrTransport         = errors.New("model call failed")
	ErrEmptyResponse     = errors.New("model returned no content")
	ErrMalformedResponse = errors.New("model returned a malformed analysis")
)

// Error is returned by Client.Analyze for every failure.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.sentinel().Error()
	}
	return fmt.Sprintf("%s: %v", e.sentinel(), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	return target == e.sentinel()
}

func (e *Error) sentinel() error {
	switch e.Kind {
	case KindEmptyResponse:
		return ErrEmptyResponse
	case KindMalformedResponse:
		return ErrMalformedResponse
	}
	return ErrTransport
}

// KindOf reports the kind of an analysis failure, and false when err did not
// come from this package.
func KindOf(err error) (Kind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return 0, false
}
