package emotion

import (
	"errors"
	"fmt"
)

// Kind classifies why an analysis failed.
type Kind int

const (
	KindEmptyInput Kind = iota + 1
	KindNetworkError
	KindProviderError
	KindMalformedResponse
)

var (
	ErrEmptyInput        = errors.New("text is empty")
	ErrNetwork           = errors.New("emotion provider unreachable")
	ErrProvider          = errors.New("emotion provider returned an error status")
	ErrMalformedResponse = errors.New("emotion provider returned an unexpected response")
)

func (k Kind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty_input"
	case KindNetworkError:
		return "network_error"
	case KindProviderError:
		return "provider_error"
	case KindMalformedResponse:
		return "malformed_response"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindEmptyInput:
		return ErrEmptyInput
	case KindNetworkError:
		return ErrNetwork
	case KindProviderError:
		return ErrProvider
	case KindMalformedResponse:
		return ErrMalformedResponse
	default:
		return nil
	}
}

// Failure is the error returned by every analysis that did not produce scores.
// StatusCode is set only for KindProviderError.
type Failure struct {
	Kind       Kind
	StatusCode int
	Err        error
}

func (f *Failure) Error() string {
	msg := "emotion analysis failed"
	if sentinel := f.Kind.sentinel(); sentinel != nil {
		msg = sentinel.Error()
	}
	if f.Kind == KindProviderError && f.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, f.StatusCode)
	}
	if f.Err != nil {
		return msg + ": " + f.Err.Error()
	}
	return msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Is lets errors.Is match a Failure against the sentinel of its kind.
func (f *Failure) Is(target error) bool {
	return target != nil && target == f.Kind.sentinel()
}

// AsFailure extracts the Failure wrapped in err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

func networkFailure(err error) *Failure {
	return &Failure{Kind: KindNetworkError, Err: err}
}

func providerFailure(status int, err error) *Failure {
	return &Failure{Kind: KindProviderError, StatusCode: status, Err: err}
}

func malformedFailure(err error) *Failure {
	return &Failure{Kind: KindMalformedResponse, Err: err}
}
