package models

import (
	"errors"
	"fmt"
)

var (
	ErrTransport     = errors.New("transport error")
	ErrSchema        = errors.New("unexpected response")
	ErrSuperseded    = errors.New("fetch superseded by a newer request")
	ErrNoSubject     = errors.New("no app id found")
	ErrUnknownFormat = errors.New("unknown export format")
)

// RemoteError is returned when the vendor API call fails. Kind is either
// ErrTransport or ErrSchema so callers can use errors.Is.
type RemoteError struct {
	Kind   error
	AppID  string
	Status int
	Err    error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Kind == ErrTransport && e.Status != 0:
		return fmt.Sprintf("app %s: store API returned status %d", e.AppID, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("app %s: %v: %v", e.AppID, e.Kind, e.Err)
	default:
		return fmt.Sprintf("app %s: %v", e.AppID, e.Kind)
	}
}

func (e *RemoteError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
