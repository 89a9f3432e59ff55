package workflow

import (
	"errors"

	"carscout/src/repository"
)

// StatusKind classifies a failed operation.
type StatusKind string

const (
	StatusValidation      StatusKind = "validation"
	StatusUnauthenticated StatusKind = "unauthenticated"
	StatusUnauthorized    StatusKind = "unauthorized"
	StatusNotFound        StatusKind = "not_found"
	StatusBackend         StatusKind = "backend"
)

// Status is the discriminated outcome of an operation: either Ok with an
// info line (and the new record id for creates), or a kind plus message.
// It replaces the single free-form status string the screens used to sniff.
type Status struct {
	Ok      bool       `json:"ok"`
	Info    string     `json:"info,omitempty"`
	ID      string     `json:"id,omitempty"`
	Kind    StatusKind `json:"kind,omitempty"`
	Message string     `json:"message,omitempty"`
}

func OkStatus(info string) Status {
	return Status{Ok: true, Info: info}
}

// CreatedStatus carries the id the store assigned, so the caller can
// navigate to the new record without parsing the info line.
func CreatedStatus(info, id string) Status {
	return Status{Ok: true, Info: info, ID: id}
}

func ErrStatus(kind StatusKind, message string) Status {
	return Status{Kind: kind, Message: message}
}

// ValidationError is raised at the orchestration boundary before any backend
// call is made.
type ValidationError struct {
	Reason string
}

func (e ValidationError) Error() string {
	return e.Reason
}

// StatusFromError classifies a repository failure. The underlying message is
// surfaced verbatim.
func StatusFromError(err error) Status {
	var validation ValidationError
	switch {
	case errors.As(err, &validation):
		return ErrStatus(StatusValidation, validation.Reason)
	case errors.Is(err, repository.ErrUnauthenticated):
		return ErrStatus(StatusUnauthenticated, err.Error())
	case errors.Is(err, repository.ErrUnauthorized):
		return ErrStatus(StatusUnauthorized, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		return ErrStatus(StatusNotFound, err.Error())
	default:
		return ErrStatus(StatusBackend, err.Error())
	}
}
