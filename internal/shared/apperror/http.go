package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the transport view of an error, ready for response.Error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// DetailedError lets an AppError carry structured details to the client.
type DetailedError interface {
	ErrorDetails() any
}

// ToHTTP maps any error to an HTTPError. Errors that are not AppErrors are
// reported as a generic internal error so internals never leak to clients.
func ToHTTP(err error) HTTPError {
	if err == nil {
		return HTTPError{Status: http.StatusOK}
	}

	var details any
	var de DetailedError
	if errors.As(err, &de) {
		details = de.ErrorDetails()
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		}
	}

	return HTTPError{
		Status:  ErrInternal.HTTPStatus,
		Code:    ErrInternal.Code,
		Message: ErrInternal.Message,
		Details: details,
	}
}
