package oai

import (
	"fmt"
	"net/http"
)

// ErrorCode is a protocol error code carried in the <error> element.
type ErrorCode string

const (
	CodeBadVerb                 ErrorCode = "badVerb"
	CodeBadArgument             ErrorCode = "badArgument"
	CodeCannotDisseminateFormat ErrorCode = "cannotDisseminateFormat"
	CodeIDDoesNotExist          ErrorCode = "idDoesNotExist"
	CodeNoRecordsMatch          ErrorCode = "noRecordsMatch"
	CodeDatabaseError           ErrorCode = "databaseError"
	CodeInternalError           ErrorCode = "internalError"
)

// Error is a protocol-level failure. It still produces a well-formed
// XML response body, paired with the HTTP status from HTTPStatus.
type Error struct {
	Code    ErrorCode
	Message string
}

func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HTTPStatus maps the protocol code onto the transport. Client-side
// request faults are 400, empty results 404, repository faults 500.
func (e *Error) HTTPStatus() int {
	switch e.Code {
	case CodeBadVerb, CodeBadArgument, CodeCannotDisseminateFormat:
		return http.StatusBadRequest
	case CodeIDDoesNotExist, CodeNoRecordsMatch:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
