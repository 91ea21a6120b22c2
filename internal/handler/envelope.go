package handler

import (
	"encoding/json"

	"github.com/iliyamo/hotel-booking/internal/apperror"
)

// Request is the body of POST /v1/operations.
type Request struct {
	Operation string          `json:"operation"`
	Variables json.RawMessage `json:"variables"`
	Include   []string        `json:"include"`
}

// ErrorBody is one entry of the errors array.  Path locates the failing
// value inside data, starting with the operation name.
type ErrorBody struct {
	Message string                `json:"message"`
	Code    apperror.Code         `json:"code"`
	Path    []any                 `json:"path,omitempty"`
	Fields  []apperror.FieldError `json:"fields,omitempty"`
}

// Response is the envelope returned for every operation.  Data holds a
// single key, the operation name, whose value is null when the operation
// failed.
type Response struct {
	Data   map[string]any `json:"data"`
	Errors []ErrorBody    `json:"errors,omitempty"`
}

func errorBody(err *apperror.Error, path ...any) ErrorBody {
	return ErrorBody{Message: err.Message, Code: err.Code, Path: path, Fields: err.Fields}
}
