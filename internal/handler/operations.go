package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking/internal/apperror"
	"github.com/iliyamo/hotel-booking/internal/middleware"
	"github.com/iliyamo/hotel-booking/internal/policy"
	"github.com/iliyamo/hotel-booking/internal/service"
)

// maxBodyBytes caps the request envelope.
const maxBodyBytes = 1 << 20

// opFunc executes one operation and returns its root value.
type opFunc func(cl *call) (any, error)

// OperationHandler serves every API operation from a single endpoint.
// It decodes the envelope, dispatches by operation name, resolves the
// requested relationship edges and renders data and errors together.
type OperationHandler struct {
	Auth     *service.AuthService
	Catalog  *service.CatalogService
	Bookings *service.BookingService
	Resolver *service.Resolver

	ops map[policy.Operation]opFunc
}

func NewOperationHandler(auth *service.AuthService, catalog *service.CatalogService,
	bookings *service.BookingService, resolver *service.Resolver) *OperationHandler {
	h := &OperationHandler{Auth: auth, Catalog: catalog, Bookings: bookings, Resolver: resolver}
	h.ops = h.registry()
	return h
}

// call carries the per-request state of one operation.
type call struct {
	ctx      context.Context
	identity *policy.Identity
	op       policy.Operation
	vars     variables
	include  map[string]bool
	errs     []ErrorBody
	logger   echo.Logger
}

// variables is the union of every operation's arguments.
type variables struct {
	ID     string          `json:"id"`
	UserID string          `json:"userId"`
	Input  json.RawMessage `json:"input"`
}

// input decodes the "input" variable into dst.  Decoding failures are
// reported as invalid input rather than a malformed request.
func (cl *call) input(dst any) error {
	if len(cl.vars.Input) == 0 || bytes.Equal(cl.vars.Input, []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(normalizeDates(cl.vars.Input)))
	if err := dec.Decode(dst); err != nil {
		return apperror.Validation(apperror.FieldError{Field: "input", Message: decodeMessage(err)})
	}
	return nil
}

func decodeMessage(err error) string {
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) && te.Field != "" {
		return fmt.Sprintf("%s must be a %s", te.Field, te.Type.String())
	}
	return "is malformed"
}

// fail records err at path.  Internal errors are logged with their cause
// and rendered with a generic message.
func (cl *call) fail(err error, path ...any) {
	ae := apperror.From(err)
	if ae.Code == apperror.CodeInternal {
		cl.logger.Errorf("operations: %s %v: %v", cl.op, path, err)
	}
	cl.errs = append(cl.errs, errorBody(ae, path...))
}

// Handle serves POST /v1/operations.
func (h *OperationHandler) Handle(c echo.Context) error {
	var req Request
	body := http.MaxBytesReader(c.Response(), c.Request().Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		return badRequest(c, "", "Malformed request body")
	}
	op := policy.Operation(strings.TrimSpace(req.Operation))
	fn, ok := h.ops[op]
	if !ok {
		return badRequest(c, string(op), fmt.Sprintf("Unknown operation %q", req.Operation))
	}

	cl := &call{
		ctx:      c.Request().Context(),
		identity: middleware.CurrentIdentity(c),
		op:       op,
		include:  map[string]bool{},
		logger:   c.Logger(),
	}
	for _, edge := range req.Include {
		cl.include[strings.TrimSpace(edge)] = true
	}
	if len(req.Variables) > 0 && !bytes.Equal(req.Variables, []byte("null")) {
		if err := json.Unmarshal(req.Variables, &cl.vars); err != nil {
			cl.fail(apperror.Validation(apperror.FieldError{Field: "variables", Message: decodeMessage(err)}), string(op))
			return c.JSON(http.StatusOK, Response{Data: map[string]any{string(op): nil}, Errors: cl.errs})
		}
	}

	var data any
	result, err := fn(cl)
	if err != nil {
		cl.fail(err, string(op))
	} else {
		data = h.expand(cl, result, string(op))
	}
	return c.JSON(http.StatusOK, Response{Data: map[string]any{string(op): data}, Errors: cl.errs})
}

func badRequest(c echo.Context, op, message string) error {
	data := map[string]any{}
	if op != "" {
		data[op] = nil
	}
	return c.JSON(http.StatusBadRequest, Response{
		Data:   data,
		Errors: []ErrorBody{{Message: message, Code: apperror.CodeValidation}},
	})
}

// normalizeDates lets clients send date-only values ("2025-06-01") for
// the booking date fields by widening them to midnight UTC.
func normalizeDates(raw json.RawMessage) json.RawMessage {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return raw
	}
	changed := false
	for _, key := range []string{"startDate", "endDate"} {
		var s string
		if v, ok := m[key]; ok && json.Unmarshal(v, &s) == nil && len(s) == len("2006-01-02") {
			m[key], _ = json.Marshal(s + "T00:00:00Z")
			changed = true
		}
	}
	if !changed {
		return raw
	}
	out, err := json.Marshal(m)
	if err != nil {
		return raw
	}
	return out
}
