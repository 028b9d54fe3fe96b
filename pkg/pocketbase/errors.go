package pocketbase

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	pbhttp "github.com/fromhorizons/pocketbase-go/internal/http"
)

// Static errors for construction and configuration.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrBaseURLRequired = errors.New("base URL is required")
	ErrInvalidBaseURL  = errors.New("base URL must start with http:// or https://")

	ErrEmptyCollectionName   = errors.New("collection name cannot be empty")
	ErrInvalidCollectionName = errors.New("collection name may only contain alphanumeric characters and underscores")
)

// Errors mapped from HTTP status codes. Every operation family shares these
// values, so callers can branch with errors.Is regardless of which operation
// produced them.
var (
	// ErrBadRequest is the generic 400 response without field details.
	ErrBadRequest = errors.New("bad request: something went wrong while processing the request")

	// ErrUnauthorized is the 401 response; the request may require a valid
	// authorization token.
	ErrUnauthorized = errors.New("unauthorized: the request requires a valid record authorization token")

	// ErrForbidden is the 403 response; the authenticated record is not
	// allowed to perform the action.
	ErrForbidden = errors.New("forbidden: the authorized record is not allowed to perform this action")

	// ErrNotFound is the 404 response.
	ErrNotFound = errors.New("not found: the requested resource wasn't found")

	// ErrTooManyRequests is the 429 response; the server is rate limiting.
	// It is reported, never retried.
	ErrTooManyRequests = errors.New("too many requests: the server is rate limiting requests")
)

// Authentication-specific errors returned by AuthWithPassword.
var (
	// ErrInvalidCredentials means the server rejected the identity/password
	// pair without field-level details.
	ErrInvalidCredentials = errors.New("invalid credentials: given identity and/or password is wrong")

	// ErrIdentityMustBeEmail means the collection requires the identity to be
	// a valid email address.
	ErrIdentityMustBeEmail = errors.New("invalid credentials: given identity is not a valid email address")
)

// FieldError describes a single field's validation failure inside a 400
// response body.
type FieldError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorResponse is the wire error envelope:
// {"status": 400, "message": "...", "data": {"field": {"code": "...", "message": "..."}}}.
// Older servers send "code" instead of "status".
type errorResponse struct {
	Status  int                   `json:"status"`
	Code    int                   `json:"code"`
	Message string                `json:"message"`
	Data    map[string]FieldError `json:"data"`
}

// FieldViolation is one named field validation failure.
type FieldViolation struct {
	Name    string
	Code    string
	Message string
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s %s", v.Name, v.Code, v.Message)
}

// BadRequestError is a 400 response carrying field-level validation details,
// returned by create and update operations.
type BadRequestError struct {
	Message string
	Fields  []FieldViolation
}

func (e *BadRequestError) Error() string {
	if len(e.Fields) == 0 {
		return "bad request: " + e.Message
	}

	return fmt.Sprintf("bad request: %s %v", e.Message, e.Fields)
}

func (e *BadRequestError) Is(target error) bool {
	return target == ErrBadRequest
}

// EmptyFieldError means the identity and/or password field was blank in an
// auth-with-password request.
type EmptyFieldError struct {
	Identity bool
	Password bool
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("invalid credentials: empty credential field (identity blank: %t, password blank: %t)",
		e.Identity, e.Password)
}

// ParseError means the HTTP exchange succeeded but the response body did not
// match the expected shape. It usually means a mismatch between the supplied
// record type and the collection definition.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: could not parse response into the expected data structure: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnreachableError means the request never produced an HTTP response: timeout,
// connection refusal, DNS failure. Distinct from every HTTP-level error.
type UnreachableError struct {
	Err error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("unreachable: communication with the PocketBase API failed: %v", e.Err)
}

func (e *UnreachableError) Unwrap() error {
	return e.Err
}

// UnexpectedStatusError is returned for any status code the operation family
// does not recognize; it carries the raw status for diagnostics.
type UnexpectedStatusError struct {
	Status     int
	StatusText string
}

func (e *UnexpectedStatusError) Error() string {
	return fmt.Sprintf("unexpected status: an unhandled status code was returned by the PocketBase API: %s", e.StatusText)
}

// statusTable maps the HTTP status codes an operation family recognizes onto
// error values. Statuses missing from the table become UnexpectedStatusError.
type statusTable map[int]error

// Per-family tables. The status-to-category logic is identical everywhere;
// the tables only select which variants exist for each family.
var (
	readStatuses = statusTable{
		401: ErrUnauthorized,
		403: ErrForbidden,
		404: ErrNotFound,
		429: ErrTooManyRequests,
	}

	writeStatuses = statusTable{
		403: ErrForbidden,
		404: ErrNotFound,
	}

	deleteStatuses = statusTable{
		400: ErrBadRequest,
		403: ErrForbidden,
		404: ErrNotFound,
	}

	authStatuses = statusTable{
		401: ErrUnauthorized,
		403: ErrForbidden,
		404: ErrNotFound,
	}

	impersonateStatuses = statusTable{
		400: ErrBadRequest,
		401: ErrUnauthorized,
		403: ErrForbidden,
		404: ErrNotFound,
	}

	verificationStatuses = statusTable{
		400: ErrBadRequest,
		404: ErrNotFound,
	}
)

// classify maps a non-success response onto the family's error variant.
func classify(table statusTable, resp *pbhttp.Response) error {
	if err, ok := table[resp.StatusCode]; ok {
		return err
	}

	return &UnexpectedStatusError{Status: resp.StatusCode, StatusText: resp.Status}
}

// wrapTransport converts transport-level failures into UnreachableError.
func wrapTransport(err error) error {
	transportErr := &pbhttp.TransportError{}
	if errors.As(err, &transportErr) {
		return &UnreachableError{Err: transportErr.Err}
	}

	return err
}

// badRequestError parses a 400 body into a BadRequestError. An unparseable
// body substitutes a synthetic generic bad request so the caller still gets a
// typed error.
func badRequestError(body []byte) *BadRequestError {
	envelope := parseErrorResponse(body)

	fields := make([]FieldViolation, 0, len(envelope.Data))
	for name, field := range envelope.Data {
		fields = append(fields, FieldViolation{
			Name:    name,
			Code:    field.Code,
			Message: field.Message,
		})
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })

	return &BadRequestError{Message: envelope.Message, Fields: fields}
}

// parseErrorResponse parses the wire error envelope, falling back to a
// synthetic generic body when the response does not parse.
func parseErrorResponse(body []byte) errorResponse {
	var envelope errorResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return errorResponse{Status: 400, Message: "Unknown error"}
	}

	return envelope
}

// IsNotFound checks whether the error is the not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks whether the error is the unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks whether the error is the forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsUnreachable checks whether the error was a network-level failure rather
// than an HTTP response.
func IsUnreachable(err error) bool {
	unreachable := &UnreachableError{}

	return errors.As(err, &unreachable)
}
