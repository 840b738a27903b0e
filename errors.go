package idtoolkit

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cloudtrellis/idtoolkit/internal/transport"
	"github.com/cloudtrellis/idtoolkit/internal/util"
)

// Coarse error codes. Remote failures map from the HTTP status via the
// canonical Google API taxonomy; local validation failures are tagged
// before any request is sent.
const (
	ErrorCodeInvalidArgument   = "INVALID_ARGUMENT"
	ErrorCodeUnauthenticated   = "UNAUTHENTICATED"
	ErrorCodePermissionDenied  = "PERMISSION_DENIED"
	ErrorCodeNotFound          = "NOT_FOUND"
	ErrorCodeAlreadyExists     = "ALREADY_EXISTS"
	ErrorCodeResourceExhausted = "RESOURCE_EXHAUSTED"
	ErrorCodeInternal          = "INTERNAL"
	ErrorCodeUnavailable       = "UNAVAILABLE"
	ErrorCodeUnimplemented     = "UNIMPLEMENTED"
	ErrorCodeUnknown           = "UNKNOWN"
)

// Fine-grained API codes reported by the Identity Toolkit service in the
// response body. When recognized, they refine the coarse code and populate
// Error.APICode.
const (
	APICodeConfigurationNotFound = "CONFIGURATION_NOT_FOUND"
	APICodeDuplicateEmail        = "DUPLICATE_EMAIL"
	APICodeEmailExists           = "EMAIL_EXISTS"
	APICodeInvalidProviderID     = "INVALID_PROVIDER_ID"
	APICodeUserNotFound          = "USER_NOT_FOUND"
)

// Error is the error type returned by every failed library operation, both
// local validation failures and remote API failures. Network-level transport
// failures (connection refused, cancelled context) are returned as plain
// wrapped errors instead, since no API response was produced.
type Error struct {
	Code    string // coarse taxonomy code (one of the ErrorCode constants)
	APICode string // fine-grained service code, when recognized (e.g. "CONFIGURATION_NOT_FOUND")
	Message string // human-readable error description
	Status  int    // HTTP status of the failed response; 0 for local errors

	// Body is the raw response body, preserved for debugging. Nil for
	// local errors.
	Body []byte

	// Response is the original HTTP response with a re-readable body.
	// Nil for local errors.
	Response *http.Response
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// invalidArgument tags a local validation failure. No request is sent for
// errors created here.
func invalidArgument(format string, args ...any) *Error {
	return &Error{
		Code:    ErrorCodeInvalidArgument,
		Message: fmt.Sprintf(format, args...),
	}
}

// unimplemented tags an operation the service does not support through this
// library. No request is sent for errors created here.
func unimplemented(message string) *Error {
	return &Error{
		Code:    ErrorCodeUnimplemented,
		Message: message,
	}
}

// unknownResponse tags a 2xx response whose body could not be decoded. The
// raw response is preserved for debugging.
func unknownResponse(resp *transport.Response, cause error) *Error {
	return &Error{
		Code:     ErrorCodeUnknown,
		Message:  fmt.Sprintf("failed to decode response body: %v", cause),
		Status:   resp.Status,
		Body:     resp.Body,
		Response: resp.HTTPResponse,
	}
}

// errorResponse is the JSON error envelope the service returns. The message
// field carries a machine-readable code, optionally followed by a colon and
// free-form detail ("CONFIGURATION_NOT_FOUND: no config with the given id").
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// apiErrorCodes maps recognized service codes onto the coarse taxonomy with
// a stable message.
var apiErrorCodes = map[string]struct {
	code    string
	message string
}{
	APICodeConfigurationNotFound: {ErrorCodeNotFound, "no identity provider configuration corresponding to the provided identifier"},
	APICodeDuplicateEmail:        {ErrorCodeAlreadyExists, "the user with the provided email already exists"},
	APICodeEmailExists:           {ErrorCodeAlreadyExists, "the user with the provided email already exists"},
	APICodeInvalidProviderID:     {ErrorCodeInvalidArgument, "the provider identifier is malformed or unknown"},
	APICodeUserNotFound:          {ErrorCodeNotFound, "no user record corresponding to the provided identifier"},
}

// newAPIError maps a non-2xx API response into the error taxonomy. The
// coarse code always derives from the HTTP status; a recognized code in the
// body refines it and sets APICode. The raw body and response are preserved
// either way.
func newAPIError(resp *transport.Response) *Error {
	e := &Error{
		Code:     codeForStatus(resp.Status),
		Message:  fmt.Sprintf("unexpected response with status %d: %s", resp.Status, util.SafeTruncate(string(resp.Body), 512)),
		Status:   resp.Status,
		Body:     resp.Body,
		Response: resp.HTTPResponse,
	}

	var parsed errorResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil || parsed.Error.Message == "" {
		return e
	}

	serverCode, detail, _ := strings.Cut(parsed.Error.Message, ":")
	serverCode = strings.TrimSpace(serverCode)
	meta, ok := apiErrorCodes[serverCode]
	if !ok {
		e.Message = parsed.Error.Message
		return e
	}

	e.APICode = serverCode
	e.Code = meta.code
	e.Message = meta.message
	if detail = strings.TrimSpace(detail); detail != "" {
		e.Message = fmt.Sprintf("%s: %s", meta.message, detail)
	}
	return e
}

// codeForStatus maps HTTP statuses onto the canonical coarse codes.
// Unrecognized statuses fall back to UNKNOWN.
func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrorCodeInvalidArgument
	case http.StatusUnauthorized:
		return ErrorCodeUnauthenticated
	case http.StatusForbidden:
		return ErrorCodePermissionDenied
	case http.StatusNotFound:
		return ErrorCodeNotFound
	case http.StatusConflict:
		return ErrorCodeAlreadyExists
	case http.StatusTooManyRequests:
		return ErrorCodeResourceExhausted
	case http.StatusInternalServerError:
		return ErrorCodeInternal
	case http.StatusServiceUnavailable:
		return ErrorCodeUnavailable
	default:
		return ErrorCodeUnknown
	}
}

func hasCode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func hasAPICode(err error, code string) bool {
	var e *Error
	return errors.As(err, &e) && e.APICode == code
}

// IsInvalidArgument reports whether err carries the INVALID_ARGUMENT code.
func IsInvalidArgument(err error) bool {
	return hasCode(err, ErrorCodeInvalidArgument)
}

// IsUnauthenticated reports whether err carries the UNAUTHENTICATED code.
func IsUnauthenticated(err error) bool {
	return hasCode(err, ErrorCodeUnauthenticated)
}

// IsPermissionDenied reports whether err carries the PERMISSION_DENIED code.
func IsPermissionDenied(err error) bool {
	return hasCode(err, ErrorCodePermissionDenied)
}

// IsNotFound reports whether err carries the NOT_FOUND code.
func IsNotFound(err error) bool {
	return hasCode(err, ErrorCodeNotFound)
}

// IsAlreadyExists reports whether err carries the ALREADY_EXISTS code.
func IsAlreadyExists(err error) bool {
	return hasCode(err, ErrorCodeAlreadyExists)
}

// IsResourceExhausted reports whether err carries the RESOURCE_EXHAUSTED code.
func IsResourceExhausted(err error) bool {
	return hasCode(err, ErrorCodeResourceExhausted)
}

// IsInternal reports whether err carries the INTERNAL code.
func IsInternal(err error) bool {
	return hasCode(err, ErrorCodeInternal)
}

// IsUnavailable reports whether err carries the UNAVAILABLE code.
func IsUnavailable(err error) bool {
	return hasCode(err, ErrorCodeUnavailable)
}

// IsUnimplemented reports whether err carries the UNIMPLEMENTED code.
func IsUnimplemented(err error) bool {
	return hasCode(err, ErrorCodeUnimplemented)
}

// IsUnknown reports whether err carries the UNKNOWN code.
func IsUnknown(err error) bool {
	return hasCode(err, ErrorCodeUnknown)
}

// IsConfigurationNotFound reports whether the service rejected the request
// with CONFIGURATION_NOT_FOUND: no provider config exists for the id.
func IsConfigurationNotFound(err error) bool {
	return hasAPICode(err, APICodeConfigurationNotFound)
}

// IsEmailAlreadyExists reports whether the service rejected the request
// because a user with the given email already exists.
func IsEmailAlreadyExists(err error) bool {
	return hasAPICode(err, APICodeEmailExists) || hasAPICode(err, APICodeDuplicateEmail)
}

// IsUserNotFound reports whether the service rejected the request with
// USER_NOT_FOUND.
func IsUserNotFound(err error) bool {
	return hasAPICode(err, APICodeUserNotFound)
}
