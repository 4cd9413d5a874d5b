package status

import "net/http"

// Code is the closed set of canonical outcome categories used uniformly
// across all operations and transports. Values match google.rpc codes.
type Code int

const (
	// CodeOk means the operation completed successfully.
	CodeOk Code = 0

	// CodeCancelled means the operation was cancelled.
	CodeCancelled Code = 1

	// CodeUnknown is an unknown error.
	CodeUnknown Code = 2

	// CodeInvalidArgument means the client specified an invalid argument.
	CodeInvalidArgument Code = 3

	// CodeDeadlineExceeded means the deadline expired before the operation
	// could complete.
	CodeDeadlineExceeded Code = 4

	// CodeNotFound means some requested entity was not found.
	CodeNotFound Code = 5

	// CodeAlreadyExists means the entity we attempted to create already exists.
	CodeAlreadyExists Code = 6

	// CodePermissionDenied means the caller does not have permission to execute
	// the specified operation.
	CodePermissionDenied Code = 7

	// CodeResourceExhausted means some resource has been exhausted.
	CodeResourceExhausted Code = 8

	// CodeFailedPrecondition means the system is not in a state required for
	// the operation's execution.
	CodeFailedPrecondition Code = 9

	// CodeAborted means the operation was aborted.
	CodeAborted Code = 10

	// CodeOutOfRange means the operation was attempted past the valid range.
	CodeOutOfRange Code = 11

	// CodeUnimplemented means the operation is not implemented or supported.
	CodeUnimplemented Code = 12

	// CodeInternal is an internal error.
	CodeInternal Code = 13

	// CodeUnavailable means the service is currently unavailable.
	CodeUnavailable Code = 14

	// CodeDataLoss means unrecoverable data loss or corruption.
	CodeDataLoss Code = 15

	// CodeUnauthenticated means the request does not have valid authentication
	// credentials.
	CodeUnauthenticated Code = 16
)

var descriptions = map[Code]string{
	CodeOk:                 "The operation completed successfully",
	CodeCancelled:          "The operation was cancelled",
	CodeUnknown:            "Unknown error",
	CodeInvalidArgument:    "Client specified an invalid argument",
	CodeDeadlineExceeded:   "Deadline expired before operation could complete",
	CodeNotFound:           "Some requested entity was not found",
	CodeAlreadyExists:      "Some entity that we attempted to create already exists",
	CodePermissionDenied:   "The caller does not have permission to execute the specified operation",
	CodeResourceExhausted:  "Some resource has been exhausted",
	CodeFailedPrecondition: "The system is not in a state required for the operation's execution",
	CodeAborted:            "The operation was aborted",
	CodeOutOfRange:         "Operation was attempted past the valid range",
	CodeUnimplemented:      "Operation is not implemented or not supported",
	CodeInternal:           "Internal error",
	CodeUnavailable:        "The service is currently unavailable",
	CodeDataLoss:           "Unrecoverable data loss or corruption",
	CodeUnauthenticated:    "The request does not have valid authentication credentials",
}

// Description returns the fixed human description for the code.
func (c Code) Description() string {
	if d, ok := descriptions[c]; ok {
		return d
	}
	return descriptions[CodeUnknown]
}

func (c Code) String() string { return c.Description() }

// StatusClientClosedRequest is the nginx-convention HTTP status for a
// request cancelled by the client; net/http has no constant for it.
const StatusClientClosedRequest = 499

// HTTPStatus maps the code to an HTTP status for transports that need one.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeOk:
		return http.StatusOK
	case CodeCancelled:
		return StatusClientClosedRequest
	case CodeInvalidArgument, CodeFailedPrecondition, CodeOutOfRange:
		return http.StatusBadRequest
	case CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeAborted:
		return http.StatusConflict
	case CodePermissionDenied:
		return http.StatusForbidden
	case CodeResourceExhausted:
		return http.StatusTooManyRequests
	case CodeUnimplemented:
		return http.StatusNotImplemented
	case CodeUnavailable:
		return http.StatusServiceUnavailable
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	default: // CodeUnknown, CodeInternal, CodeDataLoss
		return http.StatusInternalServerError
	}
}
