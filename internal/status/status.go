// Package status implements the structured, code-plus-detail error model
// shared by every aggregate and transport. The vocabulary follows
// google/rpc: a closed set of canonical codes, a human message, and an
// ordered list of typed detail records. The underlying cause is kept for
// local diagnostics only and never serialized.
package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"
)

// Status is the uniform failure value returned across all boundaries.
// It implements error.
type Status struct {
	code    Code
	message string
	details []Detail
	cause   error
}

// New builds a Status directly. Prefer the code-specific factories.
func New(code Code, message string) *Status {
	return &Status{code: code, message: message}
}

func (s *Status) Code() Code { return s.code }

func (s *Status) Message() string { return s.message }

// Details returns the attached detail records in attachment order.
func (s *Status) Details() []Detail { return s.details }

// Cause returns the underlying error, if any. Local diagnostics only.
func (s *Status) Cause() error { return s.cause }

func (s *Status) Error() string {
	return fmt.Sprintf("error: %s, message: %s", s.code.Description(), s.message)
}

func (s *Status) Unwrap() error { return s.cause }

// HTTPStatus is a convenience passthrough to the code's HTTP mapping.
func (s *Status) HTTPStatus() int { return s.code.HTTPStatus() }

// WithCause attaches an underlying error for local diagnostics.
func (s *Status) WithCause(err error) *Status {
	s.cause = err
	return s
}

// Public returns a copy safe to serialize across a public boundary:
// sensitive details (DebugInfo) are stripped, the cause is dropped.
func (s *Status) Public() *Status {
	out := &Status{code: s.code, message: s.message}
	for _, d := range s.details {
		if d.Sensitive() {
			continue
		}
		out.details = append(out.details, d)
	}
	return out
}

// OK reports success. It exists so the zero outcome has a value too.
func OK() *Status { return New(CodeOk, "Ok.") }

func Cancelled() *Status { return New(CodeCancelled, "Request cancelled by the client.") }

func Unknown() *Status { return New(CodeUnknown, "Unknown error.") }

// InvalidArgument reports a malformed request field.
func InvalidArgument(field, got, expect string) *Status {
	return New(CodeInvalidArgument,
		fmt.Sprintf("Request field '%s' is '%s', expected %s.", field, got, expect))
}

// DeadlineExceeded means gateway timeout from the caller's perspective.
func DeadlineExceeded() *Status { return New(CodeDeadlineExceeded, "Gateway timeout.") }

func NotFound(resource string) *Status {
	return New(CodeNotFound, fmt.Sprintf("Resource '%s' not found.", resource))
}

func AlreadyExists(resource string) *Status {
	return New(CodeAlreadyExists, fmt.Sprintf("Resource '%s' already exists.", resource))
}

func PermissionDenied(permission, resource string) *Status {
	return New(CodePermissionDenied,
		fmt.Sprintf("Permission '%s' denied on resource '%s'.", permission, resource))
}

// ResourceExhausted means too many requests from the caller's perspective.
func ResourceExhausted() *Status { return New(CodeResourceExhausted, "Too many requests.") }

func FailedPrecondition() *Status { return New(CodeFailedPrecondition, "Operation failed.") }

func Aborted() *Status { return New(CodeAborted, "Request aborted.") }

// OutOfRange reports a parameter outside its valid range. rng is a
// human-readable rendering such as "[1, 42]".
func OutOfRange(field, rng string) *Status {
	return New(CodeOutOfRange, fmt.Sprintf("Parameter '%s' is out of range %s.", field, rng))
}

func Unimplemented() *Status { return New(CodeUnimplemented, "Not implemented.") }

func Internal() *Status { return New(CodeInternal, "Internal error.") }

func Unavailable() *Status { return New(CodeUnavailable, "Service Unavailable.") }

// DataLoss deliberately reuses the CodeInternal message: corruption details
// stay server-side.
func DataLoss() *Status { return New(CodeDataLoss, "Internal error.") }

func Unauthenticated() *Status {
	return New(CodeUnauthenticated, "Invalid authentication credentials.")
}

// FromError converts an arbitrary error into a Status. A *Status passes
// through unchanged; anything else becomes Unknown with the original error
// retained as the cause. Unclassified infrastructure failures deliberately
// land here.
func FromError(err error) *Status {
	if err == nil {
		return OK()
	}
	var st *Status
	if errors.As(err, &st) {
		return st
	}
	return Unknown().WithCause(err)
}

// Convert is an alias of FromError matching call sites that read better
// as a conversion.
func Convert(err error) *Status { return FromError(err) }

// CodeOf extracts the canonical code from any error.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOk
	}
	return FromError(err).Code()
}

func (s *Status) addDetail(d Detail) *Status {
	s.details = append(s.details, d)
	return s
}

func (s *Status) WithErrorInfo(reason, domain string, metadata map[string]string) *Status {
	return s.addDetail(ErrorInfo{Reason: reason, Domain: domain, Metadata: metadata})
}

func (s *Status) WithRetryInfo(delay time.Duration) *Status {
	return s.addDetail(RetryInfo{RetryDelay: delay})
}

// WithDebugInfo attaches sensitive local diagnostics, optionally capturing
// the current stack.
func (s *Status) WithDebugInfo(captureStack bool, detail string) *Status {
	d := DebugInfo{Detail: detail}
	if captureStack {
		d.StackEntries = captureStackEntries(2)
	}
	return s.addDetail(d)
}

func (s *Status) WithQuotaFailure(violations ...QuotaViolation) *Status {
	return s.addDetail(QuotaFailure{Violations: violations})
}

func (s *Status) WithPreconditionFailure(violations ...PreconditionViolation) *Status {
	return s.addDetail(PreconditionFailure{Violations: violations})
}

func (s *Status) WithBadRequest(violations ...FieldViolation) *Status {
	return s.addDetail(BadRequest{FieldViolations: violations})
}

func (s *Status) WithRequestInfo(requestID, servingData string) *Status {
	return s.addDetail(RequestInfo{RequestID: requestID, ServingData: servingData})
}

func (s *Status) WithResourceInfo(resourceType, resourceName, owner, description string) *Status {
	return s.addDetail(ResourceInfo{
		ResourceType: resourceType,
		ResourceName: resourceName,
		Owner:        owner,
		Description:  description,
	})
}

func (s *Status) WithHelp(links ...Link) *Status {
	return s.addDetail(Help{Links: links})
}

func (s *Status) WithLocalizedMessage(locale, message string) *Status {
	return s.addDetail(LocalizedMessage{Locale: locale, Message: message})
}

func captureStackEntries(skip int) []string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	var entries []string
	for {
		frame, more := frames.Next()
		entries = append(entries, fmt.Sprintf("%s (%s:%d)", frame.Function, frame.File, frame.Line))
		if !more {
			break
		}
	}
	return entries
}

type statusJSON struct {
	Code    Code              `json:"code"`
	Message string            `json:"message"`
	Details []json.RawMessage `json:"details,omitempty"`
}

func (s *Status) MarshalJSON() ([]byte, error) {
	out := statusJSON{Code: s.code, Message: s.message}
	for _, d := range s.details {
		raw, err := marshalDetail(d)
		if err != nil {
			return nil, err
		}
		out.Details = append(out.Details, raw)
	}
	return json.Marshal(out)
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var in statusJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	s.code = in.Code
	s.message = in.Message
	s.details = nil
	s.cause = nil
	for _, raw := range in.Details {
		d, err := unmarshalDetail(raw)
		if err != nil {
			return err
		}
		s.details = append(s.details, d)
	}
	return nil
}
