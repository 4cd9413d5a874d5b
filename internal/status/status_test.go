package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestFactoryMessages(t *testing.T) {
	tests := []struct {
		st   *Status
		code Code
		msg  string
	}{
		{OK(), CodeOk, "Ok."},
		{Cancelled(), CodeCancelled, "Request cancelled by the client."},
		{Unknown(), CodeUnknown, "Unknown error."},
		{InvalidArgument("first", "-1", "a non-negative integer"), CodeInvalidArgument,
			"Request field 'first' is '-1', expected a non-negative integer."},
		{DeadlineExceeded(), CodeDeadlineExceeded, "Gateway timeout."},
		{NotFound("product(42)"), CodeNotFound, "Resource 'product(42)' not found."},
		{AlreadyExists("checkout(cid: 7)"), CodeAlreadyExists, "Resource 'checkout(cid: 7)' already exists."},
		{ResourceExhausted(), CodeResourceExhausted, "Too many requests."},
		{FailedPrecondition(), CodeFailedPrecondition, "Operation failed."},
		{OutOfRange("before", "[1, 42]"), CodeOutOfRange, "Parameter 'before' is out of range [1, 42]."},
		{Internal(), CodeInternal, "Internal error."},
		{Unavailable(), CodeUnavailable, "Service Unavailable."},
		{DataLoss(), CodeDataLoss, "Internal error."},
	}
	for _, tt := range tests {
		if tt.st.Code() != tt.code {
			t.Errorf("code = %d, want %d", tt.st.Code(), tt.code)
		}
		if tt.st.Message() != tt.msg {
			t.Errorf("message = %q, want %q", tt.st.Message(), tt.msg)
		}
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeOk, http.StatusOK},
		{CodeCancelled, StatusClientClosedRequest},
		{CodeUnknown, http.StatusInternalServerError},
		{CodeInvalidArgument, http.StatusBadRequest},
		{CodeDeadlineExceeded, http.StatusGatewayTimeout},
		{CodeNotFound, http.StatusNotFound},
		{CodeAlreadyExists, http.StatusConflict},
		{CodePermissionDenied, http.StatusForbidden},
		{CodeResourceExhausted, http.StatusTooManyRequests},
		{CodeFailedPrecondition, http.StatusBadRequest},
		{CodeAborted, http.StatusConflict},
		{CodeOutOfRange, http.StatusBadRequest},
		{CodeUnimplemented, http.StatusNotImplemented},
		{CodeInternal, http.StatusInternalServerError},
		{CodeUnavailable, http.StatusServiceUnavailable},
		{CodeDataLoss, http.StatusInternalServerError},
		{CodeUnauthenticated, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		if got := tt.code.HTTPStatus(); got != tt.want {
			t.Errorf("HTTPStatus(%d) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestPublicStripsSensitiveDetails(t *testing.T) {
	st := Internal().
		WithDebugInfo(true, "stack for operators only").
		WithErrorInfo("SOMETHING", "shop.test", nil)

	pub := st.Public()
	if len(pub.Details()) != 1 {
		t.Fatalf("public details = %d, want 1", len(pub.Details()))
	}
	if _, ok := pub.Details()[0].(ErrorInfo); !ok {
		t.Errorf("surviving detail = %T, want ErrorInfo", pub.Details()[0])
	}
	if pub.Cause() != nil {
		t.Error("public status must not carry a cause")
	}
	// the original keeps everything
	if len(st.Details()) != 2 {
		t.Errorf("original details = %d, want 2", len(st.Details()))
	}
}

func TestCauseNeverSerialized(t *testing.T) {
	st := Unknown().WithCause(errors.New("pq: connection refused"))
	b, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "connection refused") {
		t.Errorf("cause leaked into JSON: %s", b)
	}
}

func TestFromError(t *testing.T) {
	orig := NotFound("cart(9)")
	if got := FromError(orig); got != orig {
		t.Error("status must pass through FromError unchanged")
	}

	wrapped := FromError(errors.New("boom"))
	if wrapped.Code() != CodeUnknown {
		t.Errorf("code = %d, want CodeUnknown", wrapped.Code())
	}
	if wrapped.Cause() == nil || wrapped.Cause().Error() != "boom" {
		t.Error("original error must be kept as the cause")
	}

	if FromError(nil).Code() != CodeOk {
		t.Error("nil error must convert to Ok")
	}
}

func TestCodeOfUnwraps(t *testing.T) {
	err := fmtWrap(PermissionDenied("read", "product(1)"))
	if got := CodeOf(err); got != CodePermissionDenied {
		t.Errorf("CodeOf = %d, want CodePermissionDenied", got)
	}
}

func fmtWrap(err error) error {
	return &wrapErr{err}
}

type wrapErr struct{ inner error }

func (w *wrapErr) Error() string { return "wrapped: " + w.inner.Error() }
func (w *wrapErr) Unwrap() error { return w.inner }

func TestJSONRoundTrip(t *testing.T) {
	st := ResourceExhausted().
		WithRetryInfo(30 * time.Second).
		WithErrorInfo("RATE_LIMITED", "shop.api", map[string]string{"limit": "100"}).
		WithPreconditionFailure(PreconditionViolation{
			Type:        "logic",
			Subject:     "shop/checkout",
			Description: "Checkout with an empty cart",
		}).
		WithBadRequest(FieldViolation{Field: "first", Description: "must be non-negative"}).
		WithHelp(Link{Description: "docs", URL: "https://example.com/errors"}).
		WithLocalizedMessage("en-US", "Too many requests.")

	b, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}

	var raw struct {
		Details []map[string]any `json:"details"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	for _, d := range raw.Details {
		if _, ok := d["@type"]; !ok {
			t.Errorf("detail lacks @type discriminator: %v", d)
		}
	}

	var back Status
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if back.Code() != CodeResourceExhausted {
		t.Errorf("code = %d, want CodeResourceExhausted", back.Code())
	}
	if back.Message() != st.Message() {
		t.Errorf("message = %q, want %q", back.Message(), st.Message())
	}
	if len(back.Details()) != len(st.Details()) {
		t.Fatalf("details = %d, want %d", len(back.Details()), len(st.Details()))
	}
	ei, ok := back.Details()[1].(ErrorInfo)
	if !ok {
		t.Fatalf("details[1] = %T, want ErrorInfo", back.Details()[1])
	}
	if ei.Reason != "RATE_LIMITED" || ei.Metadata["limit"] != "100" {
		t.Errorf("ErrorInfo round trip mismatch: %+v", ei)
	}
	pf, ok := back.Details()[2].(PreconditionFailure)
	if !ok {
		t.Fatalf("details[2] = %T, want PreconditionFailure", back.Details()[2])
	}
	if pf.Violations[0].Description != "Checkout with an empty cart" {
		t.Errorf("violation round trip mismatch: %+v", pf.Violations[0])
	}
}

func TestEveryDetailTypeRoundTrips(t *testing.T) {
	st := Internal().
		WithErrorInfo("SOME_REASON", "shop.test", nil).
		WithRetryInfo(time.Second).
		WithDebugInfo(false, "diag").
		WithQuotaFailure(QuotaViolation{Subject: "shop/api", Description: "over quota"}).
		WithPreconditionFailure(PreconditionViolation{Type: "logic", Subject: "shop/checkout", Description: "empty"}).
		WithBadRequest(FieldViolation{Field: "after", Description: "not an integer"}).
		WithRequestInfo("req-1", "cart=1").
		WithResourceInfo("cart", "cart(1)", "", "missing").
		WithHelp(Link{Description: "docs", URL: "https://example.com/errors"}).
		WithLocalizedMessage("en-US", "Internal error.")

	b, err := json.Marshal(st)
	if err != nil {
		t.Fatal(err)
	}
	var back Status
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatal(err)
	}
	if len(back.Details()) != 10 {
		t.Fatalf("details = %d, want 10", len(back.Details()))
	}
	// decoded details are values, in attachment order
	want := []Detail{
		ErrorInfo{}, RetryInfo{}, DebugInfo{}, QuotaFailure{}, PreconditionFailure{},
		BadRequest{}, RequestInfo{}, ResourceInfo{}, Help{}, LocalizedMessage{},
	}
	for i, d := range back.Details() {
		if fmt.Sprintf("%T", d) != fmt.Sprintf("%T", want[i]) {
			t.Errorf("details[%d] = %T, want %T", i, d, want[i])
		}
		if d.DetailType() != want[i].DetailType() {
			t.Errorf("details[%d].DetailType() = %q, want %q", i, d.DetailType(), want[i].DetailType())
		}
	}
}

func TestUnmarshalUnknownDetailType(t *testing.T) {
	b := []byte(`{"code":13,"message":"Internal error.","details":[{"@type":"Bogus"}]}`)
	var st Status
	if err := json.Unmarshal(b, &st); err == nil {
		t.Fatal("expected an error for an unknown detail type")
	}
}

func TestWithDebugInfoStackCapture(t *testing.T) {
	st := Internal().WithDebugInfo(true, "diag")
	d := st.Details()[0].(DebugInfo)
	if len(d.StackEntries) == 0 {
		t.Fatal("expected captured stack entries")
	}
	if !d.Sensitive() {
		t.Error("DebugInfo must be sensitive")
	}

	st = Internal().WithDebugInfo(false, "diag")
	d = st.Details()[0].(DebugInfo)
	if len(d.StackEntries) != 0 {
		t.Error("stack must not be captured when not requested")
	}
}

func TestErrorStringUsesDescription(t *testing.T) {
	err := NotFound("product(1)")
	want := "error: Some requested entity was not found, message: Resource 'product(1)' not found."
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
