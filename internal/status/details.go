package status

import (
	"encoding/json"
	"fmt"
	"time"
)

// Detail is a typed record attached to a Status. The set mirrors
// google/rpc/error_details.proto so callers can parse failures uniformly.
type Detail interface {
	// DetailType is the "@type" discriminator used on the wire.
	DetailType() string
	// Sensitive details must be stripped before a detail list crosses a
	// public boundary.
	Sensitive() bool
}

// ErrorInfo identifies the reason for the error in a machine-parseable way.
type ErrorInfo struct {
	Reason   string            `json:"reason"`
	Domain   string            `json:"domain"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// RetryInfo tells the caller how long to wait before retrying.
type RetryInfo struct {
	RetryDelay time.Duration `json:"retry_delay"`
}

// DebugInfo carries local diagnostics. It is sensitive and never leaves the
// process through a public boundary.
type DebugInfo struct {
	StackEntries []string `json:"stack_entries,omitempty"`
	Detail       string   `json:"detail"`
}

type QuotaViolation struct {
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type QuotaFailure struct {
	Violations []QuotaViolation `json:"violations"`
}

type PreconditionViolation struct {
	Type        string `json:"type"`
	Subject     string `json:"subject"`
	Description string `json:"description"`
}

type PreconditionFailure struct {
	Violations []PreconditionViolation `json:"violations"`
}

type FieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

type BadRequest struct {
	FieldViolations []FieldViolation `json:"field_violations"`
}

type RequestInfo struct {
	RequestID   string `json:"request_id"`
	ServingData string `json:"serving_data"`
}

type ResourceInfo struct {
	ResourceType string `json:"resource_type"`
	ResourceName string `json:"resource_name"`
	Owner        string `json:"owner"`
	Description  string `json:"description"`
}

type Link struct {
	Description string `json:"description"`
	URL         string `json:"url"`
}

type Help struct {
	Links []Link `json:"links"`
}

type LocalizedMessage struct {
	Locale  string `json:"locale"`
	Message string `json:"message"`
}

func (ErrorInfo) DetailType() string           { return "ErrorInfo" }
func (RetryInfo) DetailType() string           { return "RetryInfo" }
func (DebugInfo) DetailType() string           { return "DebugInfo" }
func (QuotaFailure) DetailType() string        { return "QuotaFailure" }
func (PreconditionFailure) DetailType() string { return "PreconditionFailure" }
func (BadRequest) DetailType() string          { return "BadRequest" }
func (RequestInfo) DetailType() string         { return "RequestInfo" }
func (ResourceInfo) DetailType() string        { return "ResourceInfo" }
func (Help) DetailType() string                { return "Help" }
func (LocalizedMessage) DetailType() string    { return "LocalizedMessage" }

func (ErrorInfo) Sensitive() bool           { return false }
func (RetryInfo) Sensitive() bool           { return false }
func (DebugInfo) Sensitive() bool           { return true }
func (QuotaFailure) Sensitive() bool        { return false }
func (PreconditionFailure) Sensitive() bool { return false }
func (BadRequest) Sensitive() bool          { return false }
func (RequestInfo) Sensitive() bool         { return false }
func (ResourceInfo) Sensitive() bool        { return false }
func (Help) Sensitive() bool                { return false }
func (LocalizedMessage) Sensitive() bool    { return false }

const detailTypeKey = "@type"

func marshalDetail(d Detail) (json.RawMessage, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	fields[detailTypeKey] = json.RawMessage(fmt.Sprintf("%q", d.DetailType()))
	return json.Marshal(fields)
}

func unmarshalDetail(raw json.RawMessage) (Detail, error) {
	var head struct {
		Type string `json:"@type"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, err
	}
	switch head.Type {
	case "ErrorInfo":
		return decodeDetail[ErrorInfo](raw)
	case "RetryInfo":
		return decodeDetail[RetryInfo](raw)
	case "DebugInfo":
		return decodeDetail[DebugInfo](raw)
	case "QuotaFailure":
		return decodeDetail[QuotaFailure](raw)
	case "PreconditionFailure":
		return decodeDetail[PreconditionFailure](raw)
	case "BadRequest":
		return decodeDetail[BadRequest](raw)
	case "RequestInfo":
		return decodeDetail[RequestInfo](raw)
	case "ResourceInfo":
		return decodeDetail[ResourceInfo](raw)
	case "Help":
		return decodeDetail[Help](raw)
	case "LocalizedMessage":
		return decodeDetail[LocalizedMessage](raw)
	default:
		return nil, fmt.Errorf("unknown detail type %q", head.Type)
	}
}

// decodeDetail unmarshals into a concrete value so the detail list carries
// value types, never pointers.
func decodeDetail[T Detail](raw json.RawMessage) (Detail, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	return v, nil
}
