package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Payload is the body the backend returns on success and on failure.
type Payload struct {
	Token         string              `json:"token,omitempty"`
	ID            ID                  `json:"id,omitempty"`
	FieldErrors   map[string]Messages `json:"fieldErrors,omitempty"`
	Reason        string              `json:"reason,omitempty"`
	GenericErrors []string            `json:"genericErrors,omitempty"`
}

// Field returns messages reported for name, nil when absent.
func (p *Payload) Field(name string) Messages {
	if p == nil || p.FieldErrors == nil {
		return nil
	}
	return p.FieldErrors[name]
}

// HasFieldErrors reports whether the fieldErrors object was sent (even empty).
func (p *Payload) HasFieldErrors() bool {
	return p != nil && p.FieldErrors != nil
}

// HasGenericErrors reports whether the genericErrors list was sent (even empty).
func (p *Payload) HasGenericErrors() bool {
	return p != nil && p.GenericErrors != nil
}

// LastGenericError returns the most recent generic error, "" when none.
func (p *Payload) LastGenericError() string {
	if p == nil {
		return ""
	}
	return Messages(p.GenericErrors).Last()
}

// Messages are validation messages for one field. The backend sends either a
// single string or a list; both decode into Messages.
type Messages []string

func (m *Messages) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*m = nil
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		*m = Messages{single}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*m = list
	return nil
}

// Last returns the last message, "" when empty.
func (m Messages) Last() string {
	if len(m) == 0 {
		return ""
	}
	return m[len(m)-1]
}

// Join concatenates all messages with sep.
func (m Messages) Join(sep string) string {
	return strings.Join(m, sep)
}

// ID is a user identifier; the backend may encode it as a string or a number.
type ID string

func (i *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*i = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = ID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("invalid id %s: %w", data, err)
		}
		*i = ID(n.String())
	}
	return nil
}

func (i ID) String() string {
	return string(i)
}

// Response is a successful backend reply.
type Response struct {
	Status int
	Data   *Payload
}

// Error is a failed backend reply.
type Error struct {
	Status int
	Data   *Payload
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("token sale api: status %d", e.Status)
	if e.Data == nil {
		return msg
	}
	if e.Data.Reason != "" {
		return msg + ": " + e.Data.Reason
	}
	if last := e.Data.LastGenericError(); last != "" {
		return msg + ": " + last
	}
	return msg
}

// PayloadOf extracts the structured payload carried by err. It never returns
// nil: transport or decode failures, or a reply without a body, yield an
// empty payload.
func PayloadOf(err error) *Payload {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Data != nil {
		return apiErr.Data
	}
	return &Payload{}
}
