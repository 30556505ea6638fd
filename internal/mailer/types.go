// Package mailer sends templated transactional email through Mandrill. It
// normalizes and validates a send request, resolves the API key from settings
// storage, and dispatches a single send-template call.
package mailer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ─── REQUEST TYPES ────────────────────────────────────────────────────────────

// Recipient is one addressee. Name and Type are optional and passed through.
type Recipient struct {
	Email string `json:"email" validate:"required"`
	Name  string `json:"name,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Variable is a merge variable. Content may be any JSON-encodable value but
// must not be nil.
type Variable struct {
	Name    string `json:"name" validate:"required"`
	Content any    `json:"content"`
}

// Request is everything needed for one templated send.
type Request struct {
	Recipients Recipients `json:"recipients" validate:"required,min=1,dive"`
	Subject    string     `json:"subject,omitempty"`
	FromEmail  string     `json:"from_email"`
	Template   string     `json:"template" validate:"required"`
	Variables  Variables  `json:"variables,omitempty" validate:"dive"`
	BCCAddress string     `json:"bcc_address,omitempty"`

	// RaiseOnError selects the error policy for provider failures: false logs
	// and swallows them, true returns them to the caller unchanged.
	RaiseOnError Flag `json:"raise_exc,omitempty"`
}

// ─── NORMALIZATION ────────────────────────────────────────────────────────────

// Recipients decodes from a JSON array or from a JSON string holding a
// serialized array, which is how form-encoded callers send it.
type Recipients []Recipient

func (r *Recipients) UnmarshalJSON(data []byte) error {
	if s, ok := jsonString(data); ok {
		parsed, err := ParseRecipients(s)
		if err != nil {
			return err
		}
		*r = parsed
		return nil
	}
	var list []Recipient
	if err := json.Unmarshal(data, &list); err != nil {
		return invalidf("recipients", "recipients must be a list of {\"email\": ...} objects: %v", err)
	}
	*r = list
	return nil
}

// Variables decodes like Recipients.
type Variables []Variable

func (v *Variables) UnmarshalJSON(data []byte) error {
	if s, ok := jsonString(data); ok {
		parsed, err := ParseVariables(s)
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	}
	var list []Variable
	if err := json.Unmarshal(data, &list); err != nil {
		return invalidf("variables", "variables must be a list of {\"name\", \"content\"} objects: %v", err)
	}
	*v = list
	return nil
}

// ParseRecipients parses serialized recipients text. Blank text yields an
// empty list, which validation then rejects.
func ParseRecipients(text string) (Recipients, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	var list []Recipient
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, invalidf("recipients", "recipients is not valid JSON: %v", err)
	}
	return list, nil
}

// ParseVariables parses serialized variables text. Blank text yields no
// variables.
func ParseVariables(text string) (Variables, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	var list []Variable
	if err := json.Unmarshal([]byte(text), &list); err != nil {
		return nil, invalidf("variables", "variables is not valid JSON: %v", err)
	}
	return list, nil
}

// jsonString reports whether data is a JSON string and returns its value.
func jsonString(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return s, true
}

// ─── FLAG ─────────────────────────────────────────────────────────────────────

// Flag is a bool that also decodes from 0/1 and from "true"/"false"/"1"/"0"
// strings, matching what form and RPC callers send.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if string(data) == "null" {
		*f = false
		return nil
	}
	if s, ok := jsonString(data); ok {
		return f.parse(s)
	}
	return f.parse(string(data))
}

// ParseFlag parses form values. Blank means false.
func ParseFlag(s string) (Flag, error) {
	var f Flag
	err := f.parse(s)
	return f, err
}

func (f *Flag) parse(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		*f = false
		return nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return invalidf("raise_exc", "raise_exc must be a boolean, got %q", s)
	}
	*f = Flag(b)
	return nil
}

func invalidf(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
