// Package mandrill defines the interface for Mailchimp Transactional (Mandrill)
// API calls and provides an HTTP implementation of it.
package mandrill

import "context"

// ─── API SHAPES ───────────────────────────────────────────────────────────────

// Recipient is one entry of message.to.
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Type  string `json:"type,omitempty"` // "to" | "cc" | "bcc"; Mandrill defaults to "to"
}

// MergeVar is a name/value pair substituted into template placeholders.
// Content is sent as-is, so handlebars templates can receive nested objects.
type MergeVar struct {
	Name    string `json:"name"`
	Content any    `json:"content"`
}

// TemplateContent fills an mc:edit region of a classic Mandrill template.
type TemplateContent struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Message is the message object of a send-template call.
type Message struct {
	To              []Recipient `json:"to"`
	Subject         string      `json:"subject,omitempty"`
	FromEmail       string      `json:"from_email,omitempty"`
	FromName        string      `json:"from_name,omitempty"`
	MergeLanguage   string      `json:"merge_language,omitempty"`
	GlobalMergeVars []MergeVar  `json:"global_merge_vars,omitempty"`
	BCCAddress      string      `json:"bcc_address,omitempty"`
}

// SendTemplateRequest is the body of POST /messages/send-template.json.
// TemplateContent must be non-nil so it encodes as [] and never as null.
type SendTemplateRequest struct {
	Key             string            `json:"key"`
	TemplateName    string            `json:"template_name"`
	TemplateContent []TemplateContent `json:"template_content"`
	Message         Message           `json:"message"`
}

// SendResult is the per-recipient outcome Mandrill returns for a send.
type SendResult struct {
	Email        string `json:"email"`
	Status       string `json:"status"` // sent | queued | scheduled | rejected | invalid
	RejectReason string `json:"reject_reason,omitempty"`
	QueuedReason string `json:"queued_reason,omitempty"`
	ID           string `json:"_id"`
}

// ─── CLIENT INTERFACE ─────────────────────────────────────────────────────────

// Client is the interface the mailer and CLI use for all Mandrill calls.
// Tests inject a stub that records requests without hitting the network.
type Client interface {
	// SendTemplate sends a message rendered from a stored template. A non-nil
	// error is either an *APIError (Mandrill rejected the call) or a wrapped
	// transport/decode error.
	SendTemplate(ctx context.Context, req SendTemplateRequest) ([]SendResult, error)

	// Ping validates an API key. Returns an *APIError with Name "Invalid_Key"
	// when Mandrill does not recognise it.
	Ping(ctx context.Context, key string) error
}
