package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nyashahama/mandrill-mailer/internal/errlog"
	"github.com/nyashahama/mandrill-mailer/internal/mandrill"
	"github.com/nyashahama/mandrill-mailer/internal/settings"
)

// MergeLanguage is the template language every send declares.
const MergeLanguage = "handlebars"

// Sender is the interface the api, rpc and CLI layers use. *Dispatcher is the
// concrete implementation; tests inject a stub.
type Sender interface {
	Send(ctx context.Context, req Request) ([]mandrill.SendResult, error)
}

// Dispatcher holds only immutable dependencies and is safe for concurrent use.
type Dispatcher struct {
	client   mandrill.Client
	settings settings.Source
	errors   errlog.Recorder
	logger   *slog.Logger
}

// New constructs a Dispatcher.
func New(client mandrill.Client, src settings.Source, rec errlog.Recorder, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		client:   client,
		settings: src,
		errors:   rec,
		logger:   logger,
	}
}

// Send validates req, resolves the API key and performs one send-template
// call.
//
// Validation and configuration failures are always returned. A provider
// failure is returned unchanged when req.RaiseOnError is set; otherwise it is
// recorded and Send returns (nil, nil).
func (d *Dispatcher) Send(ctx context.Context, req Request) ([]mandrill.SendResult, error) {
	if err := Validate(req); err != nil {
		return nil, err
	}

	key, err := d.settings.APIKey(ctx)
	if errors.Is(err, settings.ErrAPIKeyNotSet) {
		return nil, &ConfigurationError{Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyLookup, err)
	}

	log := d.logger.With("template", req.Template, "recipients", len(req.Recipients))
	log.Debug("mailer: sending template")

	results, err := d.client.SendTemplate(ctx, BuildPayload(key, req))
	if err != nil {
		if req.RaiseOnError {
			return nil, err
		}
		d.errors.Record(ctx, errlog.Entry{
			Title:   errorTitle(err),
			Err:     err,
			Payload: summarize(req),
		})
		return nil, nil
	}

	log.Info("mailer: template sent", "results", statusCounts(results))
	return results, nil
}

// BuildPayload maps a validated request onto the Mandrill send-template body.
// template_content is always an empty list; it only exists for templates that
// still use mc:edit regions.
func BuildPayload(key string, req Request) mandrill.SendTemplateRequest {
	to := make([]mandrill.Recipient, len(req.Recipients))
	for i, r := range req.Recipients {
		to[i] = mandrill.Recipient{Email: r.Email, Name: r.Name, Type: r.Type}
	}

	var vars []mandrill.MergeVar
	if len(req.Variables) > 0 {
		vars = make([]mandrill.MergeVar, len(req.Variables))
		for i, v := range req.Variables {
			vars[i] = mandrill.MergeVar{Name: v.Name, Content: v.Content}
		}
	}

	return mandrill.SendTemplateRequest{
		Key:             key,
		TemplateName:    req.Template,
		TemplateContent: []mandrill.TemplateContent{},
		Message: mandrill.Message{
			To:              to,
			Subject:         req.Subject,
			FromEmail:       req.FromEmail,
			MergeLanguage:   MergeLanguage,
			GlobalMergeVars: vars,
			BCCAddress:      req.BCCAddress,
		},
	}
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

func errorTitle(err error) string {
	var apiErr *mandrill.APIError
	if errors.As(err, &apiErr) {
		return TitleAPIError
	}
	return TitleError
}

// sendSummary is what gets stored with a swallowed failure. The API key and
// variable contents are left out.
type sendSummary struct {
	Template   string   `json:"template"`
	Subject    string   `json:"subject,omitempty"`
	FromEmail  string   `json:"from_email,omitempty"`
	Recipients []string `json:"recipients"`
	Variables  []string `json:"variables,omitempty"`
}

func summarize(req Request) sendSummary {
	s := sendSummary{
		Template:   req.Template,
		Subject:    req.Subject,
		FromEmail:  req.FromEmail,
		Recipients: make([]string, len(req.Recipients)),
	}
	for i, r := range req.Recipients {
		s.Recipients[i] = r.Email
	}
	for _, v := range req.Variables {
		s.Variables = append(s.Variables, v.Name)
	}
	return s
}

func statusCounts(results []mandrill.SendResult) map[string]int {
	counts := make(map[string]int, len(results))
	for _, r := range results {
		counts[r.Status]++
	}
	return counts
}
