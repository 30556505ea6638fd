// Package errlog records failures that callers chose not to surface. Every
// entry goes to the structured logger; when a database is configured it is
// also persisted to the error_logs table so it can be reviewed later.
package errlog

import (
	"context"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/nyashahama/mandrill-mailer/internal/db"
)

// Entry is one recorded failure.
type Entry struct {
	Title   string // short category, e.g. "Mailchimp: API Error"
	Err     error
	Payload any // request context worth keeping; must be JSON-encodable
}

// Recorder is the interface the mailer uses to log swallowed errors.
// Record never fails: problems persisting an entry are logged and dropped.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// insertTimeout bounds the error_logs insert. The insert detaches from the
// caller's cancellation so a finished HTTP request still gets its entry.
const insertTimeout = 5 * time.Second

type recorder struct {
	q      db.Querier // nil → log only
	logger *slog.Logger
}

// New returns a Recorder that logs and persists entries.
func New(q db.Querier, logger *slog.Logger) Recorder {
	return &recorder{q: q, logger: logger}
}

// LogOnly returns a Recorder that only writes to logger.
func LogOnly(logger *slog.Logger) Recorder {
	return &recorder{logger: logger}
}

func (r *recorder) Record(ctx context.Context, e Entry) {
	message := ""
	if e.Err != nil {
		message = e.Err.Error()
	}

	r.logger.ErrorContext(ctx, e.Title,
		"error", message,
		"payload", e.Payload,
	)

	if r.q == nil {
		return
	}

	payload := pqtype.NullRawMessage{}
	if e.Payload != nil {
		raw, err := json.Marshal(e.Payload)
		if err != nil {
			r.logger.Warn("errlog: payload not encodable, storing without it", "error", err)
		} else {
			payload = pqtype.NullRawMessage{RawMessage: raw, Valid: true}
		}
	}

	insertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), insertTimeout)
	defer cancel()

	if _, err := r.q.InsertErrorLog(insertCtx, db.InsertErrorLogParams{
		ID:      uuid.New(),
		Title:   e.Title,
		Message: message,
		Payload: payload,
	}); err != nil {
		r.logger.Error("errlog: failed to persist entry", "title", e.Title, "error", err)
	}
}
