// Package settings resolves the Mandrill API key from application
// configuration storage.
package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nyashahama/mandrill-mailer/internal/db"
)

const (
	// DefaultDoctype is the settings record that holds the credential.
	DefaultDoctype = "Mailchimp Settings"

	// FieldTransactionalAPIKey and FieldAPIKey are the two field names the
	// credential has been stored under.
	FieldTransactionalAPIKey = "transactional_email_api_key"
	FieldAPIKey              = "api_key"
)

// ErrAPIKeyNotSet is returned when no source holds a non-empty API key.
var ErrAPIKeyNotSet = errors.New("settings: Mailchimp API Key not specified")

// Source looks up the API key. Implementations must be safe for concurrent use.
type Source interface {
	APIKey(ctx context.Context) (string, error)
}

// ─── DATABASE SOURCE ──────────────────────────────────────────────────────────

type dbSource struct {
	q       db.Querier
	doctype string
	field   string
}

// NewDBSource returns a Source reading doctype.field from the singles table.
func NewDBSource(q db.Querier, doctype, field string) Source {
	return &dbSource{q: q, doctype: doctype, field: field}
}

func (s *dbSource) APIKey(ctx context.Context) (string, error) {
	value, err := s.q.GetSingleValue(ctx, db.GetSingleValueParams{
		Doctype: s.doctype,
		Field:   s.field,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrAPIKeyNotSet
	}
	if err != nil {
		return "", fmt.Errorf("settings: get %s.%s: %w", s.doctype, s.field, err)
	}

	value = strings.TrimSpace(value)
	if value == "" {
		return "", ErrAPIKeyNotSet
	}
	return value, nil
}

// ─── STATIC SOURCE ────────────────────────────────────────────────────────────

type staticSource string

// Static returns a Source that always yields key. An empty key yields
// ErrAPIKeyNotSet.
func Static(key string) Source {
	return staticSource(strings.TrimSpace(key))
}

func (s staticSource) APIKey(context.Context) (string, error) {
	if s == "" {
		return "", ErrAPIKeyNotSet
	}
	return string(s), nil
}

// ─── CHAIN ────────────────────────────────────────────────────────────────────

type chain []Source

// Chain consults sources in order and returns the first key found. Any error
// other than ErrAPIKeyNotSet stops the lookup and is returned.
func Chain(sources ...Source) Source {
	return chain(sources)
}

func (c chain) APIKey(ctx context.Context) (string, error) {
	for _, src := range c {
		if src == nil {
			continue
		}
		key, err := src.APIKey(ctx)
		if err == nil {
			return key, nil
		}
		if !errors.Is(err, ErrAPIKeyNotSet) {
			return "", err
		}
	}
	return "", ErrAPIKeyNotSet
}
