package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/nyashahama/mandrill-mailer/internal/db"
)

// ErrNoValues is returned by SaveSettings when there is nothing to write.
var ErrNoValues = errors.New("store: no settings values given")

// SaveSettings upserts every field of a settings record in one transaction,
// so a record is never left half-written. Fields are written in name order
// and the resulting rows are returned in the same order.
func (s *Store) SaveSettings(ctx context.Context, doctype string, values map[string]string) ([]db.Single, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}

	fields := make([]string, 0, len(values))
	for f := range values {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	saved := make([]db.Single, 0, len(fields))
	err := s.withTx(ctx, func(ctx context.Context, q db.Querier) error {
		for _, f := range fields {
			row, err := q.UpsertSingleValue(ctx, db.UpsertSingleValueParams{
				Doctype: doctype,
				Field:   f,
				Value:   values[f],
			})
			if err != nil {
				return fmt.Errorf("SaveSettings: upsert %s.%s: %w", doctype, f, err)
			}
			saved = append(saved, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}
