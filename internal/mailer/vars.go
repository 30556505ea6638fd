package mailer

import (
	"reflect"
	"strings"
	"time"
)

// DateTimeFormat is how date and time fields are rendered for templates.
const DateTimeFormat = "2006-01-02 15:04:05.000000"

// Document is a generic record: a type name plus its field values.
type Document struct {
	DocType string
	Fields  map[string]any
}

// DocumentToVariables wraps a record's scalar fields in a single merge
// variable named key, or the scrubbed doctype when key is empty
// ("Sales Order" → "sales_order").
//
// Nil fields and list/array/map fields are dropped; time.Time values become
// DateTimeFormat strings. The content always carries a "doctype" entry.
func DocumentToVariables(doc *Document, key string) []Variable {
	if doc == nil || (doc.DocType == "" && len(doc.Fields) == 0) {
		return []Variable{}
	}

	content := make(map[string]any, len(doc.Fields)+1)
	for k, v := range doc.Fields {
		if value, ok := scalar(v); ok {
			content[k] = value
		}
	}
	if _, ok := content["doctype"]; !ok && doc.DocType != "" {
		content["doctype"] = doc.DocType
	}
	if len(content) == 0 {
		return []Variable{}
	}

	name := key
	if name == "" {
		name = Scrub(doc.DocType)
	}
	return []Variable{{Name: name, Content: content}}
}

// Scrub turns a display name into a snake_case identifier.
func Scrub(s string) string {
	return strings.ToLower(strings.NewReplacer(" ", "_", "-", "_").Replace(s))
}

// scalar reports whether v should be kept, and the value to keep.
func scalar(v any) (any, bool) {
	switch t := v.(type) {
	case nil:
		return nil, false
	case time.Time:
		return t.Format(DateTimeFormat), true
	case *time.Time:
		if t == nil {
			return nil, false
		}
		return t.Format(DateTimeFormat), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return nil, false
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, false
		}
	}
	return v, true
}
