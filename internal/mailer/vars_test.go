package mailer_test

import (
	"testing"
	"time"

	"github.com/nyashahama/mandrill-mailer/internal/mailer"
)

func TestDocumentToVariables_WrapsScalarsUnderDoctype(t *testing.T) {
	posted := time.Date(2024, 3, 9, 14, 5, 7, 123456000, time.UTC)
	doc := &mailer.Document{
		DocType: "Sales Order",
		Fields: map[string]any{
			"name":             "SO-0001",
			"grand_total":      99.5,
			"transaction_date": posted,
			"items":            []map[string]any{{"item_code": "X"}},
			"taxes":            [2]int{1, 2},
			"meta":             map[string]string{"k": "v"},
			"remarks":          nil,
		},
	}

	vars := mailer.DocumentToVariables(doc, "")
	if len(vars) != 1 {
		t.Fatalf("expected 1 variable, got %d", len(vars))
	}
	if vars[0].Name != "sales_order" {
		t.Errorf("name: got %q", vars[0].Name)
	}

	content, ok := vars[0].Content.(map[string]any)
	if !ok {
		t.Fatalf("content should be a map, got %T", vars[0].Content)
	}
	for _, dropped := range []string{"items", "taxes", "meta", "remarks"} {
		if _, ok := content[dropped]; ok {
			t.Errorf("%s should be dropped", dropped)
		}
	}
	if content["name"] != "SO-0001" || content["grand_total"] != 99.5 {
		t.Errorf("scalars not kept: %+v", content)
	}
	if content["transaction_date"] != "2024-03-09 14:05:07.123456" {
		t.Errorf("date: got %v", content["transaction_date"])
	}
	if content["doctype"] != "Sales Order" {
		t.Errorf("doctype: got %v", content["doctype"])
	}
}

func TestDocumentToVariables_CustomKey(t *testing.T) {
	vars := mailer.DocumentToVariables(&mailer.Document{
		DocType: "Customer",
		Fields:  map[string]any{"customer_name": "Ada"},
	}, "buyer")
	if len(vars) != 1 || vars[0].Name != "buyer" {
		t.Fatalf("got %+v", vars)
	}
}

func TestDocumentToVariables_EmptyDocument(t *testing.T) {
	if got := mailer.DocumentToVariables(nil, ""); len(got) != 0 {
		t.Errorf("nil document: got %+v", got)
	}
	if got := mailer.DocumentToVariables(&mailer.Document{}, ""); len(got) != 0 {
		t.Errorf("empty document: got %+v", got)
	}
}

func TestDocumentToVariables_OutputValidates(t *testing.T) {
	vars := mailer.DocumentToVariables(&mailer.Document{
		DocType: "Delivery Note",
		Fields:  map[string]any{"name": "DN-1"},
	}, "")

	req := mailer.Request{
		Recipients: mailer.Recipients{{Email: "a@example.com"}},
		Template:   "delivery",
		Variables:  vars,
	}
	if err := mailer.Validate(req); err != nil {
		t.Fatalf("generated variables should validate: %v", err)
	}
}

func TestScrub(t *testing.T) {
	cases := map[string]string{
		"Sales Order":      "sales_order",
		"Purchase-Invoice": "purchase_invoice",
		"customer":         "customer",
	}
	for in, want := range cases {
		if got := mailer.Scrub(in); got != want {
			t.Errorf("Scrub(%q): got %q, want %q", in, got, want)
		}
	}
}
