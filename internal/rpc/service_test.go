package rpc_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net"
	"testing"

	"github.com/nyashahama/mandrill-mailer/internal/mailer"
	"github.com/nyashahama/mandrill-mailer/internal/mandrill"
	"github.com/nyashahama/mandrill-mailer/internal/rpc"
	"github.com/nyashahama/mandrill-mailer/internal/settings"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

// ─── STUBS ────────────────────────────────────────────────────────────────────

type stubSender struct {
	requests []mailer.Request
	results  []mandrill.SendResult
	err      error
}

func (s *stubSender) Send(_ context.Context, req mailer.Request) ([]mandrill.SendResult, error) {
	s.requests = append(s.requests, req)
	return s.results, s.err
}

// ─── HELPERS ─────────────────────────────────────────────────────────────────

// newTestClient serves the service on an in-memory listener and returns a
// client connected to it.
func newTestClient(t *testing.T, sender mailer.Sender) *rpc.Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(rpc.LoggingInterceptor(logger)))
	rpc.Register(srv, rpc.NewService(sender, logger))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("grpc.NewClient: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return rpc.NewClient(conn)
}

func validStruct(t *testing.T) *structpb.Struct {
	t.Helper()
	in, err := structpb.NewStruct(map[string]any{
		"recipients": []any{map[string]any{"email": "a@example.com"}},
		"from_email": "noreply@example.com",
		"template":   "welcome",
		"variables":  []any{map[string]any{"name": "first_name", "content": "Ada"}},
		"raise_exc":  1,
	})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	return in
}

// ─── SendEmailWithTemplate ───────────────────────────────────────────────────

func TestSendEmailWithTemplate_ReturnsResults(t *testing.T) {
	sender := &stubSender{
		results: []mandrill.SendResult{{Email: "a@example.com", Status: "sent", ID: "abc123"}},
	}
	client := newTestClient(t, sender)

	out, err := client.SendEmailWithTemplate(context.Background(), validStruct(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	list := out.GetFields()["message"].GetListValue().GetValues()
	if len(list) != 1 {
		t.Fatalf("expected 1 result, got %d", len(list))
	}
	if id := list[0].GetStructValue().GetFields()["_id"].GetStringValue(); id != "abc123" {
		t.Errorf("_id: got %q", id)
	}

	if len(sender.requests) != 1 {
		t.Fatalf("expected 1 send, got %d", len(sender.requests))
	}
	req := sender.requests[0]
	if req.Template != "welcome" || len(req.Recipients) != 1 {
		t.Errorf("request not decoded: %+v", req)
	}
	if !req.RaiseOnError {
		t.Error("numeric raise_exc should decode to true")
	}
}

func TestSendEmailWithTemplate_SwallowedFailureIsNull(t *testing.T) {
	client := newTestClient(t, &stubSender{})

	out, err := client.SendEmailWithTemplate(context.Background(), validStruct(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := out.GetFields()["message"].GetKind().(*structpb.Value_NullValue); !ok {
		t.Errorf("expected null message, got %v", out.GetFields()["message"])
	}
}

func TestSendEmailWithTemplate_ErrorCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code codes.Code
	}{
		{"validation", &mailer.ValidationError{Field: "recipients", Message: "Recipients must be defined"}, codes.InvalidArgument},
		{"configuration", &mailer.ConfigurationError{Err: settings.ErrAPIKeyNotSet}, codes.FailedPrecondition},
		{"settings lookup", errors.Join(mailer.ErrKeyLookup, errors.New("db down")), codes.Internal},
		{"provider", &mandrill.APIError{StatusCode: 500, Status: "error", Code: -1, Name: "Invalid_Key", Message: "Invalid API key"}, codes.Unavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, &stubSender{err: tc.err})

			_, err := client.SendEmailWithTemplate(context.Background(), validStruct(t))
			if got := status.Code(err); got != tc.code {
				t.Fatalf("code: got %v, want %v (%v)", got, tc.code, err)
			}
		})
	}
}

func TestSendEmailWithTemplate_MalformedSerializedRecipients(t *testing.T) {
	sender := &stubSender{}
	client := newTestClient(t, sender)

	in, err := structpb.NewStruct(map[string]any{
		"recipients": `[{"email":`,
		"template":   "welcome",
	})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}

	_, err = client.SendEmailWithTemplate(context.Background(), in)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
	if len(sender.requests) != 0 {
		t.Error("sender should not be called")
	}
}
