package rpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/nyashahama/mandrill-mailer/internal/mailer"
	"github.com/nyashahama/mandrill-mailer/internal/mandrill"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// Service implements TransactionalEmailServer on top of a mailer.Sender.
type Service struct {
	mailer mailer.Sender
	logger *slog.Logger
}

func NewService(sender mailer.Sender, logger *slog.Logger) *Service {
	return &Service{mailer: sender, logger: logger}
}

// SendEmailWithTemplate decodes the struct into a mailer.Request, sends it
// and answers with {"message": [...]} or {"message": null} when a provider
// failure was swallowed.
func (s *Service) SendEmailWithTemplate(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req, err := decodeRequest(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	results, err := s.mailer.Send(ctx, req)
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}

	out, err := encodeResults(results)
	if err != nil {
		s.logger.ErrorContext(ctx, "rpc: encode response", "error", err)
		return nil, status.Error(codes.Internal, "internal error")
	}
	return out, nil
}

// toStatus maps dispatcher errors onto gRPC codes.
func (s *Service) toStatus(ctx context.Context, err error) error {
	var (
		ve *mailer.ValidationError
		ce *mailer.ConfigurationError
	)
	switch {
	case errors.As(err, &ve):
		return status.Error(codes.InvalidArgument, ve.Message)
	case errors.As(err, &ce):
		s.logger.ErrorContext(ctx, "rpc: api key not configured", "error", err)
		return status.Error(codes.FailedPrecondition, "Mailchimp API Key not specified")
	case errors.Is(err, mailer.ErrKeyLookup):
		s.logger.ErrorContext(ctx, "rpc: settings lookup", "error", err)
		return status.Error(codes.Internal, "internal error")
	default:
		s.logger.WarnContext(ctx, "rpc: provider error", "error", err)
		return status.Error(codes.Unavailable, err.Error())
	}
}

// ─── CODEC ────────────────────────────────────────────────────────────────────

// decodeRequest round-trips the struct through JSON so the same normalization
// as the HTTP surface applies (serialized recipients, numeric raise_exc).
func decodeRequest(in *structpb.Struct) (mailer.Request, error) {
	var req mailer.Request
	raw, err := json.Marshal(in.AsMap())
	if err != nil {
		return req, fmt.Errorf("rpc: marshal request: %w", err)
	}
	if err := json.Unmarshal(raw, &req); err != nil {
		var ve *mailer.ValidationError
		if errors.As(err, &ve) {
			return req, ve
		}
		return req, fmt.Errorf("rpc: decode request: %w", err)
	}
	return req, nil
}

func encodeResults(results []mandrill.SendResult) (*structpb.Struct, error) {
	if results == nil {
		return structpb.NewStruct(map[string]any{"message": nil})
	}
	raw, err := json.Marshal(results)
	if err != nil {
		return nil, err
	}
	var list []any
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return structpb.NewStruct(map[string]any{"message": list})
}

// ─── INTERCEPTORS ─────────────────────────────────────────────────────────────

// LoggingInterceptor logs each unary call with method, code and duration.
func LoggingInterceptor(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		logger.InfoContext(ctx, "grpc",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return resp, err
	}
}
