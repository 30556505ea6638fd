// Package rpc exposes the send operation over gRPC. There is no .proto
// compilation step: requests and responses are google.protobuf.Struct values
// whose keys match the HTTP JSON field names, and the service descriptor
// below is written in the shape protoc-gen-go-grpc would emit.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName = "mailer.v1.TransactionalEmail"

	SendEmailWithTemplateMethod = "/" + ServiceName + "/SendEmailWithTemplate"
)

// TransactionalEmailServer is the server API for the TransactionalEmail service.
type TransactionalEmailServer interface {
	SendEmailWithTemplate(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// Register attaches srv to a grpc.Server.
func Register(s grpc.ServiceRegistrar, srv TransactionalEmailServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func sendEmailWithTemplateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TransactionalEmailServer).SendEmailWithTemplate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: SendEmailWithTemplateMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TransactionalEmailServer).SendEmailWithTemplate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// ServiceDesc is the grpc.ServiceDesc for the TransactionalEmail service.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TransactionalEmailServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SendEmailWithTemplate",
			Handler:    sendEmailWithTemplateHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "mailer/v1/mailer.proto",
}

// Client calls the TransactionalEmail service over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) SendEmailWithTemplate(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SendEmailWithTemplateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
