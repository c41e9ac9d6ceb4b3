package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Bodies are google.protobuf.Struct so that the service needs no generated
// message types; the field names are documented on each method.
const (
	ServiceName = "certextract.v1.ExtractionService"

	extractMethod    = "/" + ServiceName + "/Extract"
	ingestFileMethod = "/" + ServiceName + "/IngestFile"
	getJobMethod     = "/" + ServiceName + "/GetJob"
)

// ExtractionServer is the server API for certextract.v1.ExtractionService.
type ExtractionServer interface {
	// Extract runs the engine on {text, template, summary}.
	Extract(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// IngestFile stores {path} and extracts it with {template}, or queues it
	// when {async} is true.
	IngestFile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	// GetJob returns the extract job {job_id}.
	GetJob(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(ExtractionServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryHandler(fullMethod string, call unaryCall) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ExtractionServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ExtractionServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ExtractionServiceDesc is the grpc.ServiceDesc for ExtractionService.
var ExtractionServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ExtractionServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Extract", Handler: unaryHandler(extractMethod, ExtractionServer.Extract)},
		{MethodName: "IngestFile", Handler: unaryHandler(ingestFileMethod, ExtractionServer.IngestFile)},
		{MethodName: "GetJob", Handler: unaryHandler(getJobMethod, ExtractionServer.GetJob)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "certextract/v1/extraction.proto",
}

func RegisterExtractionServer(s grpc.ServiceRegistrar, srv ExtractionServer) {
	s.RegisterService(&ExtractionServiceDesc, srv)
}

// ExtractionClient is the client API for certextract.v1.ExtractionService.
type ExtractionClient struct {
	cc grpc.ClientConnInterface
}

func NewExtractionClient(cc grpc.ClientConnInterface) *ExtractionClient {
	return &ExtractionClient{cc: cc}
}

func (c *ExtractionClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ExtractionClient) Extract(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, extractMethod, in, opts...)
}

func (c *ExtractionClient) IngestFile(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ingestFileMethod, in, opts...)
}

func (c *ExtractionClient) GetJob(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, getJobMethod, in, opts...)
}
