package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "uid.v1.IDService"

const (
	methodGenerateID       = "/" + serviceName + "/GenerateID"
	methodGenerateBatchIDs = "/" + serviceName + "/GenerateBatchIDs"
	methodValidateID       = "/" + serviceName + "/ValidateID"
	methodInspectID        = "/" + serviceName + "/InspectID"
)

// IDServiceServer is the server API for the ID service.
type IDServiceServer interface {
	GenerateID(context.Context, *GenerateIDRequest) (*GenerateIDResponse, error)
	GenerateBatchIDs(context.Context, *GenerateBatchIDsRequest) (*GenerateBatchIDsResponse, error)
	ValidateID(context.Context, *ValidateIDRequest) (*ValidateIDResponse, error)
	InspectID(context.Context, *InspectIDRequest) (*InspectIDResponse, error)
}

// ServiceDesc describes the ID service for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*IDServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GenerateID", Handler: unary(methodGenerateID, IDServiceServer.GenerateID)},
		{MethodName: "GenerateBatchIDs", Handler: unary(methodGenerateBatchIDs, IDServiceServer.GenerateBatchIDs)},
		{MethodName: "ValidateID", Handler: unary(methodValidateID, IDServiceServer.ValidateID)},
		{MethodName: "InspectID", Handler: unary(methodInspectID, IDServiceServer.InspectID)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "uid/v1/id_service",
}

// RegisterIDServiceServer registers srv with s.
func RegisterIDServiceServer(s grpc.ServiceRegistrar, srv IDServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func unary[Req, Resp any](fullMethod string, call func(IDServiceServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(IDServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(IDServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}
