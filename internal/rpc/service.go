// Package rpc exposes the engine as the gRPC service hoops.v1.Engine. Messages are
// google.protobuf.Struct so the service needs no generated stubs.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "hoops.v1.Engine"

// EngineServer is the server API for hoops.v1.Engine.
type EngineServer interface {
	GetState(context.Context, *structpb.Struct) (*structpb.Struct, error)
	OpenPack(context.Context, *structpb.Struct) (*structpb.Struct, error)
	PlaceWager(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SpinWheel(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClaimQuest(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClaimSet(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SellCard(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryMethod func(EngineServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unary(name string, call unaryMethod) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(EngineServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(EngineServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc is the grpc.ServiceDesc for hoops.v1.Engine.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EngineServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetState", EngineServer.GetState),
		unary("OpenPack", EngineServer.OpenPack),
		unary("PlaceWager", EngineServer.PlaceWager),
		unary("SpinWheel", EngineServer.SpinWheel),
		unary("ClaimQuest", EngineServer.ClaimQuest),
		unary("ClaimSet", EngineServer.ClaimSet),
		unary("SellCard", EngineServer.SellCard),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "hoops/v1/engine.proto",
}

func RegisterEngineServer(s grpc.ServiceRegistrar, srv EngineServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// Client calls hoops.v1.Engine over an existing connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Call invokes method with a request built from fields.
func (c *Client) Call(ctx context.Context, method string, fields map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
