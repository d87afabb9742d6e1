package clock

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Fully-qualified method names of the clock service.
const (
	ServiceName = "geronimo.v1.ClockService"

	TapClockMethod    = "/" + ServiceName + "/TapClock"
	TogglePauseMethod = "/" + ServiceName + "/TogglePause"
	ResetMethod       = "/" + ServiceName + "/Reset"
	SetTimeMethod     = "/" + ServiceName + "/SetTime"
	GetStateMethod    = "/" + ServiceName + "/GetState"
	WatchMethod       = "/" + ServiceName + "/Watch"
)

// ClockServiceServer is the server API of the clock service.
type ClockServiceServer interface {
	TapClock(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	TogglePause(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Reset(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	SetTime(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetState(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	Watch(req *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error
}

// RegisterClockServiceServer registers srv on s.
func RegisterClockServiceServer(s grpc.ServiceRegistrar, srv ClockServiceServer) {
	s.RegisterService(&serviceDesc, srv)
}

//nolint:gochecknoglobals // grpc requires a descriptor value.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ClockServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "TapClock",
			Handler:    unaryHandler(TapClockMethod, ClockServiceServer.TapClock),
		},
		{
			MethodName: "TogglePause",
			Handler:    unaryHandler(TogglePauseMethod, ClockServiceServer.TogglePause),
		},
		{
			MethodName: "Reset",
			Handler:    unaryHandler(ResetMethod, ClockServiceServer.Reset),
		},
		{
			MethodName: "SetTime",
			Handler:    unaryHandler(SetTimeMethod, ClockServiceServer.SetTime),
		},
		{
			MethodName: "GetState",
			Handler:    unaryHandler(GetStateMethod, ClockServiceServer.GetState),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       watchHandler,
			ServerStreams: true,
		},
	},
	Metadata: "geronimo/v1/clock.proto",
}

// unaryHandler adapts a typed server method to grpc's untyped method handler.
func unaryHandler[Req any, PReq interface {
	*Req
}](
	fullMethod string,
	call func(ClockServiceServer, context.Context, PReq) (*structpb.Struct, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := PReq(new(Req))
		if err := dec(in); err != nil {
			return nil, err
		}

		server, _ := srv.(ClockServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		handler := func(ctx context.Context, req any) (any, error) {
			typed, _ := req.(PReq)

			return call(server, ctx, typed)
		}

		return interceptor(ctx, in, info, handler)
	}
}

// watchHandler adapts the server-streaming Watch method.
func watchHandler(srv any, stream grpc.ServerStream) error {
	in := new(emptypb.Empty)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}

	server, _ := srv.(ClockServiceServer)

	return server.Watch(in, &grpc.GenericServerStream[emptypb.Empty, structpb.Struct]{ServerStream: stream})
}

// ClockServiceClient is the typed client of the clock service.
type ClockServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewClockServiceClient wraps a connection.
func NewClockServiceClient(cc grpc.ClientConnInterface) *ClockServiceClient {
	return &ClockServiceClient{cc: cc}
}

// TapClock taps the face of a player.
func (c *ClockServiceClient) TapClock(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, TapClockMethod, in, opts...)
}

// TogglePause pauses or resumes the clock.
func (c *ClockServiceClient) TogglePause(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, TogglePauseMethod, in, opts...)
}

// Reset restores the defaults.
func (c *ClockServiceClient) Reset(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ResetMethod, in, opts...)
}

// SetTime sets a player's remaining time.
func (c *ClockServiceClient) SetTime(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, SetTimeMethod, in, opts...)
}

// GetState returns the current snapshot.
func (c *ClockServiceClient) GetState(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, GetStateMethod, in, opts...)
}

// Watch opens the update stream.
func (c *ClockServiceClient) Watch(
	ctx context.Context,
	in *emptypb.Empty,
	opts ...grpc.CallOption,
) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &serviceDesc.Streams[0], WatchMethod, opts...)
	if err != nil {
		return nil, err
	}

	x := &grpc.GenericClientStream[emptypb.Empty, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}

	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}

	return x, nil
}

func (c *ClockServiceClient) invoke(ctx context.Context, method string, in any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
