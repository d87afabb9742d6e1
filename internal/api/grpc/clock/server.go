package clock

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/geronimo/internal/domain/clock"
	"github.com/oshokin/geronimo/internal/logger"
	"github.com/oshokin/geronimo/internal/service/session"
)

// Service abstracts the session operations the transport layer depends on.
type Service interface {
	ID() string
	State(ctx context.Context) domain.State
	TapClock(ctx context.Context, p domain.Player) domain.State
	TogglePause(ctx context.Context) domain.State
	Reset(ctx context.Context) domain.State
	SetTime(ctx context.Context, p domain.Player, minutes, seconds int) (domain.State, error)
	Subscribe(ctx context.Context) <-chan session.Update
}

// Server implements the ClockService gRPC API.
type Server struct {
	// service provides the clock session.
	service Service
}

// NewServer wires the provided session into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// TapClock taps the face named in the request.
func (s *Server) TapClock(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "player is required")
	}

	p, err := domain.ParsePlayer(req.GetValue())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	return toProtoState(s.service.ID(), s.service.TapClock(ctx, p)), nil
}

// TogglePause pauses or resumes the clock.
func (s *Server) TogglePause(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toProtoState(s.service.ID(), s.service.TogglePause(ctx)), nil
}

// Reset restores the defaults; a running clock ignores it.
func (s *Server) Reset(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toProtoState(s.service.ID(), s.service.Reset(ctx)), nil
}

// SetTime sets a player's time from picker parts.
func (s *Server) SetTime(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	p, minutes, seconds, err := setTimeFromProto(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	state, err := s.service.SetTime(ctx, p, minutes, seconds)
	switch {
	case errors.Is(err, domain.ErrInvalidPickerTime):
		return nil, status.Error(codes.InvalidArgument, err.Error())
	case err != nil:
		return nil, status.Error(codes.Internal, "unable to set time")
	}

	return toProtoState(s.service.ID(), state), nil
}

// GetState returns the current snapshot.
func (s *Server) GetState(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	return toProtoState(s.service.ID(), s.service.State(ctx)), nil
}

// Watch sends the current snapshot, then every update until the client leaves.
func (s *Server) Watch(_ *emptypb.Empty, stream grpc.ServerStreamingServer[structpb.Struct]) error {
	ctx := stream.Context()
	updates := s.service.Subscribe(ctx)

	first := toProtoUpdate(session.Update{
		SessionID: s.service.ID(),
		State:     s.service.State(ctx),
		Cause:     CauseSnapshot,
	})
	if err := stream.Send(first); err != nil {
		return err
	}

	logger.DebugKV(ctx, "Watcher attached", "session_id", s.service.ID())

	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}

			if err := stream.Send(toProtoUpdate(u)); err != nil {
				return err
			}
		}
	}
}
