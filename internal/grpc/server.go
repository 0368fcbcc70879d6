package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/weiawesome/wes-io-live/uid-service/internal/generator"
	"github.com/weiawesome/wes-io-live/uid-service/internal/service"
	pkglog "github.com/weiawesome/wes-io-live/uid-service/pkg/log"
	"github.com/weiawesome/wes-io-live/uid-service/pkg/uid"
)

type idServer struct {
	idService service.IDService
}

func (s *idServer) GenerateID(ctx context.Context, req *GenerateIDRequest) (*GenerateIDResponse, error) {
	id, err := s.idService.Generate(ctx, req.Profile)
	if err != nil {
		return nil, toStatus(err)
	}
	return &GenerateIDResponse{ID: id}, nil
}

func (s *idServer) GenerateBatchIDs(ctx context.Context, req *GenerateBatchIDsRequest) (*GenerateBatchIDsResponse, error) {
	ids, err := s.idService.GenerateBatch(ctx, req.Profile, int(req.Count))
	if err != nil {
		return nil, toStatus(err)
	}
	return &GenerateBatchIDsResponse{IDs: ids}, nil
}

func (s *idServer) ValidateID(ctx context.Context, req *ValidateIDRequest) (*ValidateIDResponse, error) {
	err := s.idService.Validate(ctx, req.Profile, req.ID)
	switch {
	case err == nil:
		return &ValidateIDResponse{Valid: true}, nil
	case errors.Is(err, generator.ErrInvalidID):
		return &ValidateIDResponse{Valid: false, Reason: err.Error()}, nil
	default:
		return nil, toStatus(err)
	}
}

func (s *idServer) InspectID(ctx context.Context, req *InspectIDRequest) (*InspectIDResponse, error) {
	info, err := s.idService.Inspect(ctx, req.Profile, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &InspectIDResponse{Inspection: info}, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, service.ErrUnknownProfile):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrInvalidBatchCount),
		errors.Is(err, service.ErrSizeTooLarge),
		errors.Is(err, generator.ErrInvalidID),
		uid.IsConfigError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrCollision):
		return status.Error(codes.AlreadyExists, err.Error())
	case errors.Is(err, uid.ErrEntropyUnavailable):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// NewServer builds a gRPC server exposing idService.
func NewServer(idService service.IDService, logger zerolog.Logger) *grpc.Server {
	s := grpc.NewServer(
		grpc.ForceServerCodec(jsonCodec{}),
		grpc.UnaryInterceptor(pkglog.UnaryServerInterceptor(logger)),
	)
	RegisterIDServiceServer(s, &idServer{idService: idService})
	return s
}

// StartGRPCServer creates and starts the gRPC server in a background goroutine.
func StartGRPCServer(addr string, idService service.IDService, logger zerolog.Logger) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	s := NewServer(idService, logger)

	go func() {
		logger.Info().Str("addr", addr).Msg("grpc server listening")
		if err := s.Serve(lis); err != nil {
			logger.Error().Err(err).Msg("grpc server error")
		}
	}()

	return s, nil
}
