package handler

import (
	"context"
	"errors"

	"github.com/MikhailRaia/shorturls/internal/proto"
	"github.com/MikhailRaia/shorturls/internal/service"
	"github.com/MikhailRaia/shorturls/internal/storage"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ShortenerGRPCServer implements proto.ShortenerServiceServer over URLService.
type ShortenerGRPCServer struct {
	urlService URLService
}

// NewShortenerGRPCServer creates the gRPC service implementation.
func NewShortenerGRPCServer(urlService URLService) *ShortenerGRPCServer {
	return &ShortenerGRPCServer{
		urlService: urlService,
	}
}

// Shorten stores a mapping for the request URL.
func (s *ShortenerGRPCServer) Shorten(ctx context.Context, req *proto.ShortenRequest) (*proto.ShortenResponse, error) {
	m, err := s.urlService.Shorten(ctx, req.LongUrl, req.Customize)
	if err != nil {
		return nil, grpcError(err, "failed to shorten URL")
	}

	return &proto.ShortenResponse{
		Id:       m.ID,
		ShortUrl: s.urlService.ShortURL(m.ShortURL),
		Code:     m.ShortURL,
	}, nil
}

// Expand returns the long URL behind a code.
func (s *ShortenerGRPCServer) Expand(ctx context.Context, req *proto.ExpandRequest) (*proto.ExpandResponse, error) {
	if req.Code == "" {
		return nil, status.Error(codes.InvalidArgument, "code is required")
	}

	longURL, err := s.urlService.Resolve(ctx, req.Code)
	if err != nil {
		return nil, grpcError(err, "failed to expand URL")
	}

	return &proto.ExpandResponse{LongUrl: longURL}, nil
}

// List returns all mappings.
func (s *ShortenerGRPCServer) List(ctx context.Context, _ *emptypb.Empty) (*proto.ListResponse, error) {
	urls, err := s.urlService.List(ctx)
	if err != nil {
		return nil, grpcError(err, "failed to list URLs")
	}

	resp := &proto.ListResponse{
		Urls: make([]*proto.URLData, 0, len(urls)),
	}

	for _, u := range urls {
		resp.Urls = append(resp.Urls, &proto.URLData{
			Id:       u.ID,
			ShortUrl: u.ShortURL,
			LongUrl:  u.LongURL,
		})
	}

	return resp, nil
}

// Delete removes a mapping by id.
func (s *ShortenerGRPCServer) Delete(ctx context.Context, req *proto.DeleteRequest) (*emptypb.Empty, error) {
	if err := s.urlService.Delete(ctx, req.Id); err != nil {
		return nil, grpcError(err, "failed to delete URL")
	}

	return &emptypb.Empty{}, nil
}

func grpcError(err error, msg string) error {
	switch {
	case errors.Is(err, service.ErrEmptyURL):
		return status.Error(codes.InvalidArgument, "long_url is required")
	case errors.Is(err, service.ErrURLExists):
		return status.Error(codes.AlreadyExists, msgURLExists)
	case errors.Is(err, service.ErrDuplicateCode):
		return status.Error(codes.AlreadyExists, msgCodeExists)
	case errors.Is(err, storage.ErrNotFound):
		return status.Error(codes.NotFound, msgNotFound)
	case errors.Is(err, service.ErrAllocationExhausted):
		return status.Error(codes.ResourceExhausted, err.Error())
	}

	log.Error().Err(err).Msg(msg)
	return status.Errorf(codes.Internal, "%s: %v", msg, err)
}
