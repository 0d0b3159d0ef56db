package middleware

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// GRPCLogger logs one entry per unary call, mirroring logger.RequestLogger.
func GRPCLogger(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	code := status.Code(err)
	level := zerolog.InfoLevel
	if code == codes.Internal || code == codes.Unknown {
		level = zerolog.ErrorLevel
	}

	log.WithLevel(level).
		Str("method", info.FullMethod).
		Str("code", code.String()).
		Dur("duration", time.Since(start)).
		Msg("gRPC call processed")

	return resp, err
}
