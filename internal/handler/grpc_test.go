package handler

import (
	"context"
	"net"
	"testing"

	"github.com/MikhailRaia/shorturls/internal/proto"
	"github.com/MikhailRaia/shorturls/internal/service"
	"github.com/MikhailRaia/shorturls/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
)

func newGRPCClient(t *testing.T) proto.ShortenerServiceClient {
	t.Helper()

	store := memory.NewStorage()
	svc := service.NewURLService(store, service.NewAllocator(store, 5, 10), "http://localhost:8080")

	lis := bufconn.Listen(1024 * 1024)
	srv := grpc.NewServer()
	proto.RegisterShortenerServiceServer(srv, NewShortenerGRPCServer(svc))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return proto.NewShortenerServiceClient(conn)
}

func TestGRPC_ShortenExpand(t *testing.T) {
	client := newGRPCClient(t)
	ctx := context.Background()

	resp, err := client.Shorten(ctx, &proto.ShortenRequest{LongUrl: "https://example.com"})
	require.NoError(t, err)
	assert.Len(t, resp.Code, 5)
	assert.Equal(t, "http://localhost:8080/"+resp.Code, resp.ShortUrl)

	expanded, err := client.Expand(ctx, &proto.ExpandRequest{Code: resp.Code})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", expanded.LongUrl)
}

func TestGRPC_StatusCodes(t *testing.T) {
	client := newGRPCClient(t)
	ctx := context.Background()

	_, err := client.Shorten(ctx, &proto.ShortenRequest{LongUrl: "https://a.com", Customize: "abc12"})
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
		want codes.Code
	}{
		{
			name: "empty url",
			call: func() error {
				_, err := client.Shorten(ctx, &proto.ShortenRequest{})
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "duplicate code",
			call: func() error {
				_, err := client.Shorten(ctx, &proto.ShortenRequest{LongUrl: "https://b.com", Customize: "abc12"})
				return err
			},
			want: codes.AlreadyExists,
		},
		{
			name: "duplicate url",
			call: func() error {
				_, err := client.Shorten(ctx, &proto.ShortenRequest{LongUrl: "https://a.com"})
				return err
			},
			want: codes.AlreadyExists,
		},
		{
			name: "unknown code",
			call: func() error {
				_, err := client.Expand(ctx, &proto.ExpandRequest{Code: "zzzzz"})
				return err
			},
			want: codes.NotFound,
		},
		{
			name: "missing code",
			call: func() error {
				_, err := client.Expand(ctx, &proto.ExpandRequest{})
				return err
			},
			want: codes.InvalidArgument,
		},
		{
			name: "unknown id",
			call: func() error {
				_, err := client.Delete(ctx, &proto.DeleteRequest{Id: 999})
				return err
			},
			want: codes.NotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, tt.want, status.Code(err))
		})
	}
}

func TestGRPC_ListDelete(t *testing.T) {
	client := newGRPCClient(t)
	ctx := context.Background()

	first, err := client.Shorten(ctx, &proto.ShortenRequest{LongUrl: "https://a.com", Customize: "aaaaa"})
	require.NoError(t, err)
	_, err = client.Shorten(ctx, &proto.ShortenRequest{LongUrl: "https://b.com", Customize: "bbbbb"})
	require.NoError(t, err)

	list, err := client.List(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, list.Urls, 2)
	assert.Equal(t, "aaaaa", list.Urls[0].ShortUrl)
	assert.Equal(t, "https://b.com", list.Urls[1].LongUrl)

	_, err = client.Delete(ctx, &proto.DeleteRequest{Id: first.Id})
	require.NoError(t, err)

	list, err = client.List(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, list.Urls, 1)
	assert.Equal(t, "bbbbb", list.Urls[0].ShortUrl)
}
