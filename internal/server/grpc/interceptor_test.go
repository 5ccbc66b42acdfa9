package grpc

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/tuktask/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type entry struct {
	msg  string
	args []any
}

type recLogger struct {
	entries *[]entry
}

func newRecLogger() recLogger { return recLogger{entries: &[]entry{}} }

func (r recLogger) Debug(context.Context, string, ...any) {}
func (r recLogger) Info(_ context.Context, msg string, args ...any) {
	*r.entries = append(*r.entries, entry{msg, args})
}
func (r recLogger) Warn(_ context.Context, msg string, args ...any) {
	*r.entries = append(*r.entries, entry{msg, args})
}
func (r recLogger) Error(context.Context, string, ...any) {}
func (r recLogger) With(...any) logging.Logger            { return r }

func argValue(args []any, key string) any {
	for i := 0; i+1 < len(args); i += 2 {
		if args[i] == key {
			return args[i+1]
		}
	}
	return nil
}

func TestLoggingInterceptor_PassesThrough(t *testing.T) {
	log := newRecLogger()
	s := NewGRPCServer("", log, nil, 0)

	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}
	resp, err := s.loggingInterceptor(context.Background(), "req", info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	require.Len(t, *log.entries, 1)
	e := (*log.entries)[0]
	assert.Equal(t, "gRPC request", e.msg)
	assert.Equal(t, "/grpc.health.v1.Health/Check", argValue(e.args, "method"))
	assert.Equal(t, "OK", argValue(e.args, "code"))
}

func TestLoggingInterceptor_RecordsErrorCode(t *testing.T) {
	log := newRecLogger()
	s := NewGRPCServer("", log, nil, 0)

	info := &grpc.UnaryServerInfo{FullMethod: "/x.Y/Z"}
	_, err := s.loggingInterceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.NotFound, "nope")
	})

	assert.Equal(t, codes.NotFound, status.Code(err))
	assert.Equal(t, "NotFound", argValue((*log.entries)[0].args, "code"))
}
