// Package grpc implements the gRPC transport for pen-morse.
//
// It exposes the penmorse.v1.Translator service (unary Translate and Export)
// alongside the standard grpc.health.v1.Health service. Translator messages
// use a JSON codec, so clients must call with content-subtype "json"; the
// package's Client does this for you.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/config"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/observe"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/transport"
)

// requestIDKey is the metadata key carrying the request ID both ways.
const requestIDKey = "x-request-id"

// Transport implements transport.Transport over gRPC.
type Transport struct {
	port    int
	metrics *observe.Metrics
	server  *grpc.Server
	health  *health.Server
}

// New creates a new gRPC transport from config.
func New(cfg config.GRPCConfig, metrics *observe.Metrics) *Transport {
	if metrics == nil {
		metrics = observe.Discard()
	}
	return &Transport{port: cfg.Port, metrics: metrics}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "grpc" }

// Bind opens the configured TCP port.
func (t *Transport) Bind() (net.Listener, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return nil, fmt.Errorf("grpc listen: %w", err)
	}
	return lis, nil
}

// Serve runs the gRPC server on lis until ctx is cancelled.
func (t *Transport) Serve(ctx context.Context, lis net.Listener, svc transport.Service) error {
	t.server = grpc.NewServer(grpc.ChainUnaryInterceptor(t.unaryInterceptor))
	t.server.RegisterService(&serviceDesc, &translatorServer{svc: svc, reject: t.countRejected})

	t.health = health.NewServer()
	healthpb.RegisterHealthServer(t.server, t.health)
	t.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	slog.Info("grpc transport listening", "addr", lis.Addr().String())

	go func() {
		<-ctx.Done()
		slog.Info("grpc transport shutting down")
		t.health.Shutdown()
		t.server.GracefulStop()
	}()

	// GracefulStop may win the race against Serve when ctx is already done.
	if err := t.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Close gracefully stops the gRPC server.
func (t *Transport) Close() error {
	if t.health != nil {
		t.health.Shutdown()
	}
	if t.server != nil {
		t.server.GracefulStop()
	}
	return nil
}

// unaryInterceptor tags the context with the request ID and transport, echoes
// the ID back in the response header and logs each call.
func (t *Transport) unaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	start := time.Now()

	var id string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get(requestIDKey); len(vals) > 0 {
			id = vals[0]
		}
	}
	if id == "" {
		id = observe.RequestID(ctx)
	}
	ctx = observe.WithRequestID(ctx, id)
	ctx = observe.WithTransport(ctx, t.Name())
	_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDKey, id))

	resp, err := handler(ctx, req)

	slog.LogAttrs(ctx, slog.LevelInfo, "rpc completed",
		slog.String("request_id", id),
		slog.String("method", info.FullMethod),
		slog.String("code", status.Code(err).String()),
		slog.Duration("duration", time.Since(start)),
	)
	return resp, err
}

func (t *Transport) countRejected(ctx context.Context, reason string) {
	t.metrics.Rejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("transport", observe.Transport(ctx)),
		attribute.String("reason", reason),
	))
}
