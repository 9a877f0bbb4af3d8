// Package transport defines the interface for pluggable request transports.
//
// Each transport (HTTP/WebSocket, gRPC) implements this interface and serves
// the same translate service. The service doesn't care how requests arrive.
package transport

import (
	"context"
	"net"

	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/message"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/translate"
)

// Service is the core a transport exposes; *translate.Service implements it.
type Service interface {
	Translate(ctx context.Context, req *message.TranslateRequest) (*message.TranslateResult, error)
	Export(ctx context.Context, pattern string) (*translate.Audio, error)
}

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "http", "grpc").
	Name() string

	// Bind opens the transport's listening socket without serving on it.
	Bind() (net.Listener, error)

	// Serve accepts requests on lis and serves them from svc.
	// It blocks until the context is cancelled.
	Serve(ctx context.Context, lis net.Listener, svc Service) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
