package grpc

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/message"
)

// Client calls a remote Translator service.
type Client struct {
	conn *grpc.ClientConn
}

// Dial creates a client for target. Without options the connection is
// plaintext.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	if len(opts) == 0 {
		opts = []grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}
	}
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", target, err)
	}
	return &Client{conn: conn}, nil
}

// Conn returns the underlying connection, e.g. for the health client.
func (c *Client) Conn() *grpc.ClientConn { return c.conn }

// Translate calls Translator/Translate.
func (c *Client) Translate(ctx context.Context, req *message.TranslateRequest, opts ...grpc.CallOption) (*message.TranslateResult, error) {
	out := new(message.TranslateResult)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.conn.Invoke(ctx, translateMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Export calls Translator/Export.
func (c *Client) Export(ctx context.Context, req *message.ExportRequest, opts ...grpc.CallOption) (*message.ExportResult, error) {
	out := new(message.ExportResult)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
	if err := c.conn.Invoke(ctx, exportMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// Close tears down the connection.
func (c *Client) Close() error { return c.conn.Close() }
