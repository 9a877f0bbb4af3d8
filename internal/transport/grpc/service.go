package grpc

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/message"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/translate"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/transport"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "penmorse.v1.Translator"

const (
	translateMethod = "/" + ServiceName + "/Translate"
	exportMethod    = "/" + ServiceName + "/Export"
)

// TranslatorServer is the server API for the Translator service.
type TranslatorServer interface {
	Translate(context.Context, *message.TranslateRequest) (*message.TranslateResult, error)
	Export(context.Context, *message.ExportRequest) (*message.ExportResult, error)
}

// serviceDesc is written by hand in the shape protoc-gen-go-grpc emits.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*TranslatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Translate", Handler: translateHandler},
		{MethodName: "Export", Handler: exportHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "penmorse/v1/translator.proto",
}

func translateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(message.TranslateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TranslatorServer).Translate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: translateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TranslatorServer).Translate(ctx, req.(*message.TranslateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func exportHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(message.ExportRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(TranslatorServer).Export(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: exportMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(TranslatorServer).Export(ctx, req.(*message.ExportRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// translatorServer adapts a transport.Service to TranslatorServer.
type translatorServer struct {
	svc    transport.Service
	reject func(ctx context.Context, reason string)
}

func (s *translatorServer) Translate(ctx context.Context, req *message.TranslateRequest) (*message.TranslateResult, error) {
	mode, err := message.ParseMode(string(req.Mode))
	if err != nil {
		s.reject(ctx, "bad_mode")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	req.Mode = mode
	if req.Timestamp.IsZero() {
		req.Timestamp = time.Now()
	}

	res, err := s.svc.Translate(ctx, req)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "translate: %v", err)
	}
	return res, nil
}

func (s *translatorServer) Export(ctx context.Context, req *message.ExportRequest) (*message.ExportResult, error) {
	audio, err := s.svc.Export(ctx, req.Morse)
	if errors.Is(err, translate.ErrPatternTooLong) {
		s.reject(ctx, "pattern_too_long")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err != nil {
		return nil, status.Errorf(codes.Internal, "export: %v", err)
	}

	res := &message.ExportResult{
		RequestID:   req.ID,
		ContentType: audio.ContentType,
		Filename:    audio.Filename,
		DurationMS:  audio.Duration.Milliseconds(),
	}
	res.SetAudioBytes(audio.Bytes)
	return res, nil
}
