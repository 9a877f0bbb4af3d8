// Package translate wires the Morse codec, the tone synthesizer and the WAV
// writer into the two operations every transport exposes: Translate and
// Export.
//
// The service is stateless; a single instance is shared by all transports.
package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/message"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/morse"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/observe"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/tone"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/wav"
)

// ErrUnknownMode is returned when a request names neither encode nor decode.
var ErrUnknownMode = errors.New("unknown translation mode")

// ErrPatternTooLong is returned when a pattern would render longer than the
// service's export limit.
var ErrPatternTooLong = errors.New("morse pattern too long to export")

// DefaultMaxExportDuration bounds a single export: about 5.3M samples.
const DefaultMaxExportDuration = 2 * time.Minute

// Audio is a rendered WAV file and its metadata.
type Audio struct {
	Bytes       []byte
	ContentType string
	Filename    string
	Duration    time.Duration
	Samples     int
}

// Service translates and exports Morse.
type Service struct {
	metrics   *observe.Metrics
	maxExport time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithMaxExportDuration caps the playback length Export will render.
// Non-positive values keep the default.
func WithMaxExportDuration(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.maxExport = d
		}
	}
}

// New creates a Service. A nil metrics records nothing.
func New(metrics *observe.Metrics, opts ...Option) *Service {
	if metrics == nil {
		metrics = observe.Discard()
	}
	s := &Service{metrics: metrics, maxExport: DefaultMaxExportDuration}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Translate encodes or decodes req.Data according to req.Mode.
func (s *Service) Translate(ctx context.Context, req *message.TranslateRequest) (*message.TranslateResult, error) {
	if req.ID == "" {
		req.ID = observe.RequestID(ctx)
	}
	transport := observe.Transport(ctx)
	logger := slog.With("request_id", req.ID, "transport", transport)

	result := &message.TranslateResult{
		RequestID: req.ID,
		Mode:      req.Mode,
	}

	switch req.Mode {
	case message.ModeEncode:
		result.Morse = morse.Encode(req.Data)
		result.Text = req.Data
		result.Result = result.Morse
	case message.ModeDecode:
		result.Text = morse.Decode(req.Data)
		result.Morse = req.Data
		result.Result = result.Text
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}

	attrs := metric.WithAttributes(
		attribute.String("mode", string(req.Mode)),
		attribute.String("transport", transport),
	)
	s.metrics.Translations.Add(ctx, 1, attrs)
	s.metrics.TranslatedChars.Add(ctx, int64(utf8.RuneCountInString(req.Data)), attrs)

	logger.Debug("translation complete",
		"mode", req.Mode,
		"input_length", len(req.Data),
		"result_length", len(result.Result))
	return result, nil
}

// Export renders a Morse pattern to a WAV file. Runes other than ".", "-"
// and " " are ignored, so any string is accepted as long as it renders within
// the export limit; longer patterns fail with ErrPatternTooLong before any
// samples are allocated.
func (s *Service) Export(ctx context.Context, pattern string) (*Audio, error) {
	start := time.Now()
	transport := observe.Transport(ctx)
	logger := slog.With("request_id", observe.RequestID(ctx), "transport", transport)

	if n, limit := tone.Len(pattern), tone.SampleCount(s.maxExport.Seconds()); n > limit {
		return nil, fmt.Errorf("%w: %d samples exceeds the %v limit", ErrPatternTooLong, n, s.maxExport)
	}

	samples := tone.Render(pattern)
	data, err := wav.Encode(samples)
	if err != nil {
		return nil, fmt.Errorf("encoding wav: %w", err)
	}

	attrs := metric.WithAttributes(attribute.String("transport", transport))
	s.metrics.Exports.Add(ctx, 1, attrs)
	s.metrics.ExportedBytes.Add(ctx, int64(len(data)), attrs)
	s.metrics.SynthesisDuration.Record(ctx, time.Since(start).Seconds(), attrs)

	audio := &Audio{
		Bytes:       data,
		ContentType: wav.ContentType,
		Filename:    wav.Filename,
		Duration:    tone.Duration(pattern),
		Samples:     len(samples),
	}
	logger.Info("export complete",
		"samples", audio.Samples,
		"bytes", len(data),
		"audio_duration", audio.Duration,
		"elapsed", time.Since(start))
	return audio, nil
}
