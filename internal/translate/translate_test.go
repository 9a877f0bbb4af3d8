package translate

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/message"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/observe"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/tone"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/wav"
)

func TestTranslate_Encode(t *testing.T) {
	svc := New(nil)
	res, err := svc.Translate(context.Background(), &message.TranslateRequest{
		Mode: message.ModeEncode,
		Data: "sos",
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if res.Result != "... --- ..." || res.Morse != res.Result {
		t.Errorf("result = %q, morse = %q, want %q", res.Result, res.Morse, "... --- ...")
	}
	if res.Text != "sos" {
		t.Errorf("text = %q, want the input unchanged", res.Text)
	}
	if res.RequestID == "" {
		t.Error("request id not assigned")
	}
}

func TestTranslate_Decode(t *testing.T) {
	svc := New(nil)
	res, err := svc.Translate(context.Background(), &message.TranslateRequest{
		ID:   "req-1",
		Mode: message.ModeDecode,
		Data: "... --- ...",
	})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if res.Result != "SOS" || res.Text != "SOS" {
		t.Errorf("result = %q, text = %q, want SOS", res.Result, res.Text)
	}
	if res.Morse != "... --- ..." {
		t.Errorf("morse = %q, want the input unchanged", res.Morse)
	}
	if res.RequestID != "req-1" {
		t.Errorf("request id = %q, want req-1", res.RequestID)
	}
}

func TestTranslate_UnknownMode(t *testing.T) {
	svc := New(nil)
	_, err := svc.Translate(context.Background(), &message.TranslateRequest{Mode: "shout", Data: "x"})
	if !errors.Is(err, ErrUnknownMode) {
		t.Errorf("err = %v, want ErrUnknownMode", err)
	}
}

func TestExport(t *testing.T) {
	svc := New(nil)
	audio, err := svc.Export(context.Background(), ".")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if audio.ContentType != "audio/wav" || audio.Filename != "morse.wav" {
		t.Errorf("content type = %q, filename = %q", audio.ContentType, audio.Filename)
	}
	wantSamples := int(math.Round(tone.SampleRate * tone.Unit * 2))
	if audio.Samples != wantSamples {
		t.Errorf("samples = %d, want %d", audio.Samples, wantSamples)
	}
	if len(audio.Bytes) != wav.HeaderSize+2*wantSamples {
		t.Errorf("bytes = %d, want %d", len(audio.Bytes), wav.HeaderSize+2*wantSamples)
	}
	if audio.Duration != 200*time.Millisecond {
		t.Errorf("duration = %v, want 200ms", audio.Duration)
	}
}

func TestExport_EmptyPattern(t *testing.T) {
	audio, err := New(nil).Export(context.Background(), "")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if len(audio.Bytes) != wav.HeaderSize || audio.Samples != 0 {
		t.Errorf("bytes = %d, samples = %d, want header only", len(audio.Bytes), audio.Samples)
	}
}

func TestService_RecordsMetrics(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	svc := New(m)
	ctx := observe.WithTransport(context.Background(), "test")
	if _, err := svc.Translate(ctx, &message.TranslateRequest{Mode: message.ModeEncode, Data: "ab"}); err != nil {
		t.Fatalf("Translate: %v", err)
	}
	audio, err := svc.Export(ctx, ".-")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, met := range sm.Metrics {
			if s, ok := met.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range s.DataPoints {
					sums[met.Name] += dp.Value
				}
			}
		}
	}

	want := map[string]int64{
		"penmorse.translations":     1,
		"penmorse.translated.chars": 2,
		"penmorse.exports":          1,
		"penmorse.exported.bytes":   int64(len(audio.Bytes)),
	}
	for name, v := range want {
		if sums[name] != v {
			t.Errorf("%s = %d, want %d", name, sums[name], v)
		}
	}
}

func TestExport_LetterSpaceIsSilence(t *testing.T) {
	svc := New(nil)
	spaced, err := svc.Export(context.Background(), ". .")
	if err != nil {
		t.Fatal(err)
	}
	joined, err := svc.Export(context.Background(), "..")
	if err != nil {
		t.Fatal(err)
	}
	if spaced.Duration != 800*time.Millisecond || joined.Duration != 400*time.Millisecond {
		t.Errorf("durations = %v, %v, want 800ms, 400ms", spaced.Duration, joined.Duration)
	}
}

func TestExport_TooLong(t *testing.T) {
	svc := New(nil, WithMaxExportDuration(time.Second))

	// Five dots fill exactly one second.
	if _, err := svc.Export(context.Background(), "....."); err != nil {
		t.Fatalf("Export at the limit: %v", err)
	}

	tests := []string{"......", strings.Repeat("-", 1<<20)}
	for _, p := range tests {
		audio, err := svc.Export(context.Background(), p)
		if !errors.Is(err, ErrPatternTooLong) {
			t.Errorf("Export(%d runes) err = %v, want ErrPatternTooLong", len(p), err)
		}
		if audio != nil {
			t.Errorf("Export(%d runes) returned audio", len(p))
		}
	}
}

func TestNew_DefaultExportLimit(t *testing.T) {
	svc := New(nil, WithMaxExportDuration(0))
	if svc.maxExport != DefaultMaxExportDuration {
		t.Errorf("maxExport = %v, want %v", svc.maxExport, DefaultMaxExportDuration)
	}
}
