// Package observe provides the OpenTelemetry metric instruments used across
// the service and the HTTP middleware that records them.
//
// Metrics are exported through a Prometheus bridge (see [InitProvider]) and
// scraped from the health server's /metrics endpoint. Tests should build
// their own [Metrics] with [NewMetrics] and a ManualReader-backed provider.
package observe

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// meterName is the instrumentation scope for every instrument here.
const meterName = "github.com/Pen-123/Pen-Morse-Code-Translator"

// Metrics holds all instruments. Safe for concurrent use.
type Metrics struct {
	// Translations counts Translate calls. Attributes: mode, transport.
	Translations metric.Int64Counter

	// TranslatedChars counts input characters accepted by Translate.
	TranslatedChars metric.Int64Counter

	// Exports counts Export calls. Attribute: transport.
	Exports metric.Int64Counter

	// ExportedBytes counts WAV bytes produced.
	ExportedBytes metric.Int64Counter

	// SynthesisDuration tracks render + WAV encode latency.
	SynthesisDuration metric.Float64Histogram

	// Rejected counts requests refused at the transport boundary.
	// Attributes: transport, reason.
	Rejected metric.Int64Counter

	// HTTPRequestDuration tracks HTTP handling time. Attributes: method, path, status.
	HTTPRequestDuration metric.Float64Histogram
}

var latencyBuckets = []float64{
	0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
}

// NewMetrics creates every instrument from mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Translations, err = m.Int64Counter("penmorse.translations",
		metric.WithDescription("Translate requests by mode and transport."),
	); err != nil {
		return nil, err
	}
	if met.TranslatedChars, err = m.Int64Counter("penmorse.translated.chars",
		metric.WithDescription("Input characters submitted for translation."),
	); err != nil {
		return nil, err
	}
	if met.Exports, err = m.Int64Counter("penmorse.exports",
		metric.WithDescription("WAV export requests by transport."),
	); err != nil {
		return nil, err
	}
	if met.ExportedBytes, err = m.Int64Counter("penmorse.exported.bytes",
		metric.WithDescription("Bytes of WAV audio produced."),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}
	if met.SynthesisDuration, err = m.Float64Histogram("penmorse.synthesis.duration",
		metric.WithDescription("Latency of tone rendering and WAV encoding."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.Rejected, err = m.Int64Counter("penmorse.rejected",
		metric.WithDescription("Requests rejected for missing or malformed input."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("penmorse.http.request.duration",
		metric.WithDescription("HTTP request processing time."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// Discard returns instruments that record nothing.
func Discard() *Metrics {
	m, err := NewMetrics(noop.NewMeterProvider())
	if err != nil {
		// The no-op provider never fails.
		panic(err)
	}
	return m
}
