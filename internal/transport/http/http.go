// Package http implements the HTTP/WebSocket transport for pen-morse.
//
// It serves the translator web page and its form posts, a JSON API for
// programmatic clients, a WebSocket endpoint for interactive translation, and
// Swagger UI for the API.
package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/Pen-123/Pen-Morse-Code-Translator/docs"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/config"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/message"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/morse"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/observe"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/translate"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/transport"
)

//go:embed page.html
var pageHTML string

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

// Transport implements transport.Transport over HTTP and WebSocket.
type Transport struct {
	port         int
	maxBodyBytes int64
	metrics      *observe.Metrics
	server       *http.Server
}

// New creates a new HTTP transport from config.
func New(cfg config.HTTPConfig, metrics *observe.Metrics) *Transport {
	if metrics == nil {
		metrics = observe.Discard()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}
	return &Transport{port: cfg.Port, maxBodyBytes: maxBody, metrics: metrics}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Routes returns the full handler tree for svc, wrapped in the request
// logging and metrics middleware.
func (t *Transport) Routes(svc transport.Service) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		t.renderPage(w, http.StatusOK, pageData{Mode: string(message.ModeEncode)})
	})
	mux.HandleFunc("POST /{$}", func(w http.ResponseWriter, r *http.Request) {
		t.handleForm(w, r, svc)
	})
	mux.HandleFunc("POST /export", func(w http.ResponseWriter, r *http.Request) {
		t.handleExportForm(w, r, svc)
	})

	mux.HandleFunc("POST /api/translate", func(w http.ResponseWriter, r *http.Request) {
		t.handleTranslate(w, r, svc)
	})
	mux.HandleFunc("POST /api/export", func(w http.ResponseWriter, r *http.Request) {
		t.handleExport(w, r, svc)
	})

	mux.HandleFunc("GET /ws", func(w http.ResponseWriter, r *http.Request) {
		t.handleWebSocket(w, r, svc)
	})

	// Swagger UI for the generated OpenAPI docs.
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return observe.Middleware(t.metrics)(mux)
}

// Bind opens the configured TCP port.
func (t *Transport) Bind() (net.Listener, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return nil, fmt.Errorf("http listen: %w", err)
	}
	return lis, nil
}

// Serve runs the HTTP server on lis until ctx is cancelled.
func (t *Transport) Serve(ctx context.Context, lis net.Listener, svc transport.Service) error {
	t.server = &http.Server{
		Handler:           t.Routes(svc),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return observe.WithTransport(context.Background(), t.Name())
		},
	}

	slog.Info("http transport listening", "addr", lis.Addr().String())

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = t.server.Shutdown(shutdownCtx)
	}()

	if err := t.server.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http serve: %w", err)
	}
	return nil
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	if t.server != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return t.server.Shutdown(ctx)
	}
	return nil
}

type pageData struct {
	Text   string
	Mode   string
	Result string
	Morse  string
	Pulses []string
}

func (t *Transport) renderPage(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.Execute(w, data); err != nil {
		slog.Error("rendering page", "error", err)
	}
}

// pulses lists the CSS classes for the dot/dash animation row.
func pulses(pattern string) []string {
	var out []string
	for _, s := range morse.Symbols(pattern) {
		switch s {
		case morse.Dot:
			out = append(out, "dot")
		case morse.Dash:
			out = append(out, "dash")
		}
	}
	return out
}

// parseForm parses url-encoded or multipart bodies up to maxBodyBytes.
func (t *Transport) parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, t.maxBodyBytes)
	if err := r.ParseMultipartForm(t.maxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

// requireField returns the named form value, or false when the field was not
// submitted at all. An empty value is accepted.
func requireField(r *http.Request, name string) (string, bool) {
	vals, ok := r.PostForm[name]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

// handleForm processes the translator page's form post.
func (t *Transport) handleForm(w http.ResponseWriter, r *http.Request, svc transport.Service) {
	if err := t.parseForm(w, r); err != nil {
		t.reject(w, r, "bad_form", "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}
	rawMode, ok := requireField(r, "mode")
	if !ok {
		t.reject(w, r, "missing_field", "missing form field: mode", http.StatusBadRequest)
		return
	}
	data, ok := requireField(r, "data")
	if !ok {
		t.reject(w, r, "missing_field", "missing form field: data", http.StatusBadRequest)
		return
	}
	mode, err := message.ParseMode(rawMode)
	if err != nil {
		t.reject(w, r, "bad_mode", err.Error(), http.StatusBadRequest)
		return
	}

	res, err := svc.Translate(r.Context(), &message.TranslateRequest{
		ID:        observe.RequestID(r.Context()),
		Mode:      mode,
		Data:      data,
		Timestamp: time.Now(),
	})
	if err != nil {
		slog.Error("translate failed", "error", err)
		http.Error(w, "translate error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	t.renderPage(w, http.StatusOK, pageData{
		Text:   res.Text,
		Mode:   string(res.Mode),
		Result: res.Result,
		Morse:  res.Morse,
		Pulses: pulses(res.Morse),
	})
}

// handleExportForm serves the page's "Export Morse as WAV" button.
func (t *Transport) handleExportForm(w http.ResponseWriter, r *http.Request, svc transport.Service) {
	if err := t.parseForm(w, r); err != nil {
		t.reject(w, r, "bad_form", "invalid form: "+err.Error(), http.StatusBadRequest)
		return
	}
	pattern, ok := requireField(r, "morse")
	if !ok {
		t.reject(w, r, "missing_field", "missing form field: morse", http.StatusBadRequest)
		return
	}
	t.writeAudio(w, r, svc, pattern)
}

func (t *Transport) writeAudio(w http.ResponseWriter, r *http.Request, svc transport.Service, pattern string) {
	audio, err := svc.Export(r.Context(), pattern)
	if errors.Is(err, translate.ErrPatternTooLong) {
		t.reject(w, r, "pattern_too_long", err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		slog.Error("export failed", "error", err)
		http.Error(w, "export error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", audio.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": audio.Filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(audio.Bytes)))
	w.Header().Set("X-Audio-Duration-Ms", strconv.FormatInt(audio.Duration.Milliseconds(), 10))
	_, _ = w.Write(audio.Bytes)
}

// reject answers a boundary error and counts it.
func (t *Transport) reject(w http.ResponseWriter, r *http.Request, reason, msg string, code int) {
	t.countRejected(r.Context(), reason)
	slog.Debug("request rejected", "path", r.URL.Path, "reason", reason, "detail", msg)
	http.Error(w, msg, code)
}

func (t *Transport) countRejected(ctx context.Context, reason string) {
	t.metrics.Rejected.Add(ctx, 1, metric.WithAttributes(
		attribute.String("transport", observe.Transport(ctx)),
		attribute.String("reason", reason),
	))
}
