package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/message"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/observe"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/transport"
)

// handleTranslate processes a POST /api/translate request.
//
// @Summary     Translate text to Morse or Morse to text
// @Description Encoding drops characters outside A-Z, 0-9 and space. Decoding drops unknown tokens.
// @Tags        translate
// @Accept      json
// @Produce     json
// @Param       request  body      message.TranslateRequest  true  "Mode and data"
// @Success     200      {object}  message.TranslateResult
// @Failure     400      {object}  message.TranslateResult   "Invalid JSON or unknown mode"
// @Router      /api/translate [post]
func (t *Transport) handleTranslate(w http.ResponseWriter, r *http.Request, svc transport.Service) {
	var req message.TranslateRequest
	if err := t.decodeJSON(w, r, &req); err != nil {
		t.rejectJSON(w, r, "bad_json", &message.TranslateResult{Error: "invalid json: " + err.Error()})
		return
	}
	mode, err := message.ParseMode(string(req.Mode))
	if err != nil {
		t.rejectJSON(w, r, "bad_mode", &message.TranslateResult{Error: err.Error()})
		return
	}
	req.Mode = mode
	if req.ID == "" {
		req.ID = observe.RequestID(r.Context())
	}
	req.Timestamp = time.Now()

	res, err := svc.Translate(r.Context(), &req)
	if err != nil {
		slog.Error("translate failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, &message.TranslateResult{RequestID: req.ID, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleExport processes a POST /api/export request.
//
// @Summary     Render Morse as a WAV file
// @Description Dots and dashes are rendered as an 800 Hz tone at 44.1 kHz, mono, 16-bit PCM; the space between letters is three units of silence. Patterns longer than the export limit are rejected.
// @Tags        export
// @Accept      json
// @Produce     audio/wav
// @Param       request  body      message.ExportRequest  true  "Morse pattern"
// @Success     200      {file}    binary                 "morse.wav"
// @Failure     400      {string}  string                 "Invalid JSON or pattern too long"
// @Router      /api/export [post]
func (t *Transport) handleExport(w http.ResponseWriter, r *http.Request, svc transport.Service) {
	var req message.ExportRequest
	if err := t.decodeJSON(w, r, &req); err != nil {
		t.reject(w, r, "bad_json", "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	t.writeAudio(w, r, svc, req.Morse)
}

// handleWebSocket serves GET /ws. Every text frame must hold a
// TranslateRequest; each gets exactly one TranslateResult frame back. Bad
// frames are answered with Error set and the connection stays open.
func (t *Transport) handleWebSocket(w http.ResponseWriter, r *http.Request, svc transport.Service) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()
	conn.SetReadLimit(t.maxBodyBytes)

	ctx := observe.WithTransport(r.Context(), "websocket")
	logger := slog.With("request_id", observe.RequestID(ctx))
	logger.Debug("websocket connected", "remote", r.RemoteAddr)

	for {
		typ, data, err := conn.Read(ctx)
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				logger.Debug("websocket closed by peer")
			default:
				if ctx.Err() == nil {
					logger.Warn("websocket read failed", "error", err)
				}
			}
			return
		}

		res := t.translateFrame(ctx, svc, typ, data)
		if err := wsjson.Write(ctx, conn, res); err != nil {
			logger.Warn("websocket write failed", "error", err)
			return
		}
	}
}

func (t *Transport) translateFrame(ctx context.Context, svc transport.Service, typ websocket.MessageType, data []byte) *message.TranslateResult {
	if typ != websocket.MessageText {
		t.countRejected(ctx, "binary_frame")
		return &message.TranslateResult{Error: "expected a text frame"}
	}
	var req message.TranslateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		t.countRejected(ctx, "bad_json")
		return &message.TranslateResult{Error: "invalid json: " + err.Error()}
	}
	mode, err := message.ParseMode(string(req.Mode))
	if err != nil {
		t.countRejected(ctx, "bad_mode")
		return &message.TranslateResult{RequestID: req.ID, Error: err.Error()}
	}
	req.Mode = mode
	req.Timestamp = time.Now()

	res, err := svc.Translate(ctx, &req)
	if err != nil {
		return &message.TranslateResult{RequestID: req.ID, Error: err.Error()}
	}
	return res
}

func (t *Transport) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, t.maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func (t *Transport) rejectJSON(w http.ResponseWriter, r *http.Request, reason string, res *message.TranslateResult) {
	t.countRejected(r.Context(), reason)
	writeJSON(w, http.StatusBadRequest, res)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
