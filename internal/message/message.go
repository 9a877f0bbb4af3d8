// Package message defines the request and result types shared by every
// transport and the translate service.
package message

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// Mode selects the translation direction.
type Mode string

const (
	// ModeEncode converts text to Morse.
	ModeEncode Mode = "encode"

	// ModeDecode converts Morse to text.
	ModeDecode Mode = "decode"
)

// ParseMode accepts "encode" or "decode" in any case, ignoring surrounding space.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeEncode, ModeDecode:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeEncode, ModeDecode)
	}
}

// TranslateRequest asks for a text↔Morse translation.
type TranslateRequest struct {
	// ID identifies the request in logs. Filled in by the service when empty.
	ID string `json:"id,omitempty"`

	// Mode is "encode" or "decode".
	Mode Mode `json:"mode"`

	// Data is the text (encode) or the space-separated Morse (decode).
	Data string `json:"data"`

	// Timestamp is when the request was received.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// TranslateResult is the outcome of a translation.
type TranslateResult struct {
	// RequestID echoes the request ID.
	RequestID string `json:"request_id"`

	// Mode is the direction that was applied.
	Mode Mode `json:"mode"`

	// Result is what the user asked for: Morse when encoding, text when decoding.
	Result string `json:"result"`

	// Text is the plain-text side of the translation.
	Text string `json:"text"`

	// Morse is the Morse side of the translation, suitable for export.
	Morse string `json:"morse"`

	// Error is set when the request was rejected.
	Error string `json:"error,omitempty"`
}

// ExportRequest asks for a WAV rendering of a Morse pattern.
type ExportRequest struct {
	ID    string `json:"id,omitempty"`
	Morse string `json:"morse"`
}

// ExportResult carries a rendered WAV file.
type ExportResult struct {
	RequestID string `json:"request_id"`

	// Audio is the WAV file, base64-encoded.
	Audio string `json:"audio,omitempty"`

	// ContentType is always "audio/wav".
	ContentType string `json:"content_type"`

	// Filename is the suggested download name.
	Filename string `json:"filename"`

	// DurationMS is the playback length in milliseconds.
	DurationMS int64 `json:"duration_ms"`

	Error string `json:"error,omitempty"`
}

// SetAudioBytes base64-encodes raw WAV bytes into Audio.
func (r *ExportResult) SetAudioBytes(audio []byte) {
	if len(audio) > 0 {
		r.Audio = base64.StdEncoding.EncodeToString(audio)
	}
}

// AudioBytes decodes Audio.
func (r *ExportResult) AudioBytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(r.Audio)
}
