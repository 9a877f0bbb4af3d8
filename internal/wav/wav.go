// Package wav serialises float samples into a mono 16-bit PCM WAV file.
package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/tone"
)

const (
	// ContentType is the MIME type of the produced file.
	ContentType = "audio/wav"

	// Filename is the suggested download name.
	Filename = "morse.wav"

	// HeaderSize is the length of the RIFF/fmt/data header.
	HeaderSize = 44

	channels       = 1
	bytesPerSample = 2
)

// header is the canonical 44-byte PCM WAV header.
type header struct {
	RiffMark      [4]byte
	FileSize      uint32
	WaveMark      [4]byte
	FmtMark       [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataMark      [4]byte
	DataSize      uint32
}

func newHeader(numSamples int) header {
	dataLen := uint32(numSamples * channels * bytesPerSample)
	return header{
		RiffMark:      [4]byte{'R', 'I', 'F', 'F'},
		FileSize:      HeaderSize - 8 + dataLen,
		WaveMark:      [4]byte{'W', 'A', 'V', 'E'},
		FmtMark:       [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		AudioFormat:   1, // PCM
		NumChannels:   channels,
		SampleRate:    tone.SampleRate,
		ByteRate:      tone.SampleRate * channels * bytesPerSample,
		BlockAlign:    channels * bytesPerSample,
		BitsPerSample: bytesPerSample * 8,
		DataMark:      [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataLen,
	}
}

// Quantize scales a sample by 32767 and truncates toward zero. Values
// outside [-1, 1] are not clamped.
func Quantize(s float64) int16 {
	return int16(int(s * 32767))
}

// Write emits the header followed by every sample as little-endian int16.
func Write(w io.Writer, samples []float64) error {
	if err := binary.Write(w, binary.LittleEndian, newHeader(len(samples))); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}

	pcm := make([]byte, len(samples)*bytesPerSample)
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[i*bytesPerSample:], uint16(Quantize(s)))
	}
	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}
	return nil
}

// Encode returns the complete WAV file for samples.
func Encode(samples []float64) ([]byte, error) {
	buf := &bytes.Buffer{}
	buf.Grow(HeaderSize + len(samples)*bytesPerSample)
	if err := Write(buf, samples); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
