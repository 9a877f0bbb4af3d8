// Package tone renders a Morse pattern as mono audio samples.
//
// Timing is fixed at standard 1:3 dot:dash ratio with one unit of silence
// after every element. Each tone segment starts its sine at phase zero, so
// adjacent segments are not phase-continuous.
package tone

import (
	"math"
	"time"
)

const (
	// SampleRate is the output rate in Hz.
	SampleRate = 44100

	// Frequency is the tone pitch in Hz.
	Frequency = 800.0

	// Unit is the dot length in seconds.
	Unit = 0.1

	// Dash is the dash length and the letter-space silence in seconds.
	Dash = 3 * Unit

	// Gap is the silence appended after every element.
	Gap = Unit
)

// SampleCount returns how many samples a segment of d seconds spans.
func SampleCount(d float64) int {
	if d <= 0 {
		return 0
	}
	return int(math.Round(SampleRate * d))
}

// ToneSamples returns d seconds of a full-scale sine at Frequency.
func ToneSamples(d float64) []float64 {
	n := SampleCount(d)
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * Frequency * float64(i) / SampleRate)
	}
	return out
}

// SilenceSamples returns d seconds of zero samples.
func SilenceSamples(d float64) []float64 {
	return make([]float64, SampleCount(d))
}

// Render converts a pattern to samples: "." is a unit tone, "-" a dash tone
// and the space between letters a dash of silence, each followed by Gap.
// Other runes, "/" included, contribute nothing.
func Render(pattern string) []float64 {
	out := make([]float64, 0, Len(pattern))
	for _, r := range pattern {
		switch r {
		case '.':
			out = append(out, ToneSamples(Unit)...)
		case '-':
			out = append(out, ToneSamples(Dash)...)
		case ' ':
			out = append(out, SilenceSamples(Dash)...)
		default:
			continue
		}
		out = append(out, SilenceSamples(Gap)...)
	}
	return out
}

// Duration reports how long Render(pattern) plays at SampleRate.
func Duration(pattern string) time.Duration {
	return time.Duration(Len(pattern)) * time.Second / SampleRate
}

// Len returns len(Render(pattern)) without rendering.
func Len(pattern string) int {
	var n int
	for _, r := range pattern {
		switch r {
		case '.':
			n += SampleCount(Unit) + SampleCount(Gap)
		case '-', ' ':
			n += SampleCount(Dash) + SampleCount(Gap)
		}
	}
	return n
}
