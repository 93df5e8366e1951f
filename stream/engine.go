// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/ik5/pcmplay/audio"
	"github.com/ik5/pcmplay/sink"
	"github.com/ik5/pcmplay/utils"
)

const (
	// SampleSize is the size in bytes of one sample in the period buffer.
	SampleSize = 2

	// Headroom scales signal values into int16 samples.
	Headroom = 4096.0
)

// Sink is the part of sink.Sink the engine drives.
type Sink interface {
	Transfer(buf []byte, frames int) error
	Recover() error
}

// Engine fills a fixed period buffer and pushes it to a Sink.
// It is not safe for concurrent use.
type Engine struct {
	sink         Sink
	sampleRate   int
	periodFrames int
	channels     int

	// period buffer, periodFrames*channels*SampleSize bytes, never resized
	buf []byte

	logger       *slog.Logger
	tailFlush    bool
	maxUnderruns int
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTailFlush makes PlayAudio transfer the trailing partial period,
// zero-filling the part of the buffer it does not cover.
func WithTailFlush(enabled bool) Option {
	return func(e *Engine) { e.tailFlush = enabled }
}

// WithMaxUnderruns bounds how many consecutive underruns a single period
// may hit before the play loop gives up. 0, the default, retries forever.
func WithMaxUnderruns(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.maxUnderruns = n
		}
	}
}

// New binds an engine to the parameters a sink negotiated and allocates
// the period buffer.
func New(s Sink, p sink.Params, opts ...Option) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("stream: %w", err)
	}

	e := &Engine{
		sink:         s,
		sampleRate:   p.SampleRate,
		periodFrames: p.PeriodFrames,
		channels:     p.Channels,
		buf:          make([]byte, p.PeriodFrames*p.Channels*SampleSize),
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

func (e *Engine) SampleRate() int   { return e.sampleRate }
func (e *Engine) PeriodFrames() int { return e.periodFrames }
func (e *Engine) Channels() int     { return e.channels }
func (e *Engine) SampleSize() int   { return SampleSize }

// Buffer returns the period buffer. It is overwritten by every fill.
func (e *Engine) Buffer() []byte { return e.buf }

func (e *Engine) frameBytes() int { return e.channels * SampleSize }

// FillFromAudio copies up to one period of frames starting at cursor into
// the period buffer, left-aligned, and returns the next cursor.
//
// When cursor is at or past the end of a, the buffer is left untouched and
// cursor is returned as is. A short final period only overwrites its own
// frames; the rest of the buffer keeps whatever the previous fill left.
//
// The PCM format is not checked here. Bytes are copied as they are and the
// copy never exceeds the buffer.
func (e *Engine) FillFromAudio(cursor int, a *audio.PCM) int {
	if cursor < 0 || cursor >= a.Frames() {
		return cursor
	}

	bytesPerFrame := a.BytesPerFrame()
	framesToCopy := min(e.periodFrames, a.Frames()-cursor)

	start := cursor * bytesPerFrame
	copy(e.buf, a.Data()[start:start+framesToCopy*bytesPerFrame])

	return cursor + framesToCopy
}

// FillFromFunc renders one period of fn starting at time t (seconds).
//
// Frame i gets fn(t + i/SampleRate) scaled by Headroom, truncated to int16,
// and written to every channel. The returned cursor is t plus the phase of
// the last frame, (PeriodFrames-1)/SampleRate, so consecutive periods start
// one sample interval earlier than a gapless clock would.
func (e *Engine) FillFromFunc(t float64, fn Signal) float64 {
	rate := float64(e.sampleRate)
	frameBytes := e.frameBytes()

	var phase float64
	for i := range e.periodFrames {
		phase = float64(i) / rate
		v := uint16(utils.ScaleToInt16(fn(t+phase), Headroom))

		off := i * frameBytes
		for c := range e.channels {
			binary.LittleEndian.PutUint16(e.buf[off+c*SampleSize:], v)
		}
	}

	return t + phase
}

// Compatible reports whether a can be streamed byte for byte into this engine.
func (e *Engine) Compatible(a *audio.PCM) error {
	if a.BitsPerSample() != SampleSize*8 || a.Channels() != e.channels {
		return fmt.Errorf("%w: got %d-bit %d ch, engine is %d-bit %d ch",
			ErrFormatMismatch, a.BitsPerSample(), a.Channels(), SampleSize*8, e.channels)
	}
	return nil
}

// zeroTail clears the buffer from frame onwards.
func (e *Engine) zeroTail(frame int) {
	clear(e.buf[frame*e.frameBytes():])
}
