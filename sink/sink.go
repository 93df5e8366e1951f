// SPDX-License-Identifier: EPL-2.0

// Package sink defines the blocking PCM output contract the stream engine
// drives, and the errors a sink reports through it.
//
// Implementations live in subpackages: wavfile (records to disk), oto,
// malgo and portaudio (speakers; portaudio needs the "portaudio" build tag).
package sink

import (
	"errors"
	"fmt"
)

var (
	// ErrUnderrun means the device ran dry before the last period arrived.
	// It is recoverable: call Recover and retry the same period.
	ErrUnderrun = errors.New("sink underrun")

	ErrClosed        = errors.New("sink closed")
	ErrNotNegotiated = errors.New("sink used before Negotiate")
	ErrInvalidParams = errors.New("sample rate, period and channels must be positive")
)

// Params are the stream parameters a sink is configured with. All samples
// are 16-bit signed little-endian interleaved.
type Params struct {
	SampleRate   int
	PeriodFrames int
	Channels     int
}

func (p Params) Validate() error {
	if p.SampleRate <= 0 || p.PeriodFrames <= 0 || p.Channels <= 0 {
		return fmt.Errorf("%w: %+v", ErrInvalidParams, p)
	}
	return nil
}

// PeriodBytes is the size of one period buffer at 2 bytes per sample.
func (p Params) PeriodBytes() int {
	return p.PeriodFrames * p.Channels * 2
}

// Sink is a blocking PCM output.
type Sink interface {
	// Negotiate configures the device. The returned Params are what the
	// device actually accepted and may differ from the request.
	Negotiate(requested Params) (Params, error)

	// Transfer blocks until frames frames from buf are accepted. It returns
	// ErrUnderrun (possibly wrapped) when the device underran; any other
	// error is fatal.
	Transfer(buf []byte, frames int) error

	// Recover resets the transfer state after ErrUnderrun.
	Recover() error

	// Close drains pending audio and releases the device. Call it once.
	Close() error
}
