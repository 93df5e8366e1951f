// SPDX-License-Identifier: EPL-2.0

package stream

import "errors"

var (
	// ErrFormatMismatch is returned by PlayAudio when the PCM is not 16-bit
	// or its channel count differs from the engine's.
	ErrFormatMismatch = errors.New("audio format does not match the engine")

	// ErrStalled is returned by PlaySignal when a period cannot advance the
	// time cursor (a one-frame period).
	ErrStalled = errors.New("signal cursor does not advance")

	ErrTooManyUnderruns = errors.New("too many consecutive underruns")
)
