// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"errors"
	"fmt"

	"github.com/ik5/pcmplay/audio"
	"github.com/ik5/pcmplay/sink"
)

// PlayAudio streams a in whole periods. A trailing partial period is dropped
// unless the engine was built WithTailFlush, in which case it is sent as a
// full period whose uncovered tail is zeroed.
func (e *Engine) PlayAudio(a *audio.PCM) error {
	if err := e.Compatible(a); err != nil {
		return err
	}

	periods := a.Frames() / e.periodFrames

	e.logger.Debug("playing audio",
		"frames", a.Frames(),
		"periods", periods,
		"tail_frames", a.Frames()%e.periodFrames,
		"tail_flush", e.tailFlush,
	)

	cursor := 0
	for range periods {
		cursor = e.FillFromAudio(cursor, a)
		if err := e.write(e.periodFrames); err != nil {
			return err
		}
	}

	if !e.tailFlush || cursor >= a.Frames() {
		return nil
	}

	next := e.FillFromAudio(cursor, a)
	e.zeroTail(next - cursor)

	return e.write(e.periodFrames)
}

// PlaySignal streams fn from t=0 until the cursor reaches duration seconds.
// The last period may run past duration.
func (e *Engine) PlaySignal(fn Signal, duration float64) error {
	e.logger.Debug("playing signal", "duration", duration, "period_frames", e.periodFrames)

	for t := 0.0; t < duration; {
		next := e.FillFromFunc(t, fn)
		if next <= t {
			return fmt.Errorf("%w: period of %d frame(s) at t=%g", ErrStalled, e.periodFrames, t)
		}

		if err := e.write(e.periodFrames); err != nil {
			return err
		}
		t = next
	}

	return nil
}

// write hands the period buffer to the sink. On underrun it recovers and
// retries the same bytes; any other sink error ends playback.
func (e *Engine) write(frames int) error {
	underruns := 0

	for {
		err := e.sink.Transfer(e.buf, frames)
		if err == nil {
			return nil
		}

		if !errors.Is(err, sink.ErrUnderrun) {
			return fmt.Errorf("stream: transfer: %w", err)
		}

		underruns++
		e.logger.Warn("sink underrun, recovering", "attempt", underruns)

		if e.maxUnderruns > 0 && underruns > e.maxUnderruns {
			return fmt.Errorf("%w: %d in a row", ErrTooManyUnderruns, underruns)
		}

		if err := e.sink.Recover(); err != nil {
			return fmt.Errorf("stream: recover: %w", err)
		}
	}
}
