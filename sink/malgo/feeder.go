// SPDX-License-Identifier: EPL-2.0

package malgo

import (
	"sync/atomic"
	"time"

	"github.com/ik5/pcmplay/sink"
)

// feeder hands periods from the blocking Transfer side to miniaudio's data
// callback. A fixed pool of period buffers bounds how far Transfer can run
// ahead of the device; push blocks while the pool is empty.
type feeder struct {
	free  chan []byte
	queue chan []byte
	done  chan struct{}

	// owned by the callback goroutine
	cur []byte
	off int

	pending  atomic.Int64 // bytes queued but not yet played
	primed   atomic.Bool
	underrun atomic.Bool
}

func newFeeder(periodBytes, depth int) *feeder {
	f := &feeder{
		free:  make(chan []byte, depth),
		queue: make(chan []byte, depth),
		done:  make(chan struct{}),
	}
	for range depth {
		f.free <- make([]byte, periodBytes)
	}
	return f
}

// push copies p into a pooled buffer and queues it.
func (f *feeder) push(p []byte) error {
	var b []byte
	select {
	case b = <-f.free:
	case <-f.done:
		return sink.ErrClosed
	}

	n := copy(b[:cap(b)], p)
	f.pending.Add(int64(n))
	f.primed.Store(true)

	select {
	case f.queue <- b[:n]:
		return nil
	case <-f.done:
		return sink.ErrClosed
	}
}

// fill writes queued audio into out. When the queue runs dry the rest of
// out is silenced and, once playback has started, an underrun is flagged.
func (f *feeder) fill(out []byte) {
	for len(out) > 0 {
		if f.off >= len(f.cur) {
			if f.cur != nil {
				f.free <- f.cur
				f.cur, f.off = nil, 0
			}

			select {
			case f.cur = <-f.queue:
			default:
				clear(out)
				if f.primed.Load() {
					f.underrun.Store(true)
				}
				return
			}
		}

		n := copy(out, f.cur[f.off:])
		f.off += n
		f.pending.Add(-int64(n))
		out = out[n:]
	}
}

// takeUnderrun reports and clears a pending underrun.
func (f *feeder) takeUnderrun() bool {
	return f.underrun.Swap(false)
}

// drain waits until all queued audio has been handed to the device or the
// timeout passes. It reports whether the queue emptied.
func (f *feeder) drain(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for f.pending.Load() > 0 {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(5 * time.Millisecond)
	}
	return true
}

func (f *feeder) close() {
	select {
	case <-f.done:
	default:
		close(f.done)
	}
}
