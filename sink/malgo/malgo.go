// SPDX-License-Identifier: EPL-2.0

// Package malgo plays periods through miniaudio (gen2brain/malgo).
//
// miniaudio pulls audio from a callback, so Transfer queues each period into
// a small pool and blocks while the pool is full. When the callback finds
// the queue empty after playback started it plays silence and the next
// Transfer reports sink.ErrUnderrun.
package malgo

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gen2brain/malgo"

	"github.com/ik5/pcmplay/sink"
)

const defaultDepth = 4

// Sink is a miniaudio backed sink.Sink.
type Sink struct {
	logger *slog.Logger
	depth  int

	ctx    *malgo.AllocatedContext
	device *malgo.Device
	feed   *feeder
	params sink.Params
	closed bool
}

type Option func(*Sink)

// WithDepth sets how many periods may be queued ahead of the device.
func WithDepth(n int) Option {
	return func(s *Sink) {
		if n > 0 {
			s.depth = n
		}
	}
}

func New(logger *slog.Logger, opts ...Option) *Sink {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Sink{logger: logger, depth: defaultDepth}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Sink) Negotiate(req sink.Params) (sink.Params, error) {
	if s.closed {
		return sink.Params{}, sink.ErrClosed
	}
	if s.device != nil {
		return s.params, nil
	}
	if err := req.Validate(); err != nil {
		return sink.Params{}, err
	}

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {
		s.logger.Debug("malgo", "message", message)
	})
	if err != nil {
		return sink.Params{}, fmt.Errorf("malgo: init context: %w", err)
	}

	cfg := malgo.DefaultDeviceConfig(malgo.Playback)
	cfg.Playback.Format = malgo.FormatS16
	cfg.Playback.Channels = uint32(req.Channels)
	cfg.SampleRate = uint32(req.SampleRate)
	cfg.PeriodSizeInFrames = uint32(req.PeriodFrames)
	cfg.Alsa.NoMMap = 1

	feed := newFeeder(req.PeriodBytes(), s.depth)

	device, err := malgo.InitDevice(ctx.Context, cfg, malgo.DeviceCallbacks{
		Data: func(out, _ []byte, _ uint32) { feed.fill(out) },
	})
	if err != nil {
		_ = ctx.Uninit()
		ctx.Free()
		return sink.Params{}, fmt.Errorf("malgo: init device: %w", err)
	}

	if err := device.Start(); err != nil {
		device.Uninit()
		_ = ctx.Uninit()
		ctx.Free()
		return sink.Params{}, fmt.Errorf("malgo: start device: %w", err)
	}

	s.ctx, s.device, s.feed = ctx, device, feed
	s.params = req
	if rate := int(device.SampleRate()); rate > 0 {
		s.params.SampleRate = rate
	}

	s.logger.Info("malgo output ready",
		"sample_rate", s.params.SampleRate,
		"channels", s.params.Channels,
		"period_frames", s.params.PeriodFrames,
		"depth", s.depth,
	)

	return s.params, nil
}

func (s *Sink) Transfer(buf []byte, frames int) error {
	switch {
	case s.closed:
		return sink.ErrClosed
	case s.device == nil:
		return sink.ErrNotNegotiated
	}

	if s.feed.takeUnderrun() {
		return fmt.Errorf("malgo: device starved: %w", sink.ErrUnderrun)
	}

	n := frames * s.params.Channels * 2
	if frames < 0 || n > len(buf) || n > s.params.PeriodBytes() {
		return fmt.Errorf("malgo: %d frames do not fit a %d byte period", frames, len(buf))
	}

	return s.feed.push(buf[:n])
}

// Recover has nothing to reset; the callback resumes as soon as the next
// period is queued.
func (s *Sink) Recover() error {
	if s.device == nil {
		return sink.ErrNotNegotiated
	}
	return nil
}

// Close waits for queued periods to play, then stops the device.
func (s *Sink) Close() error {
	if s.closed {
		return sink.ErrClosed
	}
	s.closed = true

	if s.device == nil {
		return nil
	}

	period := time.Duration(s.params.PeriodFrames) * time.Second / time.Duration(s.params.SampleRate)
	if !s.feed.drain(period*time.Duration(s.depth+1) + 100*time.Millisecond) {
		s.logger.Warn("malgo drain timed out")
	}
	// let the last callback buffer reach the speaker
	time.Sleep(period)

	s.feed.close()

	var errs []error
	if err := s.device.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("malgo: stop device: %w", err))
	}
	s.device.Uninit()

	if err := s.ctx.Uninit(); err != nil {
		errs = append(errs, fmt.Errorf("malgo: uninit context: %w", err))
	}
	s.ctx.Free()

	return errors.Join(errs...)
}
