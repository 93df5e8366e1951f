// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

package portaudio

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gordonklaus/portaudio"

	"github.com/ik5/pcmplay/sink"
)

// Sink is a PortAudio backed sink.Sink using a blocking output stream whose
// frames-per-buffer equals the period.
type Sink struct {
	logger *slog.Logger

	stream *portaudio.Stream
	out    []int16
	params sink.Params
	closed bool
}

func New(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{logger: logger}
}

func (s *Sink) Negotiate(req sink.Params) (sink.Params, error) {
	if s.closed {
		return sink.Params{}, sink.ErrClosed
	}
	if s.stream != nil {
		return s.params, nil
	}
	if err := req.Validate(); err != nil {
		return sink.Params{}, err
	}

	if err := portaudio.Initialize(); err != nil {
		return sink.Params{}, fmt.Errorf("portaudio: initialize: %w", err)
	}

	s.out = make([]int16, req.PeriodFrames*req.Channels)

	stream, err := portaudio.OpenDefaultStream(0, req.Channels, float64(req.SampleRate), req.PeriodFrames, &s.out)
	if err != nil {
		_ = portaudio.Terminate()
		return sink.Params{}, fmt.Errorf("portaudio: open stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return sink.Params{}, fmt.Errorf("portaudio: start stream: %w", err)
	}

	s.stream = stream
	s.params = req
	if info := stream.Info(); info != nil && info.SampleRate > 0 {
		s.params.SampleRate = int(info.SampleRate)
	}

	s.logger.Info("portaudio output ready",
		"sample_rate", s.params.SampleRate,
		"channels", s.params.Channels,
		"period_frames", s.params.PeriodFrames,
	)

	return s.params, nil
}

// Transfer writes one period. Fewer than PeriodFrames frames are padded
// with silence because the stream always writes a whole buffer.
func (s *Sink) Transfer(buf []byte, frames int) error {
	switch {
	case s.closed:
		return sink.ErrClosed
	case s.stream == nil:
		return sink.ErrNotNegotiated
	}

	n := frames * s.params.Channels * 2
	if frames < 0 || n > len(buf) {
		return fmt.Errorf("portaudio: %d frames do not fit a %d byte buffer", frames, len(buf))
	}

	decodeInto(s.out, buf[:n])

	if err := s.stream.Write(); err != nil {
		if errors.Is(err, portaudio.OutputUnderflowed) {
			return fmt.Errorf("portaudio: %w", sink.ErrUnderrun)
		}
		return fmt.Errorf("portaudio: write: %w", err)
	}

	return nil
}

// Recover is a no-op: PortAudio keeps the stream running after an
// underflow and the retried write succeeds on its own.
func (s *Sink) Recover() error {
	if s.stream == nil {
		return sink.ErrNotNegotiated
	}
	return nil
}

// Close stops the stream, which plays out pending buffers, then releases
// PortAudio.
func (s *Sink) Close() error {
	if s.closed {
		return sink.ErrClosed
	}
	s.closed = true

	if s.stream == nil {
		return nil
	}

	var errs []error
	if err := s.stream.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("portaudio: stop: %w", err))
	}
	if err := s.stream.Close(); err != nil {
		errs = append(errs, fmt.Errorf("portaudio: close: %w", err))
	}
	if err := portaudio.Terminate(); err != nil {
		errs = append(errs, fmt.Errorf("portaudio: terminate: %w", err))
	}

	return errors.Join(errs...)
}
