// SPDX-License-Identifier: EPL-2.0

package pcmplay

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ik5/pcmplay/audio"
	"github.com/ik5/pcmplay/formats/wav"
	"github.com/ik5/pcmplay/sink"
	"github.com/ik5/pcmplay/stream"
)

const DefaultPeriodFrames = 1024

// Player drives one sink through one playback. Every Play method closes
// the sink when it returns, so a Player is used once.
type Player struct {
	Sink         sink.Sink
	PeriodFrames int // 0 means DefaultPeriodFrames
	TailFlush    bool
	MaxUnderruns int // consecutive underruns tolerated per period, 0 for no limit
	Logger       *slog.Logger
}

func (p *Player) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

func (p *Player) periodFrames() int {
	if p.PeriodFrames > 0 {
		return p.PeriodFrames
	}
	return DefaultPeriodFrames
}

// PlayWAV decodes data with the strict WAV decoder and plays it.
func (p *Player) PlayWAV(data []byte) error {
	pcm, err := wav.Decode(data)
	if err != nil {
		return errors.Join(fmt.Errorf("decoding wav: %w", err), p.closeSink())
	}

	return p.PlayPCM(pcm)
}

// PlayPCM negotiates the sink at the PCM's rate and channel count and plays
// every whole period.
func (p *Player) PlayPCM(pcm *audio.PCM) (err error) {
	defer func() { err = errors.Join(err, p.closeSink()) }()

	eng, err := p.open(sink.Params{
		SampleRate:   pcm.SampleRate(),
		PeriodFrames: p.periodFrames(),
		Channels:     pcm.Channels(),
	})
	if err != nil {
		return err
	}

	p.logger().Info("playing audio",
		"frames", pcm.Frames(),
		"duration", pcm.Duration(),
		"sample_rate", pcm.SampleRate(),
		"channels", pcm.Channels(),
	)

	return eng.PlayAudio(pcm)
}

// PlayTone renders fn for duration seconds.
func (p *Player) PlayTone(sampleRate, channels int, fn stream.Signal, duration float64) (err error) {
	defer func() { err = errors.Join(err, p.closeSink()) }()

	eng, err := p.open(sink.Params{
		SampleRate:   sampleRate,
		PeriodFrames: p.periodFrames(),
		Channels:     channels,
	})
	if err != nil {
		return err
	}

	p.logger().Info("playing signal", "duration", duration, "sample_rate", eng.SampleRate())

	return eng.PlaySignal(fn, duration)
}

func (p *Player) open(req sink.Params) (*stream.Engine, error) {
	if p.Sink == nil {
		return nil, sink.ErrNotNegotiated
	}

	got, err := p.Sink.Negotiate(req)
	if err != nil {
		return nil, fmt.Errorf("negotiating sink: %w", err)
	}

	if got.SampleRate != req.SampleRate {
		p.logger().Warn("sink changed sample rate, audio will play at the wrong speed",
			"requested", req.SampleRate, "actual", got.SampleRate)
	}
	if got.PeriodFrames != req.PeriodFrames {
		p.logger().Debug("sink changed period", "requested", req.PeriodFrames, "actual", got.PeriodFrames)
	}

	opts := []stream.Option{
		stream.WithLogger(p.logger()),
		stream.WithTailFlush(p.TailFlush),
		stream.WithMaxUnderruns(p.MaxUnderruns),
	}

	return stream.New(p.Sink, got, opts...)
}

func (p *Player) closeSink() error {
	if p.Sink == nil {
		return nil
	}
	if err := p.Sink.Close(); err != nil {
		return fmt.Errorf("closing sink: %w", err)
	}
	return nil
}
