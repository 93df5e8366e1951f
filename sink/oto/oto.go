// SPDX-License-Identifier: EPL-2.0

// Package oto plays periods through ebitengine/oto. A persistent player
// reads from a pipe, so Transfer blocks until the player has taken the
// period.
//
// oto allows one context per process; the first Negotiate fixes the rate and
// channel count for the lifetime of the program, and later sinks get that
// format back from Negotiate.
package oto

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/pcmplay/sink"
)

// player is the part of *oto.Player the sink needs.
type player interface {
	Play()
	IsPlaying() bool
	Err() error
	Close() error
}

// openFunc starts a player reading r and reports the params it really runs at.
type openFunc func(p sink.Params, r io.Reader) (player, sink.Params, error)

var (
	ctxOnce   sync.Once
	otoCtx    *oto.Context
	ctxParams sink.Params
	ctxErr    error
)

// accepted is what a request gets from a context created with ctxp. Rate and
// channel count belong to the context; the period is only the writer's
// chunking and stays as requested.
func accepted(ctxp, req sink.Params) sink.Params {
	return sink.Params{
		SampleRate:   ctxp.SampleRate,
		PeriodFrames: req.PeriodFrames,
		Channels:     ctxp.Channels,
	}
}

func openOto(p sink.Params, r io.Reader) (player, sink.Params, error) {
	ctxOnce.Do(func() {
		ctxParams = p
		var ready chan struct{}
		otoCtx, ready, ctxErr = oto.NewContext(&oto.NewContextOptions{
			SampleRate:   p.SampleRate,
			ChannelCount: p.Channels,
			Format:       oto.FormatSignedInt16LE,
			BufferSize:   time.Duration(p.PeriodFrames) * time.Second / time.Duration(p.SampleRate),
		})
		if ctxErr == nil {
			<-ready
		}
	})
	if ctxErr != nil {
		return nil, sink.Params{}, fmt.Errorf("oto: create context: %w", ctxErr)
	}

	return otoCtx.NewPlayer(r), accepted(ctxParams, p), nil
}

// Sink is an oto backed sink.Sink.
type Sink struct {
	open   openFunc
	logger *slog.Logger

	params sink.Params
	player player
	pr     *io.PipeReader
	pw     *io.PipeWriter
	closed bool

	// DrainTimeout bounds how long Close waits for queued audio.
	DrainTimeout time.Duration
}

func New(logger *slog.Logger) *Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sink{open: openOto, logger: logger, DrainTimeout: 2 * time.Second}
}

func (s *Sink) Negotiate(req sink.Params) (sink.Params, error) {
	if s.closed {
		return sink.Params{}, sink.ErrClosed
	}
	if s.player != nil {
		return s.params, nil
	}
	if err := req.Validate(); err != nil {
		return sink.Params{}, err
	}

	pr, pw := io.Pipe()
	pl, got, err := s.open(req, pr)
	if err != nil {
		_ = pr.Close()
		return sink.Params{}, err
	}

	s.params, s.player, s.pr, s.pw = got, pl, pr, pw
	s.player.Play()

	if got != req {
		s.logger.Warn("oto context already running with other params",
			"requested_rate", req.SampleRate,
			"requested_channels", req.Channels,
		)
	}
	s.logger.Info("oto output ready",
		"sample_rate", got.SampleRate,
		"channels", got.Channels,
		"period_frames", got.PeriodFrames,
	)

	return got, nil
}

// Transfer writes frames frames of buf into the player's pipe.
func (s *Sink) Transfer(buf []byte, frames int) error {
	switch {
	case s.closed:
		return sink.ErrClosed
	case s.player == nil:
		return sink.ErrNotNegotiated
	}

	if err := s.player.Err(); err != nil {
		return fmt.Errorf("oto: player: %w", err)
	}

	n := frames * s.params.Channels * 2
	if frames < 0 || n > len(buf) {
		return fmt.Errorf("oto: %d frames do not fit a %d byte buffer", frames, len(buf))
	}

	if _, err := s.pw.Write(buf[:n]); err != nil {
		return fmt.Errorf("oto: pipe write: %w", err)
	}

	return nil
}

// Recover restarts the player if it stopped.
func (s *Sink) Recover() error {
	if s.player == nil {
		return sink.ErrNotNegotiated
	}
	if !s.player.IsPlaying() {
		s.player.Play()
	}
	return nil
}

// Close ends the pipe, waits for the player to drain, then releases it.
func (s *Sink) Close() error {
	if s.closed {
		return sink.ErrClosed
	}
	s.closed = true

	if s.player == nil {
		return nil
	}

	_ = s.pw.Close()

	deadline := time.Now().Add(s.DrainTimeout)
	for s.player.IsPlaying() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.player.IsPlaying() {
		s.logger.Warn("oto drain timed out", "timeout", s.DrainTimeout)
	}

	return errors.Join(s.player.Close(), s.pr.Close())
}
