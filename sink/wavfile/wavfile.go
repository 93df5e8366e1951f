// SPDX-License-Identifier: EPL-2.0

// Package wavfile is a sink that records every period to a 16-bit PCM WAV
// file instead of a sound card. It accepts whatever parameters it is asked
// for and never underruns.
package wavfile

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/pcmplay/sink"
)

const bitDepth = 16

// Sink writes PCM periods through a go-audio/wav encoder.
type Sink struct {
	w      io.WriteSeeker
	closer io.Closer // set when the sink owns w

	params sink.Params
	enc    *wav.Encoder
	buf    *goaudio.IntBuffer

	frames int
	closed bool
}

// New records into w. The WAV header is finished on Close; w is not closed.
func New(w io.WriteSeeker) *Sink {
	return &Sink{w: w}
}

// Create records into a new file at path, closing it on Close.
func Create(path string) (*Sink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("wavfile: %w", err)
	}

	return &Sink{w: f, closer: f}, nil
}

func (s *Sink) Negotiate(req sink.Params) (sink.Params, error) {
	if s.closed {
		return sink.Params{}, sink.ErrClosed
	}
	if s.enc != nil {
		return s.params, nil
	}
	if err := req.Validate(); err != nil {
		return sink.Params{}, err
	}

	s.params = req
	s.enc = wav.NewEncoder(s.w, req.SampleRate, bitDepth, req.Channels, 1)
	s.buf = &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: req.Channels,
			SampleRate:  req.SampleRate,
		},
		Data:           make([]int, 0, req.PeriodFrames*req.Channels),
		SourceBitDepth: bitDepth,
	}

	return req, nil
}

// Transfer appends frames frames of buf to the file.
func (s *Sink) Transfer(buf []byte, frames int) error {
	switch {
	case s.closed:
		return sink.ErrClosed
	case s.enc == nil:
		return sink.ErrNotNegotiated
	}

	samples := frames * s.params.Channels
	if frames < 0 || samples*2 > len(buf) {
		return fmt.Errorf("wavfile: %d frames do not fit a %d byte buffer", frames, len(buf))
	}

	s.buf.Data = s.buf.Data[:0]
	for i := range samples {
		s.buf.Data = append(s.buf.Data, int(int16(uint16(buf[2*i])|uint16(buf[2*i+1])<<8)))
	}

	if err := s.enc.Write(s.buf); err != nil {
		return fmt.Errorf("wavfile: write: %w", err)
	}
	s.frames += frames

	return nil
}

func (s *Sink) Recover() error { return nil }

// Frames is the number of frames written so far.
func (s *Sink) Frames() int { return s.frames }

// Close finalises the WAV header. A sink that was never negotiated writes
// no file content.
func (s *Sink) Close() error {
	if s.closed {
		return sink.ErrClosed
	}
	s.closed = true

	var errs []error
	if s.enc != nil {
		if err := s.enc.Close(); err != nil {
			errs = append(errs, fmt.Errorf("wavfile: finish header: %w", err))
		}
	}
	if s.closer != nil {
		if err := s.closer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("wavfile: %w", err))
		}
	}

	return errors.Join(errs...)
}
