// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/ik5/pcmplay/sink"
)

// ErrInjected is the fatal error MockSink returns from FailOn transfers.
var ErrInjected = errors.New("injected sink failure")

// Transfer is one recorded call to MockSink.Transfer.
type Transfer struct {
	Frames int
	Data   []byte // copy of the buffer at call time
}

// MockSink is a sink.Sink that records every transfer and can inject
// underruns or fatal errors on chosen calls (1-based).
type MockSink struct {
	mu sync.Mutex

	// Accept overrides what Negotiate returns. Zero fields echo the request.
	Accept sink.Params

	UnderrunOn map[int]bool
	FailOn     map[int]bool

	// TransferErr, when set, is returned for FailOn calls instead of ErrInjected.
	TransferErr error
	RecoverErr  error

	params     sink.Params
	negotiated bool
	calls      int
	transfers  []Transfer
	recovers   int
	closes     int
}

func NewMockSink() *MockSink {
	return &MockSink{UnderrunOn: map[int]bool{}, FailOn: map[int]bool{}}
}

func (m *MockSink) Negotiate(req sink.Params) (sink.Params, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := req
	if m.Accept.SampleRate > 0 {
		p.SampleRate = m.Accept.SampleRate
	}
	if m.Accept.PeriodFrames > 0 {
		p.PeriodFrames = m.Accept.PeriodFrames
	}
	if m.Accept.Channels > 0 {
		p.Channels = m.Accept.Channels
	}

	if err := p.Validate(); err != nil {
		return sink.Params{}, err
	}

	m.params = p
	m.negotiated = true

	return p, nil
}

func (m *MockSink) Transfer(buf []byte, frames int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closes > 0 {
		return sink.ErrClosed
	}

	m.calls++
	call := m.calls

	switch {
	case m.UnderrunOn[call]:
		return fmt.Errorf("mock transfer %d: %w", call, sink.ErrUnderrun)
	case m.FailOn[call]:
		if m.TransferErr != nil {
			return m.TransferErr
		}
		return fmt.Errorf("mock transfer %d: %w", call, ErrInjected)
	}

	m.transfers = append(m.transfers, Transfer{
		Frames: frames,
		Data:   append([]byte(nil), buf...),
	})

	return nil
}

func (m *MockSink) Recover() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.recovers++
	return m.RecoverErr
}

func (m *MockSink) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closes++
	if m.closes > 1 {
		return sink.ErrClosed
	}
	return nil
}

// Calls counts every Transfer call, including the failed ones.
func (m *MockSink) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Transfers returns the successful transfers in order.
func (m *MockSink) Transfers() []Transfer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Transfer(nil), m.transfers...)
}

func (m *MockSink) Recovers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recovers
}

func (m *MockSink) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}

func (m *MockSink) Negotiated() (sink.Params, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.params, m.negotiated
}

// Samples decodes the concatenated successful transfers as int16 LE.
func (m *MockSink) Samples() []int16 {
	var out []int16
	for _, tr := range m.Transfers() {
		out = append(out, BytesToInt16(tr.Data)...)
	}
	return out
}

// BytesToInt16 decodes little-endian 16-bit samples. A trailing odd byte is ignored.
func BytesToInt16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(uint16(b[2*i]) | uint16(b[2*i+1])<<8)
	}
	return out
}

// Int16ToBytes encodes samples as little-endian 16-bit PCM.
func Int16ToBytes(samples []int16) []byte {
	out := make([]byte, 2*len(samples))
	for i, s := range samples {
		out[2*i] = byte(s)
		out[2*i+1] = byte(uint16(s) >> 8)
	}
	return out
}

// SineSamples renders an interleaved sine at the given amplitude, same value
// on every channel.
func SineSamples(sampleRate, channels, frames int, freq, amplitude float64) []int16 {
	out := make([]int16, frames*channels)
	for i := range frames {
		t := float64(i) / float64(sampleRate)
		v := int16(amplitude * math.Sin(2*math.Pi*freq*t))
		for c := range channels {
			out[i*channels+c] = v
		}
	}
	return out
}

// RampSamples returns 0, 1, 2, ... so each sample identifies its position.
func RampSamples(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = int16(i)
	}
	return out
}
