// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"slices"
	"sync"
	"time"
)

// PCM is a decoded, immutable set of interleaved little-endian PCM samples
// together with the format metadata needed to interpret them.
//
// A nil *PCM is the "not decoded" state: every accessor reports zero and
// Data returns an empty view, so callers can treat a failed decode uniformly.
type PCM struct {
	sampleRate    int
	channels      int
	bitsPerSample int
	frames        int
	data          []byte
}

// NewPCM takes ownership of data. The caller must not modify data afterwards.
func NewPCM(sampleRate, channels, bitsPerSample int, data []byte) (*PCM, error) {
	bytesPerSample := bitsPerSample / 8
	if bytesPerSample <= 0 || channels <= 0 {
		return nil, ErrInvalidFrameGeometry
	}

	return &PCM{
		sampleRate:    sampleRate,
		channels:      channels,
		bitsPerSample: bitsPerSample,
		frames:        len(data) / (bytesPerSample * channels),
		data:          data,
	}, nil
}

// SampleRate of the PCM data in Hz.
func (p *PCM) SampleRate() int {
	if p == nil {
		return 0
	}
	return p.sampleRate
}

// Channels count (e.g., 1=mono, 2=stereo).
func (p *PCM) Channels() int {
	if p == nil {
		return 0
	}
	return p.channels
}

func (p *PCM) BitsPerSample() int {
	if p == nil {
		return 0
	}
	return p.bitsPerSample
}

// DataSize is the size of the sample data in bytes.
func (p *PCM) DataSize() int {
	if p == nil {
		return 0
	}
	return len(p.data)
}

// Frames is the number of whole frames in the sample data.
func (p *PCM) Frames() int {
	if p == nil {
		return 0
	}
	return p.frames
}

func (p *PCM) BytesPerFrame() int {
	if p == nil {
		return 0
	}
	return p.bitsPerSample / 8 * p.channels
}

// Data returns a read-only view of the sample bytes. The slice is shared
// with p and must not be modified.
func (p *PCM) Data() []byte {
	if p == nil {
		return nil
	}
	return p.data[:len(p.data):len(p.data)]
}

// Valid reports whether p holds at least one playable frame.
func (p *PCM) Valid() bool {
	return p.Frames() > 0
}

// Duration is the playback length at the native sample rate.
func (p *PCM) Duration() time.Duration {
	if p.SampleRate() == 0 {
		return 0
	}
	return time.Duration(p.Frames()) * time.Second / time.Duration(p.sampleRate)
}

// Decoder constructs PCM from an input reader.
type Decoder interface {
	Decode(r io.Reader) (*PCM, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats returns the registered format keys, sorted.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	formats := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		formats = append(formats, k)
	}
	slices.Sort(formats)
	return formats
}
