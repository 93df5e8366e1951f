// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/pcmplay/audio"
)

const (
	bitsPerSample = 16
	readSamples   = 4096
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// decodeAll reads every sample from dec and re-encodes it little-endian.
// AIFF stores big-endian samples; go-audio has already unpacked them.
func decodeAll(dec aiffReader) (*audio.PCM, error) {
	format := dec.Format()
	if format == nil || format.NumChannels < 1 || format.NumChannels > 2 {
		return nil, ErrUnsupportedAiffLayout
	}

	intBuf := &goaudio.IntBuffer{
		Data:   make([]int, readSamples*format.NumChannels),
		Format: format,
	}

	var data []byte
	for {
		n, err := dec.PCMBuffer(intBuf)
		for _, v := range intBuf.Data[:n] {
			data = binary.LittleEndian.AppendUint16(data, uint16(int16(v)))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding aiff: %w", err)
		}
		if n == 0 {
			break
		}
	}

	frameBytes := format.NumChannels * bitsPerSample / 8
	data = data[:len(data)-len(data)%frameBytes]
	if len(data) == 0 {
		return nil, ErrNoAudio
	}

	return audio.NewPCM(format.SampleRate, format.NumChannels, bitsPerSample, data)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	// go-audio requires io.ReadSeeker
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading aiff data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	if dec.BitDepth != bitsPerSample {
		return nil, fmt.Errorf("%w: got %d-bit", ErrOnlyPCM16bitSupported, dec.BitDepth)
	}

	return decodeAll(dec)
}
