// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/pcmplay/audio"
	"github.com/ik5/pcmplay/utils"
)

const (
	bitsPerSample = 16
	readFrames    = 4096
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// decodeAll drains dec and converts its float samples to 16-bit PCM.
// Read returns a count of values, always a whole number of frames.
func decodeAll(dec oggReader) (*audio.PCM, error) {
	channels := dec.Channels()
	if channels < 1 || channels > 2 {
		return nil, fmt.Errorf("%w: %d channels", ErrUnsupportedChannels, channels)
	}

	var data []byte
	buf := make([]float32, readFrames*channels)

	for {
		n, err := dec.Read(buf)
		for _, v := range buf[:n] {
			data = binary.LittleEndian.AppendUint16(data, uint16(utils.Float32ToInt16(v)))
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding vorbis: %w", err)
		}
		if n == 0 {
			break
		}
	}

	frameBytes := channels * bitsPerSample / 8
	data = data[:len(data)-len(data)%frameBytes]
	if len(data) == 0 {
		return nil, ErrNoAudio
	}

	return audio.NewPCM(dec.SampleRate(), channels, bitsPerSample, data)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return decodeAll(dec)
}
