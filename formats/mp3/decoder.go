// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/pcmplay/audio"
)

const (
	// go-mp3 always produces 16-bit stereo little-endian PCM
	channels      = 2
	bitsPerSample = 16
	frameBytes    = channels * bitsPerSample / 8

	readChunk = 8192
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// decodeAll reads dec until EOF into a single PCM buffer. A trailing partial
// frame is dropped.
func decodeAll(dec mp3Reader) (*audio.PCM, error) {
	var data []byte
	buf := make([]byte, readChunk)

	for {
		n, err := dec.Read(buf)
		data = append(data, buf[:n]...)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding mp3: %w", err)
		}
		if n == 0 {
			break
		}
	}

	data = data[:len(data)-len(data)%frameBytes]
	if len(data) == 0 {
		return nil, ErrNoAudio
	}

	return audio.NewPCM(dec.SampleRate(), channels, bitsPerSample, data)
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return decodeAll(dec)
}
