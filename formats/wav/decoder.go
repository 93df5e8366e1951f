// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/pcmplay/audio"
)

// HeaderSize is the size of the canonical RIFF/WAVE header that precedes
// the sample data.
const HeaderSize = 44

const (
	pcmFmtChunkSize = 16
	formatPCM       = 1
)

var (
	riffID = []byte("RIFF")
	waveID = []byte("WAVE")
	fmtID  = []byte("fmt ")
	dataID = []byte("data")
)

// Decode parses a canonical PCM WAV buffer.
//
// Only the 44-byte layout with a 16-byte fmt chunk immediately followed by
// the data chunk is accepted; chunks between fmt and data (e.g. LIST) yield
// ErrMissingDataChunk. Use DecodeChunks for files that carry extra chunks.
//
// On any failure Decode returns a nil *audio.PCM, which reports zero frames.
// The returned PCM owns a copy of the sample bytes; data may be reused by the
// caller afterwards.
func Decode(data []byte) (*audio.PCM, error) {
	if len(data) < HeaderSize {
		return nil, ErrTooSmall
	}

	if !bytes.Equal(data[0:4], riffID) {
		return nil, ErrNotRiff
	}

	if !bytes.Equal(data[8:12], waveID) {
		return nil, ErrNotWave
	}

	if !bytes.Equal(data[12:16], fmtID) {
		return nil, ErrMissingFmtChunk
	}

	fmtSize := binary.LittleEndian.Uint32(data[16:20])
	audioFormat := binary.LittleEndian.Uint16(data[20:22])
	if fmtSize != pcmFmtChunkSize || audioFormat != formatPCM {
		return nil, ErrUnsupportedFormat
	}

	channels := int(data[22])
	sampleRate := int(binary.LittleEndian.Uint32(data[24:28]))
	bitsPerSample := int(binary.LittleEndian.Uint16(data[34:36]))

	if !bytes.Equal(data[36:40], dataID) {
		return nil, ErrMissingDataChunk
	}

	dataSize := binary.LittleEndian.Uint32(data[40:44])
	if uint64(dataSize) > uint64(len(data)-HeaderSize) {
		return nil, ErrTruncatedData
	}

	samples := make([]byte, dataSize)
	copy(samples, data[HeaderSize:])

	pcm, err := audio.NewPCM(sampleRate, channels, bitsPerSample, samples)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return pcm, nil
}

// Decoder implements audio.Decoder on top of Decode.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (*audio.PCM, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	return Decode(data)
}
