// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/pcmplay/audio"
	"github.com/youpy/go-riff"
)

const riffHeaderSize = 12

// chunkState accumulates what the known chunk handlers extract.
type chunkState struct {
	haveFmt       bool
	channels      int
	sampleRate    int
	bitsPerSample int

	haveData bool
	samples  []byte
}

// chunkHandler consumes one chunk body. limit is the number of bytes that
// can possibly back the chunk, used to reject absurd declared sizes before
// allocating.
type chunkHandler func(st *chunkState, ch *riff.Chunk, limit int) error

var chunkHandlers = map[string]chunkHandler{
	"fmt ": handleFmtChunk,
	"data": handleDataChunk,
}

// DecodeChunks parses a PCM WAV buffer by walking its RIFF chunk list.
// Unknown chunks (LIST, fact, cue, ...) are skipped, and fmt chunks longer
// than 16 bytes are accepted as long as the format code is PCM.
//
// A canonical file (44-byte header, data chunk filling the rest of the
// RIFF body) decodes to the same PCM as Decode gives, channel byte included.
func DecodeChunks(data []byte) (*audio.PCM, error) {
	if len(data) < riffHeaderSize {
		return nil, ErrTooSmall
	}

	if !bytes.Equal(data[0:4], riffID) {
		return nil, ErrNotRiff
	}

	if !bytes.Equal(data[8:12], waveID) {
		return nil, ErrNotWave
	}

	list, err := riff.NewReader(bytes.NewReader(data)).Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedChunks, err)
	}

	st := &chunkState{}
	for _, ch := range list.Chunks {
		// only the first fmt/data pair counts
		id := string(ch.ChunkID[:])
		if (id == "fmt " && st.haveFmt) || (id == "data" && st.haveData) {
			continue
		}

		handler, ok := chunkHandlers[id]
		if !ok {
			continue
		}

		if err := handler(st, ch, len(data)-riffHeaderSize); err != nil {
			return nil, err
		}
	}

	if !st.haveFmt {
		return nil, ErrMissingFmtChunk
	}

	if !st.haveData {
		return nil, ErrMissingDataChunk
	}

	pcm, err := audio.NewPCM(st.sampleRate, st.channels, st.bitsPerSample, st.samples)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return pcm, nil
}

func handleFmtChunk(st *chunkState, ch *riff.Chunk, limit int) error {
	if ch.ChunkSize < pcmFmtChunkSize || int64(ch.ChunkSize) > int64(limit) {
		return ErrUnsupportedFormat
	}

	body := make([]byte, pcmFmtChunkSize)
	if _, err := io.ReadFull(ch, body); err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}

	if binary.LittleEndian.Uint16(body[0:2]) != formatPCM {
		return ErrUnsupportedFormat
	}

	// one byte, the same field width Decode reads at offset 22
	st.channels = int(body[2])
	st.sampleRate = int(binary.LittleEndian.Uint32(body[4:8]))
	st.bitsPerSample = int(binary.LittleEndian.Uint16(body[14:16]))
	st.haveFmt = true

	return nil
}

func handleDataChunk(st *chunkState, ch *riff.Chunk, limit int) error {
	if int64(ch.ChunkSize) > int64(limit) {
		return ErrTruncatedData
	}

	samples := make([]byte, ch.ChunkSize)
	if _, err := io.ReadFull(ch, samples); err != nil {
		return fmt.Errorf("%w: %w", ErrTruncatedData, err)
	}

	st.samples = samples
	st.haveData = true

	return nil
}

// ChunkDecoder implements audio.Decoder on top of DecodeChunks.
type ChunkDecoder struct{}

func (ChunkDecoder) Decode(r io.Reader) (*audio.PCM, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	return DecodeChunks(data)
}
