// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/ik5/pcmplay/audio"
)

// writeHeader writes the canonical 44-byte header for dataSize bytes of PCM.
func writeHeader(w io.Writer, sampleRate, channels, bitsPerSample int, dataSize uint32) error {
	numChannels := uint16(channels)
	bits := uint16(bitsPerSample)
	byteRate := uint32(sampleRate) * uint32(numChannels) * uint32(bits/8)
	blockAlign := numChannels * (bits / 8)
	riffSize := 36 + dataSize

	header := make([]byte, HeaderSize)

	// RIFF header (12 bytes)
	copy(header[0:4], riffID)
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], waveID)

	// fmt chunk (24 bytes)
	copy(header[12:16], fmtID)
	binary.LittleEndian.PutUint32(header[16:20], pcmFmtChunkSize)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bits)

	// data chunk header (8 bytes)
	copy(header[36:40], dataID)
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// WriteWAV16 writes an interleaved 16-bit PCM WAV at sampleRate with the
// given channel count.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	if channels <= 0 {
		return ErrInvalidFrameGeometry
	}

	if err := writeHeader(w, sampleRate, channels, 16, uint32(len(samples)*2)); err != nil {
		return err
	}

	const chunkSize = 8192 // samples per write
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSize)*2)

	for i := 0; i < len(samples); i += chunkSize {
		end := min(i+chunkSize, len(samples))
		chunk := samples[i:end]
		buf = buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(buf[j*2:j*2+2], uint16(s))
		}

		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// WritePCM writes p as a canonical WAV file. The output round-trips through
// Decode unchanged.
func WritePCM(w io.Writer, p *audio.PCM) error {
	if !p.Valid() {
		return ErrInvalidFrameGeometry
	}

	if err := writeHeader(w, p.SampleRate(), p.Channels(), p.BitsPerSample(), uint32(p.DataSize())); err != nil {
		return err
	}

	if _, err := w.Write(p.Data()); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
