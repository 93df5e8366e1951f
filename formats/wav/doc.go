// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio decoding into raw PCM and WAV encoding.
//
// # Decoding
//
// Decode parses the canonical 44-byte layout and nothing else:
//
//	Offset  Bytes  Field
//	0       4      "RIFF"
//	8       4      "WAVE"
//	12      4      "fmt "
//	16      4      fmt chunk size, must be 16
//	20      2      audio format, must be 1 (PCM)
//	22      1      channel count
//	24      4      sample rate
//	34      2      bits per sample
//	36      4      "data"
//	40      4      data size
//	44      N      interleaved little-endian samples
//
// Every rejection has its own error so callers can log why a file was
// refused:
//
//	pcm, err := wav.Decode(fileBytes)
//	if errors.Is(err, wav.ErrMissingDataChunk) {
//	    // probably a LIST chunk between fmt and data, try DecodeChunks
//	}
//
// A failed decode always returns a nil *audio.PCM, whose Frames() is 0.
// The specific error is for diagnostics; a zero-frame result means the
// input is unusable no matter which check failed.
//
// DecodeChunks walks the RIFF chunk list using github.com/youpy/go-riff
// and skips chunks it does not know, so files written by tools that add
// LIST/INFO metadata still decode.
//
// Both are also available as audio.Decoder implementations (Decoder and
// ChunkDecoder) for use with audio.Registry.
//
// # Writing WAV Files
//
// WriteWAV16 writes interleaved int16 samples and WritePCM writes an
// already decoded audio.PCM:
//
//	samples := []int16{100, -100, 200, -200}
//	file, _ := os.Create("output.wav")
//	err := wav.WriteWAV16(file, 8000, 2, samples)
package wav
