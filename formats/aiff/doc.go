// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes whole AIFF (Audio Interchange File Format) files
// into little-endian 16-bit PCM.
//
// Parsing is done by github.com/go-audio/aiff, which needs an
// io.ReadSeeker; other readers are buffered in memory first.
//
// # Supported Formats
//
//   - PCM 16-bit
//   - Mono and stereo
//   - Any sample rate
//
// Other bit depths return ErrOnlyPCM16bitSupported. There is no conversion
// between depths.
//
//	f, _ := os.Open("audio.aiff")
//	pcm, err := aiff.Decoder{}.Decode(f)
package aiff
