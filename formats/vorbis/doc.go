// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes whole Ogg Vorbis files into 16-bit PCM.
//
// Decoding is done by github.com/jfreymuth/oggvorbis. Its float samples are
// clamped to [-1, 1] and scaled to int16, so the result can be streamed
// like a WAV file:
//
//	f, _ := os.Open("audio.ogg")
//	pcm, err := vorbis.Decoder{}.Decode(f)
//
// Only mono and stereo streams are accepted.
package vorbis
