// SPDX-License-Identifier: EPL-2.0

// Package audio holds decoded PCM and the decoder registry.
//
// # PCM
//
// A *PCM is an immutable block of interleaved little-endian samples with
// its sample rate, channel count and sample width:
//
//	pcm, err := audio.NewPCM(44100, 2, 16, data)
//	pcm.Frames()        // len(data) / (2 * 16/8)
//	pcm.Duration()      // Frames / SampleRate
//
// A nil *PCM is valid and reports zero frames. Decoders return nil on
// failure, so "zero frames" uniformly means "nothing to play".
//
// # Format Registry
//
// The Registry maps file extensions to decoders:
//
//	reg := audio.NewRegistry()
//	reg.Register("wav", wav.Decoder{})
//	reg.Register("mp3", mp3.Decoder{})
//
//	dec, ok := reg.Get("wav")
//	pcm, err := dec.Decode(file)
//
// The registry is safe for concurrent use.
package audio
