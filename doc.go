// SPDX-License-Identifier: EPL-2.0

// Package pcmplay decodes WAV files and streams PCM to blocking audio sinks
// in fixed-size periods.
//
// # Packages
//
//   - formats/wav decodes canonical 44-byte-header WAV files (and, leniently,
//     files with extra chunks) into an *audio.PCM
//   - formats/mp3, formats/vorbis and formats/aiff decode other containers
//     into the same type
//   - stream owns the period buffer and the playback loops
//   - sink defines the output contract; sink/wavfile, sink/oto, sink/malgo and
//     sink/portaudio implement it
//
// # Quick Start
//
// Player ties the pieces together: it negotiates the sink, builds an engine
// and plays to the end.
//
//	s, _ := wavfile.Create("copy.wav")
//	p := pcmplay.Player{Sink: s, PeriodFrames: 1024}
//
//	data, _ := os.ReadFile("input.wav")
//	if err := p.PlayWAV(data); err != nil {
//	    // decode, format or sink error
//	}
//
// For a generated tone:
//
//	err := p.PlayTone(44100, 2, stream.Sine(440), 2.0)
//
// # Behavior at the Edges
//
// Only whole periods of a file are played unless TailFlush is set. Underruns
// reported by the sink are recovered and the same period is sent again.
// Any other sink error stops playback and is returned.
package pcmplay
