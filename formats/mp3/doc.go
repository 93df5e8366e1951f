// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes whole MP3 files into 16-bit PCM.
//
// Decoding is done by github.com/hajimehoshi/go-mp3, which always produces
// interleaved stereo at the file's sample rate. The result is an
// *audio.PCM ready for the stream engine:
//
//	f, _ := os.Open("audio.mp3")
//	pcm, err := mp3.Decoder{}.Decode(f)
//	if err != nil {
//	    // Handle error
//	}
//	err = engine.PlayAudio(pcm)
//
// The engine must be configured for two channels. There is no resampling,
// so the sink has to be negotiated at pcm.SampleRate().
//
// MP3 writing is not supported.
package mp3
