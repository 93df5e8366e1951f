// SPDX-License-Identifier: EPL-2.0

// Package stream keeps a blocking sink fed with fixed-size periods of
// 16-bit PCM.
//
// An Engine owns one period buffer sized from the sink's negotiated
// parameters. It fills that buffer from decoded audio (FillFromAudio) or
// from a Signal (FillFromFunc) and pushes it to the sink, recovering from
// underruns by retrying the same buffer.
//
//	params, err := s.Negotiate(sink.Params{SampleRate: 44100, PeriodFrames: 1024, Channels: 2})
//	if err != nil {
//	    return err
//	}
//	eng, err := stream.New(s, params)
//	if err != nil {
//	    return err
//	}
//	err = eng.PlaySignal(stream.Sine(440), 2.0)
//
// Neither fill operation allocates or fails. All errors come from the sink.
package stream
