// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var (
	// ErrNoAudio indicates the stream decoded to zero samples
	ErrNoAudio = errors.New("vorbis stream contains no audio")

	// ErrUnsupportedChannels indicates a layout other than mono or stereo
	ErrUnsupportedChannels = errors.New("only mono and stereo vorbis is supported")
)
