// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	// ErrNoAudio indicates the stream decoded to zero samples
	ErrNoAudio = errors.New("mp3 stream contains no audio")
)
