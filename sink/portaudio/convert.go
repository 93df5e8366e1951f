// SPDX-License-Identifier: EPL-2.0

// Package portaudio plays periods through PortAudio's blocking write API.
// The sink itself needs cgo and the PortAudio library, so it is only built
// with the "portaudio" tag:
//
//	go build -tags portaudio ./...
package portaudio

import "encoding/binary"

// decodeInto unpacks little-endian 16-bit samples from src into dst and
// zeroes whatever part of dst src does not cover.
func decodeInto(dst []int16, src []byte) {
	n := min(len(dst), len(src)/2)
	for i := range n {
		dst[i] = int16(binary.LittleEndian.Uint16(src[2*i:]))
	}
	clear(dst[n:])
}
