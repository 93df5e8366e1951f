// SPDX-License-Identifier: EPL-2.0

// Command pcmplay plays audio files or generated tones through a PCM sink.
//
// Usage:
//
//	pcmplay [flags] file <path>
//	pcmplay [flags] tone [--freq 440] [--duration 2] [--wave sine]
//	pcmplay info <path>
//
// Sinks: wavfile (default, writes --output), oto, malgo, and portaudio when
// built with -tags portaudio.
//
// Settings come from flags, PCMPLAY_* environment variables and an optional
// config.yaml in ., ./config or ~/.pcmplay.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
