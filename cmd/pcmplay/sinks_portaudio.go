// SPDX-License-Identifier: EPL-2.0

//go:build portaudio

package main

import (
	"log/slog"

	"github.com/ik5/pcmplay/internal/config"
	"github.com/ik5/pcmplay/sink"
	"github.com/ik5/pcmplay/sink/portaudio"
)

func init() {
	sinkFactories["portaudio"] = func(_ config.Config, log *slog.Logger) (sink.Sink, error) {
		return portaudio.New(log), nil
	}
}
