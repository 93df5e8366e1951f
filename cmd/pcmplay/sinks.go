// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/ik5/pcmplay/internal/config"
	"github.com/ik5/pcmplay/sink"
	"github.com/ik5/pcmplay/sink/malgo"
	"github.com/ik5/pcmplay/sink/oto"
	"github.com/ik5/pcmplay/sink/wavfile"
)

type sinkFactory func(cfg config.Config, log *slog.Logger) (sink.Sink, error)

var sinkFactories = map[string]sinkFactory{
	"wavfile": func(cfg config.Config, _ *slog.Logger) (sink.Sink, error) {
		return wavfile.Create(cfg.Output)
	},
	"oto": func(_ config.Config, log *slog.Logger) (sink.Sink, error) {
		return oto.New(log), nil
	},
	"malgo": func(_ config.Config, log *slog.Logger) (sink.Sink, error) {
		return malgo.New(log), nil
	},
}

func sinkNames() string {
	names := make([]string, 0, len(sinkFactories))
	for name := range sinkFactories {
		names = append(names, name)
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func openSink(cfg config.Config, log *slog.Logger) (sink.Sink, error) {
	factory, ok := sinkFactories[cfg.Sink]
	if !ok {
		return nil, fmt.Errorf("unknown sink %q (available: %s)", cfg.Sink, sinkNames())
	}
	return factory(cfg, log)
}
