// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/pcmplay/stream"
)

func newToneCmd(a *app) *cobra.Command {
	var (
		freq     float64
		duration float64
		wave     string
		rate     int
		channels int
	)

	cmd := &cobra.Command{
		Use:   "tone",
		Short: "Play a generated tone",
		Long: `Render a signal into periods and play it.

Samples are the signal value times 4096, so a full-scale sine peaks at
about -18 dBFS.

Example:
  pcmplay --sink oto tone --freq 440 --duration 2
  pcmplay -o beep.wav tone --wave square --freq 1000 --duration 0.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var fn stream.Signal
			switch wave {
			case "sine":
				fn = stream.Sine(freq)
			case "square":
				fn = stream.Square(freq)
			case "silence":
				fn = stream.Silence
			default:
				return fmt.Errorf("unknown wave %q (sine, square, silence)", wave)
			}

			if !cmd.Flags().Changed("rate") {
				rate = a.cfg.SampleRate
			}
			if !cmd.Flags().Changed("channels") {
				channels = a.cfg.Channels
			}

			s, err := openSink(a.cfg, a.log)
			if err != nil {
				return err
			}

			return a.player(s).PlayTone(rate, channels, fn, duration)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&freq, "freq", 440, "frequency in Hz")
	f.Float64Var(&duration, "duration", 2, "length in seconds")
	f.StringVar(&wave, "wave", "sine", "waveform: sine, square, silence")
	f.IntVar(&rate, "rate", 44100, "sample rate in Hz (default from config)")
	f.IntVar(&channels, "channels", 2, "channel count (default from config)")

	return cmd
}
