// SPDX-License-Identifier: EPL-2.0

package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ik5/pcmplay"
	"github.com/ik5/pcmplay/internal/config"
	"github.com/ik5/pcmplay/internal/logger"
	"github.com/ik5/pcmplay/sink"
)

// app holds what PersistentPreRunE prepares for the subcommands.
type app struct {
	v          *viper.Viper
	configPath string

	cfg       config.Config
	log       *slog.Logger
	logCloser io.Closer
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:           "pcmplay",
		Short:         "Stream PCM audio to a blocking sink in fixed periods",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.logCloser != nil {
				return a.logCloser.Close()
			}
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (default searches ./config.yaml, ./config/config.yaml, ~/.pcmplay/config.yaml)")
	pf.String("sink", "wavfile", "output sink: "+sinkNames())
	pf.StringP("output", "o", "out.wav", "destination file for the wavfile sink")
	pf.Int("period", 1024, "frames per period")
	pf.Int("max-underruns", 0, "consecutive underruns tolerated per period (0 for no limit)")
	pf.Bool("tail-flush", false, "send the last partial period padded with silence")
	pf.String("log-level", "info", "log level: debug, info, warn, error")

	for key, flag := range map[string]string{
		"sink":          "sink",
		"output":        "output",
		"period_frames": "period",
		"max_underruns": "max-underruns",
		"tail_flush":    "tail-flush",
		"log.level":     "log-level",
	} {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	root.AddCommand(newFileCmd(a), newToneCmd(a), newInfoCmd(a))

	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.v, a.configPath)
	if err != nil {
		return err
	}

	log, closer, err := logger.New(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg, a.log, a.logCloser = cfg, log, closer
	return nil
}

func (a *app) player(s sink.Sink) *pcmplay.Player {
	return &pcmplay.Player{
		Sink:         s,
		PeriodFrames: a.cfg.PeriodFrames,
		TailFlush:    a.cfg.TailFlush,
		MaxUnderruns: a.cfg.MaxUnderruns,
		Logger:       a.log,
	}
}
