// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ik5/pcmplay/audio"
	"github.com/ik5/pcmplay/formats/aiff"
	"github.com/ik5/pcmplay/formats/mp3"
	"github.com/ik5/pcmplay/formats/vorbis"
	"github.com/ik5/pcmplay/formats/wav"
)

func newRegistry(lenient bool) *audio.Registry {
	reg := audio.NewRegistry()
	if lenient {
		reg.Register("wav", wav.ChunkDecoder{})
	} else {
		reg.Register("wav", wav.Decoder{})
	}
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	return reg
}

func decodeFile(path string, lenient bool) (*audio.PCM, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	reg := newRegistry(lenient)
	dec, ok := reg.Get(ext)
	if !ok {
		return nil, fmt.Errorf("unsupported format %q (supported: %s)", ext, strings.Join(reg.Formats(), ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pcm, err := dec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return pcm, nil
}

func newFileCmd(a *app) *cobra.Command {
	var lenient bool

	cmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Play a wav, mp3, ogg or aiff file",
		Long: `Play an audio file through the configured sink.

WAV files must have the canonical 44-byte header unless --lenient is given,
which walks the RIFF chunks and skips LIST and other metadata.

Example:
  pcmplay --sink malgo file music.wav
  pcmplay -o copy.wav --tail-flush file music.wav`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pcm, err := decodeFile(args[0], lenient)
			if err != nil {
				return err
			}

			s, err := openSink(a.cfg, a.log)
			if err != nil {
				return err
			}

			return a.player(s).PlayPCM(pcm)
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "accept WAV files with extra chunks")

	return cmd
}

func newInfoCmd(a *app) *cobra.Command {
	var lenient bool

	cmd := &cobra.Command{
		Use:   "info <path>",
		Short: "Print the PCM layout of an audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pcm, err := decodeFile(args[0], lenient)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "sample rate: %d Hz\n", pcm.SampleRate())
			fmt.Fprintf(w, "channels:    %d\n", pcm.Channels())
			fmt.Fprintf(w, "bits:        %d\n", pcm.BitsPerSample())
			fmt.Fprintf(w, "frames:      %d\n", pcm.Frames())
			fmt.Fprintf(w, "duration:    %v\n", pcm.Duration())

			if period := a.cfg.PeriodFrames; period > 0 {
				fmt.Fprintf(w, "periods:     %d (+%d frames unflushed at %d frames/period)\n",
					pcm.Frames()/period, pcm.Frames()%period, period)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&lenient, "lenient", false, "accept WAV files with extra chunks")

	return cmd
}
