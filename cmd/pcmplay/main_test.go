// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/pcmplay/formats/wav"
	"github.com/ik5/pcmplay/internal/audiotest"
)

// run executes the CLI with a quiet config file in dir.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(dir, "pcmplay.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("log:\n  level: error\n"), 0o644))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func writeWAV(t *testing.T, path string, rate, channels int, samples []int16) {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, wav.WriteWAV16(&buf, rate, channels, samples))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func readWAV(t *testing.T, path string) []int16 {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	pcm, err := wav.Decode(data)
	require.NoError(t, err)

	return audiotest.BytesToInt16(pcm.Data())
}

func TestFileCommand_WavfileSink(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")
	writeWAV(t, in, 8000, 2, audiotest.RampSamples(20))

	_, err := run(t, dir, "-o", out, "--period", "4", "file", in)
	require.NoError(t, err)

	// 10 frames at 4 per period: 8 frames copied, 2 dropped
	assert.Equal(t, audiotest.RampSamples(16), readWAV(t, out))
}

func TestFileCommand_TailFlush(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	out := filepath.Join(dir, "out.wav")
	writeWAV(t, in, 8000, 1, audiotest.RampSamples(6))

	_, err := run(t, dir, "-o", out, "--period", "4", "--tail-flush", "file", in)
	require.NoError(t, err)

	assert.Equal(t, []int16{0, 1, 2, 3, 4, 5, 0, 0}, readWAV(t, out))
}

func TestFileCommand_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.wav")
	require.NoError(t, os.WriteFile(bad, []byte("not a wav file"), 0o644))

	tests := []struct {
		name string
		args []string
	}{
		{"missing arg", []string{"file"}},
		{"unknown extension", []string{"file", filepath.Join(dir, "x.flac")}},
		{"missing file", []string{"file", filepath.Join(dir, "nope.wav")}},
		{"undecodable", []string{"file", bad}},
		{"unknown sink", []string{"--sink", "alsa", "tone"}},
		{"bad wave", []string{"-o", filepath.Join(dir, "w.wav"), "tone", "--wave", "triangle"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, t.TempDir(), tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestToneCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	out := filepath.Join(dir, "tone.wav")

	_, err := run(t, dir, "-o", out, "--period", "100", "tone", "--rate", "1000", "--channels", "1", "--duration", "0.3")
	require.NoError(t, err)

	samples := readWAV(t, out)
	// 100 frames at 1 kHz advance 0.099 s, so four periods reach 0.3 s
	assert.Len(t, samples, 400)
	assert.Equal(t, int16(0), samples[0])
}

func TestInfoCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	writeWAV(t, in, 8000, 2, make([]int16, 32))

	out, err := run(t, dir, "--period", "5", "info", in)
	require.NoError(t, err)

	assert.Contains(t, out, "sample rate: 8000 Hz")
	assert.Contains(t, out, "channels:    2")
	assert.Contains(t, out, "frames:      16")
	assert.Contains(t, out, "periods:     3 (+1 frames unflushed at 5 frames/period)")
}

func TestInfoCommand_Lenient(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "in.wav")
	writeWAV(t, in, 8000, 1, make([]int16, 8))

	out, err := run(t, dir, "info", "--lenient", in)
	require.NoError(t, err)
	assert.Contains(t, out, "frames:      8")
}

func TestSinkNames(t *testing.T) {
	t.Parallel()

	names := sinkNames()
	for _, want := range []string{"malgo", "oto", "wavfile"} {
		assert.Contains(t, names, want)
	}
}
