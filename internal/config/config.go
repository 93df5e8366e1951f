// SPDX-License-Identifier: EPL-2.0

// Package config loads pcmplay settings from defaults, an optional YAML
// file, PCMPLAY_* environment variables and bound CLI flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ik5/pcmplay/internal/logger"
)

const EnvPrefix = "PCMPLAY"

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	Sink         string        `mapstructure:"sink"`   // wavfile/oto/malgo/portaudio
	Output       string        `mapstructure:"output"` // wavfile destination
	SampleRate   int           `mapstructure:"sample_rate"`
	PeriodFrames int           `mapstructure:"period_frames"`
	Channels     int           `mapstructure:"channels"`
	MaxUnderruns int           `mapstructure:"max_underruns"`
	TailFlush    bool          `mapstructure:"tail_flush"`
	Log          logger.Config `mapstructure:"log"`
}

// SetDefaults registers every key with its default so env-only and
// flag-only values unmarshal too.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("sink", "wavfile")
	v.SetDefault("output", "out.wav")
	v.SetDefault("sample_rate", 44100)
	v.SetDefault("period_frames", 1024)
	v.SetDefault("channels", 2)
	v.SetDefault("max_underruns", 0)
	v.SetDefault("tail_flush", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.outputs", []string{"stderr"})
	v.SetDefault("log.format", "text")
}

// Load reads configuration into v and decodes it. An explicit path must
// exist; otherwise config.yaml is searched for and may be absent.
func Load(v *viper.Viper, path string) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pcmplay"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample_rate must be positive, got %d", ErrInvalid, c.SampleRate)
	case c.PeriodFrames <= 0:
		return fmt.Errorf("%w: period_frames must be positive, got %d", ErrInvalid, c.PeriodFrames)
	case c.Channels < 1 || c.Channels > 2:
		return fmt.Errorf("%w: channels must be 1 or 2, got %d", ErrInvalid, c.Channels)
	case c.MaxUnderruns < 0:
		return fmt.Errorf("%w: max_underruns must not be negative, got %d", ErrInvalid, c.MaxUnderruns)
	case c.Sink == "":
		return fmt.Errorf("%w: sink is empty", ErrInvalid)
	case c.Sink == "wavfile" && c.Output == "":
		return fmt.Errorf("%w: wavfile sink needs an output path", ErrInvalid)
	}
	return nil
}
