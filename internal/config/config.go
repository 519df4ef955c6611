// SPDX-License-Identifier: Apache-2.0
// Copyright 2022 Jussi Maki

// Package config loads rxlift settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	FormatText = "text"
	FormatYAML = "yaml"

	// FailAfterDisabled turns off error injection.
	FailAfterDisabled = -1

	configName = ".rxlift"
	envPrefix  = "RXLIFT"
)

// DefaultInput is the sequence used when no input is given.
var DefaultInput = []int{1, 2, 3, 2, 5, 4, 7, 5, 6, 7, 8, 9, 5, 6, 9, 10, 9, 12}

var (
	ErrInvalidFormat = errors.New("invalid output format")
	ErrInvalidInput  = errors.New("invalid input")
)

type Config struct {
	// Input is the sequence fed to the operator.
	Input []int

	// Format is the output format, FormatText or FormatYAML.
	Format string

	// LogLevel is a logrus level name.
	LogLevel string

	// FailAfter, if not negative, makes the source fail after emitting
	// that many items.
	FailAfter int

	// Below is the exclusive upper bound used by the filter command.
	Below int

	// Metrics dumps event counters after the run.
	Metrics bool
}

func Default() *Config {
	return &Config{
		Input:     append([]int(nil), DefaultInput...),
		Format:    FormatText,
		LogLevel:  logrus.InfoLevel.String(),
		FailAfter: FailAfterDisabled,
		Below:     5,
	}
}

// Load reads the configuration. If 'path' is empty .rxlift.yaml is looked
// up in 'searchDir' and a missing file yields the defaults. An explicitly
// given file must exist. RXLIFT_* environment variables override the file.
func Load(path, searchDir string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(searchDir)
	}
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetDefault("input", cfg.Input)
	v.SetDefault("format", cfg.Format)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("fail_after", cfg.FailAfter)
	v.SetDefault("below", cfg.Below)
	v.SetDefault("metrics", cfg.Metrics)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	input, err := parseInput(v.Get("input"))
	if err != nil {
		return nil, err
	}
	cfg.Input = input
	cfg.Format = v.GetString("format")
	cfg.LogLevel = v.GetString("log_level")
	cfg.FailAfter = v.GetInt("fail_after")
	cfg.Below = v.GetInt("below")
	cfg.Metrics = v.GetBool("metrics")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseInput converts the 'input' setting to integers. The file gives a
// YAML list, RXLIFT_INPUT a string such as "1 2 3", "1,2,3" or "[1, 2, 3]".
func parseInput(raw any) ([]int, error) {
	if s, ok := raw.(string); ok {
		raw = strings.FieldsFunc(s, func(r rune) bool {
			return r == ',' || r == '[' || r == ']' || r == ' ' || r == '\t'
		})
	}
	input, err := cast.ToIntSliceE(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, raw)
	}
	return input, nil
}

func (c *Config) Validate() error {
	switch c.Format {
	case FormatText, FormatYAML:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}

// Level returns the parsed log level. Validate() must have succeeded.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
