// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/poiesic/lostfound/match"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// envPrefix namespaces environment overrides, e.g. LOSTFOUND_TOP_K.
const envPrefix = "LOSTFOUND"

// thresholds is the file and display form of match.Config.
type thresholds struct {
	DuplicateThreshold float64 `yaml:"duplicate_threshold"`
	AskTopScore        float64 `yaml:"ask_top_score"`
	AskGap             float64 `yaml:"ask_gap"`
	ShortlistSize      int     `yaml:"shortlist_size"`
	DuplicateScanLimit int     `yaml:"duplicate_scan_limit"`
	TopK               int     `yaml:"top_k"`
	QuestionPoolSize   int     `yaml:"question_pool_size"`
	Workers            int     `yaml:"workers"`
}

func thresholdsOf(cfg *match.Config) thresholds {
	return thresholds{
		DuplicateThreshold: cfg.DuplicateThreshold,
		AskTopScore:        cfg.AskTopScore,
		AskGap:             cfg.AskGap,
		ShortlistSize:      cfg.ShortlistSize,
		DuplicateScanLimit: cfg.DuplicateScanLimit,
		TopK:               cfg.TopK,
		QuestionPoolSize:   cfg.QuestionPoolSize,
		Workers:            cfg.Workers,
	}
}

// loadMatchConfig layers the YAML file at path (if any) and LOSTFOUND_*
// environment variables over the default thresholds.
func loadMatchConfig(path string) (*match.Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := thresholdsOf(match.DefaultConfig())
	v.SetDefault("duplicate_threshold", defaults.DuplicateThreshold)
	v.SetDefault("ask_top_score", defaults.AskTopScore)
	v.SetDefault("ask_gap", defaults.AskGap)
	v.SetDefault("shortlist_size", defaults.ShortlistSize)
	v.SetDefault("duplicate_scan_limit", defaults.DuplicateScanLimit)
	v.SetDefault("top_k", defaults.TopK)
	v.SetDefault("question_pool_size", defaults.QuestionPoolSize)
	v.SetDefault("workers", defaults.Workers)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := match.NewConfig(
		match.WithDuplicateThreshold(v.GetFloat64("duplicate_threshold")),
		match.WithAskTopScore(v.GetFloat64("ask_top_score")),
		match.WithAskGap(v.GetFloat64("ask_gap")),
		match.WithShortlistSize(v.GetInt("shortlist_size")),
		match.WithDuplicateScanLimit(v.GetInt("duplicate_scan_limit")),
		match.WithTopK(v.GetInt("top_k")),
		match.WithQuestionPoolSize(v.GetInt("question_pool_size")),
		match.WithWorkers(v.GetInt("workers")),
	)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid matching configuration: %w", err)
	}
	return cfg, nil
}

// writeYAML encodes value to w as a YAML document.
func writeYAML(w io.Writer, value any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return err
	}
	return enc.Close()
}
