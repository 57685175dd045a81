// Package settings loads wordgen defaults.
//
// Values come from, lowest priority first: built-in defaults,
// <root>/.wordgen/settings.yaml, <root>/.env, and the process environment.
//
//	count: 10          # words per generate call
//	depth: 3           # corpus window depth for extract
//	min_alphabet: 1    # smallest accepted alphabet; 2 enables the strict policy
//	retries: 0         # extra walks per word that found no candidate
//	home: ~/.wordgen   # rule-set library root
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the settings file.
const (
	EnvHome        = "WORDGEN_HOME"
	EnvCount       = "WORDGEN_COUNT"
	EnvDepth       = "WORDGEN_DEPTH"
	EnvMinAlphabet = "WORDGEN_MIN_ALPHABET"
	EnvRetries     = "WORDGEN_RETRIES"
)

// Settings holds wordgen configuration.
type Settings struct {
	Count       int    `yaml:"count"`
	Depth       int    `yaml:"depth"`
	MinAlphabet int    `yaml:"min_alphabet"`
	Retries     int    `yaml:"retries"`
	Home        string `yaml:"home"`
}

// Default returns the built-in settings. Home is left empty when the user
// home directory cannot be determined.
func Default() Settings {
	s := Settings{Count: 10, Depth: 3, MinAlphabet: 1}
	if home, err := os.UserHomeDir(); err == nil {
		s.Home = filepath.Join(home, ".wordgen")
	}
	return s
}

// Load reads settings relative to root. Missing files are not an error.
func Load(root string) (*Settings, error) {
	s := Default()

	path := filepath.Join(root, ".wordgen", "settings.yaml")
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", path, err)
		}
	}

	dotenv, err := godotenv.Read(filepath.Join(root, ".env"))
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read .env: %w", err)
	}
	lookup := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(dotenv[key])
	}

	if v := lookup(EnvHome); v != "" {
		s.Home = v
	}
	for _, o := range []struct {
		key string
		dst *int
	}{
		{EnvCount, &s.Count},
		{EnvDepth, &s.Depth},
		{EnvMinAlphabet, &s.MinAlphabet},
		{EnvRetries, &s.Retries},
	} {
		v := lookup(o.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not an integer", o.key, v)
		}
		*o.dst = n
	}

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Settings) validate() error {
	switch {
	case s.Count < 0:
		return fmt.Errorf("settings: count must not be negative, got %d", s.Count)
	case s.Depth < 1:
		return fmt.Errorf("settings: depth must be at least 1, got %d", s.Depth)
	case s.MinAlphabet < 1:
		return fmt.Errorf("settings: min_alphabet must be at least 1, got %d", s.MinAlphabet)
	case s.Retries < 0:
		return fmt.Errorf("settings: retries must not be negative, got %d", s.Retries)
	}
	return nil
}
