package tailr

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultLines is the line offset used when none is given.
const DefaultLines = "-10"

// Config is built once per invocation and never modified.
type Config struct {
	// Lines selects line mode. Ignored when Bytes is set.
	Lines Offset
	// Bytes selects byte mode when non-nil.
	Bytes Offset
	// Quiet suppresses the per-file headers.
	Quiet bool
	// Raw disables lenient decoding in byte mode.
	Raw bool
	// OpenAttempts bounds retries of interrupted opens.
	OpenAttempts uint
}

// NewConfig parses the offset strings. An empty bytes string selects
// line mode, and an empty lines string means DefaultLines.
func NewConfig(lines, bytes string, quiet, raw bool) (Config, error) {
	if lines == "" {
		lines = DefaultLines
	}
	lv, err := ParseOffset(lines)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{Lines: lv, Quiet: quiet, Raw: raw}
	if bytes != "" {
		bv, err := ParseOffset(bytes)
		if err != nil {
			return Config{}, err
		}
		cfg.Bytes = bv
	}
	return cfg, nil
}

// ByteMode reports whether output is selected in bytes.
func (c Config) ByteMode() bool {
	return c.Bytes != nil
}

// FileConfig holds defaults read from a YAML file. Unset keys stay nil.
type FileConfig struct {
	Lines    *string `yaml:"lines"`
	Bytes    *string `yaml:"bytes"`
	Quiet    *bool   `yaml:"quiet"`
	Raw      *bool   `yaml:"raw"`
	Color    string  `yaml:"color"`
	LogLevel string  `yaml:"log_level"`
}

// LoadFileConfig reads a YAML defaults file.
func LoadFileConfig(filename string) (*FileConfig, error) {
	d, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}
	fc := &FileConfig{}
	if err := yaml.Unmarshal(d, fc); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %s", filename)
	}
	return fc, nil
}
