// Copyright the partial-application authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// The global config file
var configFile string

// DefaultMarker is the fully qualified function whose call sites partialgen
// expands.
const DefaultMarker = "github.com/Emerentius/partial-application/partial.Gen"

// Config holds the partialgen settings. Fields left out of the config file
// keep their defaults.
type Config struct {
	sourceFile string

	// LogLevel controls the verbosity of the tool.
	LogLevel int `yaml:"log-level"`

	// ParamPrefix is the stem of the synthetic parameter names in generated
	// closures. It is lengthened automatically when a pattern references an
	// identifier it would collide with.
	ParamPrefix string `yaml:"param-prefix"`

	// Marker is the fully qualified path of the marker function to expand.
	Marker string `yaml:"marker"`

	// DryRun prints rewritten files to standard output instead of writing
	// them back.
	DryRun bool `yaml:"dry-run"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		LogLevel:    int(InfoLevel),
		ParamPrefix: "pa",
		Marker:      DefaultMarker,
	}
}

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig
func LoadGlobal() (*Config, error) {
	return Load(configFile)
}

// Load reads a yaml config from filename. Missing fields fall back to the
// defaults from [Default].
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file %q: %w", filename, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("could not parse config file %q: %w", filename, err)
	}
	if cfg.LogLevel < int(ErrLevel) || cfg.LogLevel > int(TraceLevel) {
		return nil, fmt.Errorf("config file %q: log-level %d out of range [%d,%d]",
			filename, cfg.LogLevel, ErrLevel, TraceLevel)
	}
	if cfg.ParamPrefix == "" || cfg.Marker == "" {
		return nil, fmt.Errorf("config file %q: param-prefix and marker must not be empty", filename)
	}
	cfg.sourceFile = filename
	return cfg, nil
}

// SourceFile returns the filename the config was loaded from, or "" for the
// default config.
func (c *Config) SourceFile() string {
	return c.sourceFile
}
