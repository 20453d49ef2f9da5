package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked for in the working directory when --config is not given.
const DefaultConfigFile = ".unitharness.yaml"

const (
	outputConsole = "console"
	outputJSON    = "json"
)

// Config is the effective configuration of a run.
type Config struct {
	FailFast bool
	NoCatch  bool
	Debug    bool
	DebugAll bool
	JSON     bool
	NoColor  bool
}

// fileConfig is the project config file. Pointer fields distinguish "not set" from false.
type fileConfig struct {
	FailFast *bool   `yaml:"failFast"`
	NoCatch  *bool   `yaml:"noCatch"`
	Debug    *bool   `yaml:"debug"`
	DebugAll *bool   `yaml:"debugAll"`
	Output   *string `yaml:"output"`
	Color    *bool   `yaml:"color"`
}

// loadConfigFromFile reads a project config file. Unknown keys are an error, so that a misspelled
// option is not silently ignored.
func loadConfigFromFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, err
	}
	if fc.Output != nil && *fc.Output != outputConsole && *fc.Output != outputJSON {
		return fileConfig{}, fmt.Errorf("invalid output %q (must be %q or %q)", *fc.Output, outputConsole, outputJSON)
	}
	return fc, nil
}

// configFilePath returns the file to load, if any. An explicit path must exist; the default one
// is optional.
func configFilePath(explicit string, getwd func() (string, error)) (string, bool, error) {
	if explicit != "" {
		return explicit, true, nil
	}
	wd, err := getwd()
	if err != nil {
		return "", false, err
	}
	path := filepath.Join(wd, DefaultConfigFile)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, err
	}
	return path, true, nil
}

// mergeFileConfig applies the settings that the file sets explicitly.
func mergeFileConfig(base Config, overlay fileConfig) Config {
	merged := base
	if overlay.FailFast != nil {
		merged.FailFast = *overlay.FailFast
	}
	if overlay.NoCatch != nil {
		merged.NoCatch = *overlay.NoCatch
	}
	if overlay.Debug != nil {
		merged.Debug = *overlay.Debug
	}
	if overlay.DebugAll != nil {
		merged.DebugAll = *overlay.DebugAll
	}
	if overlay.Output != nil {
		merged.JSON = *overlay.Output == outputJSON
	}
	if overlay.Color != nil {
		merged.NoColor = !*overlay.Color
	}
	return merged
}

// envEnabled interprets a boolean environment variable: any non-empty value other than "0" or
// "false" turns it on.
func envEnabled(lookup func(string) (string, bool), name string) bool {
	value, ok := lookup(name)
	if !ok {
		return false
	}
	value = strings.TrimSpace(value)
	return value != "" && value != "0" && !strings.EqualFold(value, "false")
}

func mergeEnvironment(base Config, lookup func(string) (string, bool)) Config {
	merged := base
	if envEnabled(lookup, "NOCATCH") {
		merged.NoCatch = true
	}
	if _, ok := lookup("NO_COLOR"); ok {
		merged.NoColor = true
	}
	return merged
}

func mergeFlags(base Config, p commandParams) Config {
	merged := base
	if p.set[failFastFlag] {
		merged.FailFast = p.flags.FailFast
	}
	if p.set[noCatchFlag] {
		merged.NoCatch = p.flags.NoCatch
	}
	if p.set[debugFlag] {
		merged.Debug = p.flags.Debug
	}
	if p.set[debugAllFlag] {
		merged.DebugAll = p.flags.DebugAll
	}
	if p.set[jsonFlag] {
		merged.JSON = p.flags.JSON
	}
	if p.set[noColorFlag] {
		merged.NoColor = p.flags.NoColor
	}
	return merged
}

// loadConfig builds the configuration by layering the defaults, the project config file, the
// environment and the command line, in that order.
func loadConfig(p commandParams, env Environment) (Config, error) {
	config := Config{}

	path, found, err := configFilePath(p.configPath, env.Getwd)
	if err != nil {
		return Config{}, fmt.Errorf("error locating config file: %w", err)
	}
	if found {
		fc, err := loadConfigFromFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", path, err)
		}
		config = mergeFileConfig(config, fc)
	}

	config = mergeEnvironment(config, env.LookupEnv)
	return mergeFlags(config, p), nil
}
