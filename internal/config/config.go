// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"ocr-datecheck/internal/dates"
	"ocr-datecheck/internal/diagnose"

	"gopkg.in/yaml.v3"
)

// ErrUnknownProfile is returned when a validator profile name is not configured
var ErrUnknownProfile = errors.New("unknown validator profile")

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format              string `yaml:"format"`
		Profile             string `yaml:"profile"`
		Workers             int    `yaml:"workers"`
		Verbose             bool   `yaml:"verbose"`
		NoColor             bool   `yaml:"no_color"`
		ValidatedExtraction bool   `yaml:"validated_extraction"`
		Diagnose            bool   `yaml:"diagnose"`
	} `yaml:"defaults"`

	// Sample sizes kept in each validation result
	Samples Samples `yaml:"samples"`

	// Named validator profiles
	Profiles map[string]dates.Profile `yaml:"profiles"`

	// Error classifier thresholds and vocabulary
	Diagnosis Diagnosis `yaml:"diagnosis"`
}

// Samples bounds the number of dates listed per category in a result
type Samples struct {
	Missing int `yaml:"missing"`
	Extra   int `yaml:"extra"`
	Matched int `yaml:"matched"`
	Flagged int `yaml:"flagged"`
}

// DefaultSamples returns the sample sizes used when none are configured
func DefaultSamples() Samples {
	return Samples{Missing: 10, Extra: 10, Matched: 5, Flagged: 10}
}

// Diagnosis holds classifier settings. An empty keyword list selects the
// built-in medical vocabulary.
type Diagnosis struct {
	diagnose.Settings `yaml:",inline"`
	Keywords          []string `yaml:"keywords"`
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{
		Profiles: dates.BuiltinProfiles(),
	}

	config.Defaults.Format = "text"
	config.Defaults.Profile = dates.ProfileStrict
	config.Defaults.Workers = 4
	config.Defaults.Diagnose = true

	config.Samples = DefaultSamples()
	config.Diagnosis.Settings = diagnose.DefaultSettings()

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	defaultDiagnose := config.Defaults.Diagnose

	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// yaml leaves an absent bool at whatever it was, but an explicit null resets it
	if !containsField(data, "defaults", "diagnose") {
		config.Defaults.Diagnose = defaultDiagnose
	}

	if err := mergeProfiles(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// profile names come from the map keys
	for name, profile := range config.Profiles {
		profile.Name = name
		config.Profiles[name] = profile
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// mergeProfiles decodes each configured profile over its built-in value, so a
// partial override of a built-in keeps the fields it does not name
func mergeProfiles(data []byte, config *Config) error {
	var raw struct {
		Profiles map[string]yaml.Node `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return err
	}

	builtins := dates.BuiltinProfiles()
	if config.Profiles == nil {
		config.Profiles = builtins
	}
	for name, node := range raw.Profiles {
		profile := builtins[name]
		if err := node.Decode(&profile); err != nil {
			return fmt.Errorf("profile %s: %w", name, err)
		}
		config.Profiles[name] = profile
	}
	return nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	if fileExists("datecheck.yaml") {
		return "datecheck.yaml"
	}
	if fileExists(".datecheck.yaml") {
		return ".datecheck.yaml"
	}

	if configDir := os.Getenv("DATECHECK_CONFIG_DIR"); configDir != "" {
		configFile := filepath.Join(configDir, "config.yaml")
		if fileExists(configFile) {
			return configFile
		}
	}

	return ""
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListProfiles returns the available profile names in sorted order
func (c *Config) ListProfiles() []string {
	profiles := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		profiles = append(profiles, name)
	}
	sort.Strings(profiles)
	return profiles
}

// GetProfile returns a profile by name, or nil if not found
func (c *Config) GetProfile(name string) *dates.Profile {
	if profile, exists := c.Profiles[name]; exists {
		return &profile
	}
	return nil
}

// Validator builds a date validator for the named profile. An empty name
// selects the default profile.
func (c *Config) Validator(name string) (*dates.Validator, error) {
	if name == "" {
		name = c.Defaults.Profile
	}
	profile := c.GetProfile(name)
	if profile == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return dates.NewValidator(*profile), nil
}

// Vocabulary returns the configured keyword vocabulary
func (c *Config) Vocabulary() *diagnose.Vocabulary {
	if len(c.Diagnosis.Keywords) == 0 {
		return diagnose.DefaultVocabulary()
	}
	return diagnose.NewVocabulary(c.Diagnosis.Keywords)
}

// containsField checks if a nested field exists in the YAML data
func containsField(data []byte, path ...string) bool {
	var yamlData map[string]interface{}
	err := yaml.Unmarshal(data, &yamlData)
	if err != nil {
		return false
	}

	current := yamlData
	for i, key := range path {
		if i == len(path)-1 {
			value, exists := current[key]
			return exists && value != nil
		}
		if next, ok := current[key].(map[string]interface{}); ok {
			current = next
		} else {
			return false
		}
	}
	return false
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	if config.Defaults.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", config.Defaults.Workers)
	}

	if config.Defaults.Profile != "" {
		if _, ok := config.Profiles[config.Defaults.Profile]; !ok {
			return fmt.Errorf("default profile: %w: %q", ErrUnknownProfile, config.Defaults.Profile)
		}
	}

	for name, profile := range config.Profiles {
		if err := validateProfile(profile); err != nil {
			return fmt.Errorf("invalid profile '%s': %w", name, err)
		}
	}

	if err := validateSamples(config.Samples); err != nil {
		return fmt.Errorf("invalid samples: %w", err)
	}

	if err := validateDiagnosis(config.Diagnosis.Settings); err != nil {
		return fmt.Errorf("invalid diagnosis settings: %w", err)
	}

	return nil
}

func validateProfile(profile dates.Profile) error {
	if profile.MinYear > profile.MaxYear {
		return fmt.Errorf("min_year %d is after max_year %d", profile.MinYear, profile.MaxYear)
	}
	if profile.FutureToleranceDays < 0 {
		return fmt.Errorf("future_tolerance_days must not be negative, got %d", profile.FutureToleranceDays)
	}
	return nil
}

func validateSamples(s Samples) error {
	if s.Missing < 0 || s.Extra < 0 || s.Matched < 0 || s.Flagged < 0 {
		return fmt.Errorf("sample sizes must not be negative")
	}
	return nil
}

func validateDiagnosis(s diagnose.Settings) error {
	if s.Window <= 0 {
		return fmt.Errorf("window must be positive, got %d", s.Window)
	}
	if s.SpatialDistance <= 0 {
		return fmt.Errorf("spatial_distance must be positive, got %g", s.SpatialDistance)
	}
	if s.SequenceNeighbors <= 0 {
		return fmt.Errorf("sequence_neighbors must be positive, got %d", s.SequenceNeighbors)
	}
	if s.MaxSpatial < 0 {
		return fmt.Errorf("max_spatial must not be negative, got %d", s.MaxSpatial)
	}
	if s.YearFloor > s.YearCeiling {
		return fmt.Errorf("year_floor %d is after year_ceiling %d", s.YearFloor, s.YearCeiling)
	}
	return nil
}

// LoadConfigOrDefault loads configuration from configFile (or searches standard locations
// when configFile is empty). If loading fails, it returns a default configuration.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		cfg, _ = LoadConfig("")
	}
	return cfg
}
