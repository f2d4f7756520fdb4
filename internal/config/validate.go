package config

import (
	"fmt"
	"slices"
)

var (
	validLogFormats    = []string{"console", "json"}
	validLogLevels     = []string{"debug", "info", "warn", "error"}
	validOutputFormats = []string{"table", "plain", "json", "yaml"}
	validColorModes    = []string{"auto", "always", "never"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains(validLogFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format: unsupported value %q (expected one of %v)", c.Logging.Format, validLogFormats)
	}
	if !slices.Contains(validLogLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level: unsupported value %q (expected one of %v)", c.Logging.Level, validLogLevels)
	}
	return nil
}

func (c *Config) validateOutput() error {
	if !slices.Contains(validOutputFormats, c.Output.Format) {
		return fmt.Errorf("output.format: unsupported value %q (expected one of %v)", c.Output.Format, validOutputFormats)
	}
	if !slices.Contains(validColorModes, c.Output.Color) {
		return fmt.Errorf("output.color: unsupported value %q (expected one of %v)", c.Output.Color, validColorModes)
	}
	return nil
}

// ValidOutputFormats lists the accepted report formats.
func ValidOutputFormats() []string {
	return slices.Clone(validOutputFormats)
}
