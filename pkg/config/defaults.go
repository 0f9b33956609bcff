package config

import (
	"os"
	"strconv"
	"time"
)

// Default values for configuration. DefaultWebhookRetries applies to the
// --webhook-url endpoint; configured webhooks retry only when asked to.
const (
	DefaultOutput         = "text"
	DefaultCopyColumn     = 1
	DefaultOCRTimeout     = 2 * time.Minute
	DefaultSampleSize     = 5
	DefaultWebhookTimeout = 10 * time.Second
	DefaultWebhookRetries = 2
	DefaultConfigFileName = "textgrab.yaml"
)

// Environment variable names.
const (
	EnvOutput     = "TEXTGRAB_OUTPUT"
	EnvOCRTimeout = "TEXTGRAB_OCR_TIMEOUT"
	EnvOCRDPI     = "TEXTGRAB_OCR_DPI"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output:     DefaultOutput,
		CopyColumn: DefaultCopyColumn,
		OCR: OCRConfig{
			Timeout: DefaultOCRTimeout,
		},
		Inspect: InspectConfig{
			SampleSize: DefaultSampleSize,
		},
		Webhooks: []WebhookConfig{},
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
// Unparseable values are ignored.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvOutput); v != "" {
		c.Output = v
	}
	if v := os.Getenv(EnvOCRTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.OCR.Timeout = d
		}
	}
	if v := os.Getenv(EnvOCRDPI); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.OCR.DPI = n
		}
	}
}
