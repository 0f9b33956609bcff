package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/textgrab/pkg/ocr"
)

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Resolve returns the configuration for a command invocation. An explicit
// path must exist. Without one, DefaultConfigFileName in the working
// directory is used if present, otherwise the defaults.
func Resolve(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	if _, err := os.Stat(DefaultConfigFileName); err == nil {
		return Load(ctx, DefaultConfigFileName)
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors and fills in per-webhook defaults.
func Validate(cfg *Config) error {
	if err := ValidateOutput(cfg.Output); err != nil {
		return fmt.Errorf("output: %w", err)
	}

	if cfg.CopyColumn != 1 && cfg.CopyColumn != 2 {
		return fmt.Errorf("copy_column: must be 1 or 2, got %d", cfg.CopyColumn)
	}

	if err := validateOCR(&cfg.OCR); err != nil {
		return fmt.Errorf("ocr: %w", err)
	}

	if cfg.Inspect.SampleSize < 0 {
		return errors.New("inspect: sample_size must be >= 0")
	}
	if cfg.Inspect.SampleSize == 0 {
		cfg.Inspect.SampleSize = DefaultSampleSize
	}

	for i := range cfg.Webhooks {
		if err := ValidateWebhook(&cfg.Webhooks[i]); err != nil {
			return fmt.Errorf("webhooks[%d] (%s): %w", i, cfg.Webhooks[i].DisplayName(), err)
		}
	}

	return nil
}

// ValidateOutput checks an output format name.
func ValidateOutput(format string) error {
	switch format {
	case "text", "tsv", "json":
		return nil
	default:
		return fmt.Errorf("invalid format %q (must be text, tsv, or json)", format)
	}
}

func validateOCR(o *OCRConfig) error {
	if o.PageSegMode < 0 || o.PageSegMode > ocr.MaxPageSegMode {
		return fmt.Errorf("page_seg_mode must be between 0 and %d, got %d", ocr.MaxPageSegMode, o.PageSegMode)
	}
	if o.DPI < 0 {
		return fmt.Errorf("dpi must be >= 0, got %d", o.DPI)
	}
	if o.Timeout < 0 {
		return fmt.Errorf("timeout must be >= 0, got %s", o.Timeout)
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultOCRTimeout
	}
	return nil
}

// ValidateWebhook checks a webhook definition and applies its defaults.
func ValidateWebhook(wh *WebhookConfig) error {
	if wh.URL == "" {
		return errors.New("url is required")
	}

	u, err := url.Parse(wh.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url scheme must be http or https, got %q", u.Scheme)
	}

	if u.Host == "" {
		return errors.New("url must have a host")
	}

	wh.Token = expandEnvVar(wh.Token)

	switch wh.Trigger {
	case "":
		wh.Trigger = WebhookTriggerOnResults
	case WebhookTriggerOnResults, WebhookTriggerAlways, WebhookTriggerNever:
	default:
		return fmt.Errorf("invalid trigger %q (must be on_results, always, or never)", wh.Trigger)
	}

	if wh.Timeout <= 0 {
		wh.Timeout = DefaultWebhookTimeout
	}

	if wh.Retries < 0 {
		return fmt.Errorf("retries must be >= 0, got %d", wh.Retries)
	}

	return nil
}

// expandEnvVar expands a token given as ${VAR} or $VAR.
func expandEnvVar(s string) string {
	if s == "" {
		return s
	}

	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}

	if strings.HasPrefix(s, "$") && !strings.HasPrefix(s, "${") {
		return os.Getenv(s[1:])
	}

	return s
}
