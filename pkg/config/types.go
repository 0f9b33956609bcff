// Package config provides configuration loading and validation for textgrab.
package config

import "time"

// Config is the root configuration structure loaded from YAML.
type Config struct {
	// Output is the default output format (text, tsv, json).
	Output string `yaml:"output"`

	// CopyColumn selects which column --copy places on the clipboard (1 or 2).
	CopyColumn int `yaml:"copy_column"`

	OCR      OCRConfig       `yaml:"ocr"`
	Inspect  InspectConfig   `yaml:"inspect"`
	Webhooks []WebhookConfig `yaml:"webhooks,omitempty"`
}

// OCRConfig tunes text recognition. The language is fixed to English.
type OCRConfig struct {
	// PageSegMode is the Tesseract page segmentation mode (0 keeps the default).
	PageSegMode int `yaml:"page_seg_mode"`

	// DPI overrides the image resolution Tesseract assumes (0 keeps the default).
	DPI int `yaml:"dpi"`

	// Timeout bounds a single recognition.
	Timeout time.Duration `yaml:"timeout"`
}

// InspectConfig controls the inspect command.
type InspectConfig struct {
	// SampleSize is how many irregular lines of each kind are listed.
	SampleSize int `yaml:"sample_size"`
}

// WebhookTrigger determines when a webhook fires.
type WebhookTrigger string

const (
	// WebhookTriggerOnResults fires only when the report carries content:
	// at least one row, or non-empty recognized text (default).
	WebhookTriggerOnResults WebhookTrigger = "on_results"
	// WebhookTriggerAlways fires after every completed command.
	WebhookTriggerAlways WebhookTrigger = "always"
	// WebhookTriggerNever disables the webhook.
	WebhookTriggerNever WebhookTrigger = "never"
)

// WebhookConfig defines a webhook endpoint that receives reports.
type WebhookConfig struct {
	// Name is an optional identifier for the webhook.
	Name string `yaml:"name,omitempty"`

	// URL is the webhook endpoint (required).
	URL string `yaml:"url"`

	// Token is an optional bearer token. ${VAR} and $VAR are expanded.
	Token string `yaml:"token,omitempty"`

	// Trigger determines when the webhook fires. Defaults to on_results.
	Trigger WebhookTrigger `yaml:"trigger,omitempty"`

	// Timeout is the per-attempt HTTP timeout. Defaults to 10s.
	Timeout time.Duration `yaml:"timeout,omitempty"`

	// Retries is the number of additional attempts after a failure.
	Retries int `yaml:"retries,omitempty"`
}

// DisplayName returns Name, or the URL when no name is set.
func (w *WebhookConfig) DisplayName() string {
	if w.Name != "" {
		return w.Name
	}
	return w.URL
}
