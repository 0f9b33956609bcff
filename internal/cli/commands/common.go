package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/textgrab/pkg/clipboard"
	"github.com/ccollicutt/textgrab/pkg/config"
	"github.com/ccollicutt/textgrab/pkg/output"
	"github.com/ccollicutt/textgrab/pkg/webhook"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// Global flag names registered on the root command.
const (
	FlagConfig   = "config"
	FlagLogLevel = "log-level"
)

// DefaultLogLevel is used when --log-level is not given.
const DefaultLogLevel = "warn"

// newClipboard returns the clipboard used by --copy and --paste.
var newClipboard = clipboard.System

// WebhookOptions holds the command-line webhook flags shared by commands
// that produce reports.
type WebhookOptions struct {
	URL     string
	Token   string
	Trigger string
}

func addWebhookFlags(cmd *cobra.Command, opts *WebhookOptions) {
	cmd.Flags().StringVar(&opts.URL, "webhook-url", "", "Webhook endpoint URL")
	cmd.Flags().StringVar(&opts.Token, "webhook-token", "", "Bearer token for webhook auth")
	cmd.Flags().StringVar(&opts.Trigger, "webhook-trigger", string(config.WebhookTriggerOnResults),
		"When to fire webhook (on_results|always|never)")
}

// runEnv is what every command needs before doing its own work.
type runEnv struct {
	ctx        context.Context
	cfg        *config.Config
	configPath string
	log        *slog.Logger
}

func newRunEnv(cmd *cobra.Command) (*runEnv, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	log, err := NewLogger(flagValue(cmd, FlagLogLevel, DefaultLogLevel), cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	path := flagValue(cmd, FlagConfig, "")
	cfg, err := config.Resolve(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if path != "" {
		log.Debug("loaded config", "path", path)
	}

	return &runEnv{ctx: ctx, cfg: cfg, configPath: path, log: log}, nil
}

// NewLogger builds a text logger writing to w at the named level
// (debug, info, warn, error).
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q (use debug, info, warn, or error)", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// flagValue looks a flag up through inherited persistent flags, so commands
// also work when executed without the root command.
func flagValue(cmd *cobra.Command, name, def string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	if f := cmd.InheritedFlags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return def
}

func createFormatter(env *runEnv, name string, opts output.FormatOptions) (output.Formatter, error) {
	if name == "" {
		name = env.cfg.Output
	}
	return output.NewFormatter(name, opts)
}

func validateColumn(n int) error {
	if n < 0 || n > 2 {
		return fmt.Errorf("invalid column %d (use 1 or 2)", n)
	}
	return nil
}

// copyText places text on the clipboard. Failures are logged only.
func copyText(env *runEnv, text, what string) {
	if err := newClipboard().WriteAll(text); err != nil {
		env.log.Warn("copy to clipboard failed", "content", what, "error", err)
		return
	}
	env.log.Info("copied to clipboard", "content", what, "bytes", len(text))
}

// sendWebhooks sends the report to all configured webhooks.
// Errors are logged but don't fail the command.
func sendWebhooks(env *runEnv, opts WebhookOptions, report output.Report) {
	webhooks, err := collectWebhooks(env.cfg, opts)
	if err != nil {
		env.log.Warn("ignoring command-line webhook", "error", err)
	}
	if len(webhooks) == 0 {
		return
	}

	client := webhook.NewClient()

	for _, wh := range webhooks {
		if !shouldFireWebhook(wh.Trigger, report.HasResults()) {
			env.log.Debug("webhook skipped", "webhook", wh.DisplayName(), "trigger", wh.Trigger)
			continue
		}

		resp := client.Send(env.ctx, report, webhook.SendOptions{
			URL:     wh.URL,
			Token:   wh.Token,
			Timeout: wh.Timeout,
			Retries: wh.Retries,
		})

		if resp.Success() {
			env.log.Info("webhook sent",
				"webhook", wh.DisplayName(),
				"status", resp.StatusCode,
				"attempts", resp.Attempts,
				"duration", resp.Duration)
		} else {
			env.log.Warn("webhook failed",
				"webhook", wh.DisplayName(),
				"attempts", resp.Attempts,
				"error", resp.Error)
		}
	}
}

// collectWebhooks merges config file webhooks with the command-line webhook.
// The config webhooks are returned even when the command-line one is invalid.
func collectWebhooks(cfg *config.Config, opts WebhookOptions) ([]config.WebhookConfig, error) {
	webhooks := make([]config.WebhookConfig, 0, len(cfg.Webhooks)+1)
	webhooks = append(webhooks, cfg.Webhooks...)

	if opts.URL == "" {
		return webhooks, nil
	}

	wh := config.WebhookConfig{
		Name:    "cli",
		URL:     opts.URL,
		Token:   opts.Token,
		Trigger: config.WebhookTrigger(strings.TrimSpace(opts.Trigger)),
		Retries: config.DefaultWebhookRetries,
	}
	if err := config.ValidateWebhook(&wh); err != nil {
		return webhooks, err
	}
	return append(webhooks, wh), nil
}

// shouldFireWebhook determines if a webhook should fire based on its trigger
// and whether the report carries content.
func shouldFireWebhook(trigger config.WebhookTrigger, hasResults bool) bool {
	switch trigger {
	case config.WebhookTriggerAlways:
		return true
	case config.WebhookTriggerNever:
		return false
	default:
		return hasResults
	}
}
