package commands

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/ccollicutt/textgrab/pkg/config"
)

func TestShouldFireWebhook(t *testing.T) {
	tests := []struct {
		name       string
		trigger    config.WebhookTrigger
		hasResults bool
		want       bool
	}{
		{"on_results with results", config.WebhookTriggerOnResults, true, true},
		{"on_results without results", config.WebhookTriggerOnResults, false, false},
		{"always with results", config.WebhookTriggerAlways, true, true},
		{"always without results", config.WebhookTriggerAlways, false, true},
		{"never with results", config.WebhookTriggerNever, true, false},
		{"never without results", config.WebhookTriggerNever, false, false},
		{"empty trigger with results", "", true, true},
		{"empty trigger without results", "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := shouldFireWebhook(tt.trigger, tt.hasResults)
			if got != tt.want {
				t.Errorf("shouldFireWebhook(%q, %v) = %v, want %v",
					tt.trigger, tt.hasResults, got, tt.want)
			}
		})
	}
}

func TestCollectWebhooks(t *testing.T) {
	t.Run("config only", func(t *testing.T) {
		cfg := &config.Config{
			Webhooks: []config.WebhookConfig{
				{Name: "slack", URL: "https://slack.com/webhook"},
				{Name: "audit", URL: "https://audit.example.com/webhook"},
			},
		}

		webhooks, err := collectWebhooks(cfg, WebhookOptions{})
		if err != nil {
			t.Fatal(err)
		}
		if len(webhooks) != 2 {
			t.Errorf("got %d webhooks, want 2", len(webhooks))
		}
	})

	t.Run("cli only", func(t *testing.T) {
		webhooks, err := collectWebhooks(&config.Config{}, WebhookOptions{
			URL:     "https://cli.example.com/webhook",
			Token:   "secret",
			Trigger: "always",
		})
		if err != nil {
			t.Fatal(err)
		}
		if len(webhooks) != 1 {
			t.Fatalf("got %d webhooks, want 1", len(webhooks))
		}
		wh := webhooks[0]
		if wh.Name != "cli" || wh.Token != "secret" || wh.Trigger != config.WebhookTriggerAlways {
			t.Errorf("unexpected webhook: %+v", wh)
		}
		if wh.Timeout != config.DefaultWebhookTimeout || wh.Retries != config.DefaultWebhookRetries {
			t.Errorf("defaults not applied: %+v", wh)
		}
	})

	t.Run("cli default trigger", func(t *testing.T) {
		webhooks, err := collectWebhooks(&config.Config{}, WebhookOptions{URL: "https://cli.example.com"})
		if err != nil {
			t.Fatal(err)
		}
		if webhooks[0].Trigger != config.WebhookTriggerOnResults {
			t.Errorf("got trigger %q, want on_results", webhooks[0].Trigger)
		}
	})

	t.Run("invalid cli webhook keeps config webhooks", func(t *testing.T) {
		cfg := &config.Config{
			Webhooks: []config.WebhookConfig{{Name: "slack", URL: "https://slack.com/webhook"}},
		}
		webhooks, err := collectWebhooks(cfg, WebhookOptions{URL: "ftp://bad", Trigger: "always"})
		if err == nil {
			t.Error("expected error for invalid cli webhook")
		}
		if len(webhooks) != 1 || webhooks[0].Name != "slack" {
			t.Errorf("unexpected webhooks: %+v", webhooks)
		}
	})

	t.Run("invalid cli trigger", func(t *testing.T) {
		_, err := collectWebhooks(&config.Config{}, WebhookOptions{URL: "https://x.example.com", Trigger: "sometimes"})
		if err == nil {
			t.Error("expected error for invalid trigger")
		}
	})
}

type webhookRecorder struct {
	mu       sync.Mutex
	payloads []map[string]any
	auth     []string
}

func (r *webhookRecorder) server(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		var payload map[string]any
		_ = json.Unmarshal(body, &payload)

		r.mu.Lock()
		r.payloads = append(r.payloads, payload)
		r.auth = append(r.auth, req.Header.Get("Authorization"))
		r.mu.Unlock()

		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunSplit_Webhook(t *testing.T) {
	rec := &webhookRecorder{}
	srv := rec.server(t)

	_, stderr, err := execute(t, NewSplitCommand(), widgetText,
		"--log-level", "info",
		"--webhook-url", srv.URL,
		"--webhook-token", "tok")
	if err != nil {
		t.Fatal(err)
	}

	if len(rec.payloads) != 1 {
		t.Fatalf("got %d webhook calls, want 1", len(rec.payloads))
	}
	if rec.auth[0] != "Bearer tok" {
		t.Errorf("Authorization = %q", rec.auth[0])
	}
	col2, _ := rec.payloads[0]["column2"].([]any)
	if len(col2) != 3 || col2[2] != "75" {
		t.Errorf("payload column2 = %v", rec.payloads[0]["column2"])
	}
	if !strings.Contains(stderr, "webhook sent") {
		t.Errorf("expected webhook log, got %q", stderr)
	}
}

func TestRunSplit_WebhookFailureDoesNotFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	out, stderr, err := execute(t, NewSplitCommand(), widgetText, "--webhook-url", srv.URL)
	if err != nil {
		t.Fatalf("webhook failure should not fail the command: %v", err)
	}
	if out == "" {
		t.Error("expected columns on stdout")
	}
	if !strings.Contains(stderr, "webhook failed") {
		t.Errorf("expected warning, got %q", stderr)
	}
}

func TestRunInspect_WebhookFromConfig(t *testing.T) {
	resetExitCode(t)
	rec := &webhookRecorder{}
	srv := rec.server(t)

	configPath := writeFile(t, t.TempDir(), "textgrab.yaml", `webhooks:
  - name: never
    url: `+srv.URL+`
    trigger: never
`)

	if _, _, err := execute(t, NewInspectCommand(), "a 1\n", "--config", configPath); err != nil {
		t.Fatal(err)
	}
	if len(rec.payloads) != 0 {
		t.Errorf("trigger never should not send, got %d calls", len(rec.payloads))
	}
}

func TestRunOCR_WebhookAlways(t *testing.T) {
	useFakeEngine(t, &fakeEngine{text: ""})
	rec := &webhookRecorder{}
	srv := rec.server(t)

	path := writeFile(t, t.TempDir(), "scan.png", string(pngBytes(t)))

	_, _, err := execute(t, NewOCRCommand(), "", path, "--webhook-url", srv.URL, "--webhook-trigger", "on_results")
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.payloads) != 0 {
		t.Fatalf("on_results should skip empty text, got %d calls", len(rec.payloads))
	}

	_, _, err = execute(t, NewOCRCommand(), "", path, "--webhook-url", srv.URL, "--webhook-trigger", "always")
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.payloads) != 1 {
		t.Fatalf("always should send, got %d calls", len(rec.payloads))
	}
	if rec.payloads[0]["input"] != path {
		t.Errorf("payload input = %v, want %s", rec.payloads[0]["input"], path)
	}
}

func TestRunSplit_BlankInputWebhookTrigger(t *testing.T) {
	rec := &webhookRecorder{}
	srv := rec.server(t)

	out, _, err := execute(t, NewSplitCommand(), "  \n\t\n", "--webhook-url", srv.URL, "--webhook-trigger", "on_results")
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("expected no output for blank input, got %q", out)
	}
	if len(rec.payloads) != 0 {
		t.Fatalf("on_results should skip blank input, got %d calls", len(rec.payloads))
	}

	_, _, err = execute(t, NewSplitCommand(), "  \n\t\n", "--webhook-url", srv.URL, "--webhook-trigger", "always")
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.payloads) != 1 {
		t.Fatalf("always should send for blank input, got %d calls", len(rec.payloads))
	}
	col1, _ := rec.payloads[0]["column1"].([]any)
	if len(col1) != 0 {
		t.Errorf("payload column1 = %v, want empty", rec.payloads[0]["column1"])
	}
}
