package events

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sinks.yaml")
	raw := `
sinks:
  - id: audit-http
    type: http
    enabled: false
    http:
      url: https://audit.example.com/hook
  - id: audit-sqs
    type: sqs
    enabled: true
    sqs:
      queue_url: https://sqs.eu-west-1.amazonaws.com/123/audit
      region: eu-west-1
  - id: audit-sns
    type: sns
    sns:
      topic_arn: arn:aws:sns:eu-west-1:123:audit
      region: eu-west-1
  - id: audit-pubsub
    type: pubsub
    pubsub:
      project_id: audit-project
      topic: store-ops
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 4 {
		t.Fatalf("expected 4 sinks, got %d", len(reg.All()))
	}

	enabled := reg.Enabled()
	if len(enabled) != 3 {
		t.Fatalf("expected 3 enabled sinks, got %d", len(enabled))
	}
	for _, cfg := range enabled {
		if cfg.ID == "audit-http" {
			t.Fatalf("disabled sink leaked into enabled set")
		}
	}

	cfg, ok := reg.ByID("audit-sqs")
	if !ok {
		t.Fatalf("expected audit-sqs to be loaded")
	}
	if cfg.SQS == nil || cfg.SQS.Region != "eu-west-1" {
		t.Fatalf("unexpected sqs config: %#v", cfg.SQS)
	}
}

func TestLoadRegistryDuplicateID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sinks.yaml")
	raw := `
sinks:
  - id: dup
    type: http
    http:
      url: https://one.example
  - id: dup
    type: http
    http:
      url: https://two.example
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate sink error, got nil")
	}
}

func TestValidateSinkConfigRejectsMissingBlocks(t *testing.T) {
	cases := []SinkConfig{
		{ID: "h1", Type: TypeHTTP},
		{ID: "q1", Type: TypeSQS},
		{ID: "t1", Type: TypeSNS},
		{ID: "p1", Type: TypePubSub},
		{ID: "q2", Type: TypeSQS, SQS: &SQSSinkConfig{QueueURL: "https://q"}},
		{ID: "p2", Type: TypePubSub, PubSub: &PubSubSinkConfig{ProjectID: "proj"}},
	}
	for _, cfg := range cases {
		if err := validateSinkConfig(cfg); err == nil {
			t.Fatalf("expected validation error for %s sink %q", cfg.Type, cfg.ID)
		}
	}
}

func TestSanitizeSinkConfigDefaults(t *testing.T) {
	cfg := sanitizeSinkConfig(SinkConfig{
		ID:   " hook ",
		Type: " HTTP ",
		HTTP: &HTTPSinkConfig{
			URL:     " https://example.com ",
			Headers: map[string]string{" X-Key ": " v ", "": "drop"},
		},
	})

	if cfg.ID != "hook" || cfg.Type != TypeHTTP {
		t.Fatalf("unexpected sanitized identity: %q %q", cfg.ID, cfg.Type)
	}
	if cfg.HTTP.Method != "POST" {
		t.Fatalf("expected default method POST, got %s", cfg.HTTP.Method)
	}
	if cfg.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("expected default timeout, got %d", cfg.HTTP.TimeoutSeconds)
	}
	if len(cfg.HTTP.Headers) != 1 || cfg.HTTP.Headers["X-Key"] != "v" {
		t.Fatalf("unexpected headers: %#v", cfg.HTTP.Headers)
	}
	if !cfg.EnabledValue() {
		t.Fatalf("expected enabled default true")
	}
}
