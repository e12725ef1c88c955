package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
server:
  port: 9090
ai:
  model: gpt-4o
  maxTokens: 1024
  temperature: 0.2
limits:
  maxLogBytes: 2048
database:
  driver: postgres
  host: db.internal
  port: 5432
  user: advisor
  password: hunter2
  name: cyberrisk
minio:
  endpoint: minio.internal:9000
  bucketName: raw-logs
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d", cfg.Server.Port)
	}
	if cfg.AI.Model != "gpt-4o" || cfg.AI.MaxTokens != 1024 {
		t.Errorf("ai = %+v", cfg.AI)
	}
	if cfg.Limits.MaxLogBytes != 2048 {
		t.Errorf("maxLogBytes = %d", cfg.Limits.MaxLogBytes)
	}
	if !cfg.HistoryEnabled() {
		t.Error("postgres driver should enable history")
	}
	if !cfg.ArchiveEnabled() {
		t.Error("minio endpoint should enable archiving")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if cfg.Limits.MaxLogBytes != 1<<20 {
		t.Errorf("default maxLogBytes = %d", cfg.Limits.MaxLogBytes)
	}
	if cfg.Limits.RateLimitBurst != 10 || cfg.Limits.RateLimitPerSec != 2 {
		t.Errorf("default rate limits = %+v", cfg.Limits)
	}
	if cfg.HistoryEnabled() || cfg.ArchiveEnabled() {
		t.Error("history/archive must default to disabled")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", "https://llm.internal/v1")
	t.Setenv("OPENAI_MODEL", "o4-mini")
	t.Setenv("PORT", "7000")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.AI.APIKey != "sk-test" {
		t.Errorf("api key = %q", cfg.AI.APIKey)
	}
	if cfg.AI.BaseURL != "https://llm.internal/v1" {
		t.Errorf("base url = %q", cfg.AI.BaseURL)
	}
	if cfg.AI.Model != "o4-mini" {
		t.Errorf("model = %q, env must beat the file", cfg.AI.Model)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("port = %d, env must beat the file", cfg.Server.Port)
	}
}

func TestDSNHelpers(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatal(err)
	}

	wantPg := "host=db.internal port=5432 user=advisor password=hunter2 dbname=cyberrisk sslmode=disable"
	if got := cfg.PostgresDSN(); got != wantPg {
		t.Errorf("PostgresDSN = %q, want %q", got, wantPg)
	}

	wantMy := "advisor:hunter2@tcp(db.internal:5432)/cyberrisk?parseTime=true&charset=utf8mb4&loc=UTC"
	if got := cfg.MySQLDSN(); got != wantMy {
		t.Errorf("MySQLDSN = %q, want %q", got, wantMy)
	}
}
