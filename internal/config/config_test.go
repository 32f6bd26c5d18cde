package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderOllama {
		t.Errorf("expected default provider %q, got %q", ProviderOllama, cfg.Provider)
	}
	if cfg.Model != "llama3" {
		t.Errorf("expected default model llama3, got %q", cfg.Model)
	}
	if cfg.Temperature != 0.1 {
		t.Errorf("expected default temperature 0.1, got %f", cfg.Temperature)
	}
	if cfg.TopK != 5 {
		t.Errorf("expected default top_k 5, got %d", cfg.TopK)
	}
	if cfg.PersistDir != "" {
		t.Errorf("expected in-memory index by default, got persist_dir %q", cfg.PersistDir)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.pdfcopilot.yml")

	original := DefaultConfig()
	original.Provider = ProviderOpenAI
	original.Model = "gpt-4o-mini"
	original.EmbeddingProvider = ProviderOpenAI
	original.EmbeddingModel = "text-embedding-3-small"
	original.PersistDir = "/tmp/pdfcopilot-index"
	original.TopK = 8

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Provider != original.Provider {
		t.Errorf("provider: got %q, want %q", loaded.Provider, original.Provider)
	}
	if loaded.Model != original.Model {
		t.Errorf("model: got %q, want %q", loaded.Model, original.Model)
	}
	if loaded.EmbeddingModel != original.EmbeddingModel {
		t.Errorf("embedding_model: got %q, want %q", loaded.EmbeddingModel, original.EmbeddingModel)
	}
	if loaded.PersistDir != original.PersistDir {
		t.Errorf("persist_dir: got %q, want %q", loaded.PersistDir, original.PersistDir)
	}
	if loaded.TopK != original.TopK {
		t.Errorf("top_k: got %d, want %d", loaded.TopK, original.TopK)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yml"))
	if err != nil {
		t.Fatalf("Load of missing file should fall back to defaults: %v", err)
	}
	if cfg.Provider != ProviderOllama || cfg.TopK != 5 {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("PDFCOPILOT_MODEL", "llama3:70b")
	t.Setenv("PDFCOPILOT_TOP_K", "3")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "llama3:70b" {
		t.Errorf("model env override: got %q, want llama3:70b", cfg.Model)
	}
	if cfg.TopK != 3 {
		t.Errorf("top_k env override: got %d, want 3", cfg.TopK)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty provider", func(c *Config) { c.Provider = "" }},
		{"unknown provider", func(c *Config) { c.Provider = "bedrock" }},
		{"empty model", func(c *Config) { c.Model = "" }},
		{"zero top_k", func(c *Config) { c.TopK = 0 }},
		{"negative temperature", func(c *Config) { c.Temperature = -1 }},
		{"bad port", func(c *Config) { c.Port = 0 }},
	}
	for _, tc := range tests {
		cfg := DefaultConfig()
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
