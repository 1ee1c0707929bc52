package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:           "8080",
		Environment:    "development",
		BaseURL:        "http://localhost:8080",
		DatabaseURL:    "postgresql://localhost:5432/arguemate",
		JWTSecret:      "test-secret",
		GeminiTimeout:  10 * time.Second,
		PriorityCity:   "Toronto",
		AgeBandYears:   5,
		LocalUploadDir: "./uploads",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing database url", func(c *Config) { c.DatabaseURL = "" }, true},
		{"nonpositive gemini timeout", func(c *Config) { c.GeminiTimeout = 0 }, true},
		{"empty priority city", func(c *Config) { c.PriorityCity = "" }, true},
		{"negative age band", func(c *Config) { c.AgeBandYears = -1 }, true},
		{"zero age band disables filter", func(c *Config) { c.AgeBandYears = 0 }, false},
		{"s3 without bucket", func(c *Config) { c.UseS3 = true; c.S3Bucket = "" }, true},
		{"local storage without dir", func(c *Config) { c.LocalUploadDir = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestValidateProductionGuards(t *testing.T) {
	cfg := validConfig()
	cfg.Environment = "production"
	cfg.JWTSecret = "your-super-secret-key-change-this-in-production"
	cfg.GeminiAPIKey = "key"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected default JWT secret to be rejected in production")
	}

	cfg.JWTSecret = "rotated-secret"
	cfg.GeminiAPIKey = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing Gemini key to be rejected in production")
	}

	cfg.GeminiAPIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("PRIORITY_CITY", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("GEMINI_TIMEOUT", "")
	t.Setenv("SCORE_BATCH_MODE", "")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.PriorityCity != "Toronto" {
		t.Fatalf("default priority city = %q", cfg.PriorityCity)
	}
	if cfg.GeminiModel != "gemini-pro" {
		t.Fatalf("default model = %q", cfg.GeminiModel)
	}
	if cfg.GeminiTimeout != 10*time.Second {
		t.Fatalf("default timeout = %v", cfg.GeminiTimeout)
	}
	if !cfg.ScoreBatchMode {
		t.Fatal("batch mode should default to true")
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Fatalf("derived base url = %q", cfg.BaseURL)
	}
}
