package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"HTTP_PORT", "LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "CATALOG_DSN",
		"SESSION_TTL", "SESSION_SWEEP", "SIM_CONFIG", "SIM_MODE", "SIM_SEED",
		"CHAT_GREETING", "ALLOWED_ORIGINS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("LogLevel = %q, want INFO", cfg.LogLevel)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Errorf("SessionTTL = %v, want 30m", cfg.SessionTTL)
	}
	if cfg.SimMode != SimModeRandom {
		t.Errorf("SimMode = %q, want %q", cfg.SimMode, SimModeRandom)
	}
	if !cfg.ChatGreeting {
		t.Error("ChatGreeting should default to true")
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
	if cfg.Sim.Chat.ReplyDelay != DefaultReplyDelay {
		t.Errorf("Sim.Chat.ReplyDelay = %v, want %v", cfg.Sim.Chat.ReplyDelay, DefaultReplyDelay)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("SIM_MODE", "Deterministic")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("CHAT_GREETING", "off")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://sera.example ,")
	t.Setenv("SIM_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q", cfg.HTTPPort)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("LogLevel = %q, want DEBUG", cfg.LogLevel)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Errorf("SessionTTL = %v", cfg.SessionTTL)
	}
	if cfg.SimMode != SimModeDeterministic {
		t.Errorf("SimMode = %q", cfg.SimMode)
	}
	if cfg.SimSeed != 42 {
		t.Errorf("SimSeed = %d", cfg.SimSeed)
	}
	if cfg.ChatGreeting {
		t.Error("ChatGreeting should be false")
	}
	want := []string{"http://localhost:5173", "https://sera.example"}
	if strings.Join(cfg.AllowedOrigins, "|") != strings.Join(want, "|") {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("SIM_CONFIG", "")
	t.Setenv("LOG_LEVEL", "chatty")
	t.Setenv("SIM_MODE", "psychic")
	t.Setenv("SESSION_SWEEP", "every now and then")
	t.Setenv("SESSION_TTL", "-1m")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"LOG_LEVEL", "SIM_MODE", "SESSION_SWEEP", "SESSION_TTL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should mention %s", err, want)
		}
	}
}

func TestLoad_ZeroSessionTTLDisablesExpiry(t *testing.T) {
	t.Setenv("SIM_CONFIG", "")
	t.Setenv("SESSION_TTL", "0s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SessionTTL != 0 {
		t.Errorf("SessionTTL = %v, want 0", cfg.SessionTTL)
	}
}

func TestLoad_WithSimConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	data := "chat:\n  reply_delay: 10ms\napplication:\n  approval_probability: 1\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SIM_CONFIG", path)
	t.Setenv("LOG_LEVEL", "INFO")
	t.Setenv("SIM_MODE", "random")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Sim.Chat.ReplyDelay != 10*time.Millisecond {
		t.Errorf("ReplyDelay = %v, want 10ms", cfg.Sim.Chat.ReplyDelay)
	}
	if cfg.Sim.Application.ApprovalProbability != 1 {
		t.Errorf("ApprovalProbability = %v, want 1", cfg.Sim.Application.ApprovalProbability)
	}
}

func TestLoad_MissingSimConfigFile(t *testing.T) {
	t.Setenv("SIM_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing tuning file")
	}
}
