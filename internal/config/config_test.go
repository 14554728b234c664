package config

import (
	"os"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	_ = os.Unsetenv("DEPTHWATCH_CONFIG")
	_ = os.Unsetenv("DEPTHWATCH_LOG_LEVEL")
	_ = os.Unsetenv("DEPTHWATCH_POLL_INTERVAL_SECONDS")
	_ = os.Unsetenv("DEPTHWATCH_ON_ERROR")

	c := Load()
	if c.Cycle.PollIntervalSeconds != 10 {
		t.Fatalf("expected default poll interval 10, got %d", c.Cycle.PollIntervalSeconds)
	}
	if c.Cycle.Quantity != 10.0 {
		t.Fatalf("expected default quantity 10.0, got %v", c.Cycle.Quantity)
	}
	if c.Cycle.OnError != "wait" {
		t.Fatalf("expected default on_error wait, got %s", c.Cycle.OnError)
	}
	if c.Logging.Level != "info" {
		t.Fatalf("expected default log level info, got %s", c.Logging.Level)
	}
	if c.Venues.Coinbase.Product != "BTC-USD" || c.Venues.Gemini.Symbol != "BTCUSD" {
		t.Fatalf("unexpected default venue symbols: %s / %s", c.Venues.Coinbase.Product, c.Venues.Gemini.Symbol)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("DEPTHWATCH_LOG_LEVEL", "debug")
	t.Setenv("DEPTHWATCH_POLL_INTERVAL_SECONDS", "30")
	t.Setenv("DEPTHWATCH_ON_ERROR", "retry")
	t.Setenv("DEPTHWATCH_QUANTITY", "2.5")
	c := Load()
	if c.Logging.Level != "debug" {
		t.Fatalf("env override failed for log level, got %s", c.Logging.Level)
	}
	if c.Cycle.PollIntervalSeconds != 30 {
		t.Fatalf("env override failed for poll interval, got %d", c.Cycle.PollIntervalSeconds)
	}
	if c.Cycle.OnError != "retry" {
		t.Fatalf("env override failed for on_error, got %s", c.Cycle.OnError)
	}
	if c.Cycle.Quantity != 2.5 {
		t.Fatalf("env override failed for quantity, got %v", c.Cycle.Quantity)
	}
}

func TestBogusEnvValuesIgnored(t *testing.T) {
	t.Setenv("DEPTHWATCH_POLL_INTERVAL_SECONDS", "-3")
	t.Setenv("DEPTHWATCH_ON_ERROR", "explode")
	t.Setenv("DEPTHWATCH_QUANTITY", "0")
	c := Load()
	if c.Cycle.PollIntervalSeconds != 10 {
		t.Fatalf("negative poll interval should be ignored, got %d", c.Cycle.PollIntervalSeconds)
	}
	if c.Cycle.OnError != "wait" {
		t.Fatalf("unknown on_error should be ignored, got %s", c.Cycle.OnError)
	}
	if c.Cycle.Quantity != 10.0 {
		t.Fatalf("zero quantity should be ignored, got %v", c.Cycle.Quantity)
	}
}
