package cmd

import (
	"context"
	"errors"
	"flag"
	"testing"
)

type testConfig struct {
	Address string `env:"CMD_TEST_ADDRESS" envDefault:"127.0.0.1:8080"`
	Mode    string `env:"CMD_TEST_MODE" envDefault:"server"`
}

func TestParseConfigFromArgsFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SACRED_VERSES_CMD_TEST_ADDRESS", "env:9000")
	t.Setenv("SACRED_VERSES_CMD_TEST_MODE", "env-mode")

	var cfg testConfig
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.StringVar(&cfg.Address, "address", "", "address")
	fs.StringVar(&cfg.Mode, "mode", "", "mode")
	// Flag defaults are bound before env parsing, so env values stand
	// unless the flag is passed.
	if err := ParseConfigFromArgs(&cfg, fs, []string{"-address", "flag:9001"}); err != nil {
		t.Fatalf("ParseConfigFromArgs() error = %v", err)
	}
	if cfg.Address != "flag:9001" {
		t.Fatalf("Address = %q, want %q", cfg.Address, "flag:9001")
	}
	if cfg.Mode != "env-mode" {
		t.Fatalf("Mode = %q, want %q", cfg.Mode, "env-mode")
	}
}

func TestParseConfigFromArgsRequiresInputs(t *testing.T) {
	if err := ParseConfigFromArgs[testConfig](nil, flag.NewFlagSet("x", flag.ContinueOnError), nil); err == nil {
		t.Fatalf("ParseConfigFromArgs(nil cfg) error = nil, want error")
	}
	if err := ParseConfigFromArgs(&testConfig{}, nil, nil); err == nil {
		t.Fatalf("ParseConfigFromArgs(nil fs) error = nil, want error")
	}
}

func TestRunWithTelemetryRunsAndPropagatesErrors(t *testing.T) {
	t.Setenv("SACRED_VERSES_OTEL_ENDPOINT", "")

	boom := errors.New("boom")
	err := RunWithTelemetry(context.Background(), ServiceWeb, nil, func(context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunWithTelemetry() error = %v, want %v", err, boom)
	}
}

func TestRunWithTelemetryValidatesInputs(t *testing.T) {
	if err := RunWithTelemetry(context.Background(), " ", nil, func(context.Context) error { return nil }); err == nil {
		t.Fatalf("RunWithTelemetry(blank service) error = nil, want error")
	}
	if err := RunWithTelemetry(context.Background(), ServiceWeb, nil, nil); err == nil {
		t.Fatalf("RunWithTelemetry(nil run) error = nil, want error")
	}
}
