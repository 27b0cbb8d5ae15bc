package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/steave-git/Streaming-Musical-Web/internal/shared"
)

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}

			runner := NewRunner(RunnerOpts{Logger: logger, Output: output})

			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
		})

		t.Run("with defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.logger == nil {
				t.Error("expected a default logger")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to stdout")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})
		commands := runner.register()

		if len(commands) != 2 {
			t.Fatalf("expected 2 commands, got %d", len(commands))
		}

		names := map[string]bool{}
		for _, cmd := range commands {
			names[cmd.Name] = true
		}
		for _, want := range []string{"serve", "setup"} {
			if !names[want] {
				t.Errorf("expected %s command to be registered", want)
			}
		}
	})

	t.Run("loadConfig", func(t *testing.T) {
		t.Run("missing file falls back to defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			config := runner.loadConfig(filepath.Join(t.TempDir(), "missing.toml"))

			if config.Server.Port != 5000 {
				t.Errorf("expected default port 5000, got %d", config.Server.Port)
			}
		})

		t.Run("environment overrides file", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			path := filepath.Join(t.TempDir(), "config.toml")
			if err := shared.CreateConfigFile(path); err != nil {
				t.Fatalf("failed to create config file: %v", err)
			}

			t.Setenv("YOUTUBE_API_KEY", "env-key")
			t.Setenv("SECRET_KEY", "env-secret")

			config := runner.loadConfig(path)

			if config.Credentials.YouTube.APIKey != "env-key" {
				t.Errorf("expected API key from environment, got %q", config.Credentials.YouTube.APIKey)
			}
			if config.Session.Secret != "env-secret" {
				t.Errorf("expected session secret from environment, got %q", config.Session.Secret)
			}
		})
	})
}
