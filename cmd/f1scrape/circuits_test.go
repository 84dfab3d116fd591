package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/f1data/f1scrape/internal/config"
)

// TestNewCircuitsCmd tests the circuits command construction.
func TestNewCircuitsCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCircuitsCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "circuits" {
			t.Errorf("expected 'circuits', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has url flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("url")
		if flag == nil {
			t.Fatal("expected url flag to exist")
		}
		if flag.Shorthand != "u" {
			t.Errorf("expected shorthand 'u', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.DefaultCircuitsURL {
			t.Errorf("expected default %q, got %q", config.DefaultCircuitsURL, flag.DefValue)
		}
	})

	t.Run("has output flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("output")
		if flag == nil {
			t.Fatal("expected output flag to exist")
		}
		if flag.Shorthand != "o" {
			t.Errorf("expected shorthand 'o', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.DefaultCircuitsOutput {
			t.Errorf("expected default %q, got %q", config.DefaultCircuitsOutput, flag.DefValue)
		}
	})

	t.Run("has timeout flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("timeout")
		if flag == nil {
			t.Fatal("expected timeout flag to exist")
		}
		if flag.Shorthand != "t" {
			t.Errorf("expected shorthand 't', got %q", flag.Shorthand)
		}
		if flag.DefValue != config.DefaultHTTPTimeout.String() {
			t.Errorf("expected default %q, got %q", config.DefaultHTTPTimeout.String(), flag.DefValue)
		}
	})

	t.Run("has shared flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"user-agent", "json", "markdown", "report-dir", "preview", "no-archive"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %s flag to exist", name)
			}
		}
	})
}

// TestBuildCircuitsConfig tests circuits configuration building.
func TestBuildCircuitsConfig(t *testing.T) {
	t.Run("builds config with default values", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		cmd := NewCircuitsCmd()
		cfg, err := buildCircuitsConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.CircuitsURL != config.DefaultCircuitsURL {
			t.Errorf("expected default URL, got %q", cfg.CircuitsURL)
		}
		if cfg.CircuitsOutput != config.DefaultCircuitsOutput {
			t.Errorf("expected default output, got %q", cfg.CircuitsOutput)
		}
		if cfg.HTTPTimeout != config.DefaultHTTPTimeout {
			t.Errorf("expected default timeout, got %v", cfg.HTTPTimeout)
		}
	})

	t.Run("applies url flag", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		cmd := NewCircuitsCmd()
		if err := cmd.Flags().Set("url", "https://mirror.example.org/circuits"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildCircuitsConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.CircuitsURL != "https://mirror.example.org/circuits" {
			t.Errorf("expected flag URL, got %q", cfg.CircuitsURL)
		}
	})

	t.Run("applies output and timeout flags", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		cmd := NewCircuitsCmd()
		if err := cmd.Flags().Set("output", "data/circuits.csv"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}
		if err := cmd.Flags().Set("timeout", "10s"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildCircuitsConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.CircuitsOutput != "data/circuits.csv" {
			t.Errorf("expected flag output, got %q", cfg.CircuitsOutput)
		}
		if cfg.HTTPTimeout != 10*time.Second {
			t.Errorf("expected 10s timeout, got %v", cfg.HTTPTimeout)
		}
	})

	t.Run("applies report flags", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		cmd := NewCircuitsCmd()
		if err := cmd.Flags().Set("json", "true"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}
		if err := cmd.Flags().Set("preview", "10"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}
		if err := cmd.Flags().Set("no-archive", "true"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildCircuitsConfig(cmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !cfg.JSONReport {
			t.Error("expected JSONReport to be true")
		}
		if cfg.PreviewRows != 10 {
			t.Errorf("expected 10 preview rows, got %d", cfg.PreviewRows)
		}
		if cfg.SaveToDB {
			t.Error("expected SaveToDB to be false with --no-archive")
		}
	})

	t.Run("flag overrides configuration file", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "f1scrape.yaml")
		content := []byte(`
circuits:
  url: https://file.example.org/circuits
  output: file_circuits.csv
`)
		if err := os.WriteFile(configPath, content, 0o600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		root := NewRootCmd()
		_ = root.PersistentFlags().Set("config", configPath)
		circuitsCmd, _, err := root.Find([]string{"circuits"})
		if err != nil {
			t.Fatalf("failed to find circuits command: %v", err)
		}
		if err := circuitsCmd.Flags().Set("url", "https://flag.example.org/circuits"); err != nil {
			t.Fatalf("failed to set flag: %v", err)
		}

		cfg, err := buildCircuitsConfig(circuitsCmd)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cfg.CircuitsURL != "https://flag.example.org/circuits" {
			t.Errorf("expected flag to win over file, got %q", cfg.CircuitsURL)
		}
		if cfg.CircuitsOutput != "file_circuits.csv" {
			t.Errorf("expected file output to apply, got %q", cfg.CircuitsOutput)
		}
	})
}

// TestRunCircuitsCmdValidation tests that invalid flag combinations are
// rejected before any network access.
func TestRunCircuitsCmdValidation(t *testing.T) {
	t.Run("rejects conflicting report formats", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		root := NewRootCmd()
		root.SetArgs([]string{"circuits", "--json", "--markdown"})

		err := root.Execute()
		if err == nil {
			t.Fatal("expected error for conflicting report formats")
		}
		if !strings.Contains(err.Error(), "conflicting report formats") {
			t.Errorf("expected conflicting report formats error, got %v", err)
		}
	})

	t.Run("rejects empty url", func(t *testing.T) {
		t.Setenv("HOME", t.TempDir())

		root := NewRootCmd()
		root.SetArgs([]string{"circuits", "--url", ""})

		err := root.Execute()
		if err == nil {
			t.Fatal("expected error for empty url")
		}
		if !strings.Contains(err.Error(), "no circuits URL") {
			t.Errorf("expected no circuits URL error, got %v", err)
		}
	})
}
