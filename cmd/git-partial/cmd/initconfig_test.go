package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/bianoble/git-partial/internal/config"
)

func TestInitConfigCreatesFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "nested", config.FileName)

	output, err := run(t, "init-config", "--path", outPath)
	if err != nil {
		t.Fatalf("init-config: %v", err)
	}
	if !strings.Contains(output, "Created "+outPath) {
		t.Errorf("output = %q", output)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("starter is not valid YAML: %v", err)
	}
	if cfg != *config.Default() {
		t.Errorf("starter = %+v, want defaults", cfg)
	}
}

func TestInitConfigRefusesOverwrite(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(outPath, []byte("existing"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := run(t, "init-config", "--path", outPath)
	if err == nil {
		t.Fatal("expected error when file exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("error should mention 'already exists': %v", err)
	}
}

func TestInitConfigForceOverwrites(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), config.FileName)
	if err := os.WriteFile(outPath, []byte("version: [\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// A broken file at the --config path must not block rewriting it.
	if _, err := run(t, "init-config", "--path", outPath, "--config", outPath, "--force"); err != nil {
		t.Fatalf("init-config --force: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != config.Starter {
		t.Error("--force should overwrite existing file")
	}
}
