package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".config", appName)
	if dir != expected {
		t.Errorf("configDir() = %q, want %q", dir, expected)
	}
	if !strings.HasSuffix(dir, appName) {
		t.Errorf("configDir() = %q, should end with %q", dir, appName)
	}
}

func TestConfigDirXDG(t *testing.T) {
	customConfig := filepath.Join(t.TempDir(), "custom-config")
	t.Setenv("XDG_CONFIG_HOME", customConfig)

	dir, err := configDir()
	if err != nil {
		t.Fatalf("configDir() error: %v", err)
	}

	expected := filepath.Join(customConfig, appName)
	if dir != expected {
		t.Errorf("configDir() with XDG_CONFIG_HOME = %q, want %q", dir, expected)
	}
}

func TestStylePath(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv(configEnv, "")
	c := New(io.Discard, LogInfo)

	if got := c.stylePath(); got != "" {
		t.Errorf("stylePath() without any file = %q, want empty", got)
	}

	inDir := filepath.Join(xdg, appName, styleFile)
	if err := os.MkdirAll(filepath.Dir(inDir), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(inDir, []byte("graphics_layer_name = \"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := c.stylePath(); got != inDir {
		t.Errorf("stylePath() = %q, want config dir file %q", got, inDir)
	}

	t.Setenv(configEnv, "/env/style.toml")
	if got := c.stylePath(); got != "/env/style.toml" {
		t.Errorf("stylePath() = %q, want $%s", got, configEnv)
	}

	c.configPath = "/flag/style.toml"
	if got := c.stylePath(); got != "/flag/style.toml" {
		t.Errorf("stylePath() = %q, want --config", got)
	}
}
