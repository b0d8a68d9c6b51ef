package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/pflag"

	"github.com/dhamidi/docparse/doc/parser"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docparse.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Parser != parser.DefaultConfig() {
		t.Errorf("expected the default parser flags, got %+v", cfg.Parser)
	}
	if len(cfg.ExamplePath) != 0 || cfg.Index != "" {
		t.Errorf("expected no paths, got %+v", cfg)
	}
}

func TestLoad_FindsConfigInHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if err := os.WriteFile(filepath.Join(home, ".docparse.yaml"), []byte("index: ~/symbols.yaml\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if want := filepath.Join(home, "symbols.yaml"); cfg.Index != want {
		t.Errorf("expected index %s, got %s", want, cfg.Index)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
warn_if_doc_error: false
warn_no_paramdoc: true
generate_todolist: false
max_depth: 64
example_path:
  - examples
  - more/examples
index: symbols.yaml
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Parser.WarnIfDocError || !cfg.Parser.WarnNoParamDoc || cfg.Parser.GenerateTodoList {
		t.Errorf("unexpected flags %+v", cfg.Parser)
	}
	if cfg.Parser.MaxDepth != 64 {
		t.Errorf("expected max depth 64, got %d", cfg.Parser.MaxDepth)
	}
	if !slices.Equal(cfg.ExamplePath, []string{"examples", "more/examples"}) {
		t.Errorf("unexpected example path %v", cfg.ExamplePath)
	}
	if cfg.Dirs().Example[1] != "more/examples" {
		t.Errorf("expected the example path in the file dirs, got %+v", cfg.Dirs())
	}
	if cfg.Index != "symbols.yaml" {
		t.Errorf("unexpected index %q", cfg.Index)
	}
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "warn_no_paramdoc: false\n")
	t.Setenv("DOCPARSE_WARN_NO_PARAMDOC", "true")
	t.Setenv("DOCPARSE_IMAGE_PATH", "img,pics")

	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Parser.WarnNoParamDoc {
		t.Errorf("expected the environment to win")
	}
	if !slices.Equal(cfg.ImagePath, []string{"img", "pics"}) {
		t.Errorf("unexpected image path %v", cfg.ImagePath)
	}
}

func TestLoad_Flags(t *testing.T) {
	path := writeConfig(t, "max_depth: 64\nindex: from-file.yaml\n")
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flags)
	if err := flags.Parse([]string{"--max-depth=16", "--example-path=/a,/b"}); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Parser.MaxDepth != 16 {
		t.Errorf("expected the flag to win, got max depth %d", cfg.Parser.MaxDepth)
	}
	if !slices.Equal(cfg.ExamplePath, []string{"/a", "/b"}) {
		t.Errorf("unexpected example path %v", cfg.ExamplePath)
	}
	if cfg.Index != "from-file.yaml" {
		t.Errorf("expected unset flags to leave the file value, got %q", cfg.Index)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Errorf("expected an error for a missing config file")
	}
	if _, err := Load(writeConfig(t, "max_depth: 0\n"), nil); err == nil {
		t.Errorf("expected an error for a zero max depth")
	}
	if _, err := Load(writeConfig(t, "max_depth: [\n"), nil); err == nil {
		t.Errorf("expected an error for invalid yaml")
	}
}
