package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/dhamidi/docparse/doc/parser"
)

func memProvider(t *testing.T, files map[string]string, dirs Dirs) *Provider {
	t.Helper()
	fsys := afero.NewMemMapFs()
	for path, content := range files {
		if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewWithFs(fsys, dirs)
}

func TestProvider_Locate(t *testing.T) {
	p := memProvider(t, map[string]string{
		"/ex/hello.c":        "int main() {}",
		"/ex/sub/util.c":     "void util();",
		"/ex/a/dup.c":        "a",
		"/ex/b/dup.c":        "b",
		"/img/logo.png":      "png",
		"/other/only_here.c": "x",
	}, Dirs{Example: []string{"/ex"}, Image: []string{"/img"}})

	tests := []struct {
		name    string
		file    string
		kind    parser.FileKind
		want    string
		wantErr error
	}{
		{"direct", "hello.c", parser.FileExample, "/ex/hello.c", nil},
		{"nested by suffix", "util.c", parser.FileExample, "/ex/sub/util.c", nil},
		{"nested by path", "sub/util.c", parser.FileExample, "/ex/sub/util.c", nil},
		{"image dir", "logo.png", parser.FileImage, "/img/logo.png", nil},
		{"wrong kind", "logo.png", parser.FileExample, "", ErrNotFound},
		{"outside search path", "only_here.c", parser.FileExample, "", ErrNotFound},
		{"absolute", "/other/only_here.c", parser.FileDot, "/other/only_here.c", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Locate(tt.file, tt.kind)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("locate: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}

	_, err := p.Locate("dup.c", parser.FileExample)
	var ambiguous *AmbiguousError
	if !errors.As(err, &ambiguous) {
		t.Fatalf("expected an ambiguity error, got %v", err)
	}
	if len(ambiguous.Candidates) != 2 || ambiguous.Candidates[0] != "/ex/a/dup.c" {
		t.Errorf("unexpected candidates %v", ambiguous.Candidates)
	}
}

func TestProvider_Read(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.c"), []byte("int main();\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p := New(Dirs{Example: []string{dir}})

	text, err := p.Read("main.c", parser.FileExample)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if text != "int main();\n" {
		t.Errorf("unexpected content %q", text)
	}

	if _, err := p.Read("nope.c", parser.FileExample); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProvider_ServesIncludeCommand(t *testing.T) {
	p := memProvider(t, map[string]string{
		"/ex/snippet.c": "int x = 1;\n",
	}, Dirs{Example: []string{"/ex"}})

	sink := &parser.Collector{}
	doc := parser.Parse("\\include snippet.c", parser.WithFiles(p), parser.WithSink(sink))
	if sink.Count() != 0 {
		t.Fatalf("unexpected warnings %v", sink.Diagnostics())
	}
	var inc *parser.Include
	parser.Inspect(doc.Root, func(n *parser.Node) bool {
		if d, ok := n.Data.(*parser.Include); ok {
			inc = d
		}
		return true
	})
	if inc == nil || inc.Text != "int x = 1;\n" {
		t.Errorf("expected the included text, got %+v", inc)
	}
}
