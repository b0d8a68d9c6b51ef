package lsp

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dhamidi/docparse/doc/index"
	"github.com/dhamidi/docparse/doc/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const source = `#include "list.h"

/**
 * Appends a value.
 * \param value the value
 * \param missing not an argument
 */
void push(int value);

/// See \ref nowhere for details.
int size();
`

func TestWorkspace_UpdateFile(t *testing.T) {
	w := NewWorkspace("/src")
	info := w.UpdateFile("/src/list.c", []byte(source))

	if len(info.Blocks) != 2 {
		t.Fatalf("expected 2 comment blocks, got %d", len(info.Blocks))
	}
	if len(info.Diagnostics) != 1 {
		t.Fatalf("expected 1 warning, got %d: %v", len(info.Diagnostics), info.Diagnostics)
	}
	d := info.Diagnostics[0]
	if d.Kind != parser.UnresolvedReference {
		t.Errorf("expected an unresolved reference, got %s", d.Kind)
	}
	if d.Line != 10 {
		t.Errorf("expected the warning on line 10, got %d", d.Line)
	}
	if d.File != "/src/list.c" {
		t.Errorf("expected the file name in the warning, got %q", d.File)
	}

	if got := w.GetFile("/src/list.c"); got != info {
		t.Errorf("expected GetFile to return the checked file")
	}
	w.RemoveFile("/src/list.c")
	if w.GetFile("/src/list.c") != nil {
		t.Errorf("expected the file to be removed")
	}
}

func TestWorkspace_WithIndex(t *testing.T) {
	idx := index.New()
	idx.AddSection(parser.SectionInfo{Label: "nowhere", Title: "Nowhere", File: "pages", Kind: parser.SectionPage})
	w := NewWorkspace("/src", WithIndex(idx))
	info := w.UpdateFile("/src/list.c", []byte(source))
	if len(info.Diagnostics) != 0 {
		t.Fatalf("expected no warnings once the section is known, got %v", info.Diagnostics)
	}
}

func TestWorkspace_ScanFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.h")
	if err := os.WriteFile(path, []byte("/** \\unknowncmd */\nint a;\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := NewWorkspace(dir)
	info, err := w.ScanFile(path)
	if err != nil {
		t.Fatalf("ScanFile: %v", err)
	}
	if len(info.Diagnostics) != 1 || info.Diagnostics[0].Kind != parser.UnknownCommand {
		t.Fatalf("expected one unknown command warning, got %v", info.Diagnostics)
	}
	if paths := w.Paths(); len(paths) != 1 || paths[0] != path {
		t.Errorf("expected %q in the workspace, got %v", path, paths)
	}

	if _, err := w.ScanFile(filepath.Join(dir, "missing.h")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestWorkspace_WarningsDisabled(t *testing.T) {
	cfg := parser.DefaultConfig()
	cfg.WarnIfDocError = false
	w := NewWorkspace("/src", WithConfig(cfg))
	info := w.UpdateFile("/src/list.c", []byte(source))
	if len(info.Diagnostics) != 0 {
		t.Errorf("expected warnings to be suppressed, got %v", info.Diagnostics)
	}
}

func TestToProtocol(t *testing.T) {
	content := []byte("first\n/// \\bogus here\n")
	diags := []parser.Diagnostic{
		{File: "a.h", Line: 2, Kind: parser.UnknownCommand, Message: "Found unknown command `\\bogus'"},
		{File: "a.h", Line: 0, Kind: parser.StructuralMismatch, Message: "clamped"},
	}
	got := ToProtocol(diags, content)
	if len(got) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d", len(got))
	}

	first := got[0]
	if first.Range.Start.Line != 1 || first.Range.End.Line != 1 {
		t.Errorf("expected 0-based line 1, got %+v", first.Range)
	}
	if first.Range.End.Character != protocol.UInteger(len("/// \\bogus here")) {
		t.Errorf("expected the range to cover the line, got %+v", first.Range)
	}
	if first.Severity == nil || *first.Severity != protocol.DiagnosticSeverityWarning {
		t.Errorf("expected warning severity")
	}
	if first.Code == nil || first.Code.Value != "unknown-command" {
		t.Errorf("expected the kind as code, got %+v", first.Code)
	}
	if first.Message != diags[0].Message {
		t.Errorf("expected message %q, got %q", diags[0].Message, first.Message)
	}

	if got[1].Range.Start.Line != 0 {
		t.Errorf("expected line 0 for an unknown line, got %d", got[1].Range.Start.Line)
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///home/me/src/a.h", "/home/me/src/a.h"},
		{"file:///tmp/with%20space/b.h", "/tmp/with space/b.h"},
		{"relative/c.h", "relative/c.h"},
	}
	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			got, err := uriToPath(tt.uri)
			if err != nil {
				t.Fatalf("uriToPath: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
