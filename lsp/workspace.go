package lsp

import (
	"os"
	"sort"
	"sync"

	"github.com/dhamidi/docparse/doc/comment"
	"github.com/dhamidi/docparse/doc/parser"
)

// Workspace keeps the source files an editor has open together with the
// warnings their documentation comments produced. It is safe for
// concurrent use.
type Workspace struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo

	index  parser.SymbolIndex
	source parser.FileProvider
	config parser.Config
}

type FileInfo struct {
	Path        string
	Content     []byte
	Blocks      []comment.Block
	Diagnostics []parser.Diagnostic
}

// WorkspaceOption configures a Workspace.
type WorkspaceOption func(*Workspace)

func WithIndex(idx parser.SymbolIndex) WorkspaceOption {
	return func(w *Workspace) { w.index = idx }
}

func WithFiles(files parser.FileProvider) WorkspaceOption {
	return func(w *Workspace) { w.source = files }
}

func WithConfig(cfg parser.Config) WorkspaceOption {
	return func(w *Workspace) { w.config = cfg }
}

func NewWorkspace(rootDir string, opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
		config:  parser.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) RootDir() string {
	return w.rootDir
}

// ScanFile reads path from disk and checks it.
func (w *Workspace) ScanFile(path string) (*FileInfo, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return w.UpdateFile(path, content), nil
}

// UpdateFile replaces the content of path and checks every documentation
// comment in it.
func (w *Workspace) UpdateFile(path string, content []byte) *FileInfo {
	info := Check(path, content, w.index, w.source, w.config)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[path] = info
	return info
}

func (w *Workspace) RemoveFile(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

func (w *Workspace) GetFile(path string) *FileInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Paths returns the paths of all known files, sorted.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.files))
	for p := range w.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Check extracts the documentation comments of content and parses each
// one, collecting the warnings. The parse of one block never affects
// another.
func Check(path string, content []byte, idx parser.SymbolIndex, files parser.FileProvider, cfg parser.Config) *FileInfo {
	info := &FileInfo{
		Path:    path,
		Content: content,
		Blocks:  comment.Extract(string(content)),
	}
	sink := &parser.Collector{}
	for _, b := range info.Blocks {
		opts := []parser.Option{
			parser.WithFile(path),
			parser.WithStartLine(b.Line),
			parser.WithSink(sink),
			parser.WithConfig(cfg),
		}
		if idx != nil {
			opts = append(opts, parser.WithIndex(idx))
		}
		if files != nil {
			opts = append(opts, parser.WithFiles(files))
		}
		parser.Parse(b.Text, opts...)
	}
	info.Diagnostics = sink.Diagnostics()
	log.Debugf("%s: %d comment blocks, %d warnings", path, len(info.Blocks), len(info.Diagnostics))
	return info
}
