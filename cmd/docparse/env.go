package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/dhamidi/docparse/config"
	"github.com/dhamidi/docparse/doc/files"
	"github.com/dhamidi/docparse/doc/index"
	"github.com/dhamidi/docparse/doc/parser"
)

// env is everything a command needs to run the parser.
type env struct {
	cfg   *config.Config
	index parser.SymbolIndex
	files *files.Provider
}

func loadEnv(cmd *cobra.Command, g *globals) (*env, error) {
	cfg, err := config.Load(g.configFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	e := &env{
		cfg:   cfg,
		files: files.New(cfg.Dirs()),
	}
	if cfg.Index != "" {
		idx, err := index.Load(cfg.Index)
		if err != nil {
			return nil, err
		}
		e.index = index.NewCached(idx, index.DefaultCacheTTL)
	}
	return e, nil
}

// options returns the parser options shared by every parse.
func (e *env) options() []parser.Option {
	opts := []parser.Option{
		parser.WithConfig(e.cfg.Parser),
		parser.WithFiles(e.files),
	}
	if e.index != nil {
		opts = append(opts, parser.WithIndex(e.index))
	}
	return opts
}

// readInput reads the named file, or standard input for "-" or no name.
func readInput(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return args[0], string(data), nil
}

// warningPrinter writes diagnostics, highlighted when w is a terminal.
type warningPrinter struct {
	w        io.Writer
	location lipgloss.Style
	label    lipgloss.Style
}

func newWarningPrinter(w io.Writer) *warningPrinter {
	r := lipgloss.NewRenderer(w)
	return &warningPrinter{
		w:        w,
		location: r.NewStyle().Bold(true),
		label:    r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	}
}

func (p *warningPrinter) Print(diags []parser.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(p.w, "%s %s %s [%s]\n",
			p.location.Render(fmt.Sprintf("%s:%d:", d.File, d.Line)),
			p.label.Render("warning:"),
			d.Message,
			d.Kind)
	}
}
