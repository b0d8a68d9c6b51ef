package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/docparse/lsp"
)

// sourceExts are the file extensions check looks at when walking a
// directory.
var sourceExts = map[string]bool{
	".h": true, ".hh": true, ".hpp": true, ".hxx": true,
	".c": true, ".cc": true, ".cpp": true, ".cxx": true,
	".java": true, ".cs": true, ".m": true, ".mm": true,
	".d": true, ".idl": true, ".dox": true,
}

func newCheckCmd(g *globals) *cobra.Command {
	var failOnWarning bool

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Check the documentation comments of source files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, g)
			if err != nil {
				return err
			}
			ws := lsp.NewWorkspace(".",
				lsp.WithIndex(e.index),
				lsp.WithFiles(e.files),
				lsp.WithConfig(e.cfg.Parser),
			)

			paths, err := collectSources(args)
			if err != nil {
				return err
			}

			printer := newWarningPrinter(os.Stdout)
			var warnings, blocks int
			for _, path := range paths {
				info, err := ws.ScanFile(path)
				if err != nil {
					return fmt.Errorf("check %s: %w", path, err)
				}
				blocks += len(info.Blocks)
				warnings += len(info.Diagnostics)
				printer.Print(info.Diagnostics)
			}

			fmt.Fprintf(os.Stderr, "%d files, %d comment blocks, %d warnings\n", len(paths), blocks, warnings)
			if failOnWarning && warnings > 0 {
				cmd.SilenceUsage = true
				return fmt.Errorf("%d warnings", warnings)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&failOnWarning, "fail", false, "exit with an error if any warning was found")

	return cmd
}

// collectSources expands directories into the source files below them.
// Files named explicitly are always checked.
func collectSources(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if path != arg && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if sourceExts[strings.ToLower(filepath.Ext(path))] {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", arg, err)
		}
	}
	return paths, nil
}
