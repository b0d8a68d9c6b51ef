package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/docparse/lsp"
)

func newLSPCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, g)
			if err != nil {
				return err
			}
			server := lsp.NewLSPServer(version,
				lsp.WithIndex(e.index),
				lsp.WithFiles(e.files),
				lsp.WithConfig(e.cfg.Parser),
			)
			return server.RunStdio()
		},
	}
}
