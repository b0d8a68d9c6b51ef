package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/docparse/doc/comment"
	"github.com/dhamidi/docparse/doc/parser"
	"github.com/dhamidi/docparse/format"
)

func newParseCmd(g *globals) *cobra.Command {
	var outputFormat string
	var scope string
	var line int
	var strip bool
	var textOnly bool
	var showLines bool

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a documentation comment and dump the tree",
		Long: `Parse reads one documentation comment from a file or standard input
and prints the resulting tree. Warnings go to standard error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd, g)
			if err != nil {
				return err
			}
			name, input, err := readInput(args)
			if err != nil {
				return err
			}
			if strip {
				var skipped int
				input, skipped = comment.Strip(input)
				line += skipped
			}

			sink := &parser.Collector{}
			opts := append(e.options(),
				parser.WithSink(sink),
				parser.WithFile(name),
				parser.WithStartLine(line),
				parser.WithScope(scope),
			)

			var root *parser.Node
			if textOnly {
				root = parser.ParseText(input, opts...)
			} else {
				root = parser.Parse(input, opts...).Root
			}

			var encoder format.Encoder
			switch outputFormat {
			case "tree":
				tp := format.NewTreePrinter(os.Stdout)
				tp.ShowLines = showLines
				encoder = tp
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "text":
				encoder = format.NewTextEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			if err := encoder.Encode(root); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if outputFormat == "json" {
				fmt.Println()
			}

			newWarningPrinter(os.Stderr).Print(sink.Diagnostics())
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (tree, json, text)")
	cmd.Flags().StringVar(&scope, "scope", "", "qualified name of the scope references are resolved in")
	cmd.Flags().IntVar(&line, "line", 1, "line number of the first line of the comment")
	cmd.Flags().BoolVar(&strip, "strip", false, "strip comment markers (/** */, ///) before parsing")
	cmd.Flags().BoolVar(&textOnly, "text", false, "parse as plain text, e.g. a title")
	cmd.Flags().BoolVar(&showLines, "lines", false, "show source lines in tree output")

	return cmd
}
