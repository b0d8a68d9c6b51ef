package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/docparse/doc/parser"
	"github.com/dhamidi/docparse/grammar"
)

var lexerModes = map[string]parser.Mode{
	"para":         parser.ModePara,
	"title":        parser.ModeTitle,
	"title-attr":   parser.ModeTitleAttr,
	"param":        parser.ModeParam,
	"file":         parser.ModeFile,
	"pattern":      parser.ModePattern,
	"link":         parser.ModeLink,
	"ref":          parser.ModeRef,
	"internal-ref": parser.ModeInternalRef,
	"xref-item":    parser.ModeXRefItem,
	"skip-title":   parser.ModeSkipTitle,
	"code":         parser.ModeCode,
	"xml-code":     parser.ModeXMLCode,
	"verbatim":     parser.ModeVerbatim,
	"html-only":    parser.ModeHTMLOnly,
	"man-only":     parser.ModeManOnly,
	"latex-only":   parser.ModeLatexOnly,
	"xml-only":     parser.ModeXMLOnly,
	"dot":          parser.ModeDot,
	"text":         parser.ModeText,
}

func modeNames() string {
	names := make([]string, 0, len(lexerModes))
	for name := range lexerModes {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func newTokensCmd() *cobra.Command {
	var mode string
	var useGrammar bool
	var grammarFile string

	cmd := &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the token stream of a documentation comment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, input, err := readInput(args)
			if err != nil {
				return err
			}
			if useGrammar || grammarFile != "" {
				return printGrammarTokens(name, input, grammarFile)
			}

			m, ok := lexerModes[mode]
			if !ok {
				return fmt.Errorf("unknown mode %q (expected one of %s)", mode, modeNames())
			}
			l := parser.NewLexer()
			l.Init(input, name, 1)
			l.SetMode(m)
			for {
				tok := l.Next()
				fmt.Printf("%d\t%s\n", tok.Line, tok)
				if tok.Kind == parser.TokenEOF {
					return nil
				}
			}
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "para", "lexer mode ("+modeNames()+")")
	cmd.Flags().BoolVar(&useGrammar, "grammar", false, "scan with the embedded EBNF grammar instead of the lexer")
	cmd.Flags().StringVar(&grammarFile, "grammar-file", "", "scan with this EBNF grammar file (implies --grammar)")

	return cmd
}

func printGrammarTokens(name, input, grammarFile string) error {
	var s *grammar.Scanner
	if grammarFile == "" {
		var err error
		if s, err = grammar.NewMarkupScanner([]byte(input), name); err != nil {
			return err
		}
	} else {
		g, err := grammar.LoadFile(grammarFile)
		if err != nil {
			return err
		}
		kinds, err := grammar.TokenKinds(g, grammar.TokenProduction)
		if err != nil {
			return err
		}
		s = grammar.NewScanner(g, kinds, []byte(input), name)
	}
	for _, tok := range s.All() {
		fmt.Println(tok)
	}
	return nil
}
