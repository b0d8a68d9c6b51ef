package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/docparse/config"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// globals are the persistent flags shared by every command.
type globals struct {
	configFile string
	verbose    int
	logFile    string
}

func main() {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "docparse",
		Short:   "Parse and check documentation comments",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			var path *string
			if g.logFile != "" {
				path = &g.logFile
			}
			commonlog.Configure(g.verbose, path)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&g.configFile, "config", "", "config file (default: docparse.yaml or .docparse.yaml in . or $HOME)")
	flags.CountVarP(&g.verbose, "verbose", "v", "increase log verbosity")
	flags.StringVar(&g.logFile, "log-file", "", "write logs to this file instead of stderr")
	config.AddFlags(flags)

	rootCmd.AddCommand(newParseCmd(g))
	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newCheckCmd(g))
	rootCmd.AddCommand(newLSPCmd(g))
	rootCmd.AddCommand(newServeCmd(g))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
