// Package config loads parser flags and search paths from a config
// file, the environment and command line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dhamidi/docparse/doc/files"
	"github.com/dhamidi/docparse/doc/parser"
)

// EnvPrefix prefixes environment variables, e.g. DOCPARSE_INDEX.
const EnvPrefix = "DOCPARSE"

// Config is the complete configuration of the tools.
type Config struct {
	Parser parser.Config `mapstructure:",squash"`

	ExamplePath []string `mapstructure:"example_path"`
	ImagePath   []string `mapstructure:"image_path"`
	DotFileDirs []string `mapstructure:"dotfile_dirs"`
	IncludePath []string `mapstructure:"include_path"`

	// Index is the path of a YAML symbol index.
	Index string `mapstructure:"index"`
}

// Dirs returns the search directories for a files.Provider.
func (c *Config) Dirs() files.Dirs {
	return files.Dirs{
		Example: c.ExamplePath,
		Image:   c.ImagePath,
		Dot:     c.DotFileDirs,
		Include: c.IncludePath,
	}
}

func Default() *Config {
	return &Config{Parser: parser.DefaultConfig()}
}

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"warn-if-doc-error": "warn_if_doc_error",
	"warn-no-paramdoc":  "warn_no_paramdoc",
	"warn-ambiguous":    "warn_ambiguous",
	"max-depth":         "max_depth",
	"example-path":      "example_path",
	"image-path":        "image_path",
	"dotfile-dirs":      "dotfile_dirs",
	"include-path":      "include_path",
	"index":             "index",
}

// AddFlags registers the flags Load understands.
func AddFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.Bool("warn-if-doc-error", d.Parser.WarnIfDocError, "report documentation errors")
	flags.Bool("warn-no-paramdoc", d.Parser.WarnNoParamDoc, "report undocumented parameters")
	flags.Bool("warn-ambiguous", d.Parser.WarnAmbiguous, "report ambiguous references")
	flags.Int("max-depth", d.Parser.MaxDepth, "maximum nesting depth of a comment")
	flags.StringSlice("example-path", nil, "directories searched for \\include files")
	flags.StringSlice("image-path", nil, "directories searched for \\image files")
	flags.StringSlice("dotfile-dirs", nil, "directories searched for \\dotfile files")
	flags.StringSlice("include-path", nil, "directories searched for included sources")
	flags.String("index", "", "YAML symbol index")
}

// Load reads the configuration. An empty configFile searches for
// docparse.yaml or .docparse.yaml in the current directory and then in
// $HOME; a missing file is not an error. Flags, when given, override the
// file and the environment if they were set on the command line.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configFile, err)
		}
	} else if err := readDefaultConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Parser.MaxDepth <= 0 {
		return nil, fmt.Errorf("max_depth must be positive, got %d", cfg.Parser.MaxDepth)
	}
	cfg.expandPaths()
	return &cfg, nil
}

func readDefaultConfig(v *viper.Viper) error {
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME")
	for _, name := range []string{"docparse", ".docparse"} {
		v.SetConfigName(name)
		err := v.ReadInConfig()
		if err == nil {
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("warn_if_doc_error", d.Parser.WarnIfDocError)
	v.SetDefault("warn_no_paramdoc", d.Parser.WarnNoParamDoc)
	v.SetDefault("warn_ambiguous", d.Parser.WarnAmbiguous)
	v.SetDefault("search_engine", d.Parser.SearchEngine)
	v.SetDefault("generate_todolist", d.Parser.GenerateTodoList)
	v.SetDefault("generate_testlist", d.Parser.GenerateTestList)
	v.SetDefault("generate_buglist", d.Parser.GenerateBugList)
	v.SetDefault("generate_deprecatedlist", d.Parser.GenerateDeprecatedList)
	v.SetDefault("max_depth", d.Parser.MaxDepth)
	v.SetDefault("html_file_extension", d.Parser.HTMLFileExtension)
	v.SetDefault("example_path", []string{})
	v.SetDefault("image_path", []string{})
	v.SetDefault("dotfile_dirs", []string{})
	v.SetDefault("include_path", []string{})
	v.SetDefault("index", "")
}

func (c *Config) expandPaths() {
	for _, paths := range [][]string{c.ExamplePath, c.ImagePath, c.DotFileDirs, c.IncludePath} {
		for i, p := range paths {
			paths[i] = expandHome(p)
		}
	}
	c.Index = expandHome(c.Index)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
