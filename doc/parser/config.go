package parser

// DefaultMaxDepth bounds nested node parsers and documentation copies.
const DefaultMaxDepth = 2048

// Config holds the flags the parser reads. It is never modified by a
// parse.
type Config struct {
	WarnIfDocError bool `mapstructure:"warn_if_doc_error" json:"warnIfDocError"`
	WarnNoParamDoc bool `mapstructure:"warn_no_paramdoc" json:"warnNoParamDoc"`
	// WarnAmbiguous reports references that match more than one entity.
	// The first candidate is used either way.
	WarnAmbiguous bool `mapstructure:"warn_ambiguous" json:"warnAmbiguous"`
	SearchEngine  bool `mapstructure:"search_engine" json:"searchEngine"`

	GenerateTodoList       bool `mapstructure:"generate_todolist" json:"generateTodoList"`
	GenerateTestList       bool `mapstructure:"generate_testlist" json:"generateTestList"`
	GenerateBugList        bool `mapstructure:"generate_buglist" json:"generateBugList"`
	GenerateDeprecatedList bool `mapstructure:"generate_deprecatedlist" json:"generateDeprecatedList"`

	MaxDepth          int    `mapstructure:"max_depth" json:"maxDepth"`
	HTMLFileExtension string `mapstructure:"html_file_extension" json:"htmlFileExtension"`
}

func DefaultConfig() Config {
	return Config{
		WarnIfDocError:         true,
		WarnNoParamDoc:         false,
		WarnAmbiguous:          true,
		SearchEngine:           false,
		GenerateTodoList:       true,
		GenerateTestList:       true,
		GenerateBugList:        true,
		GenerateDeprecatedList: true,
		MaxDepth:               DefaultMaxDepth,
		HTMLFileExtension:      ".html",
	}
}

// xrefEnabled reports whether items of the named built-in list are kept.
// Lists other than the built-in ones are always enabled.
func (c Config) xrefEnabled(key string) bool {
	switch key {
	case "todo":
		return c.GenerateTodoList
	case "test":
		return c.GenerateTestList
	case "bug":
		return c.GenerateBugList
	case "deprecated":
		return c.GenerateDeprecatedList
	}
	return true
}
