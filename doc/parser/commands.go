package parser

import "sort"

type command int

const (
	cmdUnknown command = iota
	cmdEmphasis
	cmdBold
	cmdCode
	cmdBSlash
	cmdAt
	cmdLess
	cmdGreater
	cmdAmp
	cmdDollar
	cmdHash
	cmdPercent
	cmdSa
	cmdReturn
	cmdAuthor
	cmdAuthors
	cmdVersion
	cmdSince
	cmdDate
	cmdNote
	cmdWarning
	cmdPre
	cmdPost
	cmdInvariant
	cmdRemark
	cmdAttention
	cmdPar
	cmdLi
	cmdSection
	cmdSubsection
	cmdSubsubsection
	cmdParagraph
	cmdStartCode
	cmdEndCode
	cmdHTMLOnly
	cmdEndHTMLOnly
	cmdManOnly
	cmdEndManOnly
	cmdLatexOnly
	cmdEndLatexOnly
	cmdXMLOnly
	cmdEndXMLOnly
	cmdVerbatim
	cmdEndVerbatim
	cmdDot
	cmdEndDot
	cmdParam
	cmdRetVal
	cmdException
	cmdXRefItem
	cmdLineBreak
	cmdAnchor
	cmdAddIndex
	cmdInternal
	cmdCopyDoc
	cmdCopyBrief
	cmdCopyDetails
	cmdInclude
	cmdIncWithLines
	cmdDontInclude
	cmdHTMLInclude
	cmdVerbInclude
	cmdSkip
	cmdUntil
	cmdSkipLine
	cmdLine
	cmdImage
	cmdDotFile
	cmdLink
	cmdEndLink
	cmdJavaLink
	cmdRef
	cmdSubpage
	cmdSecRefList
	cmdSecRefItem
	cmdEndSecRefList
	cmdFormula
	cmdInternalRef
	cmdInheritDoc
)

// commandNames maps every command name the parser understands, without
// its leading \ or @, to its identifier.
var commandNames = map[string]command{
	"a":             cmdEmphasis,
	"e":             cmdEmphasis,
	"em":            cmdEmphasis,
	"b":             cmdBold,
	"c":             cmdCode,
	"p":             cmdCode,
	"\\":            cmdBSlash,
	"@":             cmdAt,
	"<":             cmdLess,
	">":             cmdGreater,
	"&":             cmdAmp,
	"$":             cmdDollar,
	"#":             cmdHash,
	"%":             cmdPercent,
	"sa":            cmdSa,
	"see":           cmdSa,
	"return":        cmdReturn,
	"returns":       cmdReturn,
	"result":        cmdReturn,
	"author":        cmdAuthor,
	"authors":       cmdAuthors,
	"version":       cmdVersion,
	"since":         cmdSince,
	"date":          cmdDate,
	"note":          cmdNote,
	"warning":       cmdWarning,
	"pre":           cmdPre,
	"post":          cmdPost,
	"invariant":     cmdInvariant,
	"remark":        cmdRemark,
	"remarks":       cmdRemark,
	"attention":     cmdAttention,
	"par":           cmdPar,
	"li":            cmdLi,
	"section":       cmdSection,
	"subsection":    cmdSubsection,
	"subsubsection": cmdSubsubsection,
	"paragraph":     cmdParagraph,
	"code":          cmdStartCode,
	"endcode":       cmdEndCode,
	"htmlonly":      cmdHTMLOnly,
	"endhtmlonly":   cmdEndHTMLOnly,
	"manonly":       cmdManOnly,
	"endmanonly":    cmdEndManOnly,
	"latexonly":     cmdLatexOnly,
	"endlatexonly":  cmdEndLatexOnly,
	"xmlonly":       cmdXMLOnly,
	"endxmlonly":    cmdEndXMLOnly,
	"verbatim":      cmdVerbatim,
	"endverbatim":   cmdEndVerbatim,
	"dot":           cmdDot,
	"enddot":        cmdEndDot,
	"param":         cmdParam,
	"retval":        cmdRetVal,
	"exception":     cmdException,
	"throw":         cmdException,
	"throws":        cmdException,
	"xrefitem":      cmdXRefItem,
	"n":             cmdLineBreak,
	"anchor":        cmdAnchor,
	"addindex":      cmdAddIndex,
	"internal":      cmdInternal,
	"copydoc":       cmdCopyDoc,
	"copybrief":     cmdCopyBrief,
	"copydetails":   cmdCopyDetails,
	"include":       cmdInclude,
	"includelineno": cmdIncWithLines,
	"dontinclude":   cmdDontInclude,
	"htmlinclude":   cmdHTMLInclude,
	"verbinclude":   cmdVerbInclude,
	"skip":          cmdSkip,
	"until":         cmdUntil,
	"skipline":      cmdSkipLine,
	"line":          cmdLine,
	"image":         cmdImage,
	"dotfile":       cmdDotFile,
	"link":          cmdLink,
	"endlink":       cmdEndLink,
	"javalink":      cmdJavaLink,
	"ref":           cmdRef,
	"subpage":       cmdSubpage,
	"secreflist":    cmdSecRefList,
	"refitem":       cmdSecRefItem,
	"endsecreflist": cmdEndSecRefList,
	"form":          cmdFormula,
	"internalref":   cmdInternalRef,
	"inheritdoc":    cmdInheritDoc,
}

// simpleSectCommands start a block that cannot be nested inside another
// simple or parameter section.
var simpleSectCommands = map[command]bool{
	cmdSa:        true,
	cmdReturn:    true,
	cmdAuthor:    true,
	cmdAuthors:   true,
	cmdVersion:   true,
	cmdSince:     true,
	cmdDate:      true,
	cmdNote:      true,
	cmdWarning:   true,
	cmdPre:       true,
	cmdPost:      true,
	cmdInvariant: true,
	cmdRemark:    true,
	cmdAttention: true,
	cmdPar:       true,
	cmdParam:     true,
	cmdRetVal:    true,
	cmdException: true,
	cmdXRefItem:  true,
}

func lookupCommand(name string) command {
	return commandNames[name]
}

func (c command) isSimpleSect() bool {
	return simpleSectCommands[c]
}

// CommandNames returns the sorted names of all known commands.
func CommandNames() []string {
	names := make([]string, 0, len(commandNames))
	for name := range commandNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsCommand reports whether name is a known command.
func IsCommand(name string) bool {
	return lookupCommand(name) != cmdUnknown
}

// escapeCommand returns the symbol an escape command such as \@ stands for.
func escapeCommand(name string) (SymbolType, bool) {
	t, ok := escapeSymbols[name]
	return t, ok
}
