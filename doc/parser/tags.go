package parser

import (
	"strings"

	"golang.org/x/net/html/atom"
)

type tag int

const (
	tagUnknown tag = iota
	tagUL
	tagOL
	tagLI
	tagBold
	tagCode
	tagEmphasis
	tagDiv
	tagSpan
	tagSub
	tagSup
	tagCenter
	tagSmall
	tagPre
	tagP
	tagDL
	tagDT
	tagDD
	tagTable
	tagTR
	tagTD
	tagTH
	tagCaption
	tagBR
	tagHR
	tagA
	tagH1
	tagH2
	tagH3
	tagH4
	tagH5
	tagH6
	tagImg

	// XML documentation tags
	xmlSummary
	xmlRemarks
	xmlValue
	xmlPara
	xmlExample
	xmlDescription
	xmlC
	xmlParam
	xmlParamRef
	xmlException
	xmlItem
	xmlReturns
	xmlSee
	xmlSeeAlso
	xmlList
	xmlInclude
	xmlPermission
)

var htmlTags = map[atom.Atom]tag{
	atom.Ul:      tagUL,
	atom.Ol:      tagOL,
	atom.Li:      tagLI,
	atom.B:       tagBold,
	atom.Strong:  tagBold,
	atom.Code:    tagCode,
	atom.Em:      tagEmphasis,
	atom.I:       tagEmphasis,
	atom.Div:     tagDiv,
	atom.Span:    tagSpan,
	atom.Sub:     tagSub,
	atom.Sup:     tagSup,
	atom.Center:  tagCenter,
	atom.Small:   tagSmall,
	atom.Pre:     tagPre,
	atom.P:       tagP,
	atom.Dl:      tagDL,
	atom.Dt:      tagDT,
	atom.Dd:      tagDD,
	atom.Table:   tagTable,
	atom.Tr:      tagTR,
	atom.Td:      tagTD,
	atom.Th:      tagTH,
	atom.Caption: tagCaption,
	atom.Br:      tagBR,
	atom.Hr:      tagHR,
	atom.A:       tagA,
	atom.H1:      tagH1,
	atom.H2:      tagH2,
	atom.H3:      tagH3,
	atom.H4:      tagH4,
	atom.H5:      tagH5,
	atom.H6:      tagH6,
	atom.Img:     tagImg,
}

// xmlTags take precedence over HTML tags of the same name, such as
// <param> and <summary>.
var xmlTags = map[string]tag{
	"summary":     xmlSummary,
	"remarks":     xmlRemarks,
	"value":       xmlValue,
	"para":        xmlPara,
	"example":     xmlExample,
	"description": xmlDescription,
	"c":           xmlC,
	"param":       xmlParam,
	"paramref":    xmlParamRef,
	"exception":   xmlException,
	"item":        xmlItem,
	"returns":     xmlReturns,
	"see":         xmlSee,
	"seealso":     xmlSeeAlso,
	"list":        xmlList,
	"include":     xmlInclude,
	"permission":  xmlPermission,
}

func lookupTag(name string) tag {
	lower := strings.ToLower(name)
	if t, ok := xmlTags[lower]; ok {
		return t
	}
	if a := atom.Lookup([]byte(lower)); a != 0 {
		return htmlTags[a]
	}
	return tagUnknown
}

func (t tag) isXML() bool {
	return t >= xmlSummary
}

// headerLevel returns 1-6 for <h1>-<h6> and 0 otherwise.
func (t tag) headerLevel() int {
	if t >= tagH1 && t <= tagH6 {
		return int(t-tagH1) + 1
	}
	return 0
}

// styleTags maps the tags that open and close an inline style span.
var styleTags = map[tag]Style{
	tagBold:     StyleBold,
	tagCode:     StyleCode,
	tagEmphasis: StyleItalic,
	tagDiv:      StyleDiv,
	tagSpan:     StyleSpan,
	tagSub:      StyleSubscript,
	tagSup:      StyleSuperscript,
	tagCenter:   StyleCenter,
	tagSmall:    StyleSmall,
	tagPre:      StylePreformatted,
}

// attrString renders attributes the way they appear in a start tag.
func attrString(attrs []Attribute) string {
	var sb strings.Builder
	for _, a := range attrs {
		sb.WriteString(" ")
		sb.WriteString(a.Name)
		if a.Value != "" {
			sb.WriteString("=\"")
			sb.WriteString(a.Value)
			sb.WriteString("\"")
		}
	}
	return sb.String()
}

// withoutAttr returns a copy of attrs without the named attribute.
func withoutAttr(attrs []Attribute, name string) []Attribute {
	out := make([]Attribute, 0, len(attrs))
	for _, a := range attrs {
		if !strings.EqualFold(a.Name, name) {
			out = append(out, a)
		}
	}
	return out
}
