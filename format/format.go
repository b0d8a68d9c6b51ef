package format

import (
	"encoding"

	"github.com/dhamidi/docparse/doc/parser"
)

// Encoder renders a documentation tree.
type Encoder interface {
	encoding.TextMarshaler
	Encode(n *parser.Node) error
}
