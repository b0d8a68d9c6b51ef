// Package grammar holds an EBNF description of the lexical surface of
// documentation comments and tools to check and scan with it.
package grammar

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Start is the start production of the embedded grammar.
const Start = "Comment"

// TokenProduction lists the token kinds of the embedded grammar.
const TokenProduction = "Element"

//go:embed markup.ebnf
var source string

// Source returns the text of the embedded grammar.
func Source() string {
	return source
}

// Load parses the embedded grammar.
func Load() (ebnf.Grammar, error) {
	return Parse("markup.ebnf", strings.NewReader(source))
}

// Parse reads a grammar.
func Parse(filename string, r io.Reader) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(filename, r)
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	return g, nil
}

// LoadFile parses a grammar file.
func LoadFile(filename string) (ebnf.Grammar, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open grammar: %w", err)
	}
	defer f.Close()
	return Parse(filename, f)
}

// Check verifies that every production is defined and reachable from
// start.
func Check(g ebnf.Grammar, start string) error {
	return ebnf.Verify(g, start)
}

// Errors splits an error returned by Parse or Check into the individual
// problems it reports.
func Errors(err error) []error {
	if err == nil {
		return nil
	}
	var list []error
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				if item, ok := v.Index(i).Interface().(error); ok {
					list = append(list, item)
				}
			}
			return list
		}
	}
	return []error{err}
}

// Alternatives returns the literal tokens of a production of the form
// "a" | "b" | ... in sorted order.
func Alternatives(g ebnf.Grammar, name string) ([]string, error) {
	prod, ok := g[name]
	if !ok || prod.Expr == nil {
		return nil, fmt.Errorf("no production %s", name)
	}
	var values []string
	switch e := prod.Expr.(type) {
	case ebnf.Alternative:
		for _, alt := range e {
			tok, ok := alt.(*ebnf.Token)
			if !ok {
				return nil, fmt.Errorf("production %s: alternative is not a literal", name)
			}
			values = append(values, tok.String)
		}
	case *ebnf.Token:
		values = append(values, e.String)
	default:
		return nil, fmt.Errorf("production %s is not a list of literals", name)
	}
	sort.Strings(values)
	return values, nil
}

// TokenKinds returns the production names listed by name, in order.
func TokenKinds(g ebnf.Grammar, name string) ([]string, error) {
	prod, ok := g[name]
	if !ok || prod.Expr == nil {
		return nil, fmt.Errorf("no production %s", name)
	}
	alt, ok := prod.Expr.(ebnf.Alternative)
	if !ok {
		alt = ebnf.Alternative{prod.Expr}
	}
	kinds := make([]string, 0, len(alt))
	for _, e := range alt {
		n, ok := e.(*ebnf.Name)
		if !ok {
			return nil, fmt.Errorf("production %s: alternative is not a production name", name)
		}
		kinds = append(kinds, n.String)
	}
	return kinds, nil
}
