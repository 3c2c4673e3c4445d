// Package token defines the lexical token kinds produced by pkg/lexer and
// consumed by pkg/parser.
package token

import "github.com/aaronc81/yascad-go/pkg/source"

// Kind classifies a Token. The zero value, Invalid, never appears in a
// well-formed token stream; it exists so a zero Token is visibly unset.
type Kind int

const (
	Invalid Kind = iota

	Identifier
	Number

	// Keywords.
	KwIt
	KwOperator
	KwModule
	KwTrue
	KwFalse
	KwFor
	KwIf
	KwElse

	// Punctuation.
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Semicolon
	Equals
	Dot
	Colon

	// Arithmetic.
	Plus
	Minus
	Star
	Slash

	// Comparison.
	EqualEqual
	Less
	LessEqual
	Greater
	GreaterEqual

	EOF
)

var names = map[Kind]string{
	Invalid:       "invalid",
	Identifier:    "identifier",
	Number:        "number",
	KwIt:          "'it'",
	KwOperator:    "'operator'",
	KwModule:      "'module'",
	KwTrue:        "'true'",
	KwFalse:       "'false'",
	KwFor:         "'for'",
	KwIf:          "'if'",
	KwElse:        "'else'",
	LParen:        "'('",
	RParen:        "')'",
	LBrace:        "'{'",
	RBrace:        "'}'",
	LBracket:      "'['",
	RBracket:      "']'",
	Comma:         "','",
	Semicolon:     "';'",
	Equals:        "'='",
	Dot:           "'.'",
	Colon:         "':'",
	Plus:          "'+'",
	Minus:         "'-'",
	Star:          "'*'",
	Slash:         "'/'",
	EqualEqual:    "'=='",
	Less:          "'<'",
	LessEqual:     "'<='",
	Greater:       "'>'",
	GreaterEqual:  "'>='",
	EOF:           "end of input",
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return "unknown token kind"
}

// keywords maps the fixed keyword lexeme set to its Kind, used by the
// lexer to reclassify identifier-shaped text per spec.
var keywords = map[string]Kind{
	"it":       KwIt,
	"operator": KwOperator,
	"module":   KwModule,
	"true":     KwTrue,
	"false":    KwFalse,
	"for":      KwFor,
	"if":       KwIf,
	"else":     KwElse,
}

// LookupKeyword returns the keyword Kind for name, and whether name is a
// keyword at all (as opposed to a plain identifier).
func LookupKeyword(name string) (Kind, bool) {
	k, ok := keywords[name]
	return k, ok
}

// Token is one lexed unit: its kind and the span of source text it covers.
type Token struct {
	Kind Kind
	Span source.Span
}

// Text returns the literal source text this token covers.
func (t Token) Text() string {
	return t.Span.Text()
}

func (t Token) String() string {
	return t.Kind.String()
}
