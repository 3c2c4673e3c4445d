// Package lexer tokenizes yascad source text. Tokenization is built on
// participle/v2's stateful lexer (see pkg/parser for why its
// declarative grammar layer is not reused past this point): a
// lexer.Rules state machine classifies runs of input, and this package
// turns the resulting raw tokens into pkg/token.Token values carrying
// pkg/source.Span rather than participle's own position type.
package lexer

import (
	"fmt"

	participleLexer "github.com/alecthomas/participle/v2/lexer"

	"github.com/aaronc81/yascad-go/pkg/source"
	"github.com/aaronc81/yascad-go/pkg/token"
)

// rules tokenizes by shape only; identifiers are reclassified as keywords
// by a post-scan lookup (token.LookupKeyword) rather than a separate
// keyword regex, per §4.1 ("the fixed keyword set ... is recognized by
// post-scan lookup"). Multi-character operators are listed before their
// single-character prefixes in the Punct alternation so the regex engine
// prefers the longer match. Unknown is a single-rune catch-all: it is what
// keeps this lexer from ever failing hard on unrecognized input.
var rules = participleLexer.MustStateful(participleLexer.Rules{
	"Root": {
		{Name: "Comment", Pattern: `//[^\n]*`},
		{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
		{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Punct", Pattern: `(==|<=|>=|[(){}\[\],;:=.+\-*/<>])`},
		{Name: "Unknown", Pattern: `.`},
	},
})

var symbols = rules.Symbols()

var (
	commentSym    = symbols["Comment"]
	whitespaceSym = symbols["Whitespace"]
	numberSym     = symbols["Number"]
	identSym      = symbols["Ident"]
	punctSym      = symbols["Punct"]
	unknownSym    = symbols["Unknown"]
)

var punctKinds = map[string]token.Kind{
	"(": token.LParen, ")": token.RParen,
	"{": token.LBrace, "}": token.RBrace,
	"[": token.LBracket, "]": token.RBracket,
	",": token.Comma, ";": token.Semicolon,
	"=": token.Equals, ".": token.Dot, ":": token.Colon,
	"+": token.Plus, "-": token.Minus, "*": token.Star, "/": token.Slash,
	"==": token.EqualEqual,
	"<":  token.Less, "<=": token.LessEqual,
	">": token.Greater, ">=": token.GreaterEqual,
}

// ErrorKind enumerates lex-time diagnostics. UnexpectedChar is the only
// kind (§4.1, §7): nothing else can make this lexer fail.
type ErrorKind int

const (
	UnexpectedChar ErrorKind = iota
)

func (k ErrorKind) String() string {
	switch k {
	case UnexpectedChar:
		return "unexpected character"
	default:
		return "lex error"
	}
}

// Error is a single lex-time diagnostic.
type Error struct {
	Kind ErrorKind
	Span source.Span
	Char rune
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q", e.Kind, e.Char)
}

// Lex tokenizes src in full, returning every token (always terminated by
// one token.EOF) plus every lex error encountered. It never stops early:
// an unrecognized rune is reported and skipped, one rune at a time, so a
// caller always sees as much of the token stream as the input allows
// (§4.1's forward-progress requirement applied to the lexer itself).
func Lex(src *source.Source) ([]token.Token, []*Error) {
	instance, err := rules.LexString(src.Name, src.Text)
	if err != nil {
		// The rule set above is fixed and valid for any input text; a
		// non-nil error here means the rules themselves are broken, which
		// is a programming error in this package, not a user-facing one.
		panic(fmt.Errorf("lexer: invalid rule set: %w", err))
	}

	var tokens []token.Token
	var errs []*Error
	for {
		raw, err := instance.Next()
		if err != nil {
			panic(fmt.Errorf("lexer: stateful lexer failed: %w", err))
		}
		if raw.EOF() {
			tokens = append(tokens, token.Token{Kind: token.EOF, Span: source.EOFSpan(src)})
			return tokens, errs
		}

		span := source.NewSpan(src, raw.Pos.Offset, len(raw.Value))

		switch raw.Type {
		case commentSym, whitespaceSym:
			continue
		case numberSym:
			tokens = append(tokens, token.Token{Kind: token.Number, Span: span})
		case identSym:
			kind := token.Identifier
			if kw, ok := token.LookupKeyword(raw.Value); ok {
				kind = kw
			}
			tokens = append(tokens, token.Token{Kind: kind, Span: span})
		case punctSym:
			kind, ok := punctKinds[raw.Value]
			if !ok {
				// The Punct alternation only matches text this map covers.
				panic(fmt.Errorf("lexer: punct %q has no token kind", raw.Value))
			}
			tokens = append(tokens, token.Token{Kind: kind, Span: span})
		case unknownSym:
			r := []rune(raw.Value)[0]
			errs = append(errs, &Error{Kind: UnexpectedChar, Span: span, Char: r})
		default:
			panic(fmt.Errorf("lexer: unhandled token type %v", raw.Type))
		}
	}
}
