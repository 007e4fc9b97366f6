package expr

import (
	"fmt"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPercent
	tokPlus
	tokMinus
	tokStar
	tokSlash
	tokLParen
	tokRParen
	tokLBracket
	tokRBracket
	tokComma
	tokEquals
)

var punctuation = map[rune]tokenKind{
	'%': tokPercent,
	'+': tokPlus,
	'-': tokMinus,
	'*': tokStar,
	'/': tokSlash,
	'(': tokLParen,
	')': tokRParen,
	'[': tokLBracket,
	']': tokRBracket,
	',': tokComma,
	'=': tokEquals,
}

// token is a lexeme along with its byte offset in the source.
type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of expression"
	}
	return fmt.Sprintf("%q", t.text)
}

// tokenize splits src into tokens. Whitespace only separates tokens.
func tokenize(src string) ([]token, error) {
	var tokens []token
	var runes []rune
	var offsets []int
	for off, r := range src {
		runes = append(runes, r)
		offsets = append(offsets, off)
	}
	offsets = append(offsets, len(src))

	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++

		case isDigit(r) || r == '.':
			start := i
			for i < len(runes) && isDigit(runes[i]) {
				i++
			}
			if i < len(runes) && runes[i] == '.' {
				i++
				fracStart := i
				for i < len(runes) && isDigit(runes[i]) {
					i++
				}
				if i == fracStart {
					return nil, newError(src, offsets[start], "malformed number %q", string(runes[start:i]))
				}
			}
			tokens = append(tokens, token{kind: tokNumber, text: string(runes[start:i]), pos: offsets[start]})

		case r == '_' || unicode.IsLetter(r):
			start := i
			for i < len(runes) && (runes[i] == '_' || unicode.IsLetter(runes[i]) || isDigit(runes[i])) {
				i++
			}
			tokens = append(tokens, token{kind: tokIdent, text: string(runes[start:i]), pos: offsets[start]})

		default:
			kind, ok := punctuation[r]
			if !ok {
				return nil, newError(src, offsets[i], "unexpected character %q", r)
			}
			tokens = append(tokens, token{kind: kind, text: string(r), pos: offsets[i]})
			i++
		}
	}
	tokens = append(tokens, token{kind: tokEOF, pos: len(src)})
	return tokens, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
