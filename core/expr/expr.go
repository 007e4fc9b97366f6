// Package expr evaluates the arithmetic used for weights and grades in a grade file.
//
// The language is deliberately small:
//
//	expr   := term (('+'|'-') term)*
//	term   := factor (('*'|'/') factor)*
//	factor := number ['%'] | '(' expr ')' | call | list
//	call   := ident '(' [arg (',' arg)*] ')'
//	arg    := [ident '='] expr
//	list   := '[' [expr (',' expr)*] ']'
//
// A trailing '%' divides the numeric literal before it by 100, so "35%" is 0.35
// while "35" stays 35. Lists, and parenthesised tuples such as "(27, 40)", are
// only meaningful as function arguments.
//
// Builtin functions:
//
//	grade_multiple(scores, out_of, drop_worst=0, use_best=n)
//	grade_parts((earned, total), ...)
//	percent(n)
//
// The identifier "unknown" is not part of the language; a grade file uses it as a
// whole value and the caller must check for it before evaluating.
package expr

import (
	"fmt"
	"strconv"
)

// UnknownIdent is the sentinel identifier that callers handle before evaluation.
const UnknownIdent = "unknown"

// EvaluationError reports a malformed expression or an arithmetic failure.
type EvaluationError struct {
	Expr string // Source expression
	Pos  int    // Byte offset of the failure, -1 when not tied to a position
	Msg  string
}

func (e *EvaluationError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("invalid expression %q: %s", e.Expr, e.Msg)
	}
	return fmt.Sprintf("invalid expression %q at column %d: %s", e.Expr, e.Pos+1, e.Msg)
}

func newError(src string, pos int, format string, args ...any) *EvaluationError {
	return &EvaluationError{Expr: src, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

// Expression is a compiled expression ready to be evaluated.
type Expression struct {
	src  string
	root node
}

// String returns the source the expression was compiled from.
func (e *Expression) String() string {
	return e.src
}

// Eval evaluates the expression to a single number.
func (e *Expression) Eval() (float64, error) {
	v, err := e.root.eval(e.src)
	if err != nil {
		return 0, err
	}
	if v.isList {
		return 0, newError(e.src, e.root.position(), "expression evaluates to a list, not a number")
	}
	if !isFinite(v.num) {
		return 0, newError(e.src, e.root.position(), "result is not a finite number")
	}
	return v.num, nil
}

// Compile parses src without evaluating it.
func Compile(src string) (*Expression, error) {
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, tokens: tokens}
	if p.peek().kind == tokEOF {
		return nil, newError(src, 0, "empty expression")
	}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, newError(src, tok.pos, "unexpected %s", tok)
	}
	return &Expression{src: src, root: root}, nil
}

// Eval compiles and evaluates src in one step.
func Eval(src string) (float64, error) {
	e, err := Compile(src)
	if err != nil {
		return 0, err
	}
	return e.Eval()
}

// parser is a recursive-descent parser over the token stream.
type parser struct {
	src    string
	tokens []token
	pos    int
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

// peekAt looks n tokens ahead, returning EOF past the end.
func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expect(kind tokenKind, what string) (token, error) {
	tok := p.next()
	if tok.kind != kind {
		return tok, newError(p.src, tok.pos, "expected %s, found %s", what, tok)
	}
	return tok, nil
}

func (p *parser) parseExpr() (node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokPlus && tok.kind != tokMinus {
			return left, nil
		}
		p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tok.kind, left: left, right: right, pos: tok.pos}
	}
}

func (p *parser) parseTerm() (node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		if tok.kind != tokStar && tok.kind != tokSlash {
			return left, nil
		}
		p.next()
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &binaryNode{op: tok.kind, left: left, right: right, pos: tok.pos}
	}
}

func (p *parser) parseFactor() (node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			return nil, newError(p.src, tok.pos, "malformed number %q", tok.text)
		}
		if p.peek().kind == tokPercent {
			p.next()
			v /= 100
		}
		return &numberNode{value: v, pos: tok.pos}, nil

	case tokLParen:
		first, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokComma {
			if _, err := p.expect(tokRParen, "')'"); err != nil {
				return nil, err
			}
			return p.rejectPercent(first)
		}
		items := []node{first}
		for p.peek().kind == tokComma {
			p.next()
			item, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := p.expect(tokRParen, "')'"); err != nil {
			return nil, err
		}
		return p.rejectPercent(&listNode{items: items, pos: tok.pos})

	case tokLBracket:
		var items []node
		if p.peek().kind != tokRBracket {
			for {
				item, err := p.parseExpr()
				if err != nil {
					return nil, err
				}
				items = append(items, item)
				if p.peek().kind != tokComma {
					break
				}
				p.next()
			}
		}
		if _, err := p.expect(tokRBracket, "']'"); err != nil {
			return nil, err
		}
		return p.rejectPercent(&listNode{items: items, pos: tok.pos})

	case tokIdent:
		if tok.text == UnknownIdent {
			return nil, newError(p.src, tok.pos, "%q is only valid as an entire grade value", UnknownIdent)
		}
		if p.peek().kind != tokLParen {
			return nil, newError(p.src, tok.pos, "undefined name %q", tok.text)
		}
		call, err := p.parseCall(tok)
		if err != nil {
			return nil, err
		}
		return p.rejectPercent(call)

	case tokEOF:
		return nil, newError(p.src, tok.pos, "unexpected end of expression")

	default:
		return nil, newError(p.src, tok.pos, "unexpected %s", tok)
	}
}

// rejectPercent fails when '%' follows anything but a numeric literal.
func (p *parser) rejectPercent(n node) (node, error) {
	if tok := p.peek(); tok.kind == tokPercent {
		return nil, newError(p.src, tok.pos, "'%%' may only follow a number")
	}
	return n, nil
}

func (p *parser) parseCall(name token) (node, error) {
	fn, ok := builtins[name.text]
	if !ok {
		return nil, newError(p.src, name.pos, "unknown function %q", name.text)
	}
	p.next() // '('

	call := &callNode{name: name.text, fn: fn, pos: name.pos}
	if p.peek().kind == tokRParen {
		p.next()
		return call, nil
	}
	for {
		a := argument{pos: p.peek().pos}
		if p.peek().kind == tokIdent && p.peekAt(1).kind == tokEquals {
			a.name = p.next().text
			p.next() // '='
		}
		val, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		a.value = val
		call.args = append(call.args, a)

		tok := p.next()
		switch tok.kind {
		case tokComma:
			continue
		case tokRParen:
			return call, nil
		default:
			return nil, newError(p.src, tok.pos, "expected ',' or ')' in call to %s, found %s", name.text, tok)
		}
	}
}
