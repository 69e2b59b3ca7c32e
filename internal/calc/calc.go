// Package calc evaluates arithmetic expressions made of numbers, the four
// basic operators and parentheses. Nothing else is accepted.
package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hpungsan/darek/internal/errors"
)

// Limits on accepted input.
const (
	MaxExpressionLen = 256
	MaxDepth         = 32
)

const slotName = "expression"

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokLParen
	tokRParen
	tokEOF
)

type token struct {
	kind tokenKind
	op   byte
	num  float64
	pos  int
}

// tokenize splits expr into tokens, rejecting any character outside the grammar.
func tokenize(expr string) ([]token, error) {
	var toks []token
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '+' || c == '-' || c == '*' || c == '/':
			toks = append(toks, token{kind: tokOp, op: c, pos: i})
			i++
		case c == '(':
			toks = append(toks, token{kind: tokLParen, pos: i})
			i++
		case c == ')':
			toks = append(toks, token{kind: tokRParen, pos: i})
			i++
		case isDigit(c) || c == '.':
			start := i
			dots := 0
			for i < len(expr) && (isDigit(expr[i]) || expr[i] == '.') {
				if expr[i] == '.' {
					dots++
				}
				i++
			}
			lit := expr[start:i]
			if dots > 1 || lit == "." {
				return nil, errors.NewExtraction(slotName, fmt.Sprintf("malformed number %q", lit))
			}
			v, err := strconv.ParseFloat(lit, 64)
			if err != nil {
				return nil, errors.NewExtraction(slotName, fmt.Sprintf("malformed number %q", lit))
			}
			toks = append(toks, token{kind: tokNumber, num: v, pos: start})
		default:
			return nil, errors.NewExtraction(slotName, fmt.Sprintf("unexpected character %q at %d", c, i))
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(expr)}), nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// parser is a recursive-descent evaluator over:
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := ('+' | '-') unary | primary
//	primary := number | '(' expr ')'
type parser struct {
	toks  []token
	pos   int
	depth int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > MaxDepth {
		return errors.NewExtraction(slotName, "expression nested too deeply")
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) expr() (float64, error) {
	if err := p.enter(); err != nil {
		return 0, err
	}
	defer p.leave()

	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.op != '+' && t.op != '-') {
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if t.op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for {
		t := p.peek()
		if t.kind != tokOp || (t.op != '*' && t.op != '/') {
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return 0, err
		}
		if t.op == '*' {
			left *= right
			continue
		}
		if right == 0 {
			return 0, errors.NewExtraction(slotName, "division by zero")
		}
		left /= right
	}
}

func (p *parser) unary() (float64, error) {
	t := p.peek()
	if t.kind == tokOp && (t.op == '+' || t.op == '-') {
		if err := p.enter(); err != nil {
			return 0, err
		}
		defer p.leave()
		p.next()
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		if t.op == '-' {
			return -v, nil
		}
		return v, nil
	}
	return p.primary()
}

func (p *parser) primary() (float64, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return t.num, nil
	case tokLParen:
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.next().kind != tokRParen {
			return 0, errors.NewExtraction(slotName, "missing closing parenthesis")
		}
		return v, nil
	case tokEOF:
		return 0, errors.NewExtraction(slotName, "unexpected end of expression")
	default:
		return 0, errors.NewExtraction(slotName, fmt.Sprintf("unexpected token at %d", t.pos))
	}
}

// Eval evaluates expr and returns its value.
// Errors are EXTRACTION_FAILED with slot "expression".
func Eval(expr string) (float64, error) {
	if len(expr) > MaxExpressionLen {
		return 0, errors.NewExtraction(slotName, "expression too long")
	}
	if strings.TrimSpace(expr) == "" {
		return 0, errors.NewExtraction(slotName, "empty expression")
	}

	toks, err := tokenize(expr)
	if err != nil {
		return 0, err
	}

	p := &parser{toks: toks}
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if p.peek().kind != tokEOF {
		return 0, errors.NewExtraction(slotName, fmt.Sprintf("unexpected token at %d", p.peek().pos))
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errors.NewExtraction(slotName, "result is not a finite number")
	}
	return v, nil
}

// Format renders v without a trailing ".0" for whole numbers.
func Format(v float64) string {
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
