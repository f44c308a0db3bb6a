// ABOUTME: Safe arithmetic evaluation for the calculate action.
// ABOUTME: Sanitizes input to digits and operators, then runs a recursive-descent parser.

package action

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// sanitizeExpression deletes every rune that is not a digit, a decimal
// point, a parenthesis, one of + - * /, or whitespace. The surviving text
// is what gets evaluated and echoed back in the result message.
func sanitizeExpression(expr string) string {
	var b strings.Builder
	b.Grow(len(expr))
	for _, r := range expr {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '(' || r == ')' || r == '+' || r == '-' || r == '*' || r == '/':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// evalExpression evaluates a sanitized arithmetic expression supporting
// + - * /, parentheses, unary signs, and decimal literals. Division by
// zero and malformed input are errors.
func evalExpression(expr string) (float64, error) {
	p := &exprParser{input: expr}
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, errors.New("empty expression")
	}
	v, err := p.parseSum()
	if err != nil {
		return 0, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return 0, fmt.Errorf("unexpected %q at offset %d", p.input[p.pos], p.pos)
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, errors.New("result out of range")
	}
	return v, nil
}

// exprParser walks the expression byte by byte.
//
// Grammar:
//
//	sum    := product (('+' | '-') product)*
//	product:= factor (('*' | '/') factor)*
//	factor := ('+' | '-') factor | '(' sum ')' | number
type exprParser struct {
	input string
	pos   int
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r', '\f', '\v':
			p.pos++
		default:
			return
		}
	}
}

// peek returns the next non-space byte without consuming it, or 0 at end.
func (p *exprParser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *exprParser) parseSum() (float64, error) {
	v, err := p.parseProduct()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '+':
			p.pos++
			rhs, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			v += rhs
		case '-':
			p.pos++
			rhs, err := p.parseProduct()
			if err != nil {
				return 0, err
			}
			v -= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseProduct() (float64, error) {
	v, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		switch p.peek() {
		case '*':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			v *= rhs
		case '/':
			p.pos++
			rhs, err := p.parseFactor()
			if err != nil {
				return 0, err
			}
			if rhs == 0 {
				return 0, errors.New("division by zero")
			}
			v /= rhs
		default:
			return v, nil
		}
	}
}

func (p *exprParser) parseFactor() (float64, error) {
	switch c := p.peek(); c {
	case '+':
		p.pos++
		return p.parseFactor()
	case '-':
		p.pos++
		v, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		return -v, nil
	case '(':
		p.pos++
		v, err := p.parseSum()
		if err != nil {
			return 0, err
		}
		if p.peek() != ')' {
			return 0, errors.New("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case 0:
		return 0, errors.New("unexpected end of expression")
	default:
		return p.parseNumber()
	}
}

// parseNumber scans a decimal literal. Forms like "5", "5.", ".5", and
// "3.14" are accepted; a lone "." is not.
func (p *exprParser) parseNumber() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) && isDigit(p.input[p.pos]) {
		p.pos++
	}
	if p.pos < len(p.input) && p.input[p.pos] == '.' {
		p.pos++
		for p.pos < len(p.input) && isDigit(p.input[p.pos]) {
			p.pos++
		}
	}
	tok := p.input[start:p.pos]
	if tok == "" || tok == "." {
		return 0, fmt.Errorf("expected number at offset %d", start)
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", tok, err)
	}
	return v, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// formatNumber renders a result the shortest way that round-trips, never
// in exponent notation: integral values print without a decimal part
// ("8"), others keep full precision ("2.5", "2.6666666666666665").
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
