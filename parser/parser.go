/*
Package parser provides a lisp parser.

	expr   := '(' <expr>* ')' | <number> | <string> | <symbol>
	number := '-'? <digit>+ <fraction>? <exponent>?
	fraction := '.' <digit>{0,}
	exponent := ('e' | 'E') ('+' | '-')? <digit>+
	string := '"' <any byte but '"'>{0,} '"'
	symbol := /[^[:space:]()"'.]+/

Whitespace may separate any two tokens.  Strings have no escape sequences.
*/
package parser

import (
	"errors"
	"io"
	"strconv"

	"github.com/mansalskog/BadLisp/lisp"
	parsec "github.com/prataprc/goparsec"
)

const (
	patternSpace  = `^[ \t\n\v\f\r]*`
	patternOpen   = `^\(`
	patternClose  = `^\)`
	patternNumber = `^-?[0-9]+(\.[0-9]*)?([eE][+-]?[0-9]+)?`
	patternString = `^"[^"]*"`
	patternSymbol = `^[^ \t\n\v\f\r()"'.]+`
)

// Reader reads lisp expressions from text.  Reader implements lisp.Reader.
type Reader struct{}

var _ lisp.Reader = (*Reader)(nil)

// NewReader returns a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses a single expression from the beginning of text.  Read returns
// the parsed expression and the text following it.
//
// If text holds no complete expression the returned error wraps
// io.ErrUnexpectedEOF, allowing interactive callers to ask for more input.
func (r *Reader) Read(rt *lisp.Runtime, text string) (*lisp.LVal, string, error) {
	p := newParser(rt, text)
	v, err := p.readExpr()
	if err != nil {
		return nil, p.rest(), err
	}
	return v, p.rest(), nil
}

// ReadAll parses every expression in text.
func (r *Reader) ReadAll(rt *lisp.Runtime, text string) ([]*lisp.LVal, error) {
	p := newParser(rt, text)
	var exprs []*lisp.LVal
	for {
		p.skipSpace()
		if p.s.Endof() {
			return exprs, nil
		}
		v, err := p.readExpr()
		if err != nil {
			return exprs, err
		}
		exprs = append(exprs, v)
	}
}

type parser struct {
	rt   *lisp.Runtime
	text string
	s    parsec.Scanner
}

func newParser(rt *lisp.Runtime, text string) *parser {
	return &parser{
		rt:   rt,
		text: text,
		s:    parsec.NewScanner([]byte(text)),
	}
}

func (p *parser) rest() string {
	return p.text[p.s.GetCursor():]
}

func (p *parser) peek() byte {
	return p.text[p.s.GetCursor()]
}

func (p *parser) match(pattern string) []byte {
	var tok []byte
	tok, p.s = p.s.Match(pattern)
	return tok
}

func (p *parser) skipSpace() {
	p.match(patternSpace)
}

func unexpectedEOF(what string) error {
	return lisp.WrapError(lisp.ErrnoParse, io.ErrUnexpectedEOF, "unexpected end of input in %s", what)
}

func (p *parser) readExpr() (*lisp.LVal, error) {
	p.skipSpace()
	if p.s.Endof() {
		return nil, unexpectedEOF("expression")
	}
	switch p.peek() {
	case '(':
		p.match(patternOpen)
		return p.readList()
	case '"':
		tok := p.match(patternString)
		if tok == nil {
			return nil, unexpectedEOF("string")
		}
		return p.rt.String(string(tok[1 : len(tok)-1])), nil
	}
	if tok := p.match(patternNumber); tok != nil {
		x, err := strconv.ParseFloat(string(tok), 64)
		// out of range literals read as +Inf or -Inf
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, lisp.WrapError(lisp.ErrnoParse, err, "bad number %s", tok)
		}
		return p.rt.Number(x), nil
	}
	if tok := p.match(patternSymbol); tok != nil {
		sym, err := p.rt.Symbol(string(tok))
		if err != nil {
			return nil, lisp.WrapError(lisp.ErrnoParse, err, "bad symbol %s", tok)
		}
		return sym, nil
	}
	return nil, lisp.Errorf(lisp.ErrnoParse, "no parse for remaining input: %s", abbrev(p.rest()))
}

// readList reads expressions up to and including the closing parenthesis.
// The opening parenthesis has already been consumed.
func (p *parser) readList() (*lisp.LVal, error) {
	var cells []*lisp.LVal
	for {
		p.skipSpace()
		if p.s.Endof() {
			return nil, unexpectedEOF("list")
		}
		if p.peek() == ')' {
			p.match(patternClose)
			return p.rt.List(cells...), nil
		}
		v, err := p.readExpr()
		if err != nil {
			return nil, err
		}
		cells = append(cells, v)
	}
}

func abbrev(s string) string {
	const maxLen = 20
	if len(s) > maxLen {
		return strconv.Quote(s[:maxLen] + "...")
	}
	return strconv.Quote(s)
}
