// Copyright (c) 2026 lemmod
// SPDX-License-Identifier: MIT

package gfxset

import (
	"fmt"
	"strconv"
	"unicode"

	"gopkg.in/src-d/go-errors.v1"
)

// ErrSyntax is returned for malformed theme scripts. The message carries
// the line number of the offending token.
var ErrSyntax = errors.NewKind("line %d: %s")

// TokenKind discriminates lexer tokens.
type TokenKind int

const (
	TokenIdent TokenKind = iota
	TokenSymbol
	TokenString
	TokenNumber
)

// Token is one lexical element of a theme script.
type Token struct {
	Kind TokenKind
	Line int

	Ident  string // TokenIdent
	Symbol rune   // TokenSymbol
	Str    string // TokenString
	Num    int64  // TokenNumber
}

func (t *Token) String() string {
	switch t.Kind {
	case TokenIdent:
		return t.Ident
	case TokenSymbol:
		return fmt.Sprintf("%q", t.Symbol)
	case TokenString:
		return strconv.Quote(t.Str)
	default:
		return strconv.FormatInt(t.Num, 10)
	}
}

// Lexer tokenizes a theme script. Identifiers are runs of letters, digits
// and underscores; any other printable character is a single-rune symbol.
// String literals have no escape sequences, and numbers are signed decimal
// integers.
type Lexer struct {
	data     []rune
	offset   int
	line     int
	buffered *Token
}

// NewLexer returns a lexer over the script text.
func NewLexer(script string) *Lexer {
	return &Lexer{data: []rune(script), line: 1}
}

func (l *Lexer) peekRune() (rune, bool) {
	if l.offset >= len(l.data) {
		return 0, false
	}
	return l.data[l.offset], true
}

func (l *Lexer) eatRune() {
	if l.data[l.offset] == '\n' {
		l.line++
	}
	l.offset++
}

func (l *Lexer) skipSpace() {
	for {
		c, ok := l.peekRune()
		if !ok || !unicode.IsSpace(c) {
			return
		}
		l.eatRune()
	}
}

// Next returns the next token, or nil at end of input.
func (l *Lexer) Next() (*Token, error) {
	if t := l.buffered; t != nil {
		l.buffered = nil
		return t, nil
	}

	l.skipSpace()
	c, ok := l.peekRune()
	if !ok {
		return nil, nil
	}
	line := l.line

	switch {
	case c == '"':
		l.eatRune()
		start := l.offset
		for {
			c, ok := l.peekRune()
			if !ok {
				return nil, ErrSyntax.New(line, "unterminated string literal")
			}
			if c == '"' {
				break
			}
			l.eatRune()
		}
		s := string(l.data[start:l.offset])
		l.eatRune() // closing quote
		return &Token{Kind: TokenString, Line: line, Str: s}, nil

	case unicode.IsDigit(c) || c == '-':
		start := l.offset
		l.eatRune()
		for {
			c, ok := l.peekRune()
			if !ok || !unicode.IsDigit(c) {
				break
			}
			l.eatRune()
		}
		text := string(l.data[start:l.offset])
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, ErrSyntax.New(line, fmt.Sprintf("bad number %q", text))
		}
		return &Token{Kind: TokenNumber, Line: line, Num: n}, nil

	case unicode.IsLetter(c) || c == '_':
		start := l.offset
		for {
			c, ok := l.peekRune()
			if !ok || (!unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_') {
				break
			}
			l.eatRune()
		}
		return &Token{Kind: TokenIdent, Line: line, Ident: string(l.data[start:l.offset])}, nil

	default:
		l.eatRune()
		return &Token{Kind: TokenSymbol, Line: line, Symbol: c}, nil
	}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (*Token, error) {
	if l.buffered != nil {
		return l.buffered, nil
	}
	t, err := l.Next()
	if err != nil {
		return nil, err
	}
	l.buffered = t
	return t, nil
}

// NextIsIdent reports whether the next token is the given identifier.
func (l *Lexer) NextIsIdent(ident string) (bool, error) {
	t, err := l.Peek()
	if err != nil || t == nil {
		return false, err
	}
	return t.Kind == TokenIdent && t.Ident == ident, nil
}

// ExpectIdent consumes the next token and fails unless it is the given
// identifier.
func (l *Lexer) ExpectIdent(ident string) error {
	t, err := l.Next()
	if err != nil {
		return err
	}
	if t == nil {
		return ErrSyntax.New(l.line, fmt.Sprintf("expected %s, got end of script", ident))
	}
	if t.Kind != TokenIdent || t.Ident != ident {
		return ErrSyntax.New(t.Line, fmt.Sprintf("expected %s, got %s", ident, t))
	}
	return nil
}

// ExpectSymbol consumes the next token and fails unless it is the given
// symbol.
func (l *Lexer) ExpectSymbol(sym rune) error {
	t, err := l.Next()
	if err != nil {
		return err
	}
	if t == nil {
		return ErrSyntax.New(l.line, fmt.Sprintf("expected %q, got end of script", sym))
	}
	if t.Kind != TokenSymbol || t.Symbol != sym {
		return ErrSyntax.New(t.Line, fmt.Sprintf("expected %q, got %s", sym, t))
	}
	return nil
}

// StringLit consumes the next token as a string literal.
func (l *Lexer) StringLit() (string, error) {
	t, err := l.Next()
	if err != nil {
		return "", err
	}
	if t == nil {
		return "", ErrSyntax.New(l.line, "expected string literal, got end of script")
	}
	if t.Kind != TokenString {
		return "", ErrSyntax.New(t.Line, fmt.Sprintf("expected string literal, got %s", t))
	}
	return t.Str, nil
}

// IntLit consumes the next token as an integer literal.
func (l *Lexer) IntLit() (int64, error) {
	t, err := l.Next()
	if err != nil {
		return 0, err
	}
	if t == nil {
		return 0, ErrSyntax.New(l.line, "expected integer literal, got end of script")
	}
	if t.Kind != TokenNumber {
		return 0, ErrSyntax.New(t.Line, fmt.Sprintf("expected integer literal, got %s", t))
	}
	return t.Num, nil
}
