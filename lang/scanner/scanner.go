// Some of the scanner package is adapted from the Go source code:
// https://cs.opensource.google/go/go/+/refs/tags/go1.22.1:src/go/scanner/scanner.go
//
// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scanner

import (
	"bytes"
	"context"
	"fmt"
	"go/scanner"
	gotoken "go/token"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/yaflang/yafl/lang/token"
)

type (
	Error     = scanner.Error
	ErrorList = scanner.ErrorList
)

var PrintError = scanner.PrintError

// TokenAndValue combines the token type with the token value type in the same
// struct.
type TokenAndValue struct {
	Token token.Token
	Value token.Value
}

// ScanFiles is a helper function that tokenizes the source files and returns
// the list of tokens, grouped by the file at the same index, and produces any
// error encountered. The error, if non-nil, is a sorted ErrorList.
func ScanFiles(ctx context.Context, files ...string) ([][]TokenAndValue, error) {
	if len(files) == 0 {
		return nil, nil
	}

	var (
		s      Scanner
		tokVal token.Value
		el     ErrorList
	)

	tokensByFile := make([][]TokenAndValue, len(files))
	for i, file := range files {
		b, err := os.ReadFile(file)
		if err != nil {
			el.Add(gotoken.Position{Filename: file}, err.Error())
			continue
		}

		s.Init(file, b, el.Add)
		for {
			tok := s.Scan(&tokVal)
			tokensByFile[i] = append(tokensByFile[i], TokenAndValue{
				Token: tok,
				Value: tokVal,
			})
			if tok == token.EOF {
				break
			}
		}
	}
	el.Sort()
	return tokensByFile, el.Err()
}

// Scanner tokenizes a single source file for the parser to consume.
type Scanner struct {
	// immutable state after Init
	filename string
	src      []byte
	err      func(pos gotoken.Position, msg string)

	// mutable scanning state
	cur  rune // current character
	off  int  // byte offset of cur
	roff int  // reading offset in bytes (position after current character)
	line int  // 1-based current line
	col  int  // 1-based current column
}

// Init initializes the scanner to tokenize a new file.
func (s *Scanner) Init(filename string, src []byte, errHandler func(gotoken.Position, string)) {
	s.filename = filename
	s.src = src
	s.err = errHandler

	s.cur = ' '
	s.off = 0
	s.roff = 0
	s.line = 1
	s.col = 0

	s.advance()
}

// peek returns the byte following the most recently read character without
// advancing the scanner. If the scanner is at EOF, peek returns 0.
func (s *Scanner) peek() byte {
	if s.roff < len(s.src) {
		return s.src[s.roff]
	}
	return 0
}

// advance reads the next Unicode char into s.cur; s.cur < 0 means end-of-file.
func (s *Scanner) advance() {
	if s.cur == '\n' {
		s.line++
		s.col = 0
	}

	if s.roff >= len(s.src) {
		s.off = len(s.src)
		s.cur = -1
		return
	}

	s.off = s.roff
	r, w := rune(s.src[s.roff]), 1
	if r >= utf8.RuneSelf {
		r, w = utf8.DecodeRune(s.src[s.roff:])
		if r == utf8.RuneError && w == 1 {
			s.error(s.off, "illegal UTF-8 encoding")
		}
	}
	s.roff += w
	s.cur = r
	s.col++
}

func (s *Scanner) pos() token.Pos {
	return token.MakePos(s.line, s.col)
}

func (s *Scanner) error(off int, msg string) {
	if s.err != nil {
		line, col := s.line, s.col
		s.err(gotoken.Position{Filename: s.filename, Offset: off, Line: line, Column: col}, msg)
	}
}

func (s *Scanner) errorf(off int, format string, args ...any) {
	s.error(off, fmt.Sprintf(format, args...))
}

// advanceIf advances only if the current char matches any of the specified
// ones, reporting whether it did.
func (s *Scanner) advanceIf(matches ...byte) bool {
	if bytes.ContainsRune(matches, s.cur) {
		s.advance()
		return true
	}
	return false
}

// Scan returns the next token in the source file.
func (s *Scanner) Scan(tokVal *token.Value) (tok token.Token) {
	s.skipWhitespaceAndComments()

	pos := s.pos()
	start := s.off

	switch cur := s.cur; {
	case isLetter(cur):
		lit := s.ident()
		tok = token.Lookup(lit)
		*tokVal = token.Value{Raw: lit, Pos: pos}

	case isDigit(cur):
		lit := s.number()
		tok = token.INT
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			s.error(start, "integer literal value out of range")
		}
		*tokVal = token.Value{Raw: lit, Pos: pos, Int: v}

	default:
		s.advance() // always make progress
		switch cur {
		case ';':
			tok = token.SEMI
		case '(':
			tok = token.LPAREN
		case ')':
			tok = token.RPAREN
		case '+':
			tok = token.PLUS
		case '-':
			tok = token.MINUS
		case '%':
			tok = token.MOD
		case '&':
			tok = token.AMP
		case '|':
			tok = token.PIPE
		case '^':
			tok = token.CARET

		case '*':
			tok = token.STAR
			if s.advanceIf('*') {
				tok = token.POW
			}

		case '/':
			tok = token.SLASH

		case ':':
			if s.advanceIf('=') {
				tok = token.ASSIGN
			} else {
				s.errorf(start, "illegal character %#U, expected ':='", cur)
				tok = token.ILLEGAL
			}

		case '<':
			switch {
			case s.advanceIf('='):
				tok = token.LE
			case s.advanceIf('>'):
				tok = token.NEQ
			case s.advanceIf('<'):
				tok = token.SHL
			default:
				tok = token.LT
			}

		case '>':
			switch {
			case s.advanceIf('='):
				tok = token.GE
			case s.advanceIf('>'):
				tok = token.SHR
			default:
				tok = token.GT
			}

		case '=':
			tok = token.EQL

		case -1:
			tok = token.EOF

		default:
			s.errorf(start, "illegal character %#U", cur)
			tok = token.ILLEGAL
		}
		*tokVal = token.Value{Raw: string(s.src[start:s.off]), Pos: pos}
	}
	return tok
}

func (s *Scanner) ident() string {
	start := s.off
	for isLetter(s.cur) || isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) number() string {
	start := s.off
	for isDigit(s.cur) {
		s.advance()
	}
	return string(s.src[start:s.off])
}

func (s *Scanner) skipWhitespaceAndComments() {
	for {
		switch {
		case isWhitespace(s.cur):
			s.advance()
		case s.cur == '/' && s.peek() == '/':
			for s.cur != '\n' && s.cur != -1 {
				s.advance()
			}
		default:
			return
		}
	}
}

func isWhitespace(rn rune) bool {
	return rn == ' ' || rn == '\t' || rn == '\n' || rn == '\r'
}

func isLetter(rn rune) bool {
	return 'a' <= rn && rn <= 'z' ||
		'A' <= rn && rn <= 'Z' ||
		rn == '_' ||
		rn >= utf8.RuneSelf && unicode.IsLetter(rn)
}

func isDigit(rn rune) bool {
	return '0' <= rn && rn <= '9'
}
