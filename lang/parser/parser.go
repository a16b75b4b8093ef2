// Package parser implements a single-pass recursive-descent parser that
// drives the symbol table and code generator directly as it recognizes
// productions; there is no intermediate AST.
package parser

import (
	"fmt"
	gotoken "go/token"

	"github.com/yaflang/yafl/lang/codegen"
	"github.com/yaflang/yafl/lang/scanner"
	"github.com/yaflang/yafl/lang/symtab"
	"github.com/yaflang/yafl/lang/token"
)

// Parser recognizes the YAFL source-language surface and emits bytecode for
// it as it goes, driving gen and tab directly.
type Parser struct {
	filename string
	sc       scanner.Scanner
	tab      *symtab.Table
	gen      *codegen.Generator

	tok token.Token
	val token.Value

	errs scanner.ErrorList
}

// New returns a Parser that scans src (named filename, for diagnostics) and
// emits into gen, resolving identifiers in tab.
func New(filename string, src []byte, tab *symtab.Table, gen *codegen.Generator) *Parser {
	p := &Parser{filename: filename, tab: tab, gen: gen}
	p.sc.Init(filename, src, p.errs.Add)
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.tok = p.sc.Scan(&p.val)
}

func (p *Parser) pos() gotoken.Position {
	line, col := p.val.Pos.LineCol()
	return gotoken.Position{Filename: p.filename, Line: line, Column: col}
}

func (p *Parser) errorf(format string, args ...any) {
	p.errs.Add(p.pos(), fmt.Sprintf(format, args...))
}

// expect advances past the current token if it is tok; otherwise it reports
// an error and does not advance (error recovery: assume the token was just
// missing).
func (p *Parser) expect(tok token.Token) {
	if p.tok != tok {
		p.errorf("expected %s, found %s", tok.GoString(), p.tok.GoString())
		return
	}
	p.advance()
}

// Parse recognizes an entire program: declarations, then statements,
// emitting the DATA prologue and HALT epilogue around the statement list.
// It returns the accumulated diagnostics, if any, as a sorted
// scanner.ErrorList.
func (p *Parser) Parse() error {
	p.declarations()

	// the prologue's data size is only known once every declaration has been
	// installed, so it's emitted here rather than as declarations are seen.
	if err := p.gen.Prologue(p.tab.Len()); err != nil {
		p.errorf("%s", err)
	}

	for stmtStartSet[p.tok] {
		p.statement()
	}
	p.expect(token.EOF)

	if err := p.gen.Epilogue(); err != nil {
		p.errorf("%s", err)
	}
	if err := p.gen.Close(); err != nil {
		p.errorf("%s", err)
	}

	p.errs.Sort()
	return p.errs.Err()
}

// declarations recognizes { 'var' IDENT ';' }.
func (p *Parser) declarations() {
	for p.tok == token.VAR {
		p.advance()
		if p.tok != token.IDENT {
			p.errorf("expected identifier, found %s", p.tok.GoString())
		} else {
			name := p.val.Raw
			if _, ok := p.tab.Install(name); !ok {
				p.errorf("duplicate definition: %s", name)
			}
			p.advance()
		}
		p.expect(token.SEMI)
	}
}

var stmtStartSet = map[token.Token]bool{
	token.IDENT:  true,
	token.IF:     true,
	token.WHILE:  true,
	token.INPUT:  true,
	token.OUTPUT: true,
	token.DO:     true,
}
