package parser

import (
	"github.com/yaflang/yafl/lang/codegen"
	"github.com/yaflang/yafl/lang/token"
)

// statement recognizes a single statement and emits its bytecode, per the
// backpatching protocol for if/then/else and while/do.
func (p *Parser) statement() {
	switch p.tok {
	case token.IDENT:
		p.assignStatement()
	case token.IF:
		p.ifStatement()
	case token.WHILE:
		p.whileStatement()
	case token.INPUT:
		p.inputStatement()
	case token.OUTPUT:
		p.outputStatement()
	case token.DO:
		p.blockStatement()
	default:
		p.errorf("expected statement, found %s", p.tok.GoString())
		p.advance()
	}
}

// assignStatement recognizes IDENT ':=' expr ';'.
func (p *Parser) assignStatement() {
	name := p.val.Raw
	p.advance()
	p.expect(token.ASSIGN)
	p.expr()
	if err := p.gen.ContextEmit(p.tab, codegen.STORE, name); err != nil {
		p.errorf("%s", err)
	}
	p.expect(token.SEMI)
}

// inputStatement recognizes 'input' IDENT ';'.
func (p *Parser) inputStatement() {
	p.advance()
	if p.tok != token.IDENT {
		p.errorf("expected identifier, found %s", p.tok.GoString())
		return
	}
	name := p.val.Raw
	p.advance()
	if err := p.gen.ContextEmit(p.tab, codegen.INPUTINT, name); err != nil {
		p.errorf("%s", err)
	}
	p.expect(token.SEMI)
}

// outputStatement recognizes 'output' expr ';'.
func (p *Parser) outputStatement() {
	p.advance()
	p.expr()
	if _, err := p.gen.Emit(codegen.OUTPUTINT, 0); err != nil {
		p.errorf("%s", err)
	}
	p.expect(token.SEMI)
}

// blockStatement recognizes 'do' { statement } 'end' ';', a statement list
// usable anywhere a single statement is expected.
func (p *Parser) blockStatement() {
	p.advance()
	for stmtStartSet[p.tok] {
		p.statement()
	}
	p.expect(token.END)
	p.expect(token.SEMI)
}

// ifStatement implements the if-then-else backpatching protocol: reserve a
// JMPFALSE to the else branch, emit the then-body, reserve a GOTO past the
// else branch, backpatch the first jump to the else branch's start, emit
// the else-body (if any), then backpatch the second jump to the end.
func (p *Parser) ifStatement() {
	p.advance()
	p.expr()

	jmpElse, err := p.gen.Reserve(codegen.JMPFALSE)
	if err != nil {
		p.errorf("%s", err)
	}

	p.expect(token.THEN)
	p.statement()

	jmpEnd, err := p.gen.Reserve(codegen.GOTO)
	if err != nil {
		p.errorf("%s", err)
	}

	if jmpElse != nil {
		p.gen.Backpatch(jmpElse, p.gen.Len())
	}
	if p.tok == token.ELSE {
		p.advance()
		p.statement()
	}
	if jmpEnd != nil {
		p.gen.Backpatch(jmpEnd, p.gen.Len())
	}
}

// whileStatement implements the while-do backpatching protocol: record the
// loop top label before the condition, reserve a JMPFALSE to the exit,
// emit the body (a statement list running until 'end'), emit a GOTO back to
// the top, then backpatch the exit jump. Unlike if/then/else, the body is
// always a statement list rather than a single statement: "while c do
// s1; s2; end;" needs no separate do/end block wrapper.
func (p *Parser) whileStatement() {
	loopTop := p.gen.Len()

	p.advance()
	p.expr()

	jmpExit, err := p.gen.Reserve(codegen.JMPFALSE)
	if err != nil {
		p.errorf("%s", err)
	}

	p.expect(token.DO)
	for stmtStartSet[p.tok] {
		p.statement()
	}
	p.expect(token.END)
	p.expect(token.SEMI)

	if _, err := p.gen.Emit(codegen.GOTO, loopTop); err != nil {
		p.errorf("%s", err)
	}
	if jmpExit != nil {
		p.gen.Backpatch(jmpExit, p.gen.Len())
	}
}
