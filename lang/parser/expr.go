package parser

import (
	"github.com/yaflang/yafl/lang/codegen"
	"github.com/yaflang/yafl/lang/token"
)

// expr recognizes an expression and emits it in postfix (RPN) order: each
// operand leaves exactly one value on the stack, followed by a single
// operator instruction per the stack-effect invariant.
func (p *Parser) expr() {
	p.orExpr()
}

func (p *Parser) emit(op codegen.Opcode) {
	if _, err := p.gen.Emit(op, 0); err != nil {
		p.errorf("%s", err)
	}
}

func (p *Parser) orExpr() {
	p.andExpr()
	for p.tok == token.OR {
		p.advance()
		p.andExpr()
		p.emit(codegen.OR)
	}
}

func (p *Parser) andExpr() {
	p.notExpr()
	for p.tok == token.AND {
		p.advance()
		p.notExpr()
		p.emit(codegen.AND)
	}
}

func (p *Parser) notExpr() {
	if p.tok == token.NOT {
		p.advance()
		p.notExpr()
		p.emit(codegen.NOT)
		return
	}
	p.relExpr()
}

var relOps = map[token.Token]codegen.Opcode{
	token.LT:  codegen.LT,
	token.LE:  codegen.LE,
	token.GT:  codegen.GT,
	token.GE:  codegen.GE,
	token.EQL: codegen.EQ,
	token.NEQ: codegen.NE,
}

// relExpr recognizes a single, non-chained comparison: the source language
// has no transitive chained comparisons like "a < b < c".
func (p *Parser) relExpr() {
	p.bitExpr()
	if op, ok := relOps[p.tok]; ok {
		p.advance()
		p.bitExpr()
		p.emit(op)
	}
}

var bitOps = map[token.Token]codegen.Opcode{
	token.AMP:  codegen.BINAND,
	token.PIPE: codegen.BINOR,
	token.CARET: codegen.BINXOR,
	token.SHL:  codegen.BINSHL,
	token.SHR:  codegen.BINSHR,
}

func (p *Parser) bitExpr() {
	p.addExpr()
	for {
		op, ok := bitOps[p.tok]
		if !ok {
			return
		}
		p.advance()
		p.addExpr()
		p.emit(op)
	}
}

func (p *Parser) addExpr() {
	p.mulExpr()
	for p.tok == token.PLUS || p.tok == token.MINUS {
		op := codegen.ADD
		if p.tok == token.MINUS {
			op = codegen.SUB
		}
		p.advance()
		p.mulExpr()
		p.emit(op)
	}
}

var mulOps = map[token.Token]codegen.Opcode{
	token.STAR:  codegen.MUL,
	token.SLASH: codegen.DIV,
	token.MOD:   codegen.MOD,
}

func (p *Parser) mulExpr() {
	p.unary()
	for {
		op, ok := mulOps[p.tok]
		if !ok {
			return
		}
		p.advance()
		p.unary()
		p.emit(op)
	}
}

func (p *Parser) unary() {
	if p.tok == token.MINUS {
		p.advance()
		p.unary()
		p.emit(codegen.UMINUS)
		return
	}
	p.powExpr()
}

// powExpr recognizes exponentiation, right-associative: "2 ** 3 ** 2" is
// "2 ** (3 ** 2)".
func (p *Parser) powExpr() {
	p.primary()
	if p.tok == token.POW {
		p.advance()
		p.unary()
		p.emit(codegen.PWR)
	}
}

func (p *Parser) primary() {
	switch p.tok {
	case token.INT:
		v := p.val.Int
		p.advance()
		if _, err := p.gen.Emit(codegen.LDINT, int(v)); err != nil {
			p.errorf("%s", err)
		}

	case token.IDENT:
		name := p.val.Raw
		p.advance()
		if err := p.gen.ContextEmit(p.tab, codegen.LDVAR, name); err != nil {
			p.errorf("%s", err)
		}

	case token.LPAREN:
		p.advance()
		p.expr()
		p.expect(token.RPAREN)

	default:
		p.errorf("expected expression, found %s", p.tok.GoString())
		p.advance()
	}
}
