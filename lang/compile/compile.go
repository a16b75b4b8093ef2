// Package compile wires the scanner, parser, symbol table, code generator,
// and virtual machine together into the single compile_and_run entry point.
package compile

import (
	"context"
	"io"

	"github.com/yaflang/yafl/lang/codegen"
	"github.com/yaflang/yafl/lang/parser"
	"github.com/yaflang/yafl/lang/symtab"
	"github.com/yaflang/yafl/lang/vm"
)

// Limits bounds the code segment and value stack sizes; a zero field uses
// the package default.
type Limits struct {
	CodeSize  int
	StackSize int
}

// Compile parses src (named filename for diagnostics) and returns the
// generated code, or the accumulated compile diagnostics if any were
// reported. No code is emitted to be executed when an error is returned.
func Compile(filename string, src []byte, limits Limits) ([]codegen.Instruction, error) {
	tab := symtab.New()
	gen := codegen.New(limits.CodeSize)

	p := parser.New(filename, src, tab, gen)
	if err := p.Parse(); err != nil {
		return nil, err
	}
	return gen.Code(), nil
}

// Run compiles src and, if compilation succeeded, executes it against stdin
// and stdout. It implements the orchestration sequence: reset state (fresh
// per call since Compile always starts from empty S/G), parse, abort on
// error, then execute. ctx is checked once, before compiling: if it is
// already done, Run returns ctx.Err() without compiling. It is not consulted
// afterwards, so cancelling it does not interrupt a running program.
func Run(ctx context.Context, filename string, src []byte, limits Limits, stdin io.Reader, stdout io.Writer, trace io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	code, err := Compile(filename, src, limits)
	if err != nil {
		return err
	}

	m := vm.New(code, limits.StackSize, stdin, stdout)
	if trace != nil {
		m.SetTrace(trace)
	}
	return m.Run()
}
