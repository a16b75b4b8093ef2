package codegen_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yaflang/yafl/lang/codegen"
	"github.com/yaflang/yafl/lang/symtab"
)

func TestEmitAndLen(t *testing.T) {
	g := codegen.New(0)
	addr, err := g.Emit(codegen.LDINT, 42)
	require.NoError(t, err)
	require.Equal(t, 0, addr)
	require.Equal(t, 1, g.Len())
}

func TestReserveAndBackpatch(t *testing.T) {
	g := codegen.New(0)
	pj, err := g.Reserve(codegen.JMPFALSE)
	require.NoError(t, err)

	_, _ = g.Emit(codegen.LDINT, 1)
	target := g.Len()
	g.Backpatch(pj, target)

	require.Equal(t, target, g.Code()[0].Arg)
	require.NoError(t, g.Close())
}

func TestCloseReportsUnpatchedJump(t *testing.T) {
	g := codegen.New(0)
	_, err := g.Reserve(codegen.GOTO)
	require.NoError(t, err)

	require.Error(t, g.Close())
}

func TestEmitOverflow(t *testing.T) {
	g := codegen.New(2)
	_, err := g.Emit(codegen.LDINT, 1)
	require.NoError(t, err)
	_, err = g.Emit(codegen.LDINT, 2)
	require.NoError(t, err)
	_, err = g.Emit(codegen.LDINT, 3)
	require.Error(t, err)
}

func TestContextEmit(t *testing.T) {
	tab := symtab.New()
	tab.Install("x")

	g := codegen.New(0)
	require.NoError(t, g.ContextEmit(tab, codegen.LDVAR, "x"))
	require.Equal(t, codegen.Instruction{Op: codegen.LDVAR, Arg: 0}, g.Code()[0])

	err := g.ContextEmit(tab, codegen.LDVAR, "y")
	require.Error(t, err)
}

func TestPrologueEpilogue(t *testing.T) {
	g := codegen.New(0)
	require.NoError(t, g.Prologue(3))
	require.NoError(t, g.Epilogue())
	require.Equal(t, []codegen.Instruction{
		{Op: codegen.DATA, Arg: 3},
		{Op: codegen.HALT, Arg: 0},
	}, g.Code())
}

func TestDisassemble(t *testing.T) {
	g := codegen.New(0)
	_, _ = g.Emit(codegen.LDINT, 7)
	_, _ = g.Emit(codegen.HALT, 0)

	var buf bytes.Buffer
	require.NoError(t, codegen.Disassemble(&buf, g.Code()))
	require.Contains(t, buf.String(), "Load Integer")
	require.Contains(t, buf.String(), "Halt")
}
