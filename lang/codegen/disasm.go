package codegen

import (
	"fmt"
	"io"
)

// Disassemble writes a human-readable listing of code, one instruction per
// line as "<address>: <op-name> <arg>", to w. This mirrors the reference
// implementation's print_code debug dump.
func Disassemble(w io.Writer, code []Instruction) error {
	for addr, insn := range code {
		if _, err := fmt.Fprintf(w, "%3d: %-20s %d\n", addr, insn.Op, insn.Arg); err != nil {
			return err
		}
	}
	return nil
}
