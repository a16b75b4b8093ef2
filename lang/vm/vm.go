// Package vm implements the virtual machine (V): a stack-based interpreter
// that fetches, decodes, and executes the fixed-width bytecode emitted by
// package codegen.
package vm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/yaflang/yafl/lang/codegen"
)

// DefaultStackSize is the default capacity of the value stack, matching the
// reference implementation's fixed-size array.
const DefaultStackSize = 999

var (
	// ErrZeroDivision is returned when DIV or MOD divides by zero.
	ErrZeroDivision = errors.New("arithmetic error: zero division")
	// ErrMalformedInput is returned when INPUTINT cannot parse a decimal
	// integer from the configured input stream.
	ErrMalformedInput = errors.New("malformed input: expected a decimal integer")
	// ErrStackOverflow is returned when the value stack would grow beyond its
	// configured limit.
	ErrStackOverflow = errors.New("stack overflow")
)

// registers mirrors the reference implementation's named register file.
type registers struct {
	pc  int // program counter
	ir  codegen.Instruction
	top int // top-of-stack index; starts at 0 and DATA advances it past the data segment
	ar  int // activation record base, always 0 in this language
}

// VM executes a code segment against a value stack it owns.
type VM struct {
	code  []codegen.Instruction
	stack []int
	limit int
	r     registers

	stdin  *bufio.Reader
	stdout io.Writer
	trace  io.Writer
}

// New returns a VM ready to execute code, with a value stack bounded by
// stackLimit (DefaultStackSize if <= 0), reading INPUTINT from stdin and
// writing OUTPUTINT to stdout.
func New(code []codegen.Instruction, stackLimit int, stdin io.Reader, stdout io.Writer) *VM {
	if stackLimit <= 0 {
		stackLimit = DefaultStackSize
	}
	return &VM{
		code:   code,
		stack:  make([]int, stackLimit),
		limit:  stackLimit,
		stdin:  bufio.NewReader(stdin),
		stdout: stdout,
	}
}

// SetTrace enables a per-instruction register trace written to w before
// every fetch-decode-execute cycle, mirroring the reference implementation's
// (normally disabled) printRegisters debug hook.
func (m *VM) SetTrace(w io.Writer) {
	m.trace = w
}

func (m *VM) push(v int) error {
	m.r.top++
	if m.r.top >= m.limit {
		return ErrStackOverflow
	}
	m.stack[m.r.top] = v
	return nil
}

func (m *VM) pop() int {
	v := m.stack[m.r.top]
	m.r.top--
	return v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Run executes the code segment from address 0 until a HALT instruction,
// returning the first runtime error encountered, if any.
func (m *VM) Run() error {
	for {
		if m.trace != nil {
			var topVal int
			if m.r.top >= 0 {
				topVal = m.stack[m.r.top]
			}
			fmt.Fprintf(m.trace, "PC=%3d IR.arg=%8d AR=%3d Top=%3d,%8d\n",
				m.r.pc, m.r.ir.Arg, m.r.ar, m.r.top, topVal)
		}

		if m.r.pc < 0 || m.r.pc >= len(m.code) {
			return fmt.Errorf("program counter out of range: %d", m.r.pc)
		}
		m.r.ir = m.code[m.r.pc]
		m.r.pc++

		switch m.r.ir.Op {
		case codegen.HALT:
			return nil

		case codegen.INPUTINT:
			fmt.Fprint(m.stdout, "Input: ")
			var v int
			if _, err := fmt.Fscanf(m.stdin, "%d", &v); err != nil {
				return ErrMalformedInput
			}
			m.stack[m.r.ar+m.r.ir.Arg] = v

		case codegen.OUTPUTINT:
			fmt.Fprintf(m.stdout, "Output: %d\n", m.pop())

		case codegen.STORE:
			m.stack[m.r.ir.Arg] = m.pop()

		case codegen.JMPFALSE:
			if m.pop() == 0 {
				m.r.pc = m.r.ir.Arg
			}

		case codegen.GOTO:
			m.r.pc = m.r.ir.Arg

		case codegen.DATA:
			m.r.top += m.r.ir.Arg

		case codegen.LDINT:
			if err := m.push(m.r.ir.Arg); err != nil {
				return err
			}

		case codegen.LDVAR:
			if err := m.push(m.stack[m.r.ar+m.r.ir.Arg]); err != nil {
				return err
			}

		case codegen.OR:
			b, a := m.pop(), m.pop()
			if err := m.push(boolInt(a != 0 || b != 0)); err != nil {
				return err
			}

		case codegen.AND:
			b, a := m.pop(), m.pop()
			if err := m.push(boolInt(a != 0 && b != 0)); err != nil {
				return err
			}

		case codegen.NOT:
			m.stack[m.r.top] = boolInt(m.stack[m.r.top] == 0)

		case codegen.UMINUS:
			m.stack[m.r.top] = -m.stack[m.r.top]

		case codegen.LT:
			b, a := m.pop(), m.pop()
			if err := m.push(boolInt(a < b)); err != nil {
				return err
			}
		case codegen.LE:
			b, a := m.pop(), m.pop()
			if err := m.push(boolInt(a <= b)); err != nil {
				return err
			}
		case codegen.EQ:
			b, a := m.pop(), m.pop()
			if err := m.push(boolInt(a == b)); err != nil {
				return err
			}
		case codegen.NE:
			b, a := m.pop(), m.pop()
			if err := m.push(boolInt(a != b)); err != nil {
				return err
			}
		case codegen.GT:
			b, a := m.pop(), m.pop()
			if err := m.push(boolInt(a > b)); err != nil {
				return err
			}
		case codegen.GE:
			b, a := m.pop(), m.pop()
			if err := m.push(boolInt(a >= b)); err != nil {
				return err
			}

		case codegen.BINAND:
			b, a := m.pop(), m.pop()
			if err := m.push(a & b); err != nil {
				return err
			}
		case codegen.BINOR:
			b, a := m.pop(), m.pop()
			if err := m.push(a | b); err != nil {
				return err
			}
		case codegen.BINXOR:
			b, a := m.pop(), m.pop()
			if err := m.push(a ^ b); err != nil {
				return err
			}
		case codegen.BINSHL:
			b, a := m.pop(), m.pop()
			if err := m.push(a << maskShift(b)); err != nil {
				return err
			}
		case codegen.BINSHR:
			b, a := m.pop(), m.pop()
			if err := m.push(a >> maskShift(b)); err != nil {
				return err
			}

		case codegen.ADD:
			b, a := m.pop(), m.pop()
			if err := m.push(a + b); err != nil {
				return err
			}
		case codegen.SUB:
			b, a := m.pop(), m.pop()
			if err := m.push(a - b); err != nil {
				return err
			}
		case codegen.MUL:
			b, a := m.pop(), m.pop()
			if err := m.push(a * b); err != nil {
				return err
			}
		case codegen.MOD:
			b, a := m.pop(), m.pop()
			if b == 0 {
				return ErrZeroDivision
			}
			if err := m.push(a % b); err != nil {
				return err
			}
		case codegen.DIV:
			b, a := m.pop(), m.pop()
			if b == 0 {
				return ErrZeroDivision
			}
			if err := m.push(a / b); err != nil {
				return err
			}
		case codegen.PWR:
			b, a := m.pop(), m.pop()
			if err := m.push(int(math.Trunc(math.Pow(float64(a), float64(b))))); err != nil {
				return err
			}

		default:
			return fmt.Errorf("illegal instruction: %v", m.r.ir.Op)
		}
	}
}

// maskShift keeps the low 6 bits of a shift count (a value in [0, 63]),
// treating it as unsigned so a negative or out-of-range BINSHL/BINSHR operand
// cannot panic.
func maskShift(n int) uint {
	return uint(n) & 63
}
