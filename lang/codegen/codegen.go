package codegen

import "fmt"

// DefaultCodeSize is the default capacity of the code segment, matching the
// reference implementation's fixed-size array.
const DefaultCodeSize = 999

// PendingJump is an opaque handle to a reserved-but-unpatched instruction
// slot. It must be consumed by exactly one call to Backpatch; a Generator
// whose Close is called with outstanding handles reports an error instead of
// silently leaving garbage in the code segment.
type PendingJump struct {
	addr    int
	patched bool
}

// Generator emits instructions into a bounded code segment and supports
// reserve/backpatch for forward jumps.
type Generator struct {
	code  []Instruction
	limit int

	pending []*PendingJump
}

// New returns a Generator whose code segment may hold at most limit
// instructions. A limit <= 0 uses DefaultCodeSize.
func New(limit int) *Generator {
	if limit <= 0 {
		limit = DefaultCodeSize
	}
	return &Generator{limit: limit}
}

// Len returns the current number of emitted instructions, i.e. the address
// the next instruction will receive. This is the "current label" used as the
// jump target for backward branches (while/do loops).
func (g *Generator) Len() int {
	return len(g.code)
}

// Code returns the emitted instructions.
func (g *Generator) Code() []Instruction {
	return g.code
}

// Emit appends an instruction to the code segment and returns its address.
func (g *Generator) Emit(op Opcode, arg int) (int, error) {
	if len(g.code) >= g.limit {
		return 0, fmt.Errorf("code segment overflow: exceeds %d instructions", g.limit)
	}
	addr := len(g.code)
	g.code = append(g.code, Instruction{Op: op, Arg: arg})
	return addr, nil
}

// Reserve emits a placeholder instruction with the given opcode and an
// undefined argument, returning a handle that must later be passed to
// Backpatch to fill in the real jump target.
func (g *Generator) Reserve(op Opcode) (*PendingJump, error) {
	addr, err := g.Emit(op, -1)
	if err != nil {
		return nil, err
	}
	pj := &PendingJump{addr: addr}
	g.pending = append(g.pending, pj)
	return pj, nil
}

// Backpatch fills in the argument of a previously reserved instruction with
// target, the address the jump should go to. It panics if pj was already
// patched, since that indicates a codegen bug, not a runtime condition.
func (g *Generator) Backpatch(pj *PendingJump, target int) {
	if pj.patched {
		panic("codegen: PendingJump already patched")
	}
	g.code[pj.addr].Arg = target
	pj.patched = true
}

// Close validates that every reserved jump was patched. It returns an error
// naming the first unpatched address found, which indicates a bug in the
// caller's control-flow emission rather than a user-facing compile error.
func (g *Generator) Close() error {
	for _, pj := range g.pending {
		if !pj.patched {
			return fmt.Errorf("codegen: unpatched jump reserved at address %d", pj.addr)
		}
	}
	return nil
}

// Prologue emits the DATA instruction that reserves dataSize slots at the
// bottom of the stack for the symbol table's data segment.
func (g *Generator) Prologue(dataSize int) error {
	_, err := g.Emit(DATA, dataSize)
	return err
}

// Epilogue emits the terminal HALT instruction.
func (g *Generator) Epilogue() error {
	_, err := g.Emit(HALT, 0)
	return err
}

// Lookup is the minimal symbol-table view ContextEmit needs: resolving an
// identifier to its data-segment offset.
type Lookup interface {
	Lookup(name string) (offset int, ok bool)
}

// ContextEmit resolves name in tab and emits op with the resolved offset as
// argument. It returns an error identifying name as undefined if tab has no
// entry for it, mirroring the reference implementation's context_check.
func (g *Generator) ContextEmit(tab Lookup, op Opcode, name string) error {
	offset, ok := tab.Lookup(name)
	if !ok {
		return fmt.Errorf("identifier not defined: %s", name)
	}
	_, err := g.Emit(op, offset)
	return err
}
