// Package chunk defines the bytecode container the compiler emits into and
// the VM executes: a flat byte array of instructions, a parallel line table
// for error reporting, and a constant pool.
package chunk

import (
	"fmt"
	"strings"

	"glint/value"
)

type Opcode byte

const (
	OpConstant Opcode = iota
	OpNil
	OpTrue
	OpFalse
	OpEqual
	OpGreater
	OpLess
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpNot
	OpNegate
	OpReturn
)

var opcodeNames = map[Opcode]string{
	OpConstant: "OP_CONSTANT", OpNil: "OP_NIL", OpTrue: "OP_TRUE",
	OpFalse: "OP_FALSE", OpEqual: "OP_EQUAL", OpGreater: "OP_GREATER",
	OpLess: "OP_LESS", OpAdd: "OP_ADD", OpSubtract: "OP_SUBTRACT",
	OpMultiply: "OP_MULTIPLY", OpDivide: "OP_DIVIDE", OpNot: "OP_NOT",
	OpNegate: "OP_NEGATE", OpReturn: "OP_RETURN",
}

func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return fmt.Sprintf("OP_UNKNOWN(%d)", byte(op))
}

// MaxConstants is the size of the byte-indexed constant pool: OpConstant's
// operand is a single byte, so a chunk may hold at most 256 constants.
const MaxConstants = 256

// Chunk is a unit of compiled bytecode: instructions, their source lines
// (index-aligned with Code, one entry per byte), and the constant pool
// OpConstant indexes into.
type Chunk struct {
	Code      []byte
	Lines     []int
	Constants []value.Value
}

func New() *Chunk {
	return &Chunk{}
}

// Write appends a single instruction byte, recording the source line it
// came from. Growth is delegated to append, Go's idiomatic equivalent of a
// capacity-doubling growable array.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// AddConstant appends v to the constant pool and returns its index. Callers
// emitting OpConstant are responsible for checking the index still fits in
// a byte (see compiler.makeConstant).
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// Disassemble renders every instruction in the chunk as a human-readable
// listing, headed by name.
func (c *Chunk) Disassemble(name string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		var line string
		offset, line = c.DisassembleInstruction(offset)
		b.WriteString(line)
	}
	return b.String()
}

// DisassembleInstruction renders the instruction at offset and returns the
// offset of the next instruction along with the rendered line.
func (c *Chunk) DisassembleInstruction(offset int) (int, string) {
	var b strings.Builder
	fmt.Fprintf(&b, "%04d ", offset)
	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		fmt.Fprintf(&b, "   | ")
	} else {
		fmt.Fprintf(&b, "%4d ", c.Lines[offset])
	}

	op := Opcode(c.Code[offset])
	switch op {
	case OpConstant:
		index := c.Code[offset+1]
		fmt.Fprintf(&b, "%-16s %4d '%s'\n", op, index, c.Constants[index])
		return offset + 2, b.String()
	case OpNil, OpTrue, OpFalse, OpEqual, OpGreater, OpLess,
		OpAdd, OpSubtract, OpMultiply, OpDivide, OpNot, OpNegate, OpReturn:
		fmt.Fprintf(&b, "%s\n", op)
		return offset + 1, b.String()
	default:
		fmt.Fprintf(&b, "Unknown opcode %d\n", op)
		return offset + 1, b.String()
	}
}
