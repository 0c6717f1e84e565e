package chunk

import (
	"strings"
	"testing"

	"glint/value"
)

func TestWriteTracksLines(t *testing.T) {
	c := New()
	c.Write(byte(OpReturn), 1)
	c.Write(byte(OpReturn), 2)
	if len(c.Code) != 2 || len(c.Lines) != 2 {
		t.Fatalf("Code/Lines length mismatch: %+v", c)
	}
	if c.Lines[0] != 1 || c.Lines[1] != 2 {
		t.Errorf("lines = %v, want [1 2]", c.Lines)
	}
}

func TestAddConstant(t *testing.T) {
	c := New()
	idx := c.AddConstant(value.Number(42))
	if idx != 0 {
		t.Errorf("first constant index = %d, want 0", idx)
	}
	idx2 := c.AddConstant(value.Number(7))
	if idx2 != 1 {
		t.Errorf("second constant index = %d, want 1", idx2)
	}
}

func TestDisassembleConstant(t *testing.T) {
	c := New()
	idx := c.AddConstant(value.Number(1))
	c.Write(byte(OpConstant), 1)
	c.Write(byte(idx), 1)
	c.Write(byte(OpReturn), 1)

	out := c.Disassemble("test")
	if !strings.Contains(out, "OP_CONSTANT") || !strings.Contains(out, "OP_RETURN") {
		t.Errorf("disassembly missing opcodes: %s", out)
	}
}

func TestOpcodeString(t *testing.T) {
	if OpAdd.String() != "OP_ADD" {
		t.Errorf("OpAdd.String() = %q", OpAdd.String())
	}
}
