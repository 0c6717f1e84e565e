package compiler

import (
	"strings"
	"testing"

	"glint/chunk"
)

func compileOK(t *testing.T, source string) *chunk.Chunk {
	t.Helper()
	c, err := Compile(source)
	if err != nil {
		t.Fatalf("Compile(%q) returned error: %v", source, err)
	}
	return c
}

func TestSimpleArithmeticEmitsExpectedOpcodes(t *testing.T) {
	c := compileOK(t, "1 + 2")
	want := []chunk.Opcode{chunk.OpConstant, chunk.OpConstant, chunk.OpAdd, chunk.OpReturn}
	gotLen := 0
	for i := 0; i < len(c.Code); {
		op := chunk.Opcode(c.Code[i])
		if gotLen >= len(want) || op != want[gotLen] {
			t.Fatalf("opcode %d = %s, want %s (full: %v)", gotLen, op, want[gotLen], c.Code)
		}
		gotLen++
		if op == chunk.OpConstant {
			i += 2
		} else {
			i++
		}
	}
	if gotLen != len(want) {
		t.Errorf("got %d opcodes, want %d", gotLen, len(want))
	}
}

func TestComparisonRewrites(t *testing.T) {
	cases := map[string][]chunk.Opcode{
		"1 != 2": {chunk.OpConstant, chunk.OpConstant, chunk.OpEqual, chunk.OpNot, chunk.OpReturn},
		"1 >= 2": {chunk.OpConstant, chunk.OpConstant, chunk.OpLess, chunk.OpNot, chunk.OpReturn},
		"1 <= 2": {chunk.OpConstant, chunk.OpConstant, chunk.OpGreater, chunk.OpNot, chunk.OpReturn},
	}
	for src, want := range cases {
		c := compileOK(t, src)
		gotLen := 0
		for i := 0; i < len(c.Code); {
			op := chunk.Opcode(c.Code[i])
			if gotLen >= len(want) || op != want[gotLen] {
				t.Fatalf("%q: opcode %d = %s, want %s", src, gotLen, op, want[gotLen])
			}
			gotLen++
			if op == chunk.OpConstant {
				i += 2
			} else {
				i++
			}
		}
	}
}

func TestEmptyInputIsCompileError(t *testing.T) {
	_, err := Compile("")
	if err == nil {
		t.Fatal("Compile(\"\") should error")
	}
	if !strings.Contains(err.Error(), "Expect expression.") {
		t.Errorf("error = %v, want it to mention Expect expression.", err)
	}
}

func TestUnterminatedAdditionReportsExactMessage(t *testing.T) {
	_, err := Compile("1 +")
	if err == nil {
		t.Fatal("Compile(\"1 +\") should error")
	}
	if !strings.Contains(err.Error(), "[line 1] Error at end: Expect expression.") {
		t.Errorf("error = %v, want exact message", err)
	}
}

func TestTooManyConstants(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 257; i++ {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString("1")
	}
	_, err := Compile(b.String())
	if err == nil || !strings.Contains(err.Error(), "Too many constants in one chunk.") {
		t.Errorf("expected too-many-constants error, got %v", err)
	}
}

func TestGroupingAndUnary(t *testing.T) {
	compileOK(t, "-(1 + 2)")
	compileOK(t, "!true")
	compileOK(t, "!!false")
}
