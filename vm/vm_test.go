package vm

import (
	"strings"
	"testing"

	"glint/value"
)

func interpretOK(t *testing.T, source string) *VM {
	t.Helper()
	v := New()
	result := v.Interpret(source)
	if result != InterpretOK {
		t.Fatalf("Interpret(%q) = %v, want InterpretOK (err: %v)", source, result, v.LastError)
	}
	return v
}

func TestArithmeticAndPrecedence(t *testing.T) {
	cases := []struct {
		source string
		want   value.Value
	}{
		{"1 + 2", value.Number(3)},
		{"1 - 2 - 3", value.Number(-4)},
		{"1 + 2 * 3", value.Number(7)},
		{"(1 + 2) * 3", value.Number(9)},
		{"(-1 + 2) * 3 - -4", value.Number(7)},
	}
	for _, c := range cases {
		v := interpretOK(t, c.source)
		if !value.Equal(v.LastValue, c.want) {
			t.Errorf("Interpret(%q) = %s, want %s", c.source, v.LastValue, c.want)
		}
	}
}

func TestBooleanLogic(t *testing.T) {
	cases := []struct {
		source string
		want   value.Value
	}{
		{"!nil", value.Bool(true)},
		{"!(5 - 4 > 3 * 2 == !nil)", value.Bool(true)},
		{"!!false", value.Bool(false)},
		{"1 == 1", value.Bool(true)},
		{"1 != 2", value.Bool(true)},
	}
	for _, c := range cases {
		v := interpretOK(t, c.source)
		if !value.Equal(v.LastValue, c.want) {
			t.Errorf("Interpret(%q) = %s, want %s", c.source, v.LastValue, c.want)
		}
	}
}

func TestStackEmptyAfterInterpret(t *testing.T) {
	v := interpretOK(t, "1 + 2")
	if !v.stack.isEmpty() {
		t.Errorf("stack not empty after Interpret: top=%d", v.stack.top)
	}
}

func TestNegateNonNumberRuntimeError(t *testing.T) {
	v := New()
	result := v.Interpret("-true")
	if result != InterpretRuntimeError {
		t.Fatalf("Interpret(\"-true\") = %v, want InterpretRuntimeError", result)
	}
	want := "Operand must be a number.\n[line 1] in script\n"
	if v.LastError.Error() != want {
		t.Errorf("error = %q, want %q", v.LastError.Error(), want)
	}
}

func TestAddNonNumberRuntimeError(t *testing.T) {
	v := New()
	result := v.Interpret(`1 + true`)
	if result != InterpretRuntimeError {
		t.Fatalf("Interpret = %v, want InterpretRuntimeError", result)
	}
	if !strings.Contains(v.LastError.Error(), "Operands must be numbers.") {
		t.Errorf("error = %v, want Operands must be numbers.", v.LastError)
	}
}

func TestVMReusedAcrossCalls(t *testing.T) {
	v := New()
	v.Interpret("1 + 1")
	v.Interpret("2 + 2")
	if !value.Equal(v.LastValue, value.Number(4)) {
		t.Errorf("second Interpret result = %s, want 4", v.LastValue)
	}
}
