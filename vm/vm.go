// Package vm implements the stack-based virtual machine that executes
// compiled glint bytecode.
package vm

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"glint/chunk"
	"glint/compiler"
	"glint/value"
)

// InterpretResult classifies the outcome of Interpret.
type InterpretResult int

const (
	InterpretOK InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

// VM is a stack-based bytecode interpreter. It is reused across REPL lines:
// only its operand stack is reset between runs, matching the reference's
// single process-wide VM instance.
type VM struct {
	chunk *chunk.Chunk
	ip    int
	stack stack

	Debug bool
	// LastError holds the error from the most recent Interpret call when
	// its result was not InterpretOK.
	LastError error
	// LastValue holds the printed value from the most recent successful
	// Interpret call.
	LastValue value.Value
}

func New() *VM {
	return &VM{}
}

// Interpret compiles and runs source against a fresh chunk, reusing this
// VM's stack and debug configuration.
func (vm *VM) Interpret(source string) InterpretResult {
	c, err := compiler.Compile(source)
	if err != nil {
		vm.LastError = err
		return InterpretCompileError
	}

	vm.chunk = c
	vm.ip = 0
	vm.stack.reset()

	return vm.run()
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) run() InterpretResult {
	for {
		if vm.Debug {
			vm.traceStack()
			_, line := vm.chunk.DisassembleInstruction(vm.ip)
			logrus.Debugln(line)
		}

		op := chunk.Opcode(vm.readByte())
		switch op {
		case chunk.OpConstant:
			index := vm.readByte()
			if !vm.stack.push(vm.chunk.Constants[index]) {
				return vm.runtimeError("Stack overflow.")
			}
		case chunk.OpNil:
			if !vm.stack.push(value.Nil()) {
				return vm.runtimeError("Stack overflow.")
			}
		case chunk.OpTrue:
			if !vm.stack.push(value.Bool(true)) {
				return vm.runtimeError("Stack overflow.")
			}
		case chunk.OpFalse:
			if !vm.stack.push(value.Bool(false)) {
				return vm.runtimeError("Stack overflow.")
			}
		case chunk.OpEqual:
			b := vm.stack.pop()
			a := vm.stack.pop()
			vm.stack.push(value.Bool(value.Equal(a, b)))
		case chunk.OpGreater:
			if result, ok := vm.numericBinary(func(a, b float64) value.Value { return value.Bool(a > b) }, "Operands must be numbers."); !ok {
				return result
			}
		case chunk.OpLess:
			if result, ok := vm.numericBinary(func(a, b float64) value.Value { return value.Bool(a < b) }, "Operands must be numbers."); !ok {
				return result
			}
		case chunk.OpAdd:
			if result, ok := vm.numericBinary(func(a, b float64) value.Value { return value.Number(a + b) }, "Operands must be numbers."); !ok {
				return result
			}
		case chunk.OpSubtract:
			if result, ok := vm.numericBinary(func(a, b float64) value.Value { return value.Number(a - b) }, "Operands must be numbers."); !ok {
				return result
			}
		case chunk.OpMultiply:
			if result, ok := vm.numericBinary(func(a, b float64) value.Value { return value.Number(a * b) }, "Operands must be numbers."); !ok {
				return result
			}
		case chunk.OpDivide:
			if result, ok := vm.numericBinary(func(a, b float64) value.Value { return value.Number(a / b) }, "Operands must be numbers."); !ok {
				return result
			}
		case chunk.OpNot:
			v := vm.stack.pop()
			vm.stack.push(value.Bool(v.IsFalsey()))
		case chunk.OpNegate:
			if !vm.stack.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			v := vm.stack.pop()
			vm.stack.push(value.Number(-v.AsNumber()))
		case chunk.OpReturn:
			result := vm.stack.pop()
			vm.LastValue = result
			fmt.Println(result.String())
			return InterpretOK
		default:
			return vm.runtimeError(fmt.Sprintf("Unknown opcode %d.", op))
		}
	}
}

// numericBinary pops two operands, requiring both to be numbers (else
// message is reported as a runtime error), applies apply, and pushes the
// result. Every binary numeric opcode reports "Operands must be numbers.";
// only NEGATE, the one unary numeric opcode, uses the singular wording.
func (vm *VM) numericBinary(apply func(a, b float64) value.Value, message string) (InterpretResult, bool) {
	if !vm.stack.peek(0).IsNumber() || !vm.stack.peek(1).IsNumber() {
		return vm.runtimeError(message), false
	}
	b := vm.stack.pop()
	a := vm.stack.pop()
	vm.stack.push(apply(a.AsNumber(), b.AsNumber()))
	return InterpretOK, true
}

// runtimeError formats message, resets the stack, and returns
// InterpretRuntimeError. The reported line is that of the instruction whose
// execution caused the fault: the opcode byte just consumed, at ip-1.
func (vm *VM) runtimeError(message string) InterpretResult {
	line := vm.chunk.Lines[vm.ip-1]
	vm.LastError = RuntimeError{Message: message, Line: line}
	vm.stack.reset()
	return InterpretRuntimeError
}

func (vm *VM) traceStack() {
	var b []byte
	for i := 0; i < vm.stack.top; i++ {
		b = append(b, []byte(fmt.Sprintf("[ %s ]", vm.stack.slots[i]))...)
	}
	fmt.Fprintln(os.Stderr, string(b))
}
