package vm

import "fmt"

// RuntimeError is raised when an opcode's operands don't match its type
// expectations. Error() renders the exact wire format the driver writes to
// stderr: the message, then the faulting line.
type RuntimeError struct {
	Message string
	Line    int
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d] in script\n", e.Message, e.Line)
}
