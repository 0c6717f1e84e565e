package compiler

import (
	"fmt"
	"strings"
)

// CompileError is one reported lex/parse failure, positioned at the token
// that triggered it. Error() renders the exact wire format the driver
// writes to stderr.
type CompileError struct {
	Line int
	// Where is "" (error token's own message is the reason), " at end", or
	// " at '<lexeme>'".
	Where  string
	Reason string
}

func (e CompileError) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Reason)
}

// errorListFormat renders accumulated compile errors one per line with no
// added wrapper text. Panic-mode means a single call to Compile almost
// always surfaces exactly one error, so the common case is just that
// error's own Error() string, matching the wire format exactly; multierror's
// default "N errors occurred:" banner would break that contract.
func errorListFormat(es []error) string {
	lines := make([]string, len(es))
	for i, e := range es {
		lines[i] = e.Error()
	}
	return strings.Join(lines, "\n")
}
