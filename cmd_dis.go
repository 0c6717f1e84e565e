package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"glint/compiler"
)

// disCmd compiles a source file without executing it and prints its
// disassembly, adapted from the reference's standalone bytecode-dump
// tooling.
type disCmd struct{}

func (*disCmd) Name() string     { return "dis" }
func (*disCmd) Synopsis() string { return "Compile a file and print its bytecode disassembly" }
func (*disCmd) Usage() string {
	return `dis <path>:
  Compile without executing, then print the chunk disassembly.
`
}

func (*disCmd) SetFlags(f *flag.FlagSet) {}

func (*disCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: glint dis <path>\n")
		return exitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return exitIOError
	}

	c, cErr := compiler.Compile(string(data))
	if cErr != nil {
		fmt.Fprintln(os.Stderr, cErr.Error())
		return exitCompileError
	}

	fmt.Print(c.Disassemble(args[0]))
	return subcommands.ExitSuccess
}
