package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"glint/compiler"
	"glint/vm"
)

// exit codes fixed by the external contract: 0 success, 65 compile error,
// 70 runtime error, 74 I/O error.
const (
	exitUsageError   = 64
	exitCompileError = 65
	exitRuntimeError = 70
	exitIOError      = 74
)

type runCmd struct {
	debug bool
}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute a glint source file" }
func (*runCmd) Usage() string {
	return `run <path>:
  Compile and execute a glint source file.
`
}

func (cmd *runCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.debug, "debug", false, "trace compiler/VM disassembly to stderr")
}

func (cmd *runCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: glint run [path]\n")
		return exitUsageError
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return exitIOError
	}

	compiler.Debug = cmd.debug
	if cmd.debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	machine := vm.New()
	machine.Debug = cmd.debug
	return runSource(machine, string(data))
}

func runSource(machine *vm.VM, source string) subcommands.ExitStatus {
	switch machine.Interpret(source) {
	case vm.InterpretOK:
		return subcommands.ExitSuccess
	case vm.InterpretCompileError:
		fmt.Fprint(os.Stderr, machine.LastError.Error())
		fmt.Fprintln(os.Stderr)
		return exitCompileError
	case vm.InterpretRuntimeError:
		fmt.Fprint(os.Stderr, machine.LastError.Error())
		return exitRuntimeError
	default:
		return subcommands.ExitFailure
	}
}
