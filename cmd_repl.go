package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"glint/compiler"
	"glint/vm"
)

type replCmd struct {
	debug bool
}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start an interactive glint REPL" }
func (*replCmd) Usage() string {
	return `repl:
  Start an interactive session. Ctrl-D exits.
`
}

func (cmd *replCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.debug, "debug", false, "trace compiler/VM disassembly to stderr")
}

func (cmd *replCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rl, err := readline.NewEx(&readline.Config{Prompt: "> "})
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to start REPL: %v\n", err)
		return subcommands.ExitFailure
	}
	defer rl.Close()

	compiler.Debug = cmd.debug
	if cmd.debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	machine := vm.New()
	machine.Debug = cmd.debug

	for {
		line, err := rl.Readline()
		if err == io.EOF || err == readline.ErrInterrupt {
			return subcommands.ExitSuccess
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "💥 %v\n", err)
			return subcommands.ExitFailure
		}

		switch machine.Interpret(line) {
		case vm.InterpretOK:
		case vm.InterpretCompileError:
			fmt.Fprintln(os.Stderr, machine.LastError.Error())
		case vm.InterpretRuntimeError:
			fmt.Fprint(os.Stderr, machine.LastError.Error())
		}
	}
}
