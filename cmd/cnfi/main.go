/*
Cnfi starts an interactive session for converting a context-free grammar to
Chomsky Normal Form.

It reads in a CNFG grammar file and then reads commands from stdin, printing the
grammar and the effect of each transformation stage to stdout, until the
"QUIT" command is input. In batch mode it instead applies every stage once and
prints the result.

Usage:

	cnfi [flags]

The flags are:

	-v, --version
		Give the current version of cnfi and then exit.

	-g, --grammar FILE
		Use the provided CNFG grammar or manifest file. Defaults to the file
		"grammar.cnfg" in the current working directory.

	-d, --direct
		Force reading directly from the console as opposed to using GNU readline
		based routines for reading command input even if launched in a tty with
		stdin and stdout.

	-b, --batch
		Do not start an interactive session. Apply the pipeline once, print a
		summary of each stage and the normalized grammar, and exit.

	-o, --output FILE
		In batch mode, also write the normalized grammar to FILE as a CNFG
		grammar file.

	-s, --stages LIST
		Apply only the given comma-separated stages, in the given order, when
		running the pipeline. Stage names are start, epsilon, unit,
		unreachable, unproductive, and cnf.

	--strict-prune
		Remove unreachable symbols a second time after removing unproductive
		ones.

	--isolate-start
		Give the grammar a new start symbol before anything else if the current
		one appears on the right-hand side of any production.

	--trace LEVEL
		Set the level of trace output from the transformation stages to one of
		Debug, Info, or Error.

Once a session has started, the user input will be parsed for commands. For an
explanation of the commands, type "HELP" once in a session. To exit the
interpreter, type "QUIT".
*/
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/chomsky"
	"github.com/dekarrin/chomsky/grammar"
	"github.com/dekarrin/chomsky/internal/gfile"
	"github.com/dekarrin/chomsky/internal/version"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/pflag"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitSessionError indicates an unsuccessful program execution due to a
	// problem during the session.
	ExitSessionError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the engine.
	ExitInitError
)

var (
	returnCode int = ExitSuccess

	flagVersion      = pflag.BoolP("version", "v", false, "Give the version info and then exit.")
	flagGrammar      = pflag.StringP("grammar", "g", "grammar.cnfg", "The CNFG grammar or manifest file that contains the grammar to normalize.")
	flagDirect       = pflag.BoolP("direct", "d", false, "Force reading directly from stdin instead of going through GNU readline where possible.")
	flagBatch        = pflag.BoolP("batch", "b", false, "Apply the pipeline once, print the result, and exit.")
	flagOutput       = pflag.StringP("output", "o", "", "In batch mode, write the normalized grammar to the given CNFG file.")
	flagStages       = pflag.StringP("stages", "s", "", "Comma-separated list of stages to apply instead of the full pipeline.")
	flagStrictPrune  = pflag.Bool("strict-prune", false, "Remove unreachable symbols again after removing unproductive ones.")
	flagIsolateStart = pflag.Bool("isolate-start", false, "Give the grammar a new start symbol before anything else.")
	flagTrace        = pflag.String("trace", "", "Trace level for transformation stages [Debug|Info|Error].")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic(panicErr)
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		returnCode = ExitInitError
		return
	}

	if *flagTrace != "" {
		tracing.Select("chomsky.grammar").SetTraceLevel(tracing.TraceLevelFromString(*flagTrace))
	}

	opts := chomsky.Options{
		ForceDirect: *flagDirect || *flagBatch,
		Pipeline: grammar.Options{
			IsolateStart: *flagIsolateStart,
			Reprune:      *flagStrictPrune,
		},
	}
	if *flagStages != "" {
		stages, err := grammar.ParseStages(*flagStages)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\nDo -h for help.\n", err.Error())
			returnCode = ExitInitError
			return
		}
		opts.Stages = stages
	}
	if home, err := os.UserHomeDir(); err == nil {
		opts.HistoryFile = filepath.Join(home, ".cnfi_history")
	}

	eng, initErr := chomsky.New(os.Stdin, os.Stdout, *flagGrammar, opts)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer eng.Close()

	if *flagBatch {
		if err := eng.RunBatch(); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitSessionError
			return
		}
		if *flagOutput != "" {
			if err := gfile.Save(*flagOutput, eng.Grammar()); err != nil {
				fmt.Fprintf(os.Stderr, "ERROR: write output: %s\n", err.Error())
				returnCode = ExitSessionError
			}
		}
		return
	}

	err := eng.RunUntilQuit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitSessionError
		return
	}
}
