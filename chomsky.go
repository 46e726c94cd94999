// Package chomsky contains a CLI-driven engine for loading a context-free
// grammar and converting it to Chomsky Normal Form one stage at a time, reading
// commands continuously until the user quits.
package chomsky

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dekarrin/chomsky/grammar"
	"github.com/dekarrin/chomsky/internal/chomerr"
	"github.com/dekarrin/chomsky/internal/command"
	"github.com/dekarrin/chomsky/internal/gfile"
	"github.com/dekarrin/chomsky/internal/input"
	"github.com/dekarrin/rosed"
)

const consoleOutputWidth = 80

// Options changes how an Engine is created and what it does.
type Options struct {
	// ForceDirect reads input directly from the input stream even when
	// readline could be used.
	ForceDirect bool

	// HistoryFile is where readline keeps command history. Ignored in direct
	// mode.
	HistoryFile string

	// Pipeline is used by RUN and by batch mode.
	Pipeline grammar.Options

	// Stages, if set, replaces the stages that RUN and batch mode apply.
	Stages []grammar.Stage
}

// Engine contains the things needed to run a normalization session from an
// interactive shell attached to an input stream and an output stream.
type Engine struct {
	original *grammar.Grammar
	current  *grammar.Grammar
	applied  []grammar.Stage

	opts    Options
	in      command.Reader
	out     *bufio.Writer
	running bool
}

// New creates a new engine ready to operate on the given input and output
// streams with the grammar loaded from the CNFG file at grammarFilePath.
//
// If nil is given for the input stream, stdin is used. If nil is given for the
// output stream, stdout is used.
func New(inputStream io.Reader, outputStream io.Writer, grammarFilePath string, opts Options) (*Engine, error) {
	g, err := gfile.Load(grammarFilePath)
	if err != nil {
		return nil, err
	}

	return NewFromGrammar(inputStream, outputStream, g, opts)
}

// NewFromGrammar is like New but starts with a grammar that has already been
// loaded. g is copied and is not modified by the Engine.
func NewFromGrammar(inputStream io.Reader, outputStream io.Writer, g *grammar.Grammar, opts Options) (*Engine, error) {
	if inputStream == nil {
		inputStream = os.Stdin
	}
	if outputStream == nil {
		outputStream = os.Stdout
	}

	eng := &Engine{
		original: g.Copy(),
		current:  g.Copy(),
		opts:     opts,
		out:      bufio.NewWriter(outputStream),
	}

	useReadline := !opts.ForceDirect && inputStream == os.Stdin && outputStream == os.Stdout

	if useReadline {
		var err error
		eng.in, err = input.NewInteractiveReader(opts.HistoryFile)
		if err != nil {
			return nil, fmt.Errorf("initializing interactive-mode input reader: %w", err)
		}
	} else {
		eng.in = input.NewDirectReader(inputStream)
	}

	return eng, nil
}

// Grammar returns a copy of the grammar as it is after every stage applied so
// far.
func (eng *Engine) Grammar() *grammar.Grammar {
	return eng.current.Copy()
}

// Applied returns the stages applied since the grammar was loaded or last
// reset, in order.
func (eng *Engine) Applied() []grammar.Stage {
	return append([]grammar.Stage{}, eng.applied...)
}

// Close closes all resources associated with the Engine, including any
// readline-related resources created for interactive mode.
func (eng *Engine) Close() error {
	if eng.running {
		return fmt.Errorf("cannot close a running engine")
	}

	err := eng.in.Close()
	if err != nil {
		return fmt.Errorf("close command reader: %w", err)
	}

	return nil
}

// RunUntilQuit begins reading commands from the streams and applying them to
// the grammar until the QUIT command is received or input ends.
func (eng *Engine) RunUntilQuit() error {
	introMsg := "Chomsky Normal Form Interpreter\n"
	if eng.opts.ForceDirect {
		introMsg += "(direct input mode)\n"
	}
	introMsg += "===============================\n"
	introMsg += "\n"
	introMsg += fmt.Sprintf("Loaded grammar with %d nonterminals and %d productions; start symbol is %s\n",
		len(eng.current.NonTerminals()), eng.current.ProductionCount(), eng.current.Start())
	introMsg += "Type HELP for a list of commands\n"

	if err := eng.write(introMsg); err != nil {
		return err
	}

	eng.running = true
	defer func() {
		eng.running = false
	}()

	for eng.running {
		cmd, err := command.Get(eng.in, eng.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("get user command: %w", err)
		}

		if cmd.Verb == "QUIT" {
			eng.running = false
			break
		}

		output, err := eng.Execute(cmd)
		if err != nil {
			output = chomerr.ConsoleMessage(err)
			output = rosed.Edit(output).Wrap(consoleOutputWidth).String()
		}
		if err := eng.write(output + "\n"); err != nil {
			return err
		}
	}

	return eng.write("Goodbye\n")
}

// RunBatch applies the configured pipeline to the grammar once and writes the
// summary of every stage followed by the resulting grammar to the output
// stream.
func (eng *Engine) RunBatch() error {
	output, err := eng.Execute(command.Command{Verb: "RUN"})
	if err != nil {
		return err
	}
	return eng.write(output + "\n")
}

// Execute carries out a single command against the grammar and returns the
// text to show for it. QUIT is not handled here. If the command cannot be
// carried out, the returned error has a message for the console.
func (eng *Engine) Execute(cmd command.Command) (string, error) {
	switch cmd.Verb {
	case "SHOW":
		if cmd.Arg == "ORIGINAL" {
			return eng.original.Display(), nil
		}
		return eng.current.Display(), nil
	case "TABLE":
		return eng.current.Table(consoleOutputWidth), nil
	case "NULLABLE":
		return listOrNone("Nullable nonterminals", eng.current.Nullable()), nil
	case "UNITS":
		pairs := eng.current.UnitPairs()
		names := make([]string, len(pairs))
		for i := range pairs {
			names[i] = pairs[i].String()
		}
		return listOrNone("Unit pairs", names), nil
	case "REACHABLE":
		return listOrNone("Reachable nonterminals", eng.current.Reachable()), nil
	case "PRODUCTIVE":
		return listOrNone("Productive nonterminals", eng.current.Productive()), nil
	case "STEP":
		st, err := grammar.ParseStage(cmd.Arg)
		if err != nil {
			return "", chomerr.WrapCommandf(err, "%q is not a stage; use one of START, EPSILON, UNIT, UNREACHABLE, UNPRODUCTIVE, or CNF", cmd.Arg)
		}
		return eng.runStages([]grammar.Stage{st}), nil
	case "RUN":
		stages := eng.opts.Stages
		if len(stages) == 0 {
			stages = eng.opts.Pipeline.Stages()
		}
		return eng.runStages(stages), nil
	case "RESET":
		eng.current = eng.original.Copy()
		eng.applied = nil
		return "Grammar reset to the one originally loaded", nil
	case "CHECK":
		violations := eng.current.CNFViolations()
		if len(violations) == 0 {
			return "Grammar is in Chomsky Normal Form", nil
		}
		return "Grammar is not in Chomsky Normal Form:\n  " + strings.Join(violations, "\n  "), nil
	case "ACCEPTS":
		return eng.accepts(cmd.Arg)
	case "HELP":
		return helpText(cmd.Arg)
	default:
		return "", chomerr.Commandf("I don't know how to %s", cmd.Verb)
	}
}

func (eng *Engine) runStages(stages []grammar.Stage) string {
	results := eng.current.Run(stages...)
	eng.applied = append(eng.applied, stages...)

	var sb strings.Builder
	for _, res := range results {
		sb.WriteString(res.String())
		sb.WriteRune('\n')
	}
	sb.WriteRune('\n')
	sb.WriteString(eng.current.Display())
	return sb.String()
}

func (eng *Engine) accepts(text string) (string, error) {
	tokens, err := eng.original.Tokenize(text)
	if err != nil {
		return "", chomerr.WrapCommandf(err, "Can't test %q: %v", text, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("original: %s\n", acceptedOrRejected(eng.original.Earley(tokens))))

	if eng.current.IsCNF() {
		ok, err := eng.current.CYK(tokens)
		if err != nil {
			return "", err
		}
		sb.WriteString(fmt.Sprintf("current:  %s (CYK)", acceptedOrRejected(ok)))
	} else {
		sb.WriteString(fmt.Sprintf("current:  %s (Earley)", acceptedOrRejected(eng.current.Earley(tokens))))
	}

	return sb.String(), nil
}

func (eng *Engine) write(s string) error {
	if _, err := eng.out.WriteString(s); err != nil {
		return fmt.Errorf("could not write output: %w", err)
	}
	if err := eng.out.Flush(); err != nil {
		return fmt.Errorf("could not flush output: %w", err)
	}
	return nil
}

func acceptedOrRejected(ok bool) string {
	if ok {
		return "accepted"
	}
	return "rejected"
}

func listOrNone(label string, items []string) string {
	if len(items) == 0 {
		return label + ": (none)"
	}
	return label + ": " + strings.Join(items, ", ")
}
