package grammar

import (
	"fmt"
	"strings"
)

// Stage is a single transformation that can be applied to a Grammar.
type Stage int

const (
	StageIsolateStart Stage = iota
	StageEpsilon
	StageUnit
	StageUnreachable
	StageUnproductive
	StageCNF
)

// DefaultPipeline is the order of stages that Normalize runs when no options
// are given.
var DefaultPipeline = []Stage{
	StageEpsilon,
	StageUnit,
	StageUnreachable,
	StageUnproductive,
	StageCNF,
}

var stageNames = map[Stage]string{
	StageIsolateStart: "start",
	StageEpsilon:      "epsilon",
	StageUnit:         "unit",
	StageUnreachable:  "unreachable",
	StageUnproductive: "unproductive",
	StageCNF:          "cnf",
}

var stageAliases = map[string]Stage{
	"start":        StageIsolateStart,
	"isolate":      StageIsolateStart,
	"epsilon":      StageEpsilon,
	"eps":          StageEpsilon,
	"ε":            StageEpsilon,
	"e":            StageEpsilon,
	"unit":         StageUnit,
	"units":        StageUnit,
	"u":            StageUnit,
	"unreachable":  StageUnreachable,
	"reach":        StageUnreachable,
	"reachable":    StageUnreachable,
	"r":            StageUnreachable,
	"unproductive": StageUnproductive,
	"productive":   StageUnproductive,
	"prod":         StageUnproductive,
	"p":            StageUnproductive,
	"cnf":          StageCNF,
	"binarize":     StageCNF,
	"c":            StageCNF,
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// ParseStage returns the Stage named by s. Matching is case-insensitive and
// several short aliases are accepted (e.g. "eps", "u", "reach").
func ParseStage(s string) (Stage, error) {
	st, ok := stageAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown stage %q; must be one of start, epsilon, unit, unreachable, unproductive, cnf", s)
	}
	return st, nil
}

// ParseStages parses a comma-separated list of stage names.
func ParseStages(list string) ([]Stage, error) {
	var stages []Stage
	for _, name := range strings.Split(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		st, err := ParseStage(name)
		if err != nil {
			return nil, err
		}
		stages = append(stages, st)
	}
	return stages, nil
}

// Options changes what Normalize does.
type Options struct {
	// IsolateStart runs StageIsolateStart before everything else.
	IsolateStart bool

	// Reprune runs StageUnreachable a second time after StageUnproductive.
	// Removing unproductive productions can leave nonterminals that were only
	// reachable through them; without this they stay in the result.
	Reprune bool
}

// Stages returns the stages that Normalize runs with these options.
func (opts Options) Stages() []Stage {
	var stages []Stage
	if opts.IsolateStart {
		stages = append(stages, StageIsolateStart)
	}
	for _, st := range DefaultPipeline {
		stages = append(stages, st)
		if st == StageUnproductive && opts.Reprune {
			stages = append(stages, StageUnreachable)
		}
	}
	return stages
}

// StepResult is a summary of the effect of running one Stage.
type StepResult struct {
	Stage Stage

	NonTerminalsBefore int
	NonTerminalsAfter  int
	ProductionsBefore  int
	ProductionsAfter   int
}

func (sr StepResult) String() string {
	return fmt.Sprintf("%-12s nonterminals %d -> %d, productions %d -> %d",
		sr.Stage, sr.NonTerminalsBefore, sr.NonTerminalsAfter, sr.ProductionsBefore, sr.ProductionsAfter)
}

// Apply runs a single stage on g.
func (g *Grammar) Apply(st Stage) StepResult {
	res := StepResult{
		Stage:              st,
		NonTerminalsBefore: g.nonTerminals.Len(),
		ProductionsBefore:  g.ProductionCount(),
	}

	switch st {
	case StageIsolateStart:
		g.IsolateStart()
	case StageEpsilon:
		g.RemoveEpsilons()
	case StageUnit:
		g.RemoveUnitProductions()
	case StageUnreachable:
		g.RemoveUnreachable()
	case StageUnproductive:
		g.RemoveUnproductive()
	case StageCNF:
		g.ToCNF()
	default:
		panic(fmt.Sprintf("unknown stage: %v", st))
	}

	res.NonTerminalsAfter = g.nonTerminals.Len()
	res.ProductionsAfter = g.ProductionCount()
	tracer().Infof("%s", res)
	return res
}

// Run applies each given stage to g in order. Stages depend on one another
// (see the package documentation); running them out of order leaves g
// well-formed but not necessarily in normal form.
func (g *Grammar) Run(stages ...Stage) []StepResult {
	results := make([]StepResult, 0, len(stages))
	for _, st := range stages {
		results = append(results, g.Apply(st))
	}
	return results
}

// Normalize converts g to Chomsky Normal Form in place. The result generates
// the same language as g did; the empty string is in it only if the start
// symbol was nullable.
func (g *Grammar) Normalize(opts Options) []StepResult {
	return g.Run(opts.Stages()...)
}
