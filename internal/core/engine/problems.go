package engine

import (
	"fmt"

	"github.com/myteklab/CircuitSim/internal/core/circuit"
	"github.com/myteklab/CircuitSim/internal/core/topology"
)

// Severity classifies an advisory record. None of these halt computation;
// the UI decides how to render them.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Problem is one domain-level advisory.
type Problem struct {
	Severity  Severity            `json:"severity"`
	Code      string              `json:"code"`
	Message   string              `json:"message"`
	Component circuit.ComponentID `json:"componentId,omitempty"`
}

// Problem codes.
const (
	CodeHighCurrent    = "high-current"
	CodeDamaged        = "damaged-component"
	CodeIncomplete     = "incomplete-circuit"
	CodeResistorBypass = "resistor-bypass"
)

// Statistics aggregates the engine's tick-level numbers.
type Statistics struct {
	PathCount        int     `json:"pathCount"`
	ActiveComponents int     `json:"activeComponents"`
	TotalComponents  int     `json:"totalComponents"`
	TotalSourcePower float64 `json:"totalSourcePower"`
	Running          bool    `json:"running"`
}

// PathSummary describes one discovered path for the analysis view.
type PathSummary struct {
	Kinds      []string `json:"kinds"`
	Resistance float64  `json:"resistance"`
	Current    float64  `json:"current"`
}

// Analysis bundles statistics, problems and per-path summaries.
type Analysis struct {
	Statistics Statistics    `json:"statistics"`
	Problems   []Problem     `json:"problems"`
	Paths      []PathSummary `json:"paths"`
}

// Stats recomputes aggregate statistics from the live collection.
func (e *Engine) Stats() Statistics {
	comps, _ := e.topo.ActiveSet()
	total, _ := e.circuit.Counts()

	power := 0.0
	for _, src := range e.topo.Sources() {
		power += src.Source().Voltage() * src.Current
	}

	return Statistics{
		PathCount:        e.pathCount,
		ActiveComponents: len(comps),
		TotalComponents:  total,
		TotalSourcePower: power,
		Running:          e.running,
	}
}

// Problems classifies the current circuit state into advisory records:
// overcurrent warnings, one error per damaged component, an info entry when
// sources exist but no path closes, and a hazard warning when an emitter can
// be reached both with and without a series load.
func (e *Engine) Problems() []Problem {
	var out []Problem

	for _, src := range e.topo.Sources() {
		if src.Current > HighCurrentThreshold {
			out = append(out, Problem{
				Severity:  SeverityWarning,
				Code:      CodeHighCurrent,
				Message:   fmt.Sprintf("source current %.2f A exceeds %.0f A", src.Current, HighCurrentThreshold),
				Component: src.ID,
			})
		}
	}

	for _, comp := range e.circuit.Components() {
		if comp.Damaged {
			out = append(out, Problem{
				Severity:  SeverityError,
				Code:      CodeDamaged,
				Message:   fmt.Sprintf("%s is damaged", comp.Kind),
				Component: comp.ID,
			})
		}
	}

	paths := e.topo.FindAllPaths()
	if len(paths) == 0 && len(e.topo.Sources()) > 0 {
		out = append(out, Problem{
			Severity: SeverityInfo,
			Code:     CodeIncomplete,
			Message:  "no complete path from a source to ground",
		})
	}

	out = append(out, bypassHazards(paths)...)
	return out
}

// bypassHazards flags emitters that sit on one path with a series load and
// another without: the unprotected path will overdrive the emitter even
// though the protected one looks correct.
func bypassHazards(paths []topology.Path) []Problem {
	withLoad := make(map[circuit.ComponentID]bool)
	withoutLoad := make(map[circuit.ComponentID]*circuit.Component)
	for _, p := range paths {
		hasLoad := p.Contains(circuit.KindLoad)
		for _, comp := range p.Components {
			if comp.Emitter() == nil {
				continue
			}
			if hasLoad {
				withLoad[comp.ID] = true
			} else {
				withoutLoad[comp.ID] = comp
			}
		}
	}

	var out []Problem
	for id, comp := range withoutLoad {
		if !withLoad[id] {
			continue
		}
		out = append(out, Problem{
			Severity:  SeverityWarning,
			Code:      CodeResistorBypass,
			Message:   "emitter is reachable through a path that bypasses its series resistor",
			Component: comp.ID,
		})
	}
	return out
}

// Analyze bundles statistics, problems and per-path summaries in one pass.
func (e *Engine) Analyze() Analysis {
	paths := e.topo.FindAllPaths()
	summaries := make([]PathSummary, 0, len(paths))
	for _, p := range paths {
		kinds := make([]string, 0, len(p.Components))
		for _, comp := range p.Components {
			kinds = append(kinds, comp.Kind.String())
		}
		r := SeriesResistance(p)
		current := 0.0
		if src := p.Source(); src != nil && src.Source() != nil {
			current = src.Source().Voltage() / r
		}
		summaries = append(summaries, PathSummary{
			Kinds:      kinds,
			Resistance: r,
			Current:    current,
		})
	}
	return Analysis{
		Statistics: e.Stats(),
		Problems:   e.Problems(),
		Paths:      summaries,
	}
}
