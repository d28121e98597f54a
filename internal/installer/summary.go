package installer

import (
	"strings"

	"github.com/agentx-labs/agentpack/internal/payload"
	"github.com/agentx-labs/agentpack/internal/target"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// RunSummary holds the per-collection counts of one run.
type RunSummary struct {
	Mode      target.Mode
	Root      string
	Cancelled bool
	Agents    int
	Workflows int
	Rules     int
}

// Count returns the copied count for one collection.
func (s *RunSummary) Count(kind payload.Kind) int {
	switch kind {
	case payload.KindAgents:
		return s.Agents
	case payload.KindWorkflows:
		return s.Workflows
	case payload.KindRules:
		return s.Rules
	}
	return 0
}

// Total returns the sum of all counts.
func (s *RunSummary) Total() int {
	return s.Agents + s.Workflows + s.Rules
}

// String renders the counts, e.g. "2 agents, 1 workflow, 1 rules file".
// The rules entry is omitted when no rules file was installed.
func (s *RunSummary) String() string {
	parts := []string{
		countNoun(s.Agents, "agent", "agents"),
		countNoun(s.Workflows, "workflow", "workflows"),
	}
	if s.Rules > 0 {
		parts = append(parts, countNoun(s.Rules, "rules file", "rules files"))
	}
	return strings.Join(parts, ", ")
}

func (s *RunSummary) record(step Step) {
	if !step.Counted {
		return
	}
	switch step.Kind {
	case payload.KindAgents:
		s.Agents++
	case payload.KindWorkflows:
		s.Workflows++
	case payload.KindRules:
		s.Rules++
	}
}

func countNoun(n int, singular, plural string) string {
	if n == 1 {
		return printer.Sprintf("%d %s", n, singular)
	}
	return printer.Sprintf("%d %s", n, plural)
}
