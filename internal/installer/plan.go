package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/agentpack/internal/branding"
	"github.com/agentx-labs/agentpack/internal/payload"
	"github.com/agentx-labs/agentpack/internal/target"
	"github.com/spf13/afero"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.English)

// Step is a single file copy.
type Step struct {
	Kind       payload.Kind
	Name       string
	Src        string
	Dst        string
	Mode       os.FileMode
	Counted    bool
	Overwrites bool
}

// Plan is everything an install would do, computed without touching the
// destination.
type Plan struct {
	Source *payload.Source
	Target *target.Target
	Steps  []Step
	// Existing lists files already in the target's agents and workflows
	// directories. Any entry here means consent is required.
	Existing []string
	Warnings []string
}

// NeedsConfirmation reports whether the target already holds content.
func (p *Plan) NeedsConfirmation() bool {
	return len(p.Existing) > 0
}

// StepsFor returns the steps for one collection, in copy order.
func (p *Plan) StepsFor(kind payload.Kind) []Step {
	var out []Step
	for _, s := range p.Steps {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// Overwrites returns the steps that replace an existing destination file.
func (p *Plan) Overwrites() []Step {
	var out []Step
	for _, s := range p.Steps {
		if s.Overwrites {
			out = append(out, s)
		}
	}
	return out
}

// Expected returns the summary a fully successful run would report.
func (p *Plan) Expected() *RunSummary {
	s := &RunSummary{Mode: p.Target.Mode, Root: p.Target.Root}
	for _, step := range p.Steps {
		s.record(step)
	}
	return s
}

// buildPlan checks every precondition and lists the copies. It only reads.
func buildPlan(fs afero.Fs, sourceRoot string, tgt *target.Target) (*Plan, error) {
	src, err := payload.Discover(fs, sourceRoot)
	if err != nil {
		return nil, err
	}
	if err := tgt.CheckHost(fs); err != nil {
		return nil, err
	}

	plan := &Plan{Source: src, Target: tgt}

	if tgt.Mode == target.ModeProject {
		if markers := target.DetectProjectMarkers(fs, tgt.ProjectDir()); len(markers) == 0 {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("%s has no %s; is this a project root?", tgt.ProjectDir(), strings.Join(branding.ProjectMarkers(), " or ")))
		}
	}

	existing, err := tgt.ExistingFiles(fs)
	if err != nil {
		return nil, err
	}
	plan.Existing = existing

	for _, c := range src.Collections() {
		for _, f := range c.Files {
			dst := filepath.Join(tgt.Dir(c.Kind), f.Name)
			if c.Kind == payload.KindRules {
				dst = tgt.RulesPath
			}
			overwrites, err := afero.Exists(fs, dst)
			if err != nil {
				return nil, fmt.Errorf("checking %s: %w", dst, err)
			}
			plan.Steps = append(plan.Steps, Step{
				Kind:       c.Kind,
				Name:       f.Name,
				Src:        f.Path,
				Dst:        dst,
				Mode:       f.Mode,
				Counted:    payload.IsCounted(f.Name),
				Overwrites: overwrites,
			})
		}
	}

	return plan, nil
}

// PrintPlan writes a human-readable rendering of the plan.
func PrintPlan(w io.Writer, plan *Plan) {
	fmt.Fprintf(w, "Source: %s\n", plan.Source.Root)
	fmt.Fprintf(w, "Target: %s (%s)\n", plan.Target.Root, plan.Target.Mode)
	printWarnings(w, plan)
	fmt.Fprintln(w)

	for _, kind := range payload.Kinds {
		steps := plan.StepsFor(kind)
		if len(steps) == 0 {
			continue
		}
		fmt.Fprintf(w, "  %s -> %s\n", titler.String(string(kind)), plan.Target.Dir(kind))
		for _, s := range steps {
			var notes []string
			if s.Kind == payload.KindRules && s.Name != filepath.Base(s.Dst) {
				notes = append(notes, "as "+filepath.Base(s.Dst))
			}
			if s.Overwrites {
				notes = append(notes, "overwrite")
			}
			if !s.Counted {
				notes = append(notes, "not counted")
			}
			if len(notes) > 0 {
				fmt.Fprintf(w, "    %s (%s)\n", s.Name, strings.Join(notes, ", "))
			} else {
				fmt.Fprintf(w, "    %s\n", s.Name)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Install: %s\n", plan.Expected())
}

func printWarnings(w io.Writer, plan *Plan) {
	for _, warning := range plan.Warnings {
		fmt.Fprintf(w, "⚠️  %s\n", warning)
	}
}

// printExisting warns about content already at the target before asking.
func printExisting(w io.Writer, plan *Plan) {
	fmt.Fprintf(w, "⚠️  %s already contains %d file(s).\n", plan.Target.Root, len(plan.Existing))
	overwrites := plan.Overwrites()
	if len(overwrites) == 0 {
		fmt.Fprintln(w, "  No existing file will be replaced.")
		return
	}
	fmt.Fprintln(w, "  These files will be overwritten:")
	for _, s := range overwrites {
		fmt.Fprintf(w, "    %s\n", s.Dst)
	}
}
