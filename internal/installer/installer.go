package installer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agentx-labs/agentpack/internal/payload"
	"github.com/agentx-labs/agentpack/internal/platform"
	"github.com/agentx-labs/agentpack/internal/target"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Confirmer obtains a yes/no answer from the user.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// Options configures an Installer.
type Options struct {
	// Fs defaults to the OS filesystem.
	Fs         afero.Fs
	SourceRoot string
	Target     *target.Target
	// Confirmer is asked before overwriting existing content. A nil
	// Confirmer declines.
	Confirmer Confirmer
	// Out receives progress lines. Defaults to io.Discard.
	Out    io.Writer
	Logger *zap.Logger
}

// Installer copies one payload source into one target.
type Installer struct {
	fs         afero.Fs
	sourceRoot string
	target     *target.Target
	confirm    Confirmer
	out        io.Writer
	log        *zap.Logger
}

// New returns an Installer for opts.
func New(opts Options) *Installer {
	inst := &Installer{
		fs:         opts.Fs,
		sourceRoot: opts.SourceRoot,
		target:     opts.Target,
		confirm:    opts.Confirmer,
		out:        opts.Out,
		log:        opts.Logger,
	}
	if inst.fs == nil {
		inst.fs = afero.NewOsFs()
	}
	if inst.out == nil {
		inst.out = io.Discard
	}
	if inst.log == nil {
		inst.log = zap.NewNop()
	}
	return inst
}

// Plan validates the source and target and lists the copies an install
// would make. It never writes.
func (i *Installer) Plan() (*Plan, error) {
	if i.target == nil {
		return nil, errors.New("installer: no target")
	}
	return buildPlan(i.fs, i.sourceRoot, i.target)
}

// Install runs the full sequence. Declining the confirmation returns a
// summary with Cancelled set and a nil error. Copy failures are returned as
// *CopyFailedError values joined together, alongside the summary of what was
// copied before and after them.
func (i *Installer) Install() (*RunSummary, error) {
	plan, err := i.Plan()
	if err != nil {
		return nil, err
	}
	i.log.Debug("install planned",
		zap.String("mode", i.target.Mode.String()),
		zap.String("source", i.sourceRoot),
		zap.String("target", i.target.Root),
		zap.Int("steps", len(plan.Steps)),
		zap.Int("existing", len(plan.Existing)))

	// Advisories are user output; the log only traces them.
	printWarnings(i.out, plan)
	for _, w := range plan.Warnings {
		i.log.Debug("advisory", zap.String("warning", w))
	}

	summary := &RunSummary{Mode: i.target.Mode, Root: i.target.Root}

	if plan.NeedsConfirmation() {
		printExisting(i.out, plan)
		ok := false
		if i.confirm != nil {
			ok, err = i.confirm.Confirm("Proceed and overwrite?")
			if err != nil {
				return nil, fmt.Errorf("asking for confirmation: %w", err)
			}
		}
		if !ok {
			i.log.Info("install cancelled by user")
			summary.Cancelled = true
			return summary, nil
		}
	}

	if err := i.ensureDirs(plan); err != nil {
		return summary, err
	}

	var errs []error
	for _, kind := range payload.Kinds {
		for _, step := range plan.StepsFor(kind) {
			if err := copyFile(i.fs, step.Src, step.Dst, step.Mode); err != nil {
				fmt.Fprintf(i.out, "  ✗ %s: %s (%v)\n", kind, step.Name, err)
				i.log.Error("copy failed",
					zap.String("src", step.Src), zap.String("dst", step.Dst), zap.Error(err))
				errs = append(errs, &CopyFailedError{File: step.Src, Cause: err})
				break
			}
			fmt.Fprintf(i.out, "  ✓ %s: %s\n", kind, step.Name)
			i.log.Debug("copied", zap.String("src", step.Src), zap.String("dst", step.Dst))
			summary.record(step)
		}
	}

	i.log.Info("install finished",
		zap.Int("agents", summary.Agents),
		zap.Int("workflows", summary.Workflows),
		zap.Int("rules", summary.Rules),
		zap.Int("failures", len(errs)))

	return summary, errors.Join(errs...)
}

// ensureDirs creates the destination directories the plan writes into. The
// global host root already exists, so only namespaced directories appear.
func (i *Installer) ensureDirs(plan *Plan) error {
	dirs := []string{i.target.AgentsDir, i.target.WorkflowsDir}
	if plan.Source.Rules != nil {
		dirs = append(dirs, filepath.Dir(i.target.RulesPath))
	}
	for _, dir := range dirs {
		if err := i.fs.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

// copyFile copies a single file from src to dst, replacing dst and
// carrying over src's permission bits.
func copyFile(fs afero.Fs, src, dst string, mode os.FileMode) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return err
	}
	if err := afero.WriteFile(fs, dst, data, platform.FileMode(mode)); err != nil {
		return err
	}
	// WriteFile keeps the old mode when dst already existed.
	return platform.Chmod(fs, dst, mode)
}
