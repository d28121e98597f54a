package cli

import (
	"fmt"

	"github.com/agentx-labs/agentpack/internal/branding"
	"github.com/agentx-labs/agentpack/internal/config"
	"github.com/agentx-labs/agentpack/internal/installer"
	"github.com/agentx-labs/agentpack/internal/paths"
	"github.com/agentx-labs/agentpack/internal/prompt"
	"github.com/agentx-labs/agentpack/internal/target"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type installOptions struct {
	mode   target.Mode
	source string
	dir    string
	yes    bool
	dryRun bool
}

func newInstallCmd(mode target.Mode) *cobra.Command {
	opts := &installOptions{mode: mode}

	cmd := &cobra.Command{
		Use:  "install-" + mode.String(),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, opts)
		},
	}

	switch mode {
	case target.ModeGlobal:
		cmd.Short = "Install agents, workflows and rules for the current user"
		cmd.Long = fmt.Sprintf(`Install the payload into ~/%[1]s/%[2]s/%[3]s/ and ~/%[1]s/%[2]s/%[4]s/,
and the rules file as ~/%[1]s/%[5]s.

~/%[1]s must already exist; run the assistant once to create it. If either
collection directory already holds files you are asked before anything is
overwritten. Files not in the payload are never removed.`,
			branding.HostDir(), branding.HostNamespace(), branding.GlobalAgentsDir(),
			branding.GlobalWorkflowsDir(), branding.GlobalRulesFile())
	case target.ModeProject:
		cmd.Short = "Install agents, workflows and rules into the current project"
		cmd.Long = fmt.Sprintf(`Install the payload into %[1]s/agents/, %[1]s/workflows/ and
%[1]s/rules/%[2]s under the project directory (default: current directory).

If either collection directory already holds files you are asked before
anything is overwritten. Files not in the payload are never removed.`,
			branding.ProjectDir(), branding.ProjectRulesFile())
		cmd.Flags().StringVar(&opts.dir, "dir", "", "Project directory (default: current directory)")
	}

	cmd.Flags().StringVar(&opts.source, "source", "", "Payload directory holding agents/ and workflows/")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Overwrite existing content without asking")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print what would be copied and exit")
	return cmd
}

func runInstall(cmd *cobra.Command, opts *installOptions) error {
	if err := config.BindFlag(config.KeySource, cmd.Flags().Lookup("source")); err != nil {
		return err
	}
	if err := config.BindFlag(config.KeyAssumeYes, cmd.Flags().Lookup("yes")); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fs := afero.NewOsFs()

	tgt, err := resolveTarget(opts.mode, opts.dir)
	if err != nil {
		return err
	}
	sourceRoot, err := paths.SourceRoot(fs, config.Get(config.KeySource), paths.SourceCandidates())
	if err != nil {
		return err
	}

	var confirmer installer.Confirmer = prompt.NewTerminal(cmd.InOrStdin(), out)
	if config.GetBool(config.KeyAssumeYes) {
		confirmer = prompt.Always(true)
	}

	inst := installer.New(installer.Options{
		Fs:         fs,
		SourceRoot: sourceRoot,
		Target:     tgt,
		Confirmer:  confirmer,
		Out:        out,
		Logger:     logger.Named("installer"),
	})

	if opts.dryRun {
		plan, err := inst.Plan()
		if err != nil {
			return err
		}
		installer.PrintPlan(out, plan)
		if plan.NeedsConfirmation() {
			fmt.Fprintf(out, "\n  %d existing file(s) at the target; install will ask first.\n", len(plan.Existing))
		}
		return nil
	}

	fmt.Fprintf(out, "Installing %s payload from %s\n", opts.mode, sourceRoot)

	summary, err := inst.Install()
	if err != nil {
		if summary != nil {
			fmt.Fprintf(out, "\n✗ Installed %s before failing.\n", summary)
		}
		return err
	}
	if summary.Cancelled {
		fmt.Fprintln(out, "Installation cancelled. Nothing was changed.")
		return nil
	}

	fmt.Fprintf(out, "\n✓ Installed %s to %s\n", summary, tgt.Root)
	return nil
}

// resolveTarget builds the destination for mode. dir only applies to
// project installs.
func resolveTarget(mode target.Mode, dir string) (*target.Target, error) {
	if mode == target.ModeGlobal {
		hostRoot, err := paths.HostRoot(config.Get(config.KeyHostRoot))
		if err != nil {
			return nil, err
		}
		return target.Global(hostRoot), nil
	}
	projectDir, err := paths.ProjectRoot(dir)
	if err != nil {
		return nil, err
	}
	return target.Project(projectDir), nil
}
