package cli

import (
	"github.com/agentx-labs/agentpack/internal/config"
	"github.com/agentx-labs/agentpack/internal/doctor"
	"github.com/agentx-labs/agentpack/internal/paths"
	"github.com/agentx-labs/agentpack/internal/target"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var (
		global bool
		dir    string
		source string
	)

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that an install would succeed",
		Long: `Inspect the payload source, the destination and the config file without
changing anything. Exits non-zero if an install would fail a precondition.`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationReadsBrokenConfig: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlag(config.KeySource, cmd.Flags().Lookup("source")); err != nil {
				return err
			}

			fs := afero.NewOsFs()
			mode := target.ModeProject
			if global {
				mode = target.ModeGlobal
			}
			tgt, err := resolveTarget(mode, dir)
			if err != nil {
				return err
			}
			sourceRoot, err := paths.SourceRoot(fs, config.Get(config.KeySource), paths.SourceCandidates())
			if err != nil {
				return err
			}

			return doctor.Run(cmd.OutOrStdout(), doctor.Options{
				Fs:         fs,
				SourceRoot: sourceRoot,
				Target:     tgt,
				ConfigPath: config.FilePath(),
			})
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Check the per-user target instead of the project")
	cmd.Flags().StringVar(&dir, "dir", "", "Project directory (default: current directory)")
	cmd.Flags().StringVar(&source, "source", "", "Payload directory holding agents/ and workflows/")
	return cmd
}
