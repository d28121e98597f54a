package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/agentx-labs/agentpack/internal/target"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	var (
		global bool
		dir    string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List installed agents, workflows and rules",
		Long: `List the payload files currently installed at the project target
(default) or, with --global, at the per-user target.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := target.ModeProject
			if global {
				mode = target.ModeGlobal
			}
			tgt, err := resolveTarget(mode, dir)
			if err != nil {
				return err
			}

			entries, err := tgt.Inventory(afero.NewOsFs())
			if err != nil {
				return fmt.Errorf("listing %s: %w", tgt.Root, err)
			}

			if asJSON {
				if entries == nil {
					entries = []target.Entry{}
				}
				data, err := json.MarshalIndent(entries, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			if len(entries) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing installed at %s yet.\n", tgt.Root)
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "KIND\tNAME\tSIZE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\n", e.Kind, e.Name, e.Size)
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "List the per-user installation")
	cmd.Flags().StringVar(&dir, "dir", "", "Project directory (default: current directory)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output in JSON format")
	return cmd
}
