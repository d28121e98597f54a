package cli

import (
	"fmt"

	"github.com/agentx-labs/agentpack/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage user settings",
		Annotations: map[string]string{annotationReadsBrokenConfig: "true"},
		Long: fmt.Sprintf(`Read and write settings stored at %s.

Keys: %v`, config.FilePath(), config.Keys),
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "set <key> <value>",
			Short: "Set a configuration value",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				key, value := args[0], args[1]
				if err := config.Set(key, value); err != nil {
					return fmt.Errorf("setting config key %q: %w", key, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "get <key>",
			Short: "Get a configuration value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the config file location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), config.FilePath())
				return nil
			},
		},
		&cobra.Command{
			Use:   "validate",
			Short: "Validate the config file against its schema",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				result, err := config.ValidateFile(config.FilePath())
				if err != nil {
					return err
				}
				if result.Valid {
					fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid\n", config.FilePath())
					return nil
				}
				for _, issue := range result.Issues {
					fmt.Fprintf(cmd.OutOrStdout(), "  ✗ %s\n", issue)
				}
				return fmt.Errorf("%s has %d issue(s)", config.FilePath(), len(result.Issues))
			},
		},
	)
	return configCmd
}
