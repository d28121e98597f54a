package cli

import (
	"fmt"
	"os"

	"github.com/agentx-labs/agentpack/internal/branding"
	"github.com/agentx-labs/agentpack/internal/config"
	"github.com/agentx-labs/agentpack/internal/logging"
	"github.com/agentx-labs/agentpack/internal/target"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// logger is replaced in PersistentPreRunE once settings are loaded.
var logger = zap.NewNop()

// annotationReadsBrokenConfig marks commands that run on defaults when the
// config file cannot be parsed, so they can report or rewrite it.
const annotationReadsBrokenConfig = "agentpack/reads-broken-config"

func toleratesBrokenConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[annotationReadsBrokenConfig] == "true" {
			return true
		}
	}
	return false
}

func newRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` copies agent personas, workflows and an optional rules file
into the directories an AI coding assistant reads them from, either for the
current user (install-global) or for one project (install-project).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loadErr := config.Load()
			if loadErr != nil && !toleratesBrokenConfig(cmd) {
				return fmt.Errorf("%w (run '%s config validate')", loadErr, branding.CLIName())
			}
			// A bad level must not lock the user out of "config set".
			level, levelErr := logging.ParseLevel(config.Get(config.KeyLogLevel))
			if verbose {
				level = zapcore.DebugLevel
			}
			logger = logging.New(cmd.ErrOrStderr(), level)
			if loadErr != nil {
				logger.Warn("using default settings", zap.Error(loadErr))
			}
			if levelErr != nil {
				logger.Warn("ignoring config value", zap.String("key", config.KeyLogLevel), zap.Error(levelErr))
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(
		newInstallCmd(target.ModeGlobal),
		newInstallCmd(target.ModeProject),
		newListCmd(),
		newDoctorCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
