package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"nodetomd/pkg/bundle"
	"nodetomd/pkg/config"
	"nodetomd/pkg/logging"
	"nodetomd/pkg/version"
)

// RootCmd is the base command: it bundles the project in the given directory
// (default: the working directory).
var RootCmd = &cobra.Command{
	Use:   "nodetomd [directory]",
	Short: "nodetomd compiles a JS/TS project into one Markdown file for LLM review",
	Long: `nodetomd walks a JavaScript, TypeScript, Vue, Svelte or Astro project and
concatenates its source files into src/<project>.md, alongside a
src/custom_instructions.txt prompt summarizing the project.`,
	Example: `  nodetomd --no-styles
  nodetomd --exclude "test/**,*.spec.*"
  nodetomd --no-types --include-ignored`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	RunE:          runBundle,
}

func init() {
	config.RegisterFlags(RootCmd.Flags())
}

// Execute runs the root command.
func Execute() error {
	return RootCmd.Execute()
}

func runBundle(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}
	root, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	settings, err := config.Load(root, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.Setup(logging.Options{
		Debug:      settings.Debug,
		Quiet:      settings.Quiet,
		AppName:    version.AppName,
		AppVersion: version.Version,
	})
	if err != nil {
		return err
	}
	if settings.ConfigFile != "" {
		logger.Debug("Using config file", zap.String("file", settings.ConfigFile))
	}

	progress := term.IsTerminal(int(os.Stderr.Fd()))
	bundleArgs := settings.Arguments(root, progress)

	result, err := bundle.RunBundle(bundleArgs, logger)
	if err != nil {
		logger.Error("nodetomd execution failed", zap.Error(err))
		return err
	}

	return bundle.WriteSummary(cmd.OutOrStdout(), result, bundleArgs.Filter)
}
