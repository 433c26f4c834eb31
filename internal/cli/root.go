package cli

import (
	"os"

	"github.com/Zigazou/DSM/internal/errors"
	"github.com/Zigazou/DSM/internal/logger"
	"github.com/spf13/cobra"
)

var (
	jsonOutput bool
	verbose    bool
	version    = "dev"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dsm",
	Short: "Dev sites manager",
	Long: `dsm provisions per-user development sites, each pairing a standalone
Apache instance with its own MySQL or PostgreSQL database.

Sites live under a base directory (default ~/www) as site-<id>-<port>
directories, listen on loopback ports only, and never touch system-wide
configuration. Commands cover the whole lifecycle: install, start, stop,
list, logs, remove.`,
}

// Execute runs the root command. Validation and usage errors exit 1;
// process start/stop timeouts exit 2.
func Execute() {
	cobra.OnInitialize(func() {
		logger.Init(verbose)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// exitCode maps an error to the process exit status.
func exitCode(err error) int {
	if errors.Is(err, errors.ErrStartTimeout) || errors.Is(err, errors.ErrStopTimeout) {
		return 2
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging for debugging")
}
