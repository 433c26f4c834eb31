package cli

import (
	"github.com/Zigazou/DSM/internal/output"
	"github.com/spf13/cobra"
)

var stopCmd = &cobra.Command{
	Use:   "stop <id> [www|db]",
	Short: "Stop a site's services",
	Long: `Stop a site's services and wait until each process is gone.
Without a service argument both services are stopped, web server
first.

Stopping a service that is not running succeeds without doing
anything.

Examples:
  dsm stop blog
  dsm stop blog www
  dsm stop blog db`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runStop,
}

func init() {
	rootCmd.AddCommand(stopCmd)
}

func runStop(cmd *cobra.Command, args []string) error {
	id := args[0]

	services, err := parseServices(args)
	if err != nil {
		return err
	}

	m, _, err := newManager("", "")
	if err != nil {
		return err
	}

	for _, svc := range services {
		if err := m.Stop(id, svc); err != nil {
			return err
		}
		output.Success("%s %s stopped", id, svc)
	}
	return nil
}
