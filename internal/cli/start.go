package cli

import (
	"github.com/Zigazou/DSM/internal/output"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start <id> [www|db]",
	Short: "Start a site's services",
	Long: `Start a site's services and wait until each one is up (PID file
written and process alive). Without a service argument both the
database and the web server are started, database first.

Starting a service that is already running succeeds without doing
anything.

Examples:
  dsm start blog
  dsm start blog www
  dsm start blog db`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runStart,
}

func init() {
	rootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	id := args[0]

	services, err := parseServices(args)
	if err != nil {
		return err
	}
	// database first so the web application finds it up
	if len(services) == 2 {
		services[0], services[1] = services[1], services[0]
	}

	m, _, err := newManager("", "")
	if err != nil {
		return err
	}

	for _, svc := range services {
		if err := m.Start(id, svc); err != nil {
			return err
		}
		output.Success("%s %s started", id, svc)
	}
	return nil
}
