package cli

import (
	"strconv"

	"github.com/Zigazou/DSM/internal/output"
	"github.com/Zigazou/DSM/internal/site"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all sites and their service states",
	Long: `List all sites found under the base directory, with the running
state of each site's web and database services.

Examples:
  dsm list
  dsm ls
  dsm list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	m, _, err := newManager("", "")
	if err != nil {
		return err
	}

	states, err := m.Registry().States()
	if err != nil {
		return err
	}

	if jsonOutput {
		if states == nil {
			states = []site.State{}
		}
		return output.JSON(states)
	}

	if len(states) == 0 {
		output.Info("No sites installed")
		return nil
	}

	headers := []string{"ID", "HTTP", "DB PORT", "WWW", "DB"}
	rows := make([][]string, 0, len(states))
	for _, st := range states {
		rows = append(rows, []string{
			st.ID,
			strconv.Itoa(st.HTTPPort()),
			strconv.Itoa(st.DBPort()),
			output.State(st.WWWRunning),
			output.State(st.DBRunning),
		})
	}
	output.Table(headers, rows)
	return nil
}
