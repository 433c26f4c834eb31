package cli

import (
	"fmt"
	"strings"

	"github.com/Zigazou/DSM/internal/output"
	"github.com/spf13/cobra"
)

var removeForce bool

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove a site and all its data",
	Long: `Remove a site: stop its services if they are running, then delete
the whole site directory, including the database data.

This is irreversible; without --force a confirmation is asked.

Examples:
  dsm remove blog
  dsm remove blog --force`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeForce, "force", "f", false, "Skip confirmation prompt")

	rootCmd.AddCommand(removeCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	id := args[0]

	m, _, err := newManager("", "")
	if err != nil {
		return err
	}

	if !removeForce {
		output.Warn("This deletes the site and its database data permanently.")
		fmt.Printf("Remove site %s? [y/N] ", id)
		var answer string
		fmt.Scanln(&answer)
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			output.Info("Aborted")
			return nil
		}
	}

	if err := m.Remove(id); err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(map[string]string{"removed": id})
	}
	output.Success("Site %s removed", id)
	return nil
}
