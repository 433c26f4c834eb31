package cli

import (
	"github.com/Zigazou/DSM/internal/output"
	"github.com/spf13/cobra"
)

var (
	installWWW string
	installDB  string
)

var installCmd = &cobra.Command{
	Use:   "install <id>",
	Short: "Install a new site",
	Long: `Install a new site: allocate a port stride, create the site
directory, render the web and database configurations and control
scripts, and bootstrap the database (database, user and password all
named after the site identifier).

The identifier must start with a letter and may contain up to 24
letters, digits and underscores.

Examples:
  dsm install blog
  dsm install blog --db pgsql`,
	Args: cobra.ExactArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installWWW, "www", "", "Web server driver (default from config: apache2)")
	installCmd.Flags().StringVar(&installDB, "db", "", "Database driver (default from config: mysql or pgsql)")

	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	id := args[0]

	m, _, err := newManager(installWWW, installDB)
	if err != nil {
		return err
	}

	s, err := m.Install(id)
	if err != nil {
		return err
	}

	if jsonOutput {
		return output.JSON(s)
	}

	output.Success("Site %s installed in %s", s.ID, s.Dir)
	output.Print("  HTTP port: %d", s.HTTPPort())
	output.Print("  DB port:   %d", s.DBPort())
	output.Info("Start it with: dsm start %s", s.ID)
	return nil
}
