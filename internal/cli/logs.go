package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/Zigazou/DSM/internal/output"
	"github.com/Zigazou/DSM/internal/site"
	"github.com/spf13/cobra"
)

var (
	logsAccess bool
	logsFollow bool
	logsLines  int
)

var logsCmd = &cobra.Command{
	Use:   "logs <id> [www|db]",
	Short: "View a site's service logs",
	Long: `View the error logs of a site's services. Without a service
argument both error logs are shown. The web server also keeps an
access log, shown with --access.

Examples:
  dsm logs blog             # error logs of both services
  dsm logs blog db          # database error log only
  dsm logs blog www --access
  dsm logs blog -f          # follow in real-time
  dsm logs blog -n 50       # last 50 lines`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().BoolVar(&logsAccess, "access", false, "Show the web access log instead of error logs")
	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "Follow log output (like tail -f)")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", 20, "Number of lines to show")

	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, args []string) error {
	id := args[0]

	services, err := parseServices(args)
	if err != nil {
		return err
	}

	m, _, err := newManager("", "")
	if err != nil {
		return err
	}
	s, err := m.Registry().Find(id)
	if err != nil {
		return err
	}

	var logFiles []string
	for _, svc := range services {
		path := s.ErrorLog(svc)
		if logsAccess {
			if svc != site.WWW {
				continue
			}
			path = s.AccessLog()
		}
		if _, err := os.Stat(path); err != nil {
			output.Warn("Log not found: %s", path)
			continue
		}
		logFiles = append(logFiles, path)
	}
	if len(logFiles) == 0 {
		return fmt.Errorf("no log files found for %s", id)
	}

	tailArgs := []string{}
	if logsFollow {
		tailArgs = append(tailArgs, "-f")
	}
	tailArgs = append(tailArgs, "-n", fmt.Sprintf("%d", logsLines))
	tailArgs = append(tailArgs, logFiles...)

	tailPath, err := exec.LookPath("tail")
	if err != nil {
		return fmt.Errorf("tail command not found")
	}

	tailCmd := exec.Command(tailPath, tailArgs...)
	tailCmd.Stdin = os.Stdin
	tailCmd.Stdout = os.Stdout
	tailCmd.Stderr = os.Stderr

	if err := tailCmd.Run(); err != nil {
		// 130 = SIGINT/Ctrl+C, 143 = SIGTERM while following
		if exitErr, ok := err.(*exec.ExitError); ok {
			code := exitErr.ExitCode()
			if code == 130 || code == 143 {
				return nil
			}
		}
		return fmt.Errorf("failed to read logs: %w", err)
	}
	return nil
}
