package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/harrison/seqcheck/internal/config"
	"github.com/harrison/seqcheck/internal/history"
)

// NewHistoryCommand creates the 'seqcheck history' parent command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Scan history commands",
		Long: `Commands for viewing and managing recorded scan runs.

Every check run (unless --no-history is given) records its root path,
file counts and missing files to a local SQLite database, so a delivery
can be compared against what earlier scans found.`,
	}

	// Add subcommands
	cmd.AddCommand(newHistoryListCommand())
	cmd.AddCommand(newHistoryShowCommand())
	cmd.AddCommand(newHistoryClearCommand())

	return cmd
}

// shortID truncates a scan id for table display. Ids are normally uuids, but a
// hand-edited database may hold shorter ones.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// openStore opens the history store at the configured path, reporting a
// friendly message when no history exists yet.
func openStore(configPath string, out io.Writer) (*history.Store, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(cfg.History.DBPath); os.IsNotExist(err) {
		fmt.Fprintf(out, "No scan history found\n")
		fmt.Fprintf(out, "Database path: %s\n", cfg.History.DBPath)
		return nil, nil
	}

	return history.NewStore(cfg.History.DBPath)
}

func newHistoryListCommand() *cobra.Command {
	var configPath string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded scan runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			store, err := openStore(configPath, out)
			if err != nil || store == nil {
				return err
			}
			defer store.Close()

			scans, err := store.ListScans(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list scans: %w", err)
			}
			if len(scans) == 0 {
				fmt.Fprintf(out, "No scan history found\n")
				return nil
			}

			fmt.Fprintf(out, "%-10s %-20s %-30s %8s %8s\n", "ID", "STARTED", "ROOT", "FILES", "MISSING")
			for _, s := range scans {
				fmt.Fprintf(out, "%-10s %-20s %-30s %8d %8d\n",
					shortID(s.ID),
					s.StartedAt.Local().Format("2006-01-02 15:04:05"),
					s.Root,
					s.FilesProcessed,
					s.MissingFiles)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to config file")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of scans to list (0 = all)")

	return cmd
}

func newHistoryShowCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <scan-id>",
		Short: "Show one scan run and its missing files",
		Long: `Show the details of one recorded scan, including every missing
file it found. The scan id may be abbreviated to a unique prefix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			store, err := openStore(configPath, out)
			if err != nil || store == nil {
				return err
			}
			defer store.Close()

			rec, missing, err := store.GetScan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Scan %s\n", rec.ID)
			fmt.Fprintf(out, "  Root:        %s\n", rec.Root)
			fmt.Fprintf(out, "  Started:     %s\n", rec.StartedAt.Local().Format(time.RFC1123))
			fmt.Fprintf(out, "  Duration:    %s\n", rec.Duration)
			fmt.Fprintf(out, "  Files:       %d in %d dir(s)\n", rec.FilesProcessed, rec.DirsScanned)
			fmt.Fprintf(out, "  Unsequenced: %d\n", rec.UnsequencedFiles)
			fmt.Fprintf(out, "  Missing:     %d\n", rec.MissingFiles)

			if len(missing) > 0 {
				fmt.Fprintf(out, "\n")
				lastDir := ""
				for _, m := range missing {
					if m.Dir != lastDir {
						fmt.Fprintf(out, "In %s:\n", m.Dir)
						lastDir = m.Dir
					}
					fmt.Fprintf(out, "  Missing %s\n", m.Name)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to config file")

	return cmd
}

func newHistoryClearCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded scan history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			store, err := openStore(configPath, out)
			if err != nil || store == nil {
				return err
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(out, "Scan history cleared\n")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to config file")

	return cmd
}
