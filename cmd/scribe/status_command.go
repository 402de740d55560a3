package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"scribe/internal/config"
	"scribe/internal/store"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show daemon state and store row counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				summary, err := st.Stats(cmd.Context())
				if err != nil {
					return fmt.Errorf("read store stats: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database: %s\n", cfg.DatabasePath())
				fmt.Fprintf(out, "Daemon running: %s\n", daemonState(cfg))
				fmt.Fprintln(out)

				rows := [][]string{
					{"images", strconv.Itoa(summary.Images)},
					{"sensor_readings", strconv.Itoa(summary.SensorReadings)},
					{"host_stats", strconv.Itoa(summary.HostStats)},
					{"detections", strconv.Itoa(summary.Detections)},
					{"detected_objects", strconv.Itoa(summary.DetectedObjects)},
					{"audit_log", strconv.Itoa(summary.AuditEntries)},
				}
				fmt.Fprintln(out, renderTable(
					[]string{"Table", "Rows"},
					rows,
					[]columnAlignment{alignLeft, alignRight},
				))
				return nil
			})
		},
	}
}

// daemonState reports whether a scribed process has left its pid file in the
// state directory.
func daemonState(cfg *config.Config) string {
	if _, err := os.Stat(filepath.Join(cfg.Paths.LogDir, "scribed.pid")); err == nil {
		return colorize(yesNo(true), text.FgGreen)
	}
	return colorize(yesNo(false), text.FgYellow)
}
