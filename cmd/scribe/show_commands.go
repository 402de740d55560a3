package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"scribe/internal/config"
	"scribe/internal/store"
)

const displayTimeLayout = "2006-01-02 15:04:05"

var classCaser = cases.Title(language.English)

func newImagesCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "images",
		Short: "List recently recorded camera frames",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				images, err := st.RecentImages(cmd.Context(), limit)
				if err != nil {
					return fmt.Errorf("query images: %w", err)
				}
				if len(images) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No images recorded")
					return nil
				}

				rows := make([][]string, 0, len(images))
				for _, img := range images {
					rows = append(rows, []string{
						strconv.FormatInt(img.ID, 10),
						formatDisplayTime(img.CapturedAt),
						img.Path,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Captured", "Path"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum rows to show")
	return cmd
}

func newDetectionsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "detections",
		Short: "List recent anomaly detections",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				views, err := st.RecentDetections(cmd.Context(), limit)
				if err != nil {
					return fmt.Errorf("query detections: %w", err)
				}
				if len(views) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No detections recorded")
					return nil
				}

				rows := make([][]string, 0, len(views))
				for _, view := range views {
					rows = append(rows, []string{
						strconv.FormatInt(view.ID, 10),
						strconv.FormatInt(view.ImageID, 10),
						formatDisplayTime(view.DetectedAt),
						fmt.Sprintf("%.4f", view.ErrorScore),
						yesNo(view.Anomaly),
						formatObjectClasses(view.ObjectClasses),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Image", "Detected", "Score", "Anomaly", "Objects"},
					rows,
					[]columnAlignment{alignRight, alignRight, alignLeft, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum rows to show")
	return cmd
}

func newAuditCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List recent audit log entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				entries, err := st.RecentAudit(cmd.Context(), limit)
				if err != nil {
					return fmt.Errorf("query audit log: %w", err)
				}
				if len(entries) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Audit log is empty")
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{
						strconv.FormatInt(entry.ID, 10),
						formatDisplayTime(entry.LoggedAt),
						entry.Action,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Logged", "Action"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum rows to show")
	return cmd
}

func formatDisplayTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(displayTimeLayout)
}

// formatObjectClasses renders stored class names ("person", "dog") as
// title-cased labels.
func formatObjectClasses(classes []string) string {
	if len(classes) == 0 {
		return "-"
	}
	labels := make([]string, 0, len(classes))
	for _, class := range classes {
		labels = append(labels, classCaser.String(class))
	}
	return strings.Join(labels, ", ")
}
