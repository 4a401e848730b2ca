package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"

	"github.com/MKhiriev/frontkit/internal/store"
	"github.com/MKhiriev/frontkit/models"
)

func newHistoryCmd(c *cli) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent production builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := c.app.History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			printHistory(cmd.OutOrStdout(), records)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", store.DefaultHistoryLimit, "Number of builds to show")
	return cmd
}

func printHistory(w io.Writer, records []models.BuildRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "no builds recorded yet")
		return
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, "ID | STARTED | MODE | FILES | SIZE | GZIP | TOOK | WARNINGS")
	for _, r := range records {
		lines = append(lines, fmt.Sprintf("%s | %s | %s | %d | %s | %s | %s | %s",
			r.ID.String()[:8],
			humanize.Time(r.StartedAt),
			r.Mode,
			r.Files,
			humanize.Bytes(uint64(r.TotalBytes)),
			humanize.Bytes(uint64(r.GzipBytes)),
			r.Duration.Round(time.Millisecond),
			strconv.Itoa(r.Warnings),
		))
	}
	fmt.Fprintln(w, columnize.SimpleFormat(lines))
}
