package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rssingest/internal/backend"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	var history int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show collection metadata and recent ingestions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			p, err := backend.Open(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer p.Close()

			c, err := p.Ingestor.Snapshot(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Collection: %s/%s (%s)\n", cfg.Storage.Bucket, cfg.Storage.Key(), cfg.Storage.Backend)
			fmt.Fprintf(out, "Articles: %d\n", len(c.Articles))
			fmt.Fprintf(out, "Ingestions: %d\n", c.Metadata.TotalIngestions)
			fmt.Fprintf(out, "Created: %s\n", formatTime(c.Metadata.CreatedAt.Time))
			fmt.Fprintf(out, "Last updated: %s\n", formatTime(c.Metadata.LastUpdated.Time))

			recent := c.IngestionHistory
			if history >= 0 && len(recent) > history {
				recent = recent[len(recent)-history:]
			}
			if len(recent) == 0 {
				return nil
			}
			fmt.Fprintln(out, "\nRecent ingestions")
			for _, r := range recent {
				fmt.Fprintf(out, "  %s  new=%d updated=%d feeds=%d/%d\n",
					formatTime(r.Timestamp.Time), r.NewArticles, r.UpdatedArticles, r.SuccessfulFeeds, r.FeedCount)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&history, "history", 5, "number of recent ingestions to show")
	return cmd
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("2006-01-02 15:04:05 MST")
}
