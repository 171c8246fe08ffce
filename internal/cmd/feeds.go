package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"rssingest/internal/catalog"
	"rssingest/internal/helper"
)

func newFeedsCmd(root *rootOptions) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "feeds [LIST]",
		Short: "Show feed lists or the feeds of one list",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := root.load()
			if err != nil {
				return err
			}
			cat := catalog.New(cfg.Ingest.CustomFeeds)
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintln(out, "Available feed lists")
				for _, name := range cat.Names() {
					feeds, _ := cat.Feeds(name)
					marker := ""
					if name == cfg.Ingest.FeedList {
						marker = " (default)"
					}
					fmt.Fprintf(out, "  %-14s %3d feeds%s\n", name, len(feeds), marker)
				}
				return nil
			}

			feeds, err := cat.Feeds(args[0])
			if err != nil {
				return err
			}
			client := &http.Client{Timeout: cfg.Ingest.FetchTimeoutDuration()}
			failed := 0
			for i, f := range feeds {
				if !check {
					fmt.Fprintf(out, "%d. %s\n", i+1, f)
					continue
				}
				status := "ok"
				if err := helper.CheckReachable(cmd.Context(), client, f, cfg.Ingest.UserAgent); err != nil {
					status = err.Error()
					failed++
				}
				fmt.Fprintf(out, "%d. %s  [%s]\n", i+1, f, status)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d feeds unreachable", failed, len(feeds))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "request each feed and report its status")
	return cmd
}
