package cmd

import (
	"github.com/spf13/cobra"

	"rssingest/internal/backend"
)

func newRunCmd(root *rootOptions) *cobra.Command {
	flags := &eventFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run one ingestion in this process",
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

			return printResult(cmd, p.Handler.Handle(ctx, flags.event(cmd)))
		},
	}
	flags.register(cmd)
	return cmd
}
