package cmd

import (
	"github.com/spf13/cobra"

	"rssingest/cli/control"
)

func newTriggerCmd(root *rootOptions) *cobra.Command {
	flags := &eventFlags{}
	cmd := &cobra.Command{
		Use:   "trigger",
		Short: "Ask a running 'serve' process to ingest now",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := root.load()
			if err != nil {
				return err
			}
			res, err := control.NewClient(cfg.ControlAddr).Trigger(cmd.Context(), flags.event(cmd))
			if err != nil {
				return err
			}
			return printResult(cmd, res)
		},
	}
	flags.register(cmd)
	return cmd
}
