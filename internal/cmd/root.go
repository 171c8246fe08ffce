package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"rssingest/app"
	"rssingest/internal/config"
	"rssingest/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}

type rootOptions struct {
	configPath string
}

// NewRootCmd builds the rssingest command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "rssingest",
		Short:         "Collect RSS feeds into a single JSON article collection",
		Long:          "rssingest fetches a batch of RSS feeds, merges new articles into a stored JSON collection and records each ingestion in its metadata.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")

	root.AddCommand(
		newRunCmd(opts),
		newServeCmd(opts),
		newTriggerCmd(opts),
		newFeedsCmd(opts),
		newStatsCmd(opts),
		newVersionCmd(),
	)
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rssingest %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func (o *rootOptions) load() (config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

type eventFlags struct {
	feedList string
	maxFeeds int
	minDelay float64
	maxDelay float64
}

func (f *eventFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.feedList, "feed-list", "", "feed list to ingest (see 'rssingest feeds')")
	cmd.Flags().IntVar(&f.maxFeeds, "max-feeds", 0, "maximum number of feeds, 0 for all")
	cmd.Flags().Float64Var(&f.minDelay, "min-delay", 0, "minimum pause between feeds in seconds")
	cmd.Flags().Float64Var(&f.maxDelay, "max-delay", 0, "maximum pause between feeds in seconds")
}

// event sets only the fields given on the command line.
func (f *eventFlags) event(cmd *cobra.Command) app.Event {
	var ev app.Event
	if cmd.Flags().Changed("feed-list") {
		ev.FeedList = &f.feedList
	}
	if cmd.Flags().Changed("max-feeds") {
		ev.MaxFeeds = &f.maxFeeds
	}
	if cmd.Flags().Changed("min-delay") {
		ev.MinDelay = &f.minDelay
	}
	if cmd.Flags().Changed("max-delay") {
		ev.MaxDelay = &f.maxDelay
	}
	return ev
}

// printResult writes the result body and turns a failed status into an error.
func printResult(cmd *cobra.Command, res app.InvocationResult) error {
	fmt.Fprintln(cmd.OutOrStdout(), res.Body)
	if res.StatusCode >= 300 {
		return fmt.Errorf("ingestion failed with status %d", res.StatusCode)
	}
	return nil
}
