package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/curly60e/warp/internal/app"
)

var version = "dev"

var opts app.Options

var rootCmd = &cobra.Command{
	Use:     "warp",
	Short:   "Interactive terminal dashboard for a Core Lightning node",
	Version: version,
	Long: `warp shows live node status (balances, peers, channels, block height)
refreshed in the background, with a prompt for running ad-hoc lightning-cli
commands. Results render inline; openchannel, closechannel, invoice, pay and
fetchinvoice get dedicated handling, everything else passes straight through
to the node.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()
		return app.Run(ctx, opts)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "override config file path")
	flags.StringVar(&opts.Network, "network", "", "lightning network (bitcoin, testnet, regtest)")
	flags.StringVar(&opts.LightningDir, "lightning-dir", "", "lightning node data directory")
	flags.StringVar(&opts.CLIPath, "cli", "", "path to the lightning-cli binary")
	flags.IntVar(&opts.PollEvery, "poll", 0, "poll interval in seconds (default 10)")
	flags.StringVar(&opts.LogFile, "log-file", "", "override log file path")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "warp: %v\n", err)
		os.Exit(1)
	}
}
