package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(logOut io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "roi-cli",
		Short:         "Nexalis ROI calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelWarn}))

	root.AddCommand(NewCalculateCmd(log))
	root.AddCommand(NewIndustriesCmd())

	return root
}
