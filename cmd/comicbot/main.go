package main

import (
	"comicbot/internal/di"
	"comicbot/internal/structures"
	"fmt"
	"github.com/spf13/cobra"
	"os"
)

func newRootCmd() *cobra.Command {
	flags := &structures.CliFlags{}

	rootCmd := &cobra.Command{
		Use:          "comicbot",
		Short:        "Discord bot announcing comic releases for followed series",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, err := di.InitApp(flags)
			return err
		},
	}
	rootCmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "config/config.yaml", "path to the YAML config file")
	rootCmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to the console")
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
