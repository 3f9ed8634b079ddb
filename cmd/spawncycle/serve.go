package main

import (
	"github.com/gonewx/spawncycler/pkg/server"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parse, generate and analyze operations over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")

			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			return server.New(a.presets, a.settings.GetSettings().AnalyzerConfig()).Run(addr)
		},
	}

	cmd.Flags().String("addr", ":8080", "Listen address")
	return cmd
}
