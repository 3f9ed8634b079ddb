package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDefaultsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Show or change the saved analyzer defaults",
		Long: `Without flags, prints the saved defaults used by "analyze" and "serve".
Any analyzer flag given is validated and saved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			changed := false
			for _, name := range []string{"difficulty", "wsf", "max-monsters", "scale-by-wsf", "preset"} {
				if cmd.Flags().Changed(name) {
					changed = true
				}
			}

			if changed {
				cfg, err := analyzerConfigFromFlags(cmd, a.settings.GetSettings().AnalyzerConfig())
				if err != nil {
					return err
				}
				if err := a.settings.SetAnalyzerDefaults(cfg); err != nil {
					return err
				}
				if cmd.Flags().Changed("preset") {
					name, _ := cmd.Flags().GetString("preset")
					if _, err := a.presets.Resolve(name); err != nil {
						return err
					}
					a.settings.SetDefaultPreset(name)
				}
				if err := a.settings.Save(); err != nil {
					return err
				}
			}

			s := a.settings.GetSettings()
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "difficulty:     %s\n", s.Difficulty)
			fmt.Fprintf(w, "wsf:            %d\n", s.WaveSizeFakes)
			fmt.Fprintf(w, "max monsters:   %d\n", s.MaxMonsters)
			fmt.Fprintf(w, "scale by WSF:   %t\n", s.ScaleByWSF)
			fmt.Fprintf(w, "default preset: %s\n", s.DefaultPreset)
			return nil
		},
	}

	addAnalyzerFlags(cmd)
	cmd.Flags().String("preset", "", "Default preset for generate")
	return cmd
}

func newRecentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recent",
		Short: "List recently used files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}
			for i, p := range a.settings.RecentFiles() {
				fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", i+1, p)
			}
			return nil
		},
	}
}
