package main

import (
	"fmt"

	"github.com/gonewx/spawncycler/pkg/config"
	"github.com/gonewx/spawncycler/pkg/settings"
	"github.com/spf13/cobra"
)

func newPresetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage generator presets",
	}
	cmd.AddCommand(newPresetListCommand())
	cmd.AddCommand(newPresetShowCommand())
	cmd.AddCommand(newPresetSaveCommand())
	cmd.AddCommand(newPresetDeleteCommand())
	return cmd
}

func newPresetListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List built-in and user presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			builtin, err := config.ListEmbeddedPresets()
			if err != nil {
				return err
			}
			user, err := a.presets.List()
			if err != nil {
				return err
			}

			def := a.settings.GetSettings().DefaultPreset
			w := cmd.OutOrStdout()
			mark := func(name string) string {
				if name == def {
					return " (default)"
				}
				return ""
			}
			fmt.Fprintln(w, "Built-in:")
			for _, name := range builtin {
				fmt.Fprintf(w, "  %s%s\n", name, mark(name))
			}
			fmt.Fprintln(w, "User:")
			if len(user) == 0 {
				fmt.Fprintln(w, "  (none)")
			}
			for _, name := range user {
				fmt.Fprintf(w, "  %s%s\n", name, mark(name))
			}
			return nil
		},
	}
}

func newPresetShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a preset as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			preset, err := a.presets.Resolve(args[0])
			if err != nil {
				return err
			}
			data, err := config.MarshalGeneratorPreset(preset)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newPresetSaveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save <name> <file.yaml>",
		Short: "Store a preset file as a user preset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			setDefault, _ := cmd.Flags().GetBool("default")

			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			preset, err := config.LoadGeneratorPreset(args[1])
			if err != nil {
				return err
			}
			if err := a.presets.Save(args[0], preset); err != nil {
				return err
			}
			if setDefault {
				a.settings.SetDefaultPreset(args[0])
			}
			a.remember(args[1])

			fmt.Fprintf(cmd.OutOrStdout(), "Saved preset %s\n", args[0])
			if !a.persist {
				fmt.Fprintln(cmd.ErrOrStderr(), "Warning: user storage is unavailable, the preset is not persisted")
			}
			return nil
		},
	}

	cmd.Flags().Bool("default", false, "Also make it the default preset for generate")
	return cmd
}

func newPresetDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a user preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd)
			if err != nil {
				return err
			}

			if err := a.presets.Delete(args[0]); err != nil {
				return err
			}
			if a.settings.GetSettings().DefaultPreset == args[0] {
				a.settings.SetDefaultPreset(settings.DefaultSettings().DefaultPreset)
				if err := a.settings.Save(); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %s\n", args[0])
			return nil
		},
	}
}
