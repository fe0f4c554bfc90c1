package main

import (
	"fmt"

	"pictriage/internal/config"
	"pictriage/internal/errors"

	"github.com/spf13/cobra"
)

func keybindsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keybinds",
		Short: "Manage action keybinds",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured keybinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			for _, action := range config.Actions {
				fmt.Printf("%-15s %s\n", action, cfg.Keybinds[action])
			}
			fmt.Println("\nThe delete and backspace keys are reserved for the \"deleted\" category.")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set <action> <key>",
		Short: "Bind an action to a key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			action, key := args[0], args[1]

			known := false
			for _, a := range config.Actions {
				if a == action {
					known = true
					break
				}
			}
			if !known {
				return errors.Newf("unknown action %q (valid: %v)", action, config.Actions)
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg.Keybinds[action] = key
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(cfgFile); err != nil {
				return err
			}
			fmt.Printf("Bound %s to %q\n", action, key)
			return nil
		},
	})

	return cmd
}
