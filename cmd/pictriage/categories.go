package main

import (
	"fmt"
	"sort"

	"pictriage/internal/config"
	"pictriage/internal/errors"

	"github.com/spf13/cobra"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage category folders and their keys",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}

			var names []string
			for name := range cfg.Categories {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				key := cfg.Categories[name]
				if name == config.DeletedCategory {
					key = "delete/backspace (reserved)"
				}
				fmt.Printf("%-20s %s\n", name, key)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <name> <key>",
		Short: "Add a category (use / in the name for nesting)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, key := args[0], args[1]
			if name == config.DeletedCategory {
				return errors.Newf("%q is reserved", config.DeletedCategory)
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg.Categories[name] = key
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(cfgFile); err != nil {
				return err
			}
			fmt.Printf("Added category %q on key %q\n", name, key)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if name == config.DeletedCategory {
				return errors.Newf("%q is reserved", config.DeletedCategory)
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if _, ok := cfg.Categories[name]; !ok {
				return errors.Newf("no such category: %s", name)
			}
			delete(cfg.Categories, name)
			if err := cfg.Save(cfgFile); err != nil {
				return err
			}
			fmt.Printf("Removed category %q\n", name)
			return nil
		},
	})

	return cmd
}
