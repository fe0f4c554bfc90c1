package main

import (
	"fmt"

	"pictriage/internal/config"
	"pictriage/internal/scan"

	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	var inDir string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List the images a triage session would pick up",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if inDir != "" {
				cfg.Settings.InDir = inDir
			}

			scanner, err := scan.New(cfg.Settings.Ignore)
			if err != nil {
				return err
			}
			files, err := scanner.Scan(cfg.Settings.InDir)
			if err != nil {
				return err
			}

			if len(files) == 0 {
				fmt.Printf("No image files found in the %q directory.\n", cfg.Settings.InDir)
				return nil
			}
			for _, f := range files {
				kind := "image"
				if scan.IsRaw(f) {
					kind = "raw"
				}
				fmt.Printf("%-5s %s\n", kind, f)
			}
			fmt.Printf("\n%d file(s) ready for triage.\n", len(files))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inDir, "in", "i", "", "intake directory (default from config, \"in\")")
	return cmd
}
