package main

import (
	"fmt"
	"path/filepath"

	"pictriage/internal/config"
	"pictriage/internal/log"
	"pictriage/internal/naming"
	"pictriage/internal/scan"
	"pictriage/internal/session"
	"pictriage/internal/triage"
	"pictriage/internal/tui"
	"pictriage/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func triageCmd() *cobra.Command {
	var (
		inDir     string
		outDir    string
		watchMode bool
	)

	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Run an interactive triage session",
		Long:  `Walk through the intake directory image by image, filing each one into a category with a single key press.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if inDir != "" {
				cfg.Settings.InDir = inDir
			}
			if outDir != "" {
				cfg.Settings.OutDir = outDir
			}

			scanner, err := scan.New(cfg.Settings.Ignore)
			if err != nil {
				return err
			}

			originalsDir := filepath.Join(cfg.Settings.OutDir, triage.OriginalsDirName)
			seq, err := naming.Seed(cfg.Settings.OutDir, originalsDir)
			if err != nil {
				return fmt.Errorf("error seeding sequence counter: %w", err)
			}
			log.Info("sequence counter seeded to %d", seq.Counter())

			engine := triage.NewEngine(cfg.Settings.OutDir, seq)
			if err := engine.EnsureDirectories(cfg.Settings.InDir, cfg.Categories); err != nil {
				return err
			}

			files, err := scanner.Scan(cfg.Settings.InDir)
			if err != nil {
				return err
			}
			if len(files) == 0 && !watchMode {
				fmt.Printf("No image files found in the %q directory.\n", cfg.Settings.InDir)
				return nil
			}

			sess := session.New(files)

			var watcher *watch.Watcher
			if watchMode {
				watcher, err = watch.New(scanner)
				if err != nil {
					return err
				}
				if err := watcher.Watch(cfg.Settings.InDir); err != nil {
					return err
				}
				if err := watcher.Start(); err != nil {
					return err
				}
				defer watcher.Stop()
			}

			m := tui.New(cfg, sess, engine, watcher)
			p := tea.NewProgram(m, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running triage session: %w", err)
			}

			// Persist on clean shutdown, same as every config edit.
			if err := cfg.Save(cfgFile); err != nil {
				log.Warn("could not save config: %v", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inDir, "in", "i", "", "intake directory (default from config, \"in\")")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default from config, \"out\")")
	cmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "keep watching the intake directory for new images")

	return cmd
}
