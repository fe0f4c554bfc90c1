// Command pictriage is a keyboard-driven photo triage tool: it walks you
// through the images in an intake directory and files each one into a
// category folder, converted, renamed, and stripped of metadata.
package main

import (
	"fmt"
	"os"

	"pictriage/internal/config"
	"pictriage/internal/log"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	cfgFile string
	debug   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "pictriage",
		Short:   "Sort photos into categories, one keystroke at a time",
		Long: `Pictriage shows each image in an intake directory and lets you rotate it,
name it, and file it into a category folder with a single key press. Filed
images are re-encoded as JPEG with metadata stripped; RAW originals are
preserved in an archive directory.`,
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetDebug(debug)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(triageCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(keybindsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
