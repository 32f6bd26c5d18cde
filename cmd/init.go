package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/andresherrera/pdfcopilot/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Run: func(cmd *cobra.Command, args []string) {
		if _, err := os.Stat(cfgFile); err == nil {
			exitOnError(fmt.Errorf("%s already exists", cfgFile))
		}
		cfg := config.DefaultConfig()
		exitOnError(cfg.Save(cfgFile))
		fmt.Printf("Wrote %s\n", cfgFile)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
