package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/talkincode/toughcrm/config"
)

var (
	version = "dev"
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:           "toughcrm",
	Short:         "ToughCRM customer, product and order API",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (yaml)")
}

func loadConfig() (*config.AppConfig, error) {
	return config.LoadConfig(cfgFile)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
