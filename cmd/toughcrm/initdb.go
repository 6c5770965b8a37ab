package main

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/talkincode/toughcrm/internal/app"
)

var initdbForce bool

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Drop and recreate every CRM table",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if !initdbForce {
			return errors.New("initdb drops all CRM data, rerun with --force to confirm")
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		application := app.NewApplication(cfg)
		application.Init(cfg)
		defer application.Release()

		application.InitDb()
		cmd.Println("database initialized")
		return nil
	},
}

func init() {
	initdbCmd.Flags().BoolVar(&initdbForce, "force", false, "confirm dropping existing tables")
	rootCmd.AddCommand(initdbCmd)
}
