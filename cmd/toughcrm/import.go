package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/talkincode/toughcrm/internal/app"
	"github.com/talkincode/toughcrm/internal/crm"
)

var importCmd = &cobra.Command{
	Use:   "import <customers.csv>",
	Short: "Bulk create customers from a CSV file with name,email,phone columns",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		application := app.NewApplication(cfg)
		application.Init(cfg)
		defer application.Release()

		return runImport(cmd.Context(), application.CRM(), f, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// runImport creates every customer in r and reports the outcome to out.
// It fails when any row was rejected.
func runImport(ctx context.Context, svc *crm.Service, r io.Reader, out io.Writer) error {
	inputs, err := crm.ReadCustomerCSV(r)
	if err != nil {
		return fmt.Errorf("parse csv: %w", err)
	}
	res := svc.BulkCreateCustomers(ctx, inputs)
	fmt.Fprintf(out, "created %d of %d customers\n", len(res.Customers), len(inputs))
	for _, msg := range res.Errors {
		fmt.Fprintf(out, "  rejected %s\n", msg)
	}
	if !res.Success {
		return fmt.Errorf("%d customers rejected", len(res.Errors))
	}
	return nil
}
