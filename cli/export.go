package cli

import (
	"fmt"

	productcontroller "github.com/junaidrashid-git/sunrise-cafe/controllers/product"
	"github.com/junaidrashid-git/sunrise-cafe/database"
	"github.com/spf13/cobra"
)

type ExportOptions struct {
	Output string
}

// NewExportInventoryCommand creates the export-inventory command.
func NewExportInventoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export-inventory",
		Short: "Write the products and orders workbook to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(rootOpts)
			if err != nil {
				return err
			}
			db, err := openDatabase(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			inv, err := productcontroller.LoadInventory(cmd.Context(), db)
			if err != nil {
				return err
			}
			file, err := productcontroller.BuildInventoryWorkbook(inv)
			if err != nil {
				return fmt.Errorf("failed to build workbook: %w", err)
			}
			if err := file.Save(opts.Output); err != nil {
				return fmt.Errorf("failed to write %s: %w", opts.Output, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d products and %d orders to %s\n",
				len(inv.Products), len(inv.Orders), opts.Output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "inventory.xlsx", "output file")

	return cmd
}
