// Package cli implements sdcctl, the operator tool for migrations, catalog
// seeding and allocation reports.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"sdc_backend/internals/configs"
	database "sdc_backend/internals/databases"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	SQLitePath string
	Format     string // "text" | "json"
}

var ValidFormats = []string{"text", "json"}

func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:           "sdcctl",
		Short:         "SDC work order operations",
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			for _, f := range ValidFormats {
				if f == opts.Format {
					return nil
				}
			}
			return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.SQLitePath, "sqlite", "", "use a SQLite file instead of the postgres settings from the environment")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))
	cmd.AddCommand(NewAllocationCommand(opts))
	cmd.AddCommand(NewBurndownCommand(opts))
	cmd.AddCommand(NewAuditCommand(opts))

	return cmd
}

// open returns the database selected by the global flags.
func (o *RootOptions) open() (*gorm.DB, error) {
	if o.SQLitePath != "" {
		return database.OpenSQLite(o.SQLitePath)
	}
	configs.LoadEnv()
	database.ConnectDB(configs.Load())
	return database.DB, nil
}
