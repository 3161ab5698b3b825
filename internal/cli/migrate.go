package cli

import (
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_demo/internal/models"
	"github.com/Skotchmaster/shop_demo/internal/output"
	"github.com/Skotchmaster/shop_demo/pkg/db"
)

func newMigrateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.config()

			gdb, err := openStore(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			output.Success("schema is up to date")
			for _, m := range models.All() {
				stmt := &gorm.Statement{DB: gdb}
				if err := stmt.Parse(m); err != nil {
					return err
				}
				output.Muted("  %s", stmt.Schema.Table)
			}
			return nil
		},
	}
}
