package cli

import (
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/shop_demo/internal/output"
	"github.com/Skotchmaster/shop_demo/internal/repo"
	"github.com/Skotchmaster/shop_demo/internal/service"
	"github.com/Skotchmaster/shop_demo/pkg/db"
)

func newUserCmd(flags *globalFlags) *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage shop accounts",
	}

	var username, password string
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account that can log in",
		Long: `Create an account that can log in.

Examples:
  shop user create --username alice --password secret`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := flags.config()

			gdb, err := openStore(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			r := &repo.GormRepo{DB: gdb}
			svc := &service.AuthService{Users: r, Sessions: r}
			user, err := svc.CreateUser(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			output.Success("created user %q (id %d)", user.Username, user.ID)
			return nil
		},
	}
	createCmd.Flags().StringVar(&username, "username", "", "login name")
	createCmd.Flags().StringVar(&password, "password", "", "password, stored as given")
	_ = createCmd.MarkFlagRequired("username")
	_ = createCmd.MarkFlagRequired("password")

	userCmd.AddCommand(createCmd)
	return userCmd
}
