package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/shop_demo/internal/config"
	"github.com/Skotchmaster/shop_demo/internal/output"
)

type globalFlags struct {
	dbURL string
	port  int
}

// NewRootCmd builds the shop command tree.
func NewRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "shop",
		Short: "Online shop demo service",
		Long: `shop serves a small e-commerce HTTP API: product catalog, session login
and a per-user cart with checkout.

Configuration comes from the environment (optionally a .env file):
  DATABASE_URL, SESSION_SECRET, SESSION_TTL, SERVER_PORT, KAFKA_BROKERS, LOG_LEVEL`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.dbURL, "db", "", "database URL or sqlite file (overrides DATABASE_URL)")

	root.AddCommand(newServeCmd(flags))
	root.AddCommand(newMigrateCmd(flags))
	root.AddCommand(newUserCmd(flags))
	return root
}

func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}

func (f *globalFlags) config() config.Config {
	cfg := config.Load()
	if f.dbURL != "" {
		cfg.DatabaseURL = f.dbURL
	}
	if f.port != 0 {
		cfg.ServerPort = f.port
	}
	return cfg
}
