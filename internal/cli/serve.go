package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Skotchmaster/shop_demo/internal/config"
	"github.com/Skotchmaster/shop_demo/internal/httpserver"
	"github.com/Skotchmaster/shop_demo/internal/logging"
	"github.com/Skotchmaster/shop_demo/internal/output"
	"github.com/Skotchmaster/shop_demo/internal/repo"
	"github.com/Skotchmaster/shop_demo/internal/service"
	"github.com/Skotchmaster/shop_demo/pkg/db"
)

const sessionPurgeInterval = time.Hour

func newServeCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), flags.config())
		},
	}
	cmd.Flags().IntVar(&flags.port, "port", 0, "listen port (overrides SERVER_PORT)")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config) error {
	if err := config.MustNonEmpty(cfg.SessionSecret, "SESSION_SECRET"); err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	gdb, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}

	events, closeEvents, err := newPublisher(cfg.KafkaBrokers)
	if err != nil {
		_ = db.Close(gdb)
		return err
	}
	if len(cfg.KafkaBrokers) == 0 {
		output.Warning("KAFKA_BROKERS not set, domain events are dropped")
	}

	r := &repo.GormRepo{DB: gdb}
	authSvc := &service.AuthService{
		Users:    r,
		Sessions: r,
		Events:   events,
		Secret:   cfg.SessionSecret,
		TTL:      cfg.SessionTTL,
	}

	e := httpserver.NewEcho(&httpserver.Deps{
		ProductHandler: &httpserver.ProductHTTP{Svc: &service.CatalogService{Repo: r, Events: events}},
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, CookieSecure: cfg.CookieSecure},
		CartHandler:    &httpserver.CartHTTP{Svc: &service.CartService{Repo: r, Users: r, Products: r, Events: events}},
		HealthHandler:  &httpserver.HealthHTTP{DB: sqlDB},
		SessionSecret:  cfg.SessionSecret,
		CookieSecure:   cfg.CookieSecure,
		CSRFProtect:    cfg.CSRFProtect,
	}, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	purgeCtx, stopPurge := context.WithCancel(context.Background())
	go purgeSessions(logging.IntoContext(purgeCtx, logger), authSvc)

	serveErr := make(chan error, 1)
	go func() {
		output.Info("%s listening on %s", cfg.ServiceName, srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-stop:
		log.Println("shutting down...")
	case err := <-serveErr:
		runErr = fmt.Errorf("http server: %w", err)
	}

	stopPurge()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}
	if err := db.Close(gdb); err != nil {
		log.Printf("db close error: %v", err)
	}
	if err := closeEvents(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
	return runErr
}

func purgeSessions(ctx context.Context, svc *service.AuthService) {
	t := time.NewTicker(sessionPurgeInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := svc.PurgeExpiredSessions(ctx)
			if err != nil {
				logging.FromContext(ctx).Error("session_purge_error", "error", err)
				continue
			}
			if n > 0 {
				logging.FromContext(ctx).Info("session_purge", "removed", n)
			}
		}
	}
}
