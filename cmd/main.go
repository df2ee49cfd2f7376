package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/francosciascia/expert-giggle/config"
	"github.com/francosciascia/expert-giggle/routes"
	"github.com/francosciascia/expert-giggle/services"
	"github.com/francosciascia/expert-giggle/utils"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "rutinas",
		Short:        "Workout routine management API",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd(), newTokenCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the schema and start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := config.SetupLogger(cfg.Log)
			gin.SetMode(cfg.Server.GinMode)

			db, err := config.OpenDB(cfg.Database)
			if err != nil {
				return err
			}
			if err := config.Migrate(db); err != nil {
				return err
			}

			var archiver services.Archiver
			if cfg.Export.S3Bucket != "" {
				a, err := utils.NewS3ArchiverFromEnv(cmd.Context(), cfg.Export.S3Bucket, cfg.Export.S3Region)
				if err != nil {
					return err
				}
				archiver = a
				log.Info("export.archive_enabled", "bucket", cfg.Export.S3Bucket)
			}
			if cfg.Auth.JWTSecret == "" {
				log.Warn("auth.disabled", "reason", "JWT_SECRET not set")
			}

			r := routes.SetupRouter(routes.Options{
				DB:          db,
				Logger:      log,
				CORSOrigins: cfg.Server.CORSOrigins,
				JWTSecret:   cfg.Auth.JWTSecret,
				Archiver:    archiver,
			})

			srv := &http.Server{
				Addr:              ":" + cfg.Server.Port,
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("server.listening", "addr", srv.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			log.Info("server.shutdown")
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			log := config.SetupLogger(cfg.Log)
			db, err := config.OpenDB(cfg.Database)
			if err != nil {
				return err
			}
			if err := config.Migrate(db); err != nil {
				return err
			}
			log.Info("migrate.done", slog.String("driver", cfg.Database.Driver))
			return nil
		},
	}
}

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token signed with JWT_SECRET",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			tok, err := utils.GenerateJWT(cfg.Auth.JWTSecret, subject, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "frontend", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 72*time.Hour, "token lifetime")
	return cmd
}
