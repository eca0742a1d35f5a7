package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"thunder-cargo/internal/auth"
	"thunder-cargo/internal/database"
	"thunder-cargo/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "HTTP sunucusunu başlatır",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup()
			if err != nil {
				return err
			}
			defer e.close()

			if err := database.Migrate(e.db); err != nil {
				return err
			}
			if seed {
				seeded, err := database.Seed(e.db)
				if err != nil {
					return err
				}
				e.log.Info("seed", zap.Bool("loaded", seeded))
			}

			rdb, err := database.ReadDB(e.db, e.cfg.DatabaseDriver)
			if err != nil {
				return err
			}
			verifier, err := auth.NewStaticVerifier(e.cfg.Accounts, bcrypt.DefaultCost)
			if err != nil {
				return err
			}

			app, err := server.New(server.Deps{
				Config:   e.cfg,
				Log:      e.log,
				DB:       e.db,
				ReadDB:   rdb,
				Verifier: verifier,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				e.log.Info("server çalışıyor", zap.String("port", e.cfg.HTTPPort))
				return app.Listen(":" + e.cfg.HTTPPort)
			})
			g.Go(func() error {
				<-ctx.Done()
				e.log.Info("server kapatılıyor")
				sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return app.ShutdownWithContext(sctx)
			})

			if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "Tablolar boşsa demo verisini yükle")
	return cmd
}
