package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/general-equipments/app/configs"
	"github.com/Rakhulsr/general-equipments/app/db/seeders"
	"github.com/Rakhulsr/general-equipments/app/models/migrations"
	"github.com/Rakhulsr/general-equipments/app/repositories"
	"github.com/Rakhulsr/general-equipments/app/routes"
	"github.com/Rakhulsr/general-equipments/app/services"
	"github.com/Rakhulsr/general-equipments/app/utils/renderer"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func RunCli(args []string) error {
	env := configs.LoadEnv()

	log, err := configs.NewLogger(env)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	cmd := &cli.Command{
		Name:  "general-equipments",
		Usage: "Marketing site and admin for General Equipments",
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, env, log)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Start the HTTP server",
				Action: func(ctx context.Context, c *cli.Command) error {
					return serve(ctx, env, log)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection(env, log)
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Info("migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Fill the database with demo catalog, blog and inbox data",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openMigrated(env, log)
					if err != nil {
						return err
					}
					if err := seeders.DBSeed(db, log); err != nil {
						return err
					}
					log.Info("seeding complete")
					return nil
				},
			},
			{
				Name:  "create-admin",
				Usage: "Create an admin user",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "name", Value: "Administrator"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openMigrated(env, log)
					if err != nil {
						return err
					}
					auth := services.NewAuthService(repositories.NewUserRepository(db), log.Named("auth"))
					user, err := auth.CreateAdmin(ctx, c.String("name"), c.String("email"), c.String("password"))
					if err != nil {
						return err
					}
					log.Info("admin user created", zap.String("id", user.ID), zap.String("email", user.Email))
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate session and CSRF keys for .env",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Value: ".env.keys", Usage: "file the keys are written to"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					lines, err := configs.GenerateSessionKeys(c.String("out"))
					if err != nil {
						return err
					}
					fmt.Print(lines)
					log.Info("keys written, copy them to your .env file", zap.String("path", c.String("out")))
					return nil
				},
			},
		},
	}

	return cmd.Run(context.Background(), args)
}

func openMigrated(env configs.ENV, log *zap.Logger) (*gorm.DB, error) {
	db, err := configs.OpenConnection(env, log)
	if err != nil {
		return nil, err
	}
	if err := migrations.AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func serve(ctx context.Context, env configs.ENV, log *zap.Logger) error {
	keys, err := configs.LoadSessionKeys(env)
	if err != nil {
		return err
	}
	if keys.CSRFKey == nil {
		log.Warn("CSRF_KEY not set, admin forms are not CSRF protected")
	}

	db, err := openMigrated(env, log)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	log.Info("database connected", zap.String("dialect", env.DBType))

	router := routes.NewRouter(routes.Options{
		DB:               db,
		Render:           renderer.New(env.TemplatesDir, !env.IsProduction()),
		Logger:           log,
		Keys:             keys,
		CookieSecure:     env.CookieSecure(),
		SheetsWebhookURL: env.SheetsWebhookURL,
		StaticDir:        "static",
	})

	server := &http.Server{
		Addr:              env.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", server.Addr), zap.String("url", env.AppURL))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
