package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"hotel-manager/config"
	"hotel-manager/jobs"
	"hotel-manager/routes"
	"hotel-manager/services"
	"hotel-manager/services/booking"
	"hotel-manager/services/notification"
)

func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Port = port
			}

			log, err := newLogger(cfg)
			if err != nil {
				return err
			}

			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			rdb, err := config.ConnectRedis(cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to redis: %w", err)
			}
			cld, err := config.ConnectCloudinary(cfg)
			if err != nil {
				return fmt.Errorf("failed to configure cloudinary: %w", err)
			}

			router, m, c := config.InitApp(cfg)
			notifier := notification.NewMelodyService(m)

			svc := services.NewContainer(services.ContainerOptions{
				DB:         db,
				Redis:      rdb,
				Cloudinary: cld,
				Notifier:   notifier,
				Clock:      booking.SystemClock{Location: cfg.HotelLocation},
				JWTSecret:  cfg.JWTSecret,
				TokenTTL:   cfg.TokenTTL,
				Logger:     log,
			})

			if err := jobs.InitCronJobs(c, svc.Dashboard, notifier, log); err != nil {
				return fmt.Errorf("failed to initialize cron jobs: %w", err)
			}
			defer c.Stop()

			config.InitWebSocket(router, m)
			routes.SetupRoutes(router, svc, log)

			log.Info("Server starting on port %s...", cfg.Port)
			return router.Run(":" + cfg.Port)
		},
	}
	cmd.Flags().String("port", "", "listen port, overrides PORT")
	return cmd
}
