package commands

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"hotel-manager/config"
	"hotel-manager/dto"
	apperrors "hotel-manager/errors"
	"hotel-manager/services"
	"hotel-manager/services/booking"
	"hotel-manager/services/logger"
)

type SeedOptions struct {
	AdminName     string
	AdminEmail    string
	AdminPassword string
}

var seedRooms = []dto.RoomRequest{
	{Number: "101", Category: "single", NightlyRate: 150, Description: "Single room, courtyard view"},
	{Number: "102", Category: "double", NightlyRate: 220, Description: "Double room with balcony"},
	{Number: "201", Category: "suite", NightlyRate: 400, Description: "Suite with living area"},
	{Number: "202", Category: "family", NightlyRate: 320, Description: "Family room, two double beds"},
}

var seedClient = dto.ClientRequest{
	Name:     "Maria Oliveira",
	Email:    "maria.oliveira@example.com",
	Phone:    "+55 21 99999-0000",
	Document: "98765432100",
	Address:  "Rua das Flores 12, Rio de Janeiro",
}

func SeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account and sample rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}

			opts := SeedOptions{}
			opts.AdminName, _ = cmd.Flags().GetString("admin-name")
			opts.AdminEmail, _ = cmd.Flags().GetString("admin-email")
			opts.AdminPassword, _ = cmd.Flags().GetString("admin-password")

			svc := services.NewContainer(services.ContainerOptions{
				DB:        db,
				Clock:     booking.SystemClock{Location: cfg.HotelLocation},
				JWTSecret: cfg.JWTSecret,
				TokenTTL:  cfg.TokenTTL,
				Logger:    log,
			})
			return Seed(cmd.Context(), svc, opts, log)
		},
	}
	cmd.Flags().String("admin-name", "Administrator", "admin display name")
	cmd.Flags().String("admin-email", config.GetEnv("ADMIN_EMAIL"), "admin email, defaults to ADMIN_EMAIL")
	cmd.Flags().String("admin-password", config.GetEnv("ADMIN_PASSWORD"), "admin password, defaults to ADMIN_PASSWORD")
	return cmd
}

// Seed is idempotent: records that already exist are left alone
func Seed(ctx context.Context, svc *services.Container, opts SeedOptions, log logger.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if opts.AdminEmail != "" && opts.AdminPassword != "" {
		created, err := svc.Auth.EnsureAdmin(ctx, opts.AdminName, opts.AdminEmail, opts.AdminPassword)
		if err != nil {
			return err
		}
		if created {
			log.Info("admin %s created", opts.AdminEmail)
		}
	} else {
		log.Info("admin credentials not given, skipping admin account")
	}

	var firstRoom uint
	for _, req := range seedRooms {
		room, err := svc.Rooms.Create(ctx, req)
		if errors.Is(err, apperrors.ErrDuplicate) {
			continue
		}
		if err != nil {
			return err
		}
		if firstRoom == 0 {
			firstRoom = room.ID
		}
		log.Info("room %s created", room.Number)
	}

	client, err := svc.Clients.Create(ctx, seedClient)
	if errors.Is(err, apperrors.ErrDuplicate) {
		return nil
	}
	if err != nil {
		return err
	}
	log.Info("client %s created", client.Email)

	if firstRoom == 0 {
		return nil
	}
	checkIn := time.Now().UTC().AddDate(0, 0, 1)
	res, err := svc.Reservations.Create(ctx, dto.CreateReservationRequest{
		ClientID: client.ID,
		RoomID:   firstRoom,
		CheckIn:  checkIn.Format("2006-01-02"),
		CheckOut: checkIn.AddDate(0, 0, 2).Format("2006-01-02"),
		Notes:    "sample reservation",
	})
	if err != nil {
		return err
	}
	log.Info("reservation %d created", res.ID)
	return nil
}
