package services

import (
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"hotel-manager/repository"
	"hotel-manager/services/booking"
	"hotel-manager/services/logger"
	"hotel-manager/services/notification"
)

// Container holds the application services sharing one engine and one set of connections
type Container struct {
	Engine       *booking.Engine
	Auth         *AuthService
	Clients      *ClientService
	Rooms        *RoomService
	Reservations *ReservationFacade
	Dashboard    *DashboardService
	Notifier     notification.Service
}

type ContainerOptions struct {
	DB         *gorm.DB
	Redis      *redis.Client
	Cloudinary *cloudinary.Cloudinary
	Notifier   notification.Service
	Clock      booking.Clock
	JWTSecret  string
	TokenTTL   time.Duration
	Logger     logger.Logger
}

func NewContainer(opts ContainerOptions) *Container {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}

	engine := booking.NewEngine(booking.EngineOptions{
		Repo:   repository.NewGormRepository(opts.DB),
		Clock:  opts.Clock,
		Logger: opts.Logger,
	})

	var uploader PhotoUploader
	if opts.Cloudinary != nil {
		uploader = NewCloudinaryUploader(opts.Cloudinary, "hotel-manager/rooms")
	}

	return &Container{
		Engine: engine,
		Auth: NewAuthService(AuthServiceOptions{
			DB:     opts.DB,
			Tokens: NewTokenManager(opts.JWTSecret, opts.TokenTTL),
			Logger: opts.Logger,
		}),
		Clients: NewClientService(ClientServiceOptions{
			DB:     opts.DB,
			Redis:  opts.Redis,
			Engine: engine,
			Logger: opts.Logger,
		}),
		Rooms: NewRoomService(RoomServiceOptions{
			DB:       opts.DB,
			Redis:    opts.Redis,
			Engine:   engine,
			Uploader: uploader,
			Logger:   opts.Logger,
		}),
		Reservations: NewReservationFacade(ReservationFacadeOptions{
			DB:       opts.DB,
			Redis:    opts.Redis,
			Engine:   engine,
			Notifier: opts.Notifier,
			Logger:   opts.Logger,
		}),
		Dashboard: NewDashboardService(DashboardServiceOptions{
			DB:     opts.DB,
			Redis:  opts.Redis,
			Clock:  opts.Clock,
			Logger: opts.Logger,
		}),
		Notifier: opts.Notifier,
	}
}
