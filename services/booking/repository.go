package booking

import (
	"context"

	"hotel-manager/models"
)

// Repository is the store the engine reads and writes through.
// Find* methods return a NOT_FOUND AppError when the row does not exist.
type Repository interface {
	FindClient(ctx context.Context, id uint) (*models.Client, error)
	FindRoom(ctx context.Context, id uint) (*models.Room, error)
	FindReservation(ctx context.Context, id uint) (*models.Reservation, error)

	// LockClient loads a client and holds a row lock on it until the unit of work ends:
	// exclusive for deletes, shared for bookings, so a delete never races a new booking.
	LockClient(ctx context.Context, id uint, exclusive bool) (*models.Client, error)

	// FindActiveByRoom returns the pending, confirmed and checked-in reservations of a room.
	// excludeID is skipped when non-zero.
	FindActiveByRoom(ctx context.Context, roomID, excludeID uint) ([]models.Reservation, error)
	CountActiveByClient(ctx context.Context, clientID uint) (int64, error)
	CountActiveByRoom(ctx context.Context, roomID uint) (int64, error)

	CreateReservation(ctx context.Context, r *models.Reservation) error
	UpdateReservation(ctx context.Context, r *models.Reservation) error
	DeleteReservation(ctx context.Context, id uint) error
	// DeleteClient and DeleteRoom also remove the historical reservations that reference them
	DeleteClient(ctx context.Context, id uint) error
	DeleteRoom(ctx context.Context, id uint) error

	// Atomic runs fn as one unit of work. Writers on any of roomIDs are serialized
	// until fn returns; an error from fn discards every write made through repo.
	Atomic(ctx context.Context, roomIDs []uint, fn func(repo Repository) error) error
}
