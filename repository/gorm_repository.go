package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "hotel-manager/errors"
	"hotel-manager/models"
	"hotel-manager/services/booking"
)

// GormRepository is the booking.Repository backed by gorm
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// mapError turns gorm errors into AppErrors
func mapError(entity string, id uint, err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsAppError(err) {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperrors.NotFound(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict(fmt.Sprintf("%s already exists", entity), apperrors.ErrDuplicate)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apperrors.GuardedDeletion(fmt.Sprintf("%s is still referenced", entity), err)
	default:
		return apperrors.DBError(fmt.Sprintf("database error on %s", entity), err)
	}
}

func activeStatuses() []string {
	out := make([]string, 0, len(models.ActiveStatuses))
	for _, s := range models.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

func (r *GormRepository) FindClient(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, mapError("client", id, err)
	}
	return &client, nil
}

// LockClient selects the client FOR UPDATE or FOR SHARE; sqlite ignores the clause
func (r *GormRepository) LockClient(ctx context.Context, id uint, exclusive bool) (*models.Client, error) {
	strength := clause.LockingStrengthShare
	if exclusive {
		strength = clause.LockingStrengthUpdate
	}
	var client models.Client
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: strength}).
		First(&client, id).Error
	if err != nil {
		return nil, mapError("client", id, err)
	}
	return &client, nil
}

func (r *GormRepository) FindRoom(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, mapError("room", id, err)
	}
	return &room, nil
}

func (r *GormRepository) FindReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		return nil, mapError("reservation", id, err)
	}
	return &res, nil
}

func (r *GormRepository) FindActiveByRoom(ctx context.Context, roomID, excludeID uint) ([]models.Reservation, error) {
	query := r.db.WithContext(ctx).
		Where("room_id = ? AND status IN ?", roomID, activeStatuses())
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var out []models.Reservation
	if err := query.Order("check_in").Find(&out).Error; err != nil {
		return nil, mapError("reservation", 0, err)
	}
	return out, nil
}

func (r *GormRepository) CountActiveByClient(ctx context.Context, clientID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("client_id = ? AND status IN ?", clientID, activeStatuses()).
		Count(&n).Error
	return n, mapError("reservation", 0, err)
}

func (r *GormRepository) CountActiveByRoom(ctx context.Context, roomID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Reservation{}).
		Where("room_id = ? AND status IN ?", roomID, activeStatuses()).
		Count(&n).Error
	return n, mapError("reservation", 0, err)
}

func (r *GormRepository) CreateReservation(ctx context.Context, res *models.Reservation) error {
	return mapError("reservation", 0, r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error)
}

func (r *GormRepository) UpdateReservation(ctx context.Context, res *models.Reservation) error {
	return mapError("reservation", res.ID, r.db.WithContext(ctx).Omit(clause.Associations).Save(res).Error)
}

func (r *GormRepository) DeleteReservation(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Reservation{}, id)
	if result.Error != nil {
		return mapError("reservation", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("reservation", id)
	}
	return nil
}

// DeleteClient expects to run inside Atomic so both deletes commit together
func (r *GormRepository) DeleteClient(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("client_id = ?", id).Delete(&models.Reservation{}).Error; err != nil {
		return mapError("reservation", 0, err)
	}
	result := db.Delete(&models.Client{}, id)
	if result.Error != nil {
		return mapError("client", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("client", id)
	}
	return nil
}

func (r *GormRepository) DeleteRoom(ctx context.Context, id uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("room_id = ?", id).Delete(&models.Reservation{}).Error; err != nil {
		return mapError("reservation", 0, err)
	}
	result := db.Delete(&models.Room{}, id)
	if result.Error != nil {
		return mapError("room", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("room", id)
	}
	return nil
}

// Atomic runs fn in a transaction after taking a row lock on every room in roomIDs.
// Rooms are locked in id order so two units of work never wait on each other in a cycle.
func (r *GormRepository) Atomic(ctx context.Context, roomIDs []uint, fn func(repo booking.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if ids := uniqueSorted(roomIDs); len(ids) > 0 {
			var rooms []models.Room
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id IN ?", ids).
				Order("id").
				Find(&rooms).Error
			if err != nil {
				return apperrors.DBError("failed to lock rooms", err)
			}
		}
		return fn(&GormRepository{db: tx})
	})
}

func uniqueSorted(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
