package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/schollz/closestmatch"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel-manager/constants"
	"hotel-manager/dto"
	apperrors "hotel-manager/errors"
	"hotel-manager/models"
	"hotel-manager/services/booking"
	"hotel-manager/services/logger"
	"hotel-manager/validator"
)

type RoomService struct {
	db       *gorm.DB
	rdb      *redis.Client
	engine   *booking.Engine
	uploader PhotoUploader
	logger   logger.Logger
}

type RoomServiceOptions struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Engine   *booking.Engine
	Uploader PhotoUploader
	Logger   logger.Logger
}

func NewRoomService(opts RoomServiceOptions) *RoomService {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &RoomService{
		db:       opts.DB,
		rdb:      opts.Redis,
		engine:   opts.Engine,
		uploader: opts.Uploader,
		logger:   opts.Logger,
	}
}

// List returns rooms ordered by number. The unfiltered list is cached in Redis.
func (s *RoomService) List(ctx context.Context, filter dto.RoomFilter) ([]models.Room, error) {
	rooms, err := s.allRooms(ctx)
	if err != nil {
		return nil, err
	}

	var category models.RoomCategory
	if filter.Category != "" {
		category, err = models.ParseRoomCategory(filter.Category)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, err.Error(), nil)
		}
	}

	out := make([]models.Room, 0, len(rooms))
	for _, r := range rooms {
		if filter.Active != nil && r.Active != *filter.Active {
			continue
		}
		if category != "" && r.Category != category {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *RoomService) allRooms(ctx context.Context) ([]models.Room, error) {
	var rooms []models.Room
	if err := GetFromRedis(ctx, s.rdb, constants.CacheKeyRoomList, &rooms); err == nil {
		return rooms, nil
	} else if !errors.Is(err, ErrCacheMiss) {
		s.logger.Error("room list cache read failed: %v", err)
	}

	if err := s.db.WithContext(ctx).Order("number").Find(&rooms).Error; err != nil {
		return nil, apperrors.DBError("failed to list rooms", err)
	}

	if err := SetToRedis(ctx, s.rdb, constants.CacheKeyRoomList, rooms, constants.RoomListTTL); err != nil {
		s.logger.Error("room list cache write failed: %v", err)
	}
	return rooms, nil
}

// Get loads a room with its reservations, newest stay first
func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	var room models.Room
	err := s.db.WithContext(ctx).
		Preload("Reservations", func(db *gorm.DB) *gorm.DB {
			return db.Order("check_in DESC")
		}).
		Preload("Reservations.Client").
		First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("room", id)
	}
	if err != nil {
		return nil, apperrors.DBError("failed to load room", err)
	}
	return &room, nil
}

// GetByNumber looks a room up by its number and suggests the closest existing number on a miss
func (s *RoomService) GetByNumber(ctx context.Context, number string) (*models.Room, error) {
	number = strings.TrimSpace(number)
	var room models.Room
	err := s.db.WithContext(ctx).Where("number = ?", number).First(&room).Error
	if err == nil {
		return &room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.DBError("failed to load room", err)
	}

	message := fmt.Sprintf("room %s not found", number)
	if suggestion := s.suggestNumber(ctx, number); suggestion != "" {
		message = fmt.Sprintf("%s, did you mean %s?", message, suggestion)
	}
	return nil, apperrors.NewAppError(apperrors.ErrCodeNotFound, message, apperrors.ErrNotFound)
}

func (s *RoomService) suggestNumber(ctx context.Context, number string) string {
	var numbers []string
	if err := s.db.WithContext(ctx).Model(&models.Room{}).Pluck("number", &numbers).Error; err != nil || len(numbers) == 0 {
		return ""
	}
	return closestmatch.New(numbers, []int{1, 2}).Closest(number)
}

func (s *RoomService) Create(ctx context.Context, req dto.RoomRequest) (*models.Room, error) {
	room, err := roomFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueNumber(ctx, room.Number, 0); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(room).Error; err != nil {
		return nil, mapWriteError("room", err)
	}
	s.invalidate(ctx)
	s.logger.Info("room %d (%s) created", room.ID, room.Number)
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, id uint, req dto.RoomRequest) (*models.Room, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("room", id)
		}
		return nil, apperrors.DBError("failed to load room", err)
	}

	next, err := roomFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueNumber(ctx, next.Number, id); err != nil {
		return nil, err
	}

	// rate changes apply to new bookings and edits only; stored totals are left as booked
	room.Number = next.Number
	room.Category = next.Category
	room.NightlyRate = next.NightlyRate
	room.Description = next.Description
	if req.Active != nil {
		room.Active = *req.Active
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&room).Error; err != nil {
		return nil, mapWriteError("room", err)
	}
	s.invalidate(ctx)
	s.logger.Info("room %d (%s) updated", room.ID, room.Number)
	return &room, nil
}

// Delete is refused while the room holds an active reservation
func (s *RoomService) Delete(ctx context.Context, id uint) error {
	if err := s.engine.DeleteRoom(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// Available lists active rooms with no active reservation overlapping [checkIn, checkOut)
func (s *RoomService) Available(ctx context.Context, checkIn, checkOut time.Time) ([]models.Room, error) {
	if !checkOut.After(checkIn) {
		return nil, apperrors.Validation("check-out must be after check-in", apperrors.ErrInvalidDateRange)
	}

	cacheKey := fmt.Sprintf("%s%s:%s", constants.CacheKeyAvailablePrefix,
		checkIn.Format(constants.DateLayout), checkOut.Format(constants.DateLayout))
	var rooms []models.Room
	if err := GetFromRedis(ctx, s.rdb, cacheKey, &rooms); err == nil {
		return rooms, nil
	}

	busy := s.db.Model(&models.Reservation{}).
		Select("room_id").
		Where("status IN ? AND check_in < ? AND check_out > ?", activeStatusNames(), checkOut, checkIn)

	err := s.db.WithContext(ctx).
		Where("active = ?", true).
		Where("id NOT IN (?)", busy).
		Order("number").
		Find(&rooms).Error
	if err != nil {
		return nil, apperrors.DBError("failed to list available rooms", err)
	}

	if err := SetToRedis(ctx, s.rdb, cacheKey, rooms, constants.AvailableRoomsTTL); err != nil {
		s.logger.Error("available rooms cache write failed: %v", err)
	}
	return rooms, nil
}

// Availability reports whether one room can be booked for the range. Inactive rooms never are.
func (s *RoomService) Availability(ctx context.Context, id uint, checkIn, checkOut time.Time) (bool, error) {
	var room models.Room
	if err := s.db.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, apperrors.NotFound("room", id)
		}
		return false, apperrors.DBError("failed to load room", err)
	}
	ok, err := s.engine.IsAvailable(ctx, id, checkIn, checkOut, 0)
	if err != nil {
		return false, err
	}
	return ok && room.Active, nil
}

// AttachPhoto uploads an image for the room and stores its URL
func (s *RoomService) AttachPhoto(ctx context.Context, id uint, file io.Reader) (*models.Room, error) {
	if s.uploader == nil {
		return nil, apperrors.DBError("photo storage is not configured", nil)
	}

	var room models.Room
	if err := s.db.WithContext(ctx).First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("room", id)
		}
		return nil, apperrors.DBError("failed to load room", err)
	}

	url, err := s.uploader.Upload(ctx, file, fmt.Sprintf("room-%s", room.Number))
	if err != nil {
		return nil, apperrors.DBError("photo upload failed", err)
	}

	if err := s.db.WithContext(ctx).Model(&room).Update("photo_url", url).Error; err != nil {
		return nil, apperrors.DBError("failed to save photo url", err)
	}
	room.PhotoURL = url
	s.invalidate(ctx)
	s.logger.Info("room %d photo updated", room.ID)
	return &room, nil
}

func (s *RoomService) ensureUniqueNumber(ctx context.Context, number string, excludeID uint) error {
	query := s.db.WithContext(ctx).Model(&models.Room{}).Where("number = ?", number)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var n int64
	if err := query.Count(&n).Error; err != nil {
		return apperrors.DBError("failed to check room number", err)
	}
	if n > 0 {
		return apperrors.Conflict(fmt.Sprintf("a room with number %s already exists", number), apperrors.ErrDuplicate)
	}
	return nil
}

func (s *RoomService) invalidate(ctx context.Context) {
	if err := DeleteFromRedis(ctx, s.rdb, constants.CacheKeyRoomList, constants.CacheKeyDashboardSummary); err != nil {
		s.logger.Error("cache invalidation failed: %v", err)
	}
	if err := DeleteByPrefix(ctx, s.rdb, constants.CacheKeyAvailablePrefix); err != nil {
		s.logger.Error("cache invalidation failed: %v", err)
	}
}

func roomFromRequest(req dto.RoomRequest) (*models.Room, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	category, err := models.ParseRoomCategory(req.Category)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, err.Error(), nil)
	}
	room := &models.Room{
		Number:      strings.TrimSpace(req.Number),
		Category:    category,
		NightlyRate: req.NightlyRate,
		Description: strings.TrimSpace(req.Description),
		Active:      true,
	}
	if req.Active != nil {
		room.Active = *req.Active
	}
	if err := validator.ValidateRoom(room); err != nil {
		return nil, err
	}
	return room, nil
}

func activeStatusNames() []string {
	out := make([]string, 0, len(models.ActiveStatuses))
	for _, st := range models.ActiveStatuses {
		out = append(out, string(st))
	}
	return out
}
