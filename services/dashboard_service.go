package services

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"hotel-manager/constants"
	"hotel-manager/dto"
	apperrors "hotel-manager/errors"
	"hotel-manager/models"
	"hotel-manager/services/booking"
	"hotel-manager/services/logger"
)

type DashboardService struct {
	db     *gorm.DB
	rdb    *redis.Client
	clock  booking.Clock
	logger logger.Logger
}

type DashboardServiceOptions struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Clock  booking.Clock
	Logger logger.Logger
}

func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	if opts.Clock == nil {
		opts.Clock = booking.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &DashboardService{db: opts.DB, rdb: opts.Redis, clock: opts.Clock, logger: opts.Logger}
}

// Summary returns the cached summary, computing it on a miss
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	var summary dto.DashboardSummary
	err := GetFromRedis(ctx, s.rdb, constants.CacheKeyDashboardSummary, &summary)
	if err == nil {
		return &summary, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.logger.Error("dashboard cache read failed: %v", err)
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the summary and stores it in the cache
func (s *DashboardService) Refresh(ctx context.Context) (*dto.DashboardSummary, error) {
	summary, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}
	if err := SetToRedis(ctx, s.rdb, constants.CacheKeyDashboardSummary, summary, constants.DashboardSummaryTTL); err != nil {
		s.logger.Error("dashboard cache write failed: %v", err)
	}
	return summary, nil
}

func (s *DashboardService) compute(ctx context.Context) (*dto.DashboardSummary, error) {
	db := s.db.WithContext(ctx)
	now := s.clock.Now()
	today := models.DateOnly(now)
	tomorrow := today.AddDate(0, 0, 1)

	summary := &dto.DashboardSummary{
		ReservationsByStatus: make(map[string]int64),
		GeneratedAt:          now.UTC(),
	}

	if err := db.Model(&models.Client{}).Count(&summary.TotalClients).Error; err != nil {
		return nil, apperrors.DBError("failed to count clients", err)
	}
	if err := db.Model(&models.Room{}).Count(&summary.TotalRooms).Error; err != nil {
		return nil, apperrors.DBError("failed to count rooms", err)
	}
	if err := db.Model(&models.Room{}).Where("active = ?", true).Count(&summary.ActiveRooms).Error; err != nil {
		return nil, apperrors.DBError("failed to count rooms", err)
	}

	var rows []struct {
		Status string
		Total  int64
	}
	err := db.Model(&models.Reservation{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.DBError("failed to count reservations", err)
	}
	for _, st := range []models.ReservationStatus{
		models.ReservationStatusPending,
		models.ReservationStatusConfirmed,
		models.ReservationStatusCheckIn,
		models.ReservationStatusCheckOut,
		models.ReservationStatusCancelled,
	} {
		summary.ReservationsByStatus[string(st)] = 0
	}
	for _, r := range rows {
		summary.ReservationsByStatus[r.Status] = r.Total
	}

	// a room is occupied tonight when an active stay covers [today, tomorrow)
	err = db.Model(&models.Reservation{}).
		Where("status IN ? AND check_in < ? AND check_out > ?", activeStatusNames(), tomorrow, today).
		Distinct("room_id").
		Count(&summary.OccupiedRooms).Error
	if err != nil {
		return nil, apperrors.DBError("failed to count occupied rooms", err)
	}

	err = db.Model(&models.Reservation{}).
		Where("status IN ? AND check_in = ?", []string{
			string(models.ReservationStatusPending),
			string(models.ReservationStatusConfirmed),
		}, today).
		Count(&summary.ArrivalsToday).Error
	if err != nil {
		return nil, apperrors.DBError("failed to count arrivals", err)
	}

	err = db.Model(&models.Reservation{}).
		Where("status = ? AND check_out = ?", models.ReservationStatusCheckIn, today).
		Count(&summary.DeparturesToday).Error
	if err != nil {
		return nil, apperrors.DBError("failed to count departures", err)
	}

	return summary, nil
}
