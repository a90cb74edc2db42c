package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"hotel-manager/constants"
	"hotel-manager/dto"
	apperrors "hotel-manager/errors"
	"hotel-manager/models"
	"hotel-manager/services/booking"
	"hotel-manager/services/logger"
	"hotel-manager/services/notification"
	"hotel-manager/validator"
)

// ReservationFacade puts the HTTP-facing reservation workflow in front of the engine:
// request parsing, listing, cache invalidation and websocket events.
type ReservationFacade struct {
	db       *gorm.DB
	rdb      *redis.Client
	engine   *booking.Engine
	notifier notification.Service
	logger   logger.Logger
}

type ReservationFacadeOptions struct {
	DB       *gorm.DB
	Redis    *redis.Client
	Engine   *booking.Engine
	Notifier notification.Service
	Logger   logger.Logger
}

func NewReservationFacade(opts ReservationFacadeOptions) *ReservationFacade {
	if opts.Logger == nil {
		opts.Logger = logger.Nop{}
	}
	return &ReservationFacade{
		db:       opts.DB,
		rdb:      opts.Redis,
		engine:   opts.Engine,
		notifier: opts.Notifier,
		logger:   opts.Logger,
	}
}

// List returns reservations ordered by check-in. From/To select stays overlapping that range.
func (f *ReservationFacade) List(ctx context.Context, filter dto.ReservationFilter) ([]models.Reservation, int, error) {
	query := f.db.WithContext(ctx).Model(&models.Reservation{})

	if filter.Status != "" {
		status, err := models.ParseReservationStatus(filter.Status)
		if err != nil {
			return nil, 0, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, err.Error(), nil)
		}
		query = query.Where("status = ?", status)
	}
	if filter.ClientID != 0 {
		query = query.Where("client_id = ?", filter.ClientID)
	}
	if filter.RoomID != 0 {
		query = query.Where("room_id = ?", filter.RoomID)
	}
	if filter.From != "" {
		from, err := validator.ParseDate("from", filter.From)
		if err != nil {
			return nil, 0, err
		}
		query = query.Where("check_out > ?", from)
	}
	if filter.To != "" {
		to, err := validator.ParseDate("to", filter.To)
		if err != nil {
			return nil, 0, err
		}
		query = query.Where("check_in < ?", to)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.DBError("failed to count reservations", err)
	}

	if filter.Limit > 0 {
		limit := filter.Limit
		if limit > maxPageSize {
			limit = maxPageSize
		}
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	var reservations []models.Reservation
	err := query.Preload("Client").Preload("Room").
		Order("check_in, id").
		Find(&reservations).Error
	if err != nil {
		return nil, 0, apperrors.DBError("failed to list reservations", err)
	}
	return reservations, int(total), nil
}

func (f *ReservationFacade) Get(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	err := f.db.WithContext(ctx).Preload("Client").Preload("Room").First(&res, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NotFound("reservation", id)
	}
	if err != nil {
		return nil, apperrors.DBError("failed to load reservation", err)
	}
	return &res, nil
}

func (f *ReservationFacade) Create(ctx context.Context, req dto.CreateReservationRequest) (*models.Reservation, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	checkIn, err := validator.ParseDate("checkIn", req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := validator.ParseDate("checkOut", req.CheckOut)
	if err != nil {
		return nil, err
	}

	res, err := f.engine.Create(ctx, booking.CreateInput{
		ClientID: req.ClientID,
		RoomID:   req.RoomID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Notes:    req.Notes,
	})
	if err != nil {
		return nil, err
	}
	f.afterWrite(ctx, notification.EventReservationCreated, res)
	return res, nil
}

func (f *ReservationFacade) Update(ctx context.Context, id uint, req dto.UpdateReservationRequest) (*models.Reservation, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}

	in := booking.UpdateInput{
		ClientID: req.ClientID,
		RoomID:   req.RoomID,
		Notes:    req.Notes,
	}
	if req.CheckIn != nil {
		t, err := validator.ParseDate("checkIn", *req.CheckIn)
		if err != nil {
			return nil, err
		}
		in.CheckIn = &t
	}
	if req.CheckOut != nil {
		t, err := validator.ParseDate("checkOut", *req.CheckOut)
		if err != nil {
			return nil, err
		}
		in.CheckOut = &t
	}
	if req.Status != nil {
		status, err := models.ParseReservationStatus(*req.Status)
		if err != nil {
			return nil, apperrors.NewAppError(apperrors.ErrCodeInvalidFormat, err.Error(), nil)
		}
		in.Status = &status
	}

	res, err := f.engine.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	f.afterWrite(ctx, notification.EventReservationUpdated, res)
	return res, nil
}

func (f *ReservationFacade) Confirm(ctx context.Context, id uint) (*models.Reservation, error) {
	return f.transition(ctx, notification.EventReservationConfirmed, func() (*models.Reservation, error) {
		return f.engine.Confirm(ctx, id)
	})
}

func (f *ReservationFacade) Cancel(ctx context.Context, id uint) (*models.Reservation, error) {
	return f.transition(ctx, notification.EventReservationCancelled, func() (*models.Reservation, error) {
		return f.engine.Cancel(ctx, id)
	})
}

func (f *ReservationFacade) CheckIn(ctx context.Context, id uint) (*models.Reservation, error) {
	return f.transition(ctx, notification.EventReservationCheckIn, func() (*models.Reservation, error) {
		return f.engine.CheckIn(ctx, id)
	})
}

func (f *ReservationFacade) CheckOut(ctx context.Context, id uint) (*models.Reservation, error) {
	return f.transition(ctx, notification.EventReservationCheckOut, func() (*models.Reservation, error) {
		return f.engine.CheckOut(ctx, id)
	})
}

func (f *ReservationFacade) transition(ctx context.Context, event string, run func() (*models.Reservation, error)) (*models.Reservation, error) {
	res, err := run()
	if err != nil {
		return nil, err
	}
	f.afterWrite(ctx, event, res)
	return res, nil
}

func (f *ReservationFacade) Delete(ctx context.Context, id uint) error {
	if err := f.engine.DeleteReservation(ctx, id); err != nil {
		return err
	}
	f.afterWrite(ctx, notification.EventReservationDeleted, &models.Reservation{ID: id})
	return nil
}

func (f *ReservationFacade) Quote(ctx context.Context, q dto.QuoteQuery) (*booking.Quote, error) {
	if err := validator.Struct(q); err != nil {
		return nil, err
	}
	checkIn, err := validator.ParseDate("checkIn", q.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := validator.ParseDate("checkOut", q.CheckOut)
	if err != nil {
		return nil, err
	}
	return f.engine.Quote(ctx, q.RoomID, checkIn, checkOut)
}

// afterWrite never fails the request; cache and websocket problems are only logged
func (f *ReservationFacade) afterWrite(ctx context.Context, event string, res *models.Reservation) {
	if err := DeleteFromRedis(ctx, f.rdb, constants.CacheKeyDashboardSummary); err != nil {
		f.logger.Error("cache invalidation failed: %v", err)
	}
	if err := DeleteByPrefix(ctx, f.rdb, constants.CacheKeyAvailablePrefix); err != nil {
		f.logger.Error("cache invalidation failed: %v", err)
	}

	if f.notifier == nil {
		return
	}
	msg := notification.NewMessageBuilder(event).
		Reservation(res.ID, res.RoomID, string(res.Status)).
		Message("%s", describe(event, res)).
		At(time.Now().UTC()).
		Build()
	if err := f.notifier.SendMessage(msg); err != nil {
		f.logger.Error("failed to publish %s for reservation %d: %v", event, res.ID, err)
	}
}

func describe(event string, res *models.Reservation) string {
	switch event {
	case notification.EventReservationCreated:
		return fmt.Sprintf("reservation %d created for room %d (%s to %s)", res.ID, res.RoomID,
			res.CheckIn.Format(constants.DateLayout), res.CheckOut.Format(constants.DateLayout))
	case notification.EventReservationDeleted:
		return fmt.Sprintf("reservation %d deleted", res.ID)
	default:
		return fmt.Sprintf("reservation %d is now %s", res.ID, res.Status)
	}
}
