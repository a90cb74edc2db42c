package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel-manager/dto"
	apperrors "hotel-manager/errors"
	"hotel-manager/models"
)

func newRoomService(t *testing.T, uploader PhotoUploader) (*RoomService, *gorm.DB, fixtures) {
	db := newTestDB(t)
	f := seedHotel(t, db)
	svc := NewRoomService(RoomServiceOptions{
		DB:       db,
		Engine:   newTestEngine(db, "2025-07-20"),
		Uploader: uploader,
	})
	return svc, db, f
}

func boolPtr(b bool) *bool { return &b }

func TestRoomCreate(t *testing.T) {
	svc, _, _ := newRoomService(t, nil)
	ctx := context.Background()

	room, err := svc.Create(ctx, dto.RoomRequest{Number: "202", Category: "Double", NightlyRate: 250})
	require.NoError(t, err)
	assert.Equal(t, models.RoomCategoryDouble, room.Category)
	assert.True(t, room.Active)

	inactive, err := svc.Create(ctx, dto.RoomRequest{Number: "203", Category: "family", NightlyRate: 300, Active: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, inactive.Active)

	_, err = svc.Create(ctx, dto.RoomRequest{Number: "202", Category: "single", NightlyRate: 100})
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.Kind(err))

	_, err = svc.Create(ctx, dto.RoomRequest{Number: "204", Category: "penthouse", NightlyRate: 100})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.Kind(err))

	_, err = svc.Create(ctx, dto.RoomRequest{Number: "205", Category: "single"})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.Kind(err))

	_, err = svc.Create(ctx, dto.RoomRequest{Number: "206", Category: "single", NightlyRate: -10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nightlyRate must be greater than 0")
}

func TestRoomUpdate(t *testing.T) {
	svc, _, f := newRoomService(t, nil)
	ctx := context.Background()

	room, err := svc.Update(ctx, f.single.ID, dto.RoomRequest{Number: "101", Category: "single", NightlyRate: 180, Active: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, 180.0, room.NightlyRate)
	assert.False(t, room.Active)

	_, err = svc.Update(ctx, f.single.ID, dto.RoomRequest{Number: f.suite.Number, Category: "single", NightlyRate: 180})
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.Kind(err))

	_, err = svc.Update(ctx, 999, dto.RoomRequest{Number: "999", Category: "single", NightlyRate: 180})
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.Kind(err))
}

func TestRoomList(t *testing.T) {
	svc, db, f := newRoomService(t, nil)
	ctx := context.Background()
	require.NoError(t, db.Model(&f.suite).Update("active", false).Error)

	all, err := svc.List(ctx, dto.RoomFilter{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "101", all[0].Number)

	active, err := svc.List(ctx, dto.RoomFilter{Active: boolPtr(true)})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "101", active[0].Number)

	suites, err := svc.List(ctx, dto.RoomFilter{Category: "SUITE"})
	require.NoError(t, err)
	require.Len(t, suites, 1)
	assert.Equal(t, "301", suites[0].Number)

	_, err = svc.List(ctx, dto.RoomFilter{Category: "castle"})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.Kind(err))
}

func TestRoomGetByNumber(t *testing.T) {
	svc, _, f := newRoomService(t, nil)
	ctx := context.Background()

	room, err := svc.GetByNumber(ctx, " 301 ")
	require.NoError(t, err)
	assert.Equal(t, f.suite.ID, room.ID)

	_, err = svc.GetByNumber(ctx, "30")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.Kind(err))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, apperrors.GetAppError(err).Message, "room 30 not found")
	assert.Contains(t, apperrors.GetAppError(err).Message, "did you mean 301?")
}

func TestRoomAvailable(t *testing.T) {
	svc, db, f := newRoomService(t, nil)
	ctx := context.Background()
	extra := models.Room{Number: "102", Category: models.RoomCategorySingle, NightlyRate: 150, Active: false}
	require.NoError(t, db.Create(&extra).Error)

	reserve(t, db, f.client.ID, f.single.ID, "2025-08-01", "2025-08-05", models.ReservationStatusConfirmed)
	reserve(t, db, f.client.ID, f.suite.ID, "2025-08-01", "2025-08-05", models.ReservationStatusCancelled)

	rooms, err := svc.Available(ctx, date("2025-08-03"), date("2025-08-04"))
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "301", rooms[0].Number)

	// checking in on the day the other guest leaves is fine
	rooms, err = svc.Available(ctx, date("2025-08-05"), date("2025-08-06"))
	require.NoError(t, err)
	assert.Len(t, rooms, 2)

	_, err = svc.Available(ctx, date("2025-08-05"), date("2025-08-05"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidDateRange)

	ok, err := svc.Availability(ctx, f.single.ID, date("2025-08-04"), date("2025-08-06"))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Availability(ctx, f.single.ID, date("2025-08-05"), date("2025-08-06"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Availability(ctx, extra.ID, date("2025-08-05"), date("2025-08-06"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Availability(ctx, 999, date("2025-08-05"), date("2025-08-06"))
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.Kind(err))
}

func TestRoomDeleteGuard(t *testing.T) {
	svc, db, f := newRoomService(t, nil)
	ctx := context.Background()
	reserve(t, db, f.client.ID, f.single.ID, "2025-08-01", "2025-08-05", models.ReservationStatusPending)

	err := svc.Delete(ctx, f.single.ID)
	assert.Equal(t, apperrors.ErrCodeGuardedDeletion, apperrors.Kind(err))

	require.NoError(t, svc.Delete(ctx, f.suite.ID))
	_, err = svc.Get(ctx, f.suite.ID)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.Kind(err))
}

func TestRoomAttachPhoto(t *testing.T) {
	uploader := &fakeUploader{}
	svc, db, f := newRoomService(t, uploader)
	ctx := context.Background()

	room, err := svc.AttachPhoto(ctx, f.suite.ID, strings.NewReader("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/room-301.jpg", room.PhotoURL)
	assert.Equal(t, "room-301", uploader.publicID)
	assert.Equal(t, "jpeg bytes", uploader.body)

	var stored models.Room
	require.NoError(t, db.First(&stored, f.suite.ID).Error)
	assert.Equal(t, room.PhotoURL, stored.PhotoURL)

	uploader.err = fmt.Errorf("quota exceeded")
	_, err = svc.AttachPhoto(ctx, f.suite.ID, strings.NewReader("x"))
	assert.Equal(t, apperrors.ErrCodeDBError, apperrors.Kind(err))

	_, err = svc.AttachPhoto(ctx, 999, strings.NewReader("x"))
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.Kind(err))
}

func TestRoomAttachPhotoWithoutStorage(t *testing.T) {
	svc, _, f := newRoomService(t, nil)
	_, err := svc.AttachPhoto(context.Background(), f.suite.ID, strings.NewReader("x"))
	assert.Error(t, err)
}
