package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel-manager/dto"
	apperrors "hotel-manager/errors"
	"hotel-manager/models"
	"hotel-manager/services/notification"
)

func newFacade(t *testing.T, today string) (*ReservationFacade, *fakeNotifier, *gorm.DB, fixtures) {
	db := newTestDB(t)
	f := seedHotel(t, db)
	notifier := &fakeNotifier{}
	facade := NewReservationFacade(ReservationFacadeOptions{
		DB:       db,
		Engine:   newTestEngine(db, today),
		Notifier: notifier,
	})
	return facade, notifier, db, f
}

func lastEvent(t *testing.T, n *fakeNotifier) notification.ReservationEvent {
	t.Helper()
	sent := n.sent()
	require.NotEmpty(t, sent)
	var event notification.ReservationEvent
	require.NoError(t, json.Unmarshal([]byte(sent[len(sent)-1]), &event))
	return event
}

func TestFacadeCreate(t *testing.T) {
	facade, notifier, _, f := newFacade(t, "2025-07-20")
	ctx := context.Background()

	res, err := facade.Create(ctx, dto.CreateReservationRequest{
		ClientID: f.client.ID,
		RoomID:   f.suite.ID,
		CheckIn:  "2025-07-25",
		CheckOut: "2025-07-28",
		Notes:    "late arrival",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusPending, res.Status)
	assert.Equal(t, 1200.0, res.TotalPrice)
	assert.Equal(t, "late arrival", res.Notes)

	event := lastEvent(t, notifier)
	assert.Equal(t, notification.EventReservationCreated, event.Event)
	assert.Equal(t, res.ID, event.ReservationID)
	assert.Equal(t, f.suite.ID, event.RoomID)
	assert.Equal(t, "pending", event.Status)
	assert.Contains(t, event.Message, "2025-07-25 to 2025-07-28")
}

func TestFacadeCreateRejectsBadInput(t *testing.T) {
	facade, notifier, _, f := newFacade(t, "2025-07-20")
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.CreateReservationRequest
		kind apperrors.ErrorCode
	}{
		{"missing client", dto.CreateReservationRequest{RoomID: f.suite.ID, CheckIn: "2025-07-25", CheckOut: "2025-07-26"}, apperrors.ErrCodeValidation},
		{"bad date", dto.CreateReservationRequest{ClientID: f.client.ID, RoomID: f.suite.ID, CheckIn: "25/07/2025", CheckOut: "2025-07-26"}, apperrors.ErrCodeValidation},
		{"inverted range", dto.CreateReservationRequest{ClientID: f.client.ID, RoomID: f.suite.ID, CheckIn: "2025-07-26", CheckOut: "2025-07-25"}, apperrors.ErrCodeValidation},
		{"unknown room", dto.CreateReservationRequest{ClientID: f.client.ID, RoomID: 999, CheckIn: "2025-07-25", CheckOut: "2025-07-26"}, apperrors.ErrCodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := facade.Create(ctx, tt.req)
			assert.Equal(t, tt.kind, apperrors.Kind(err))
		})
	}
	assert.Empty(t, notifier.sent())
}

func TestFacadeCreateConflict(t *testing.T) {
	facade, _, _, f := newFacade(t, "2025-07-20")
	ctx := context.Background()

	_, err := facade.Create(ctx, dto.CreateReservationRequest{ClientID: f.client.ID, RoomID: f.single.ID, CheckIn: "2025-07-25", CheckOut: "2025-07-28"})
	require.NoError(t, err)

	_, err = facade.Create(ctx, dto.CreateReservationRequest{ClientID: f.client.ID, RoomID: f.single.ID, CheckIn: "2025-07-27", CheckOut: "2025-07-29"})
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.Kind(err))
	assert.ErrorIs(t, err, apperrors.ErrRoomUnavailable)

	_, err = facade.Create(ctx, dto.CreateReservationRequest{ClientID: f.client.ID, RoomID: f.single.ID, CheckIn: "2025-07-28", CheckOut: "2025-07-29"})
	assert.NoError(t, err)
}

func TestFacadeUpdate(t *testing.T) {
	facade, notifier, _, f := newFacade(t, "2025-07-20")
	ctx := context.Background()

	res, err := facade.Create(ctx, dto.CreateReservationRequest{ClientID: f.client.ID, RoomID: f.single.ID, CheckIn: "2025-07-25", CheckOut: "2025-07-26"})
	require.NoError(t, err)

	checkOut := "2025-07-27"
	status := "CONFIRMED"
	updated, err := facade.Update(ctx, res.ID, dto.UpdateReservationRequest{CheckOut: &checkOut, Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.ReservationStatusConfirmed, updated.Status)
	assert.Equal(t, 300.0, updated.TotalPrice)
	assert.Equal(t, notification.EventReservationUpdated, lastEvent(t, notifier).Event)

	bad := "someday"
	_, err = facade.Update(ctx, res.ID, dto.UpdateReservationRequest{CheckIn: &bad})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.Kind(err))

	unknown := "archived"
	_, err = facade.Update(ctx, res.ID, dto.UpdateReservationRequest{Status: &unknown})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.Kind(err))

	checkin := "checkin"
	_, err = facade.Update(ctx, res.ID, dto.UpdateReservationRequest{Status: &checkin})
	assert.Equal(t, apperrors.ErrCodeInvalidTransition, apperrors.Kind(err))
}

func TestFacadeLifecycle(t *testing.T) {
	facade, notifier, _, f := newFacade(t, "2025-07-25")
	ctx := context.Background()

	res, err := facade.Create(ctx, dto.CreateReservationRequest{ClientID: f.client.ID, RoomID: f.suite.ID, CheckIn: "2025-07-25", CheckOut: "2025-07-27"})
	require.NoError(t, err)

	_, err = facade.CheckIn(ctx, res.ID)
	assert.Equal(t, apperrors.ErrCodeInvalidTransition, apperrors.Kind(err))

	steps := []struct {
		run    func(context.Context, uint) (*models.Reservation, error)
		event  string
		status models.ReservationStatus
	}{
		{facade.Confirm, notification.EventReservationConfirmed, models.ReservationStatusConfirmed},
		{facade.CheckIn, notification.EventReservationCheckIn, models.ReservationStatusCheckIn},
		{facade.CheckOut, notification.EventReservationCheckOut, models.ReservationStatusCheckOut},
	}
	for _, step := range steps {
		got, err := step.run(ctx, res.ID)
		require.NoError(t, err)
		assert.Equal(t, step.status, got.Status)
		assert.Equal(t, step.event, lastEvent(t, notifier).Event)
	}

	_, err = facade.Cancel(ctx, res.ID)
	assert.Equal(t, apperrors.ErrCodeInvalidTransition, apperrors.Kind(err))
	assert.Len(t, notifier.sent(), 4)
}

func TestFacadeDelete(t *testing.T) {
	facade, notifier, _, f := newFacade(t, "2025-07-25")
	ctx := context.Background()

	res, err := facade.Create(ctx, dto.CreateReservationRequest{ClientID: f.client.ID, RoomID: f.suite.ID, CheckIn: "2025-07-25", CheckOut: "2025-07-27"})
	require.NoError(t, err)
	_, err = facade.Confirm(ctx, res.ID)
	require.NoError(t, err)
	_, err = facade.CheckIn(ctx, res.ID)
	require.NoError(t, err)

	err = facade.Delete(ctx, res.ID)
	assert.Equal(t, apperrors.ErrCodeGuardedDeletion, apperrors.Kind(err))
	assert.ErrorIs(t, err, apperrors.ErrGuestInHouse)

	_, err = facade.CheckOut(ctx, res.ID)
	require.NoError(t, err)
	require.NoError(t, facade.Delete(ctx, res.ID))
	assert.Equal(t, notification.EventReservationDeleted, lastEvent(t, notifier).Event)

	_, err = facade.Get(ctx, res.ID)
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.Kind(err))
}

func TestFacadeNotifierFailureDoesNotFailWrite(t *testing.T) {
	facade, notifier, _, f := newFacade(t, "2025-07-20")
	notifier.err = fmt.Errorf("no websocket hub")

	res, err := facade.Create(context.Background(), dto.CreateReservationRequest{ClientID: f.client.ID, RoomID: f.suite.ID, CheckIn: "2025-07-25", CheckOut: "2025-07-26"})
	require.NoError(t, err)
	assert.NotZero(t, res.ID)
}

func TestFacadeList(t *testing.T) {
	facade, _, db, f := newFacade(t, "2025-07-20")
	ctx := context.Background()

	reserve(t, db, f.client.ID, f.single.ID, "2025-07-01", "2025-07-03", models.ReservationStatusCheckOut)
	reserve(t, db, f.client.ID, f.single.ID, "2025-07-10", "2025-07-12", models.ReservationStatusCancelled)
	reserve(t, db, f.client.ID, f.suite.ID, "2025-07-11", "2025-07-15", models.ReservationStatusConfirmed)
	reserve(t, db, f.client.ID, f.suite.ID, "2025-08-01", "2025-08-02", models.ReservationStatusPending)

	all, total, err := facade.List(ctx, dto.ReservationFilter{})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, all, 4)
	assert.True(t, date("2025-07-01").Equal(all[0].CheckIn))
	require.NotNil(t, all[0].Client)
	require.NotNil(t, all[0].Room)

	confirmed, total, err := facade.List(ctx, dto.ReservationFilter{Status: "Confirmed"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, f.suite.ID, confirmed[0].RoomID)

	_, total, err = facade.List(ctx, dto.ReservationFilter{RoomID: f.single.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	// stays overlapping [07-11, 07-12)
	inRange, total, err := facade.List(ctx, dto.ReservationFilter{From: "2025-07-11", To: "2025-07-12"})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, inRange, 2)

	page, total, err := facade.List(ctx, dto.ReservationFilter{Page: 2, Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, page, 1)
	assert.True(t, date("2025-08-01").Equal(page[0].CheckIn))

	_, _, err = facade.List(ctx, dto.ReservationFilter{Status: "lost"})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.Kind(err))
}

func TestFacadeQuote(t *testing.T) {
	facade, _, db, f := newFacade(t, "2025-07-20")
	ctx := context.Background()
	reserve(t, db, f.client.ID, f.suite.ID, "2025-08-01", "2025-08-03", models.ReservationStatusConfirmed)

	q, err := facade.Quote(ctx, dto.QuoteQuery{RoomID: f.suite.ID, CheckIn: "2025-08-03", CheckOut: "2025-08-06"})
	require.NoError(t, err)
	assert.Equal(t, 3, q.Nights)
	assert.Equal(t, 1200.0, q.TotalPrice)
	assert.True(t, q.Available)

	q, err = facade.Quote(ctx, dto.QuoteQuery{RoomID: f.suite.ID, CheckIn: "2025-08-02", CheckOut: "2025-08-04"})
	require.NoError(t, err)
	assert.False(t, q.Available)

	_, err = facade.Quote(ctx, dto.QuoteQuery{RoomID: f.suite.ID, CheckIn: "2025-08-02"})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.Kind(err))
}
