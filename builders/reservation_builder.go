package builders

import (
	"time"

	"hotel-manager/models"
)

// ReservationBuilder assembles a reservation step by step
type ReservationBuilder struct {
	reservation *models.Reservation
}

// NewReservationBuilder starts a pending reservation
func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		reservation: &models.Reservation{Status: models.ReservationStatusPending},
	}
}

func (b *ReservationBuilder) WithClient(clientID uint) *ReservationBuilder {
	b.reservation.ClientID = clientID
	return b
}

func (b *ReservationBuilder) WithRoom(roomID uint) *ReservationBuilder {
	b.reservation.RoomID = roomID
	return b
}

// WithStay sets both dates, truncated to midnight UTC
func (b *ReservationBuilder) WithStay(checkIn, checkOut time.Time) *ReservationBuilder {
	b.reservation.CheckIn = models.DateOnly(checkIn)
	b.reservation.CheckOut = models.DateOnly(checkOut)
	return b
}

func (b *ReservationBuilder) WithStatus(status models.ReservationStatus) *ReservationBuilder {
	b.reservation.Status = status
	return b
}

func (b *ReservationBuilder) WithNotes(notes string) *ReservationBuilder {
	b.reservation.Notes = notes
	return b
}

func (b *ReservationBuilder) WithTotalPrice(totalPrice float64) *ReservationBuilder {
	b.reservation.TotalPrice = totalPrice
	return b
}

func (b *ReservationBuilder) Build() *models.Reservation {
	return b.reservation
}
