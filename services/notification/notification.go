package notification

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/olahol/melody"
)

type Service interface {
	SendMessage(message string) error
}

// MelodyService broadcasts to every websocket session connected on /ws
type MelodyService struct {
	m *melody.Melody
}

func NewMelodyService(m *melody.Melody) *MelodyService {
	return &MelodyService{m: m}
}

func (s *MelodyService) SendMessage(message string) error {
	if s.m == nil {
		return fmt.Errorf("melody instance is nil")
	}
	return s.m.Broadcast([]byte(message))
}

// Event names pushed to dashboard clients
const (
	EventReservationCreated   = "reservation.created"
	EventReservationUpdated   = "reservation.updated"
	EventReservationConfirmed = "reservation.confirmed"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationCheckIn   = "reservation.checkin"
	EventReservationCheckOut  = "reservation.checkout"
	EventReservationDeleted   = "reservation.deleted"
	EventDashboardRefreshed   = "dashboard.refreshed"
)

type ReservationEvent struct {
	Event         string    `json:"event"`
	ReservationID uint      `json:"reservationId,omitempty"`
	RoomID        uint      `json:"roomId,omitempty"`
	Status        string    `json:"status,omitempty"`
	Message       string    `json:"message"`
	At            time.Time `json:"at"`
}

type MessageBuilder struct {
	event ReservationEvent
}

func NewMessageBuilder(event string) *MessageBuilder {
	return &MessageBuilder{event: ReservationEvent{Event: event}}
}

func (b *MessageBuilder) Reservation(id, roomID uint, status string) *MessageBuilder {
	b.event.ReservationID = id
	b.event.RoomID = roomID
	b.event.Status = status
	return b
}

func (b *MessageBuilder) Message(format string, args ...interface{}) *MessageBuilder {
	b.event.Message = fmt.Sprintf(format, args...)
	return b
}

func (b *MessageBuilder) At(t time.Time) *MessageBuilder {
	b.event.At = t
	return b
}

// Build returns the event encoded as JSON
func (b *MessageBuilder) Build() string {
	if b.event.At.IsZero() {
		b.event.At = time.Now().UTC()
	}
	data, err := json.Marshal(b.event)
	if err != nil {
		return b.event.Message
	}
	return string(data)
}
