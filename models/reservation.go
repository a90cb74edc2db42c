package models

import (
	"fmt"
	"strings"
	"time"
)

// ReservationStatus is the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCheckIn   ReservationStatus = "checkin"
	ReservationStatusCheckOut  ReservationStatus = "checkout"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// ActiveStatuses occupy room capacity
var ActiveStatuses = []ReservationStatus{
	ReservationStatusPending,
	ReservationStatusConfirmed,
	ReservationStatusCheckIn,
}

func (s ReservationStatus) IsValid() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCheckIn,
		ReservationStatusCheckOut, ReservationStatusCancelled:
		return true
	}
	return false
}

func (s ReservationStatus) IsActive() bool {
	switch s {
	case ReservationStatusPending, ReservationStatusConfirmed, ReservationStatusCheckIn:
		return true
	}
	return false
}

func (s ReservationStatus) IsTerminal() bool {
	switch s {
	case ReservationStatusCheckOut, ReservationStatusCancelled:
		return true
	}
	return false
}

func (s ReservationStatus) String() string {
	return string(s)
}

// ParseReservationStatus accepts any letter case, e.g. "CONFIRMED"
func ParseReservationStatus(s string) (ReservationStatus, error) {
	status := ReservationStatus(strings.ToLower(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", fmt.Errorf("invalid reservation status: %q", s)
	}
	return status, nil
}

type Reservation struct {
	ID         uint              `json:"id" gorm:"primaryKey"`
	ClientID   uint              `json:"clientId" gorm:"index;not null"`
	Client     *Client           `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	RoomID     uint              `json:"roomId" gorm:"index;not null"`
	Room       *Room             `json:"room,omitempty" gorm:"foreignKey:RoomID"`
	CheckIn    time.Time         `json:"checkIn" gorm:"index;not null"`
	CheckOut   time.Time         `json:"checkOut" gorm:"index;not null"`
	TotalPrice float64           `json:"totalPrice" gorm:"type:decimal(10,2);not null"`
	Status     ReservationStatus `json:"status" gorm:"type:varchar(20);index;not null;default:pending"`
	Notes      string            `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`
}
