package models

import (
	"fmt"
	"strings"
	"time"
)

// RoomCategory is the fixed set of room types the hotel sells
type RoomCategory string

const (
	RoomCategorySingle RoomCategory = "single"
	RoomCategoryDouble RoomCategory = "double"
	RoomCategorySuite  RoomCategory = "suite"
	RoomCategoryFamily RoomCategory = "family"
)

var RoomCategories = []RoomCategory{
	RoomCategorySingle,
	RoomCategoryDouble,
	RoomCategorySuite,
	RoomCategoryFamily,
}

func (c RoomCategory) IsValid() bool {
	switch c {
	case RoomCategorySingle, RoomCategoryDouble, RoomCategorySuite, RoomCategoryFamily:
		return true
	}
	return false
}

// ParseRoomCategory accepts any letter case
func ParseRoomCategory(s string) (RoomCategory, error) {
	c := RoomCategory(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid room category: %q", s)
	}
	return c, nil
}

type Room struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Number       string        `json:"number" gorm:"uniqueIndex;type:varchar(20);not null"`
	Category     RoomCategory  `json:"category" gorm:"type:varchar(20);not null"`
	NightlyRate  float64       `json:"nightlyRate" gorm:"type:decimal(10,2);not null"`
	Description  string        `json:"description,omitempty" gorm:"type:text"`
	Active       bool          `json:"active" gorm:"not null"`
	PhotoURL     string        `json:"photoUrl,omitempty"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
	Reservations []Reservation `json:"reservations,omitempty" gorm:"foreignKey:RoomID"`
}
