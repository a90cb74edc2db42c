package models

import "time"

type Client struct {
	ID           uint          `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name" gorm:"not null"`
	Email        string        `json:"email" gorm:"uniqueIndex;not null"`
	Phone        string        `json:"phone" gorm:"not null"`
	Document     string        `json:"document" gorm:"uniqueIndex;not null"`
	Address      string        `json:"address,omitempty"`
	CreatedAt    time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
	Reservations []Reservation `json:"reservations,omitempty" gorm:"foreignKey:ClientID"`
}
