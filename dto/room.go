package dto

type RoomRequest struct {
	Number      string  `json:"number" validate:"required,max=20"`
	Category    string  `json:"category" validate:"required"`
	NightlyRate float64 `json:"nightlyRate" validate:"required,gt=0"`
	Description string  `json:"description" validate:"max=1000"`
	// Active defaults to true when omitted
	Active *bool `json:"active"`
}

// RoomFilter is the query string of GET /rooms
type RoomFilter struct {
	Active   *bool  `form:"active"`
	Category string `form:"category"`
}

// DateRangeQuery is the query string of the availability endpoints
type DateRangeQuery struct {
	CheckIn  string `form:"checkIn" validate:"required"`
	CheckOut string `form:"checkOut" validate:"required"`
}

type RoomAvailabilityResponse struct {
	RoomID    uint   `json:"roomId"`
	CheckIn   string `json:"checkIn"`
	CheckOut  string `json:"checkOut"`
	Available bool   `json:"available"`
}

type RoomPhotoResponse struct {
	RoomID   uint   `json:"roomId"`
	PhotoURL string `json:"photoUrl"`
}
