package dto

type CreateReservationRequest struct {
	ClientID uint   `json:"clientId" validate:"required"`
	RoomID   uint   `json:"roomId" validate:"required"`
	CheckIn  string `json:"checkIn" validate:"required"`
	CheckOut string `json:"checkOut" validate:"required"`
	Notes    string `json:"notes" validate:"max=1000"`
}

// UpdateReservationRequest changes only the fields that are present
type UpdateReservationRequest struct {
	ClientID *uint   `json:"clientId"`
	RoomID   *uint   `json:"roomId"`
	CheckIn  *string `json:"checkIn"`
	CheckOut *string `json:"checkOut"`
	Status   *string `json:"status"`
	Notes    *string `json:"notes" validate:"omitempty,max=1000"`
}

// ReservationFilter is the query string of GET /reservations
type ReservationFilter struct {
	Status   string `form:"status"`
	ClientID uint   `form:"clientId"`
	RoomID   uint   `form:"roomId"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}

// QuoteQuery is the query string of GET /reservations/quote
type QuoteQuery struct {
	RoomID   uint   `form:"roomId" validate:"required"`
	CheckIn  string `form:"checkIn" validate:"required"`
	CheckOut string `form:"checkOut" validate:"required"`
}
