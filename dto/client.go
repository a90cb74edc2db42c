package dto

type ClientRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Phone    string `json:"phone" validate:"required,min=8,max=20"`
	Document string `json:"document" validate:"required,max=40"`
	Address  string `json:"address" validate:"max=255"`
}

// ClientFilter is the query string of GET /clients
type ClientFilter struct {
	Query string `form:"q"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}
