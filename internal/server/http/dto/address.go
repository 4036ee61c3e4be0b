package dto

type AddressRequest struct {
	Title        string  `json:"title" binding:"required"`
	Street       string  `json:"street" binding:"required"`
	Number       string  `json:"number" binding:"required"`
	Complement   *string `json:"complement"`
	Neighborhood string  `json:"neighborhood" binding:"required"`
	City         string  `json:"city" binding:"required"`
	State        string  `json:"state" binding:"required"`
	PostalCode   string  `json:"postal_code" binding:"required"`
}

type AddressResponse struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Street       string  `json:"street"`
	Number       string  `json:"number"`
	Complement   *string `json:"complement,omitempty"`
	Neighborhood string  `json:"neighborhood"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	PostalCode   string  `json:"postal_code"`
}
