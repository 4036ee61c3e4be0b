package model

// Address is a shipping address owned by a single user.
type Address struct {
	ID           int64
	UserID       int64
	Title        string
	Street       string
	Number       string
	Complement   *string
	Neighborhood string
	City         string
	State        string
	PostalCode   string
}

// ShippingAddress is the copy of an address stored with an order.
type ShippingAddress struct {
	Street       string
	Number       string
	Complement   *string
	Neighborhood string
	City         string
	State        string
	PostalCode   string
}

// Snapshot copies the delivery fields of the address.
func (a *Address) Snapshot() ShippingAddress {
	return ShippingAddress{
		Street:       a.Street,
		Number:       a.Number,
		Complement:   a.Complement,
		Neighborhood: a.Neighborhood,
		City:         a.City,
		State:        a.State,
		PostalCode:   a.PostalCode,
	}
}
