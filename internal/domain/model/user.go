package model

import "time"

// Role is the marketplace profile of a user.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleSeller   Role = "SELLER"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

// CanSell reports whether the role may publish listings.
func (r Role) CanSell() bool {
	return r == RoleSeller || r == RoleAdmin
}

// User represents a registered marketplace account.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Identity is the authenticated caller of an operation.
type Identity struct {
	UserID int64
	Role   Role
}
