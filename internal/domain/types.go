package domain

// ID is used across domain entities.
type ID = int64

// RoleAdmin marks staff accounts; every other role is a regular customer.
const RoleAdmin = "admin"

// Identity carries the authenticated caller, taken from the bearer token.
type Identity struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}

func (i Identity) IsStaff() bool {
	return i.Role == RoleAdmin
}
