package model

type Role string

const (
	RoleCustomer Role = "customer"
	RoleSeller   Role = "seller"
	RoleGuest    Role = "guest"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleCustomer, RoleSeller:
		return Role(s), true
	default:
		return "", false
	}
}
