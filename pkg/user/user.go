package user

type Role string

const (
	RoleClient   Role = "client"
	RoleDesigner Role = "designer"
	RoleVendor   Role = "vendor"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleDesigner, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// User is any marketplace actor: a client looking for design work, a designer,
// a vendor selling products, or an administrator.
type User struct {
	Id          int
	Uid         string
	Role        Role
	DisplayName string
	Email       string
	Phone       string
	PhotoUrl    string
}
