package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User models a storefront account.
//
// Password holds whatever the configured credentials scheme stored: the plain
// value by default, a bcrypt hash when hashing is enabled.
type User struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password,omitempty"`
	Mobile   string `json:"mobile"`
	Role     string `json:"role" validate:"required,oneof=user admin"`
}

// IsAdmin reports whether the user holds the administrator role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Public returns a copy of the user with the credential removed.
func (u User) Public() User {
	u.Password = ""
	return u
}
