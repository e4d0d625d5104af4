package domain

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CanAccessBooking reports whether the user may view or cancel the booking.
func (u *User) CanAccessBooking(b *Booking) bool {
	if u == nil || b == nil {
		return false
	}
	return u.IsAdmin() || b.UserID == u.ID
}
