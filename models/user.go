package models

const (
	RoleAdmin    = "ADMIN"
	RoleOperator = "OPERATOR"
)

type User struct {
	ID           int64  `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	Role         string `db:"role"`
	IsActive     int    `db:"is_active"`
}

// Active reports whether the account may log in.
func (u *User) Active() bool {
	return u.IsActive == 1
}
