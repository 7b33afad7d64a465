package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	BaseSimple
	Name         string   `db:"name"`
	Email        string   `db:"email"`
	PasswordHash string   `db:"password_hash"`
	Phone        string   `db:"phone"`
	Role         UserRole `db:"role"`
}
