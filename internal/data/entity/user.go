package entity

// User is the lookup view of an account: identity plus the admin
// capability used by booking authorization. Registration and login are
// handled elsewhere.
type User struct {
	Base
	Email     string `db:"email"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	IsAdmin   bool   `db:"is_admin"`
}
