package entity

type User struct {
	Base
	FullName     string `db:"full_name"`
	Email        string `db:"email"`
	Phone        string `db:"phone"`
	PasswordHash string `db:"password_hash"`
}
