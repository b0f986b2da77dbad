package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64     `db:"id" json:"id"`
	OpenID       string    `db:"open_id" json:"open_id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	LoginMethod  string    `db:"login_method" json:"login_method"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
	LastSignedIn time.Time `db:"last_signed_in" json:"last_signed_in"`
}
