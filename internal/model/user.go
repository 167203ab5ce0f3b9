package model

import "time"

// User is an authenticated operator who owns customer records.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Name          *string   `json:"name"`
	CustomerLimit int       `json:"customer_limit"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
