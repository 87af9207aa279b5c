package model

import "time"

// User is a staff account or an ephemeral driver credential. Driver
// credentials carry a driver_id and live only for one trip.
type User struct {
	Id           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         string    `json:"role"`
	DriverId     *string   `json:"driver_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
