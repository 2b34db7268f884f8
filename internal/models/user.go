package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"`
	Role         Role      `json:"role"`
	CompanyID    string    `json:"company_id,omitempty"`
	Department   string    `json:"department,omitempty"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the caller context attached to every workflow call.
type Identity struct {
	ID        string
	Role      Role
	CompanyID string
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Role: u.Role, CompanyID: u.CompanyID}
}
