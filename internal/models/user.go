package models

import (
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CompanyName  string    `json:"company_name,omitempty"`
	Address      string    `json:"address,omitempty"`
	GSTNumber    string    `json:"gst_number,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        Role   `json:"role"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	GSTNumber   string `json:"gst_number"`
}

func (r *CreateUserRequest) Validate() error {
	var v ValidationError
	if strings.TrimSpace(r.Name) == "" {
		v.Add("name", "required")
	}
	if !validPhone(r.Phone) {
		v.Add("phone", "must be 10 to 15 digits")
	}
	if len(r.Password) < 6 || len(r.Password) > 72 {
		v.Add("password", "must be 6 to 72 characters")
	}
	if !r.Role.Valid() {
		v.Add("role", "unknown role")
	}
	return v.Err()
}

// UpdateUserRequest represents the request body for updating a user profile
type UpdateUserRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	GSTNumber   string `json:"gst_number"`
}

func (r *UpdateUserRequest) Validate() error {
	var v ValidationError
	if strings.TrimSpace(r.Name) == "" {
		v.Add("name", "required")
	}
	if !validPhone(r.Phone) {
		v.Add("phone", "must be 10 to 15 digits")
	}
	if r.Password != "" && (len(r.Password) < 6 || len(r.Password) > 72) {
		v.Add("password", "must be 6 to 72 characters")
	}
	return v.Err()
}

type UpdateRoleRequest struct {
	Role Role `json:"role"`
}

type SetActiveRequest struct {
	IsActive bool `json:"is_active"`
}

func validPhone(phone string) bool {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	if len(phone) < 10 || len(phone) > 15 {
		return false
	}
	for _, c := range phone {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
