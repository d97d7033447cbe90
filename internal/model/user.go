package model

import "time"

// Role distinguishes entries in the users collection.
// Administrators authenticate through the identity provider; the local row
// only mirrors their directory entry.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User represents an account in the users collection.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// StudentLoginRequest is the payload for student authentication.
type StudentLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=4,max=128"`
}

// StudentLoginResponse is returned after successful student login.
type StudentLoginResponse struct {
	Token   string `json:"token"`
	Student User   `json:"student"`
}

// AdminLoginRequest carries the OAuth authorization code from the identity
// provider's redirect.
type AdminLoginRequest struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state" binding:"omitempty,max=255"`
}

// AdminSignupRequest is the payload for provisioning a new admin account in
// the identity provider.
type AdminSignupRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// CreateStudentRequest is the payload for creating a new student account.
type CreateStudentRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=6,max=128"`
}

// UpdateStudentRequest is the payload for updating an existing student.
type UpdateStudentRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"omitempty,min=6,max=128"`
}
