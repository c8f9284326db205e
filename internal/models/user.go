package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRole represents the role of an account.
type UserRole string

const (
	RoleManager  UserRole = "manager"
	RoleStaff    UserRole = "staff"
	RoleCustomer UserRole = "customer"
)

// ValidUserRole reports whether role is one of the permitted account roles.
func ValidUserRole(role UserRole) bool {
	switch role {
	case RoleManager, RoleStaff, RoleCustomer:
		return true
	}
	return false
}

// NormalizeUserRole lowercases a role label and maps known synonyms onto the
// canonical set. The dashboard labels staff accounts "employee"; a kitchen
// user is role=staff with a department tag, not a role of its own.
func NormalizeUserRole(label string) UserRole {
	role := UserRole(strings.ToLower(strings.TrimSpace(label)))
	if role == "employee" {
		return RoleStaff
	}
	return role
}

// User represents a sign-in account. Customer accounts carry a link to the
// customer record that owns the loyalty balance.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"` // Never expose in JSON
	Name         string     `db:"name" json:"name"`
	Role         UserRole   `db:"role" json:"role"`
	CustomerID   *uuid.UUID `db:"customer_id" json:"customerId"`
	CreatedAt    time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updatedAt"`
}

// SignUpRequest is used for account creation
type SignUpRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	Remember  bool   `json:"remember"`
}

// SignInRequest is used for sign-in
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

// UserUpdateRequest is used for team member edits. Pointer fields distinguish
// "not sent" from "sent empty".
type UserUpdateRequest struct {
	Name *string `json:"name"`
	Role *string `json:"role"`
}
