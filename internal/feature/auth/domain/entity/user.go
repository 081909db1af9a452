// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User is an operator account. Users are never deleted.
type User struct {
	ID           string
	Name         string
	Email        string
	Password     string // bcrypt hash, never serialized
	ProfileImage string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
