// Package models contains the persistent domain types shared by the
// repositories and services: users, sessions, cart lines and orders.
package models

import "time"

// User is a registered customer. The password hash never leaves the server;
// API responses use Projection instead.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	Name         string
	CreatedAt    time.Time
}

// UserProjection is the client-visible slice of a user record.
type UserProjection struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Projection returns the fields safe to expose to the client.
func (u *User) Projection() UserProjection {
	return UserProjection{ID: u.ID, Email: u.Email, Name: u.Name}
}
