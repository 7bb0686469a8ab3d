// Package models contains data structures for the client's domain objects.
// All entities are ephemeral mirrors of backend state; nothing here is
// persisted locally except the session (see internal/session).
package models

// UserProfile is the authenticated user's identity as returned by the backend.
// Only ID is load-bearing for client logic; the rest is display data.
type UserProfile struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Tokens is the credential pair issued by the login endpoint.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UpdateUserInput is the payload for profile edits.
type UpdateUserInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
