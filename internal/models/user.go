package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash []byte    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AuthUser is the authenticated identity resolved from a bearer token,
// carried on the request context by the auth middleware.
type AuthUser struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (u AuthUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsOwnerOrAdmin reports whether u may mutate a resource owned by ownerID.
func (u AuthUser) IsOwnerOrAdmin(ownerID string) bool {
	return u.ID == ownerID || u.Role == RoleAdmin
}
