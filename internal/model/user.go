package model

import "time"

// Role names stored on users.  Roles are fixed at signup; there is no
// promotion or demotion operation.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account as stored in the `users` table or the
// `users` collection.  PasswordHash is never serialized to clients.
//
// Fields:
//
//	ID           – opaque identifier (UUID or ObjectID hex).
//	Name         – display name.
//	Email        – unique, lower-cased email address.
//	PasswordHash – bcrypt hash of the password.
//	Role         – user or admin.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
