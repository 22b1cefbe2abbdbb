package model

import "time"

// User is a promoter account. Accounts exist for session management;
// the browse and listing surface itself is public.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email, stored lowercased
	PasswordHash string    // users.password_hash (bcrypt)
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
