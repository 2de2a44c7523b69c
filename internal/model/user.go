package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. The password hash is kept internal to the repository
// and handler layers; the response types defined by handlers
// never include it.
//
// Fields:
//  ID           – primary key identifier of the user.
//  FullName     – display name shown in the sidebar and chat header.
//  Email        – unique email address (stored lowercased).
//  PasswordHash – bcrypt hashed password.
//  ProfilePic   – URL of the hosted profile image ("" when unset).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	FullName     string    // users.full_name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	ProfilePic   string    // users.profile_pic
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
