package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/direct-chat/internal/model"
	"github.com/iliyamo/direct-chat/internal/utils"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,full_name,email,password_hash,profile_pic,created_at,updated_at"

// Create hashes the password and inserts a new user, returning its ID.
// Emails are normalized to lowercase; the unique index on users.email
// makes concurrent signups for the same address deterministic — exactly
// one insert wins and the loser gets ErrEmailExists (MySQL error 1062).
func (r *UserRepo) Create(ctx context.Context, fullName, email, password string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (full_name, email, password_hash) VALUES (?,?,?)",
		fullName, email, hash)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.ProfilePic, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.ProfilePic, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}

// UpdateProfilePic stores the hosted image URL on the user and returns
// the updated record.
func (r *UserRepo) UpdateProfilePic(ctx context.Context, id uint64, url string) (model.User, error) {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET profile_pic=?, updated_at=NOW() WHERE id=?",
		url, id)
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, id)
}

// ListOthers returns every user except the caller, in creation order
// (ascending id). This feeds the chat sidebar; there is no pagination,
// which is a known scalability gap rather than an oversight.
func (r *UserRepo) ListOthers(ctx context.Context, callerID uint64) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id<>? ORDER BY id ASC",
		callerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.ProfilePic, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
