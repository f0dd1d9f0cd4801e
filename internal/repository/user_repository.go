package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/akarev/activity-signup/internal/model"
)

// UserRepo provides persistence for participant identity records. A user
// row is created on first registration and overwritten on re-registration;
// rows are never deleted. registered_at keeps the time of the first
// successful registration.
type UserRepo struct{ DB *sql.DB }

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Upsert inserts the user or replaces their contact fields when the id
// already exists. The upsert keeps the original registered_at so
// re-registration does not look like a new signup in reports.
func (r *UserRepo) Upsert(ctx context.Context, id uint64, handle, displayName, phone string) error {
	handle = strings.TrimSpace(handle)
	displayName = strings.TrimSpace(displayName)
	phone = strings.TrimSpace(phone)
	const q = `INSERT INTO users (id, handle, display_name, phone) VALUES (?,?,?,?)
		ON DUPLICATE KEY UPDATE handle=VALUES(handle), display_name=VALUES(display_name), phone=VALUES(phone)`
	_, err := r.DB.ExecContext(ctx, q, id, handle, displayName, phone)
	return err
}

// Exists reports whether a user with the given id is registered.
func (r *UserRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByID fetches a user by id. Returns sql.ErrNoRows when absent.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, handle, display_name, phone, registered_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Handle, &u.DisplayName, &u.Phone, &u.RegisteredAt)
	return u, err
}

// CountAll returns the total number of registered users.
func (r *UserRepo) CountAll(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&n)
	return n, err
}

// ListAll returns every registered user ordered by registration time.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	const q = `SELECT id, handle, display_name, phone, registered_at
		FROM users ORDER BY registered_at, id`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Handle, &u.DisplayName, &u.Phone, &u.RegisteredAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
