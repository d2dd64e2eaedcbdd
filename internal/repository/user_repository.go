package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/hotel-booking/internal/model"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already exists")
)

// UserRepo persists accounts in the `users` table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// NormalizeEmail lowercases and trims an address for storage and lookup.
func NormalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

// Create inserts u, assigning its id, and reloads the row so timestamps set
// by the database are populated.  A duplicate email yields ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	u.ID = uuid.NewString()
	u.Email = NormalizeEmail(u.Email)
	rec := recordFromModel(u)
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, first_name, last_name, phone, role) VALUES (?,?,?,?,?,?,?)",
		rec.ID, rec.Email, rec.PasswordHash, rec.FirstName, rec.LastName, rec.Phone, rec.Role)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrEmailExists
		}
		return err
	}
	stored, err := r.FindByID(ctx, u.ID)
	if err != nil {
		return err
	}
	*u = *stored
	return nil
}

// FindByID fetches a user by id, deleted or not.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

// FindByEmail fetches a user by normalized email, deleted or not.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", NormalizeEmail(email))
}

func (r *UserRepo) findOne(ctx context.Context, q string, arg any) (*model.User, error) {
	rec, err := scanUser(r.DB.QueryRowContext(ctx, q, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	u := rec.toModel()
	return &u, nil
}

// List returns users newest first.  Soft-deleted rows are only included
// when includeDeleted is true.
func (r *UserRepo) List(ctx context.Context, includeDeleted bool) ([]model.User, error) {
	q := "SELECT " + userColumns + " FROM users"
	if !includeDeleted {
		q += " WHERE deleted_at IS NULL"
	}
	q += " ORDER BY created_at DESC"
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.User{}
	for rows.Next() {
		rec, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec.toModel())
	}
	return out, rows.Err()
}

// Update writes the non-nil columns of ch and returns the reloaded row.
func (r *UserRepo) Update(ctx context.Context, id string, ch model.UserChanges) (*model.User, error) {
	sets := []string{}
	args := []any{}
	add := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+"=?")
			args = append(args, *v)
		}
	}
	if ch.Email != nil {
		e := NormalizeEmail(*ch.Email)
		add("email", &e)
	}
	add("password_hash", ch.PasswordHash)
	add("first_name", ch.FirstName)
	add("last_name", ch.LastName)
	add("phone", ch.Phone)
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}
	sets = append(sets, "updated_at=?")
	args = append(args, time.Now().UTC(), id)

	res, err := r.DB.ExecContext(ctx, "UPDATE users SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// MarkDeleted sets deleted_at/deleted_by on a live account.  ErrUserNotFound
// is returned when no live row with that id exists.
func (r *UserRepo) MarkDeleted(ctx context.Context, id, deletedBy string, at time.Time) (*model.User, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET deleted_at=?, deleted_by=? WHERE id=? AND deleted_at IS NULL",
		at.UTC(), deletedBy, id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// ClearDeleted resets deleted_at/deleted_by on a soft-deleted account.
func (r *UserRepo) ClearDeleted(ctx context.Context, id string) (*model.User, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET deleted_at=NULL, deleted_by=NULL WHERE id=? AND deleted_at IS NOT NULL", id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// SetRole changes the role of a live account.
func (r *UserRepo) SetRole(ctx context.Context, id string, role model.Role) (*model.User, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role=?, updated_at=? WHERE id=? AND deleted_at IS NULL",
		string(role), time.Now().UTC(), id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, ErrUserNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete physically removes the row.
func (r *UserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return nil
}
