package repository

import (
	"database/sql"
	"time"

	"github.com/iliyamo/hotel-booking/internal/model"
)

// userColumns lists the users table columns in the order scanUser expects.
const userColumns = "id, email, password_hash, first_name, last_name, phone, role, created_at, updated_at, deleted_at, deleted_by"

// userRecord mirrors one row of the `users` table.  Nullable columns use the
// database/sql null types; conversion to model.User happens in toModel.
type userRecord struct {
	ID           string         // users.id
	Email        string         // users.email
	PasswordHash string         // users.password_hash
	FirstName    string         // users.first_name
	LastName     string         // users.last_name
	Phone        sql.NullString // users.phone
	Role         string         // users.role
	CreatedAt    time.Time      // users.created_at
	UpdatedAt    time.Time      // users.updated_at
	DeletedAt    sql.NullTime   // users.deleted_at
	DeletedBy    sql.NullString // users.deleted_by
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(s rowScanner) (userRecord, error) {
	var r userRecord
	err := s.Scan(&r.ID, &r.Email, &r.PasswordHash, &r.FirstName, &r.LastName, &r.Phone,
		&r.Role, &r.CreatedAt, &r.UpdatedAt, &r.DeletedAt, &r.DeletedBy)
	return r, err
}

// toModel converts the row into the service-level entity.  The password
// hash is carried over; callers that return users to clients must use
// model.User.WithoutPassword.
func (r userRecord) toModel() model.User {
	u := model.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Role:         model.Role(r.Role),
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
	}
	if r.Phone.Valid {
		p := r.Phone.String
		u.Phone = &p
	}
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time.UTC()
		u.DeletedAt = &t
	}
	if r.DeletedBy.Valid {
		by := r.DeletedBy.String
		u.DeletedBy = &by
	}
	return u
}

// recordFromModel is the inverse of toModel, used for inserts.
func recordFromModel(u *model.User) userRecord {
	r := userRecord{
		ID:           u.ID,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Role:         string(u.Role),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.Phone != nil {
		r.Phone = sql.NullString{String: *u.Phone, Valid: true}
	}
	if u.DeletedAt != nil {
		r.DeletedAt = sql.NullTime{Time: *u.DeletedAt, Valid: true}
	}
	if u.DeletedBy != nil {
		r.DeletedBy = sql.NullString{String: *u.DeletedBy, Valid: true}
	}
	return r
}
