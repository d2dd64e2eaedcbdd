package model

import "time"

// Role is the authorization level of an account.
type Role string

const (
    RoleGuest      Role = "guest"
    RoleHotelOwner Role = "hotel_owner"
    RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
    switch r {
    case RoleGuest, RoleHotelOwner, RoleAdmin:
        return true
    }
    return false
}

// User represents an account as seen by the services and handlers.  It is
// built from a `users` row by the repository mapper.  The password hash is
// only populated on lookups that need it (login) and is never serialized.
//
// Fields:
//  ID           – opaque identifier assigned by the store.
//  Email        – unique, lowercased and trimmed address.
//  PasswordHash – bcrypt hash; excluded from JSON.
//  FirstName    – given name.
//  LastName     – family name.
//  Phone        – optional phone number.
//  Role         – guest, hotel_owner or admin.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
//  DeletedAt    – set when the account is soft-deleted.
//  DeletedBy    – id of the admin who soft-deleted the account.
type User struct {
    ID           string     `json:"id"`
    Email        string     `json:"email"`
    PasswordHash string     `json:"-"`
    FirstName    string     `json:"firstName"`
    LastName     string     `json:"lastName"`
    Phone        *string    `json:"phone,omitempty"`
    Role         Role       `json:"role"`
    CreatedAt    time.Time  `json:"createdAt"`
    UpdatedAt    time.Time  `json:"updatedAt"`
    DeletedAt    *time.Time `json:"deletedAt,omitempty"`
    DeletedBy    *string    `json:"deletedBy,omitempty"`
}

// IsDeleted reports whether the account is soft-deleted.
func (u *User) IsDeleted() bool { return u.DeletedAt != nil }

// IsAdmin reports whether the account holds the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// WithoutPassword returns a copy of u with the password hash cleared.
func (u User) WithoutPassword() User {
    u.PasswordHash = ""
    return u
}

// CreateUserInput is the body accepted by account creation and registration.
// Role is decoded so that callers cannot tell it was dropped; the lifecycle
// service always assigns RoleGuest.
type CreateUserInput struct {
    Email     string  `json:"email"`
    Password  string  `json:"password"`
    FirstName string  `json:"firstName"`
    LastName  string  `json:"lastName"`
    Phone     *string `json:"phone,omitempty"`
    Role      string  `json:"role,omitempty"`
}

// UpdateUserInput carries a selective patch.  Nil fields are left untouched.
type UpdateUserInput struct {
    Email     *string `json:"email,omitempty"`
    Password  *string `json:"password,omitempty"`
    FirstName *string `json:"firstName,omitempty"`
    LastName  *string `json:"lastName,omitempty"`
    Phone     *string `json:"phone,omitempty"`
}

// UserChanges is the column-level patch handed to the store after
// validation and hashing.  Only non-nil fields are written.
type UserChanges struct {
    Email        *string
    PasswordHash *string
    FirstName    *string
    LastName     *string
    Phone        *string
}

// Empty reports whether no column would be written.
func (c UserChanges) Empty() bool {
    return c.Email == nil && c.PasswordHash == nil && c.FirstName == nil && c.LastName == nil && c.Phone == nil
}

// LoginInput holds credentials presented at login.
type LoginInput struct {
    Email    string `json:"email"`
    Password string `json:"password"`
}

// BulkDeleteResult summarizes a best-effort bulk soft delete.
type BulkDeleteResult struct {
    Deleted int      `json:"deleted"`
    Errors  []string `json:"errors"`
}
