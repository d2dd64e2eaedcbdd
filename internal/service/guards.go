package service

import "github.com/iliyamo/hotel-booking/internal/model"

// Caller is the identity extracted from a validated access token.
type Caller struct {
	ID    string
	Email string
	Role  model.Role
}

func (c Caller) IsAdmin() bool { return c.Role == model.RoleAdmin }

// AdminOnly allows admins.
func AdminOnly(c Caller) error {
	if !c.IsAdmin() {
		return forbiddenError("admin role required")
	}
	return nil
}

// SelfOrAdmin allows admins and the account addressed by targetID.
func SelfOrAdmin(c Caller, targetID string) error {
	if c.IsAdmin() {
		return nil
	}
	if c.ID != "" && c.ID == targetID {
		return nil
	}
	return forbiddenError("you can only access your own account")
}

// CanSoftDelete applies the deletion policy on top of AdminOnly: an admin
// may not delete their own account nor another admin's.
func CanSoftDelete(c Caller, target *model.User) error {
	if err := AdminOnly(c); err != nil {
		return err
	}
	if target.ID == c.ID {
		return forbiddenError("cannot delete your own account")
	}
	if target.IsAdmin() {
		return forbiddenError("cannot delete another administrator")
	}
	return nil
}

// HotelManager allows the roles that may list properties.
func HotelManager(c Caller) error {
	if c.Role != model.RoleHotelOwner && c.Role != model.RoleAdmin {
		return forbiddenError("hotel owner role required")
	}
	return nil
}

// OwnerOrAdmin allows admins and the caller whose id is ownerID.
func OwnerOrAdmin(c Caller, ownerID string) error {
	if c.IsAdmin() || (c.ID != "" && c.ID == ownerID) {
		return nil
	}
	return forbiddenError("you do not own this resource")
}
