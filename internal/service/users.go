package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/repository"
)

// UserStore is the persistence the account lifecycle needs.  It is
// implemented by repository.UserRepo; lookups report a missing row with
// repository.ErrUserNotFound and unique email violations with
// repository.ErrEmailExists.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, includeDeleted bool) ([]model.User, error)
	Update(ctx context.Context, id string, ch model.UserChanges) (*model.User, error)
	MarkDeleted(ctx context.Context, id, deletedBy string, at time.Time) (*model.User, error)
	ClearDeleted(ctx context.Context, id string) (*model.User, error)
	SetRole(ctx context.Context, id string, role model.Role) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// UserService implements the account lifecycle.  Every account it returns
// has its password hash cleared except FindByEmail, which authentication
// uses to verify credentials.
type UserService struct {
	store  UserStore
	hasher PasswordHasher
	log    *zap.Logger
	now    func() time.Time
}

func NewUserService(store UserStore, hasher PasswordHasher, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{store: store, hasher: hasher, log: log, now: time.Now}
}

// Create validates input and stores a new guest account.  Any role in the
// input is ignored.
func (s *UserService) Create(ctx context.Context, in model.CreateUserInput) (*model.User, error) {
	email := normalizeEmail(in.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	existing, err := s.store.FindByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, conflictError("email already registered")
	case err != nil && !errors.Is(err, repository.ErrUserNotFound):
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}
	firstName, lastName := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if err := validateName("firstName", firstName); err != nil {
		return nil, err
	}
	if err := validateName("lastName", lastName); err != nil {
		return nil, err
	}
	if err := validatePhone(in.Phone); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &model.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        in.Phone,
		Role:         model.RoleGuest,
	}
	if err := s.store.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, conflictError("email already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	out := u.WithoutPassword()
	return &out, nil
}

// FindByEmail returns the account, password hash included, for the
// normalized address.  A missing account is a NotFound error.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	u, err := s.store.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, s.lookupError(err)
	}
	return u, nil
}

// FindOne returns an account whatever its deletion state.
func (s *UserService) FindOne(ctx context.Context, id string) (*model.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err)
	}
	out := u.WithoutPassword()
	return &out, nil
}

// FindAll lists live accounts, newest first.
func (s *UserService) FindAll(ctx context.Context) ([]model.User, error) {
	return s.list(ctx, false)
}

// FindAllIncludingDeleted lists every account, newest first.  Callers must
// restrict it to admins.
func (s *UserService) FindAllIncludingDeleted(ctx context.Context) ([]model.User, error) {
	return s.list(ctx, true)
}

func (s *UserService) list(ctx context.Context, includeDeleted bool) ([]model.User, error) {
	users, err := s.store.List(ctx, includeDeleted)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]model.User, len(users))
	for i, u := range users {
		out[i] = u.WithoutPassword()
	}
	return out, nil
}

// Update applies a selective patch.
func (s *UserService) Update(ctx context.Context, id string, in model.UpdateUserInput) (*model.User, error) {
	if _, err := s.store.FindByID(ctx, id); err != nil {
		return nil, s.lookupError(err)
	}

	var ch model.UserChanges
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		other, err := s.store.FindByEmail(ctx, email)
		switch {
		case err == nil && other != nil && other.ID != id:
			return nil, conflictError("email already registered")
		case err != nil && !errors.Is(err, repository.ErrUserNotFound):
			return nil, fmt.Errorf("lookup email: %w", err)
		}
		ch.Email = &email
	}
	if in.Password != nil {
		if err := validatePassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		ch.PasswordHash = &hash
	}
	if in.FirstName != nil {
		v := strings.TrimSpace(*in.FirstName)
		if err := validateName("firstName", v); err != nil {
			return nil, err
		}
		ch.FirstName = &v
	}
	if in.LastName != nil {
		v := strings.TrimSpace(*in.LastName)
		if err := validateName("lastName", v); err != nil {
			return nil, err
		}
		ch.LastName = &v
	}
	if in.Phone != nil {
		if err := validatePhone(in.Phone); err != nil {
			return nil, err
		}
		ch.Phone = in.Phone
	}
	if ch.Empty() {
		return nil, validationError("no fields to update")
	}

	u, err := s.store.Update(ctx, id, ch)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, conflictError("email already registered")
		}
		return nil, s.lookupError(err)
	}
	out := u.WithoutPassword()
	return &out, nil
}

// SoftDelete marks a live account deleted by deletedBy.  The deletion
// policy (no self, no admins) is the caller's job; see CanSoftDelete.
func (s *UserService) SoftDelete(ctx context.Context, id, deletedBy string) (*model.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err)
	}
	if u.IsDeleted() {
		return nil, notFoundError("user is already deleted")
	}
	deleted, err := s.store.MarkDeleted(ctx, id, deletedBy, s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, notFoundError("user is already deleted")
		}
		return nil, fmt.Errorf("soft delete user: %w", err)
	}
	out := deleted.WithoutPassword()
	return &out, nil
}

// Restore clears the deletion markers of a soft-deleted account.
func (s *UserService) Restore(ctx context.Context, id string) (*model.User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.lookupError(err)
	}
	if !u.IsDeleted() {
		return nil, notFoundError("user is not deleted")
	}
	restored, err := s.store.ClearDeleted(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, notFoundError("user is not deleted")
		}
		return nil, fmt.Errorf("restore user: %w", err)
	}
	out := restored.WithoutPassword()
	return &out, nil
}

// BulkSoftDelete soft-deletes each id independently.  Ids that cannot be
// deleted are reported as "<id>: <reason>" in input order; they never
// abort the batch and earlier deletions are kept.  Store failures are
// logged and reported as "delete failed".
func (s *UserService) BulkSoftDelete(ctx context.Context, ids []string, deletedBy string) model.BulkDeleteResult {
	res := model.BulkDeleteResult{Errors: []string{}}
	fail := func(id, reason string) { res.Errors = append(res.Errors, id+": "+reason) }

	for _, id := range ids {
		if id == deletedBy {
			fail(id, "cannot delete your own account")
			continue
		}
		u, err := s.store.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				fail(id, "user not found")
			} else {
				s.log.Error("bulk delete lookup failed", zap.String("user_id", id), zap.Error(err))
				fail(id, "delete failed")
			}
			continue
		}
		if u.IsDeleted() {
			fail(id, "already deleted")
			continue
		}
		if u.IsAdmin() {
			fail(id, "cannot delete another administrator")
			continue
		}
		if _, err := s.store.MarkDeleted(ctx, id, deletedBy, s.now().UTC()); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				fail(id, "already deleted")
			} else {
				s.log.Error("bulk delete failed", zap.String("user_id", id), zap.Error(err))
				fail(id, "delete failed")
			}
			continue
		}
		res.Deleted++
	}
	return res
}

// Promote assigns role to the live account registered under email.  It is
// not reachable over HTTP; cmd/promote uses it to bootstrap admins.
func (s *UserService) Promote(ctx context.Context, email string, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, validationError("unknown role %q", role)
	}
	u, err := s.store.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, s.lookupError(err)
	}
	if u.IsDeleted() {
		return nil, notFoundError("user not found")
	}
	if u.Role == role {
		out := u.WithoutPassword()
		return &out, nil
	}
	promoted, err := s.store.SetRole(ctx, u.ID, role)
	if err != nil {
		return nil, s.lookupError(err)
	}
	out := promoted.WithoutPassword()
	return &out, nil
}

// Remove physically deletes an account.
func (s *UserService) Remove(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return s.lookupError(err)
	}
	return nil
}

func (s *UserService) lookupError(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return notFoundError("user not found")
	}
	return fmt.Errorf("user store: %w", err)
}
