package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"mathspring/internal/http-api/dto"
	"mathspring/internal/http-api/models"
	"mathspring/internal/http-api/repository"
	"mathspring/internal/middleware/auth"

	"github.com/sirupsen/logrus"
)

// UserService holds account creation, self-service edits and user table management.
// Validation failures come back as FieldErrors and leave storage untouched.
type UserService interface {
	Register(ctx context.Context, actor *models.User, form dto.RegisterForm) (*models.User, error)
	ChangePassword(ctx context.Context, user *models.User, form dto.ChangePasswordForm) error
	ChangeUsername(ctx context.Context, user *models.User, username string) (*models.User, error)
	ChangeEmail(ctx context.Context, user *models.User, email string) (*models.User, error)
	ChangeName(ctx context.Context, user *models.User, firstName, lastName string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id uint) (*models.User, error)
	EditUser(ctx context.Context, id uint, form dto.EditUserForm) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
}

type userService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo, now: time.Now}
}

// Register: creates an account after checking uniqueness and password strength.
// A staff member without superuser rights cannot hand out superuser.
func (s *userService) Register(ctx context.Context, actor *models.User, form dto.RegisterForm) (*models.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": form.Username, "email": form.Email})

	usernameTaken, err := s.usernameOwner(ctx, form.Username)
	if err != nil {
		return nil, err
	}
	emailTaken, err := s.emailOwner(ctx, form.Email)
	if err != nil {
		return nil, err
	}

	fieldErrs := FieldErrors{}
	fieldErrs.set(FlagInvalidUser, usernameTaken != nil)
	fieldErrs.set(FlagInvalidEmail, emailTaken != nil)
	fieldErrs.set(FlagInvalidPassword, weakPassword(form.Password))
	fieldErrs.set(FlagPasswordNotMatch, form.Password != form.PasswordConfirm)
	if err := fieldErrs.orNil(); err != nil {
		logCtx.WithField("flags", err.Error()).Info("registration rejected")
		return nil, err
	}

	hashed, err := auth.HashPassword(form.Password)
	if err != nil {
		return nil, err
	}

	isSuperuser := dto.Flag(form.IsSuperuser)
	if actor != nil && !actor.Superuser() {
		isSuperuser = 0
	}

	user := &models.User{
		Username:    form.Username,
		Email:       models.StringPtr(form.Email),
		FirstName:   models.StringPtr(form.FirstName),
		LastName:    models.StringPtr(form.LastName),
		Password:    hashed,
		DateJoined:  models.Now(s.now()),
		IsSuperuser: isSuperuser,
		IsStaff:     dto.Flag(form.IsStaff),
		IsActive:    1,
	}
	err = s.userRepo.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicateEntry) {
		// another registration won the race between the checks and the insert
		logCtx.Info("registration lost a uniqueness race")
		return nil, s.duplicateFlags(ctx, 0, form.Username, form.Email, FlagInvalidUser)
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	logCtx.WithField("user_id", user.ID).Info("user registered")
	return user, nil
}

// ChangePassword: requires the current password; the new one must pass the strength rule
func (s *userService) ChangePassword(ctx context.Context, user *models.User, form dto.ChangePasswordForm) error {
	fieldErrs := FieldErrors{}
	fieldErrs.set(FlagWrongPassword, !auth.VerifyPassword(form.CurrentPassword, user.Password))
	fieldErrs.set(FlagInvalidPassword, weakPassword(form.Password))
	fieldErrs.set(FlagPasswordNotMatch, form.Password != form.PasswordConfirm)
	if err := fieldErrs.orNil(); err != nil {
		return err
	}

	hashed, err := auth.HashPassword(form.Password)
	if err != nil {
		return err
	}
	if _, err := s.userRepo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	logrus.WithField("user_id", user.ID).Info("password changed")
	return nil
}

func (s *userService) ChangeUsername(ctx context.Context, user *models.User, username string) (*models.User, error) {
	owner, err := s.usernameOwner(ctx, username)
	if err != nil {
		return nil, err
	}
	if owner != nil {
		return nil, FieldErrors{FlagInvalidUsername: true}
	}

	updated, err := s.userRepo.UpdateUsername(ctx, user.ID, username)
	if errors.Is(err, repository.ErrDuplicateEntry) {
		// lost a race against another rename
		return nil, FieldErrors{FlagInvalidUsername: true}
	}
	if err != nil {
		return nil, fmt.Errorf("update username: %w", err)
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "old": user.Username, "new": username}).Info("username changed")
	return updated, nil
}

// ChangeEmail: any existing owner of the address blocks the change, including the user itself
func (s *userService) ChangeEmail(ctx context.Context, user *models.User, email string) (*models.User, error) {
	owner, err := s.emailOwner(ctx, email)
	if err != nil {
		return nil, err
	}
	if owner != nil {
		return nil, FieldErrors{FlagInvalidEmail: true}
	}

	updated, err := s.userRepo.UpdateEmail(ctx, user.ID, email)
	if errors.Is(err, repository.ErrDuplicateEntry) {
		return nil, FieldErrors{FlagInvalidEmail: true}
	}
	if err != nil {
		return nil, fmt.Errorf("update email: %w", err)
	}
	return updated, nil
}

func (s *userService) ChangeName(ctx context.Context, user *models.User, firstName, lastName string) (*models.User, error) {
	updated, err := s.userRepo.UpdateName(ctx, user.ID, firstName, lastName)
	if err != nil {
		return nil, fmt.Errorf("update name: %w", err)
	}
	return updated, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

func (s *userService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// EditUser: superuser edit of every mutable column. A username or email
// only collides when it belongs to a different user.
func (s *userService) EditUser(ctx context.Context, id uint, form dto.EditUserForm) (*models.User, error) {
	target, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	usernameOwner, err := s.usernameOwner(ctx, form.Username)
	if err != nil {
		return nil, err
	}
	emailOwner, err := s.emailOwner(ctx, form.Email)
	if err != nil {
		return nil, err
	}

	fieldErrs := FieldErrors{}
	fieldErrs.set(FlagInvalidUsername, usernameOwner != nil && usernameOwner.ID != target.ID)
	fieldErrs.set(FlagInvalidEmail, emailOwner != nil && emailOwner.ID != target.ID)
	if err := fieldErrs.orNil(); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.UpdateAll(ctx, id, repository.UserChanges{
		Username:    form.Username,
		Email:       models.StringPtr(form.Email),
		FirstName:   models.StringPtr(form.FirstName),
		LastName:    models.StringPtr(form.LastName),
		IsSuperuser: dto.Flag(form.IsSuperuser),
		IsStaff:     dto.Flag(form.IsStaff),
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if errors.Is(err, repository.ErrDuplicateEntry) {
		return nil, s.duplicateFlags(ctx, id, form.Username, form.Email, FlagInvalidUsername)
	}
	if err != nil {
		return nil, fmt.Errorf("update user %d: %w", id, err)
	}
	logrus.WithField("user_id", id).Info("user edited")
	return updated, nil
}

func (s *userService) DeleteUser(ctx context.Context, id uint) error {
	err := s.userRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	logrus.WithField("user_id", id).Info("user deleted")
	return nil
}

// duplicateFlags works out which unique column a rejected write collided on.
// Rows owned by self do not count; when neither lookup explains the
// collision the username flag is used.
func (s *userService) duplicateFlags(ctx context.Context, self uint, username, email, usernameFlag string) error {
	fieldErrs := FieldErrors{}
	if owner, err := s.usernameOwner(ctx, username); err == nil && owner != nil && owner.ID != self {
		fieldErrs.set(usernameFlag, true)
	}
	if owner, err := s.emailOwner(ctx, email); err == nil && owner != nil && owner.ID != self {
		fieldErrs.set(FlagInvalidEmail, true)
	}
	if len(fieldErrs) == 0 {
		fieldErrs.set(usernameFlag, true)
	}
	return fieldErrs
}

// usernameOwner returns the user holding username, or nil when it is free
func (s *userService) usernameOwner(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	return user, nil
}

// emailOwner returns the user holding email, or nil when it is free.
// An empty address is stored as NULL and never collides.
func (s *userService) emailOwner(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, nil
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	return user, nil
}
