package repository

import (
	"context"

	"mathspring/internal/http-api/models"

	"gorm.io/gorm"
)

// UserChanges carries every column a superuser may edit at once
type UserChanges struct {
	Username    string
	Email       *string
	FirstName   *string
	LastName    *string
	IsSuperuser int
	IsStaff     int
}

// UserRepository defines the data operations on auth_user.
// Lookups return ErrNotFound when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateLastLogin(ctx context.Context, id uint, lastLogin string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, hashedPassword string) (*models.User, error)
	UpdateEmail(ctx context.Context, id uint, email string) (*models.User, error)
	UpdateName(ctx context.Context, id uint, firstName, lastName string) (*models.User, error)
	UpdateUsername(ctx context.Context, id uint, username string) (*models.User, error)
	UpdateAll(ctx context.Context, id uint, changes UserChanges) (*models.User, error)
	Delete(ctx context.Context, id uint) error
}

// userRepository is the GORM implementation of UserRepository.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository in a GORM implementation
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translateError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	// never hand back a zero-value user together with a nil error
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translateError(err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, translateError(err)
	}
	return users, nil
}

func (r *userRepository) UpdateLastLogin(ctx context.Context, id uint, lastLogin string) (*models.User, error) {
	return r.update(ctx, id, map[string]interface{}{"last_login": lastLogin})
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hashedPassword string) (*models.User, error) {
	return r.update(ctx, id, map[string]interface{}{"password": hashedPassword})
}

func (r *userRepository) UpdateEmail(ctx context.Context, id uint, email string) (*models.User, error) {
	return r.update(ctx, id, map[string]interface{}{"email": models.StringPtr(email)})
}

func (r *userRepository) UpdateName(ctx context.Context, id uint, firstName, lastName string) (*models.User, error) {
	return r.update(ctx, id, map[string]interface{}{
		"first_name": models.StringPtr(firstName),
		"last_name":  models.StringPtr(lastName),
	})
}

func (r *userRepository) UpdateUsername(ctx context.Context, id uint, username string) (*models.User, error) {
	return r.update(ctx, id, map[string]interface{}{"username": username})
}

func (r *userRepository) UpdateAll(ctx context.Context, id uint, changes UserChanges) (*models.User, error) {
	return r.update(ctx, id, map[string]interface{}{
		"username":     changes.Username,
		"email":        changes.Email,
		"first_name":   changes.FirstName,
		"last_name":    changes.LastName,
		"is_superuser": changes.IsSuperuser,
		"is_staff":     changes.IsStaff,
	})
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return translateError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// update loads the row, writes the given columns and reloads it.
// There is no version check, the last writer wins.
func (r *userRepository) update(ctx context.Context, id uint, columns map[string]interface{}) (*models.User, error) {
	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(user).Updates(columns).Error; err != nil {
		return nil, translateError(err)
	}
	return r.FindByID(ctx, id)
}
