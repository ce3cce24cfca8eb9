package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type UsersRepository struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

func (r *UsersRepository) FindUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UsersRepository) CreateUser(ctx context.Context, user *User) error {
	if err := r.db.WithContext(ctx).Omit("Roles").Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// EnsureRole returns the role with the given name, creating it when missing.
func (r *UsersRepository) EnsureRole(ctx context.Context, name string) (*Role, error) {
	role := Role{Name: name}
	err := r.db.WithContext(ctx).
		Where(Role{NormalizedName: NormalizeName(name)}).
		FirstOrCreate(&role).Error
	if err != nil {
		return nil, fmt.Errorf("ensure role %s: %w", name, err)
	}
	return &role, nil
}

func (r *UsersRepository) AddUserToRole(ctx context.Context, user *User, role *Role) error {
	if err := r.db.WithContext(ctx).Model(user).Association("Roles").Append(role); err != nil {
		return fmt.Errorf("add user to role %s: %w", role.Name, err)
	}
	return nil
}
