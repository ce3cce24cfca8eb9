package models

import "gorm.io/gorm"

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Role is an authorization role. Names are unique ignoring case.
type Role struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"size:40;not null"`
	NormalizedName string `gorm:"size:40;uniqueIndex;not null"`
}

func (r *Role) TableName() string {
	return "roles"
}

func (r *Role) BeforeSave(tx *gorm.DB) error {
	r.NormalizedName = NormalizeName(r.Name)
	return nil
}

// User is an account allowed to sign in to the admin area.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	Email          string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash   string `gorm:"size:255;not null"`
	EmailConfirmed bool
	Roles          []Role `gorm:"many2many:user_roles"`
}

func (u *User) TableName() string {
	return "users"
}

// RoleNames returns the names of the roles the user holds.
func (u User) RoleNames() []string {
	names := make([]string, len(u.Roles))
	for i, r := range u.Roles {
		names[i] = r.Name
	}
	return names
}

// HasRole reports whether the user holds the role, ignoring case.
func (u User) HasRole(role string) bool {
	key := NormalizeName(role)
	for _, r := range u.Roles {
		if NormalizeName(r.Name) == key {
			return true
		}
	}
	return false
}
