package models

import "time"

// TimestampLayout is how date_joined and last_login are stored (string columns).
const TimestampLayout = "2006-01-02 15:04:05"

// User maps the auth_user table. Nullable columns are pointers.
// Column types and index names follow the existing table: INT id and
// flags without defaults, ix_auth_user_* unique indexes.
type User struct {
	ID          uint    `gorm:"type:int;primaryKey;autoIncrement" json:"id"`
	Password    string  `gorm:"size:128;not null" json:"-"` // always a hash
	LastLogin   *string `gorm:"size:128" json:"last_login,omitempty"`
	IsSuperuser int     `gorm:"type:int;not null" json:"is_superuser"`
	Username    string  `gorm:"size:128;uniqueIndex:ix_auth_user_username;not null" json:"username"`
	FirstName   *string `gorm:"size:128" json:"first_name,omitempty"`
	LastName    *string `gorm:"size:128" json:"last_name,omitempty"`
	Email       *string `gorm:"size:128;uniqueIndex:ix_auth_user_email" json:"email,omitempty"`
	IsStaff     int     `gorm:"type:int;not null" json:"is_staff"`
	IsActive    int     `gorm:"type:int;not null" json:"is_active"`
	DateJoined  string  `gorm:"size:128;not null" json:"date_joined"`
}

func (User) TableName() string {
	return "auth_user"
}

// Superuser reports whether the user holds full administrative rights
func (u User) Superuser() bool { return u.IsSuperuser != 0 }

// Staff reports whether the user may create accounts
func (u User) Staff() bool { return u.IsStaff != 0 }

// Active reports whether the account may log in
func (u User) Active() bool { return u.IsActive != 0 }

// EmailValue returns the email or "" when NULL
func (u User) EmailValue() string { return deref(u.Email) }

// FirstNameValue returns the first name or "" when NULL
func (u User) FirstNameValue() string { return deref(u.FirstName) }

// LastNameValue returns the last name or "" when NULL
func (u User) LastNameValue() string { return deref(u.LastName) }

// LastLoginValue returns the last login timestamp or "" when NULL
func (u User) LastLoginValue() string { return deref(u.LastLogin) }

// Now formats t the way timestamp columns expect it
func Now(t time.Time) string {
	return t.Format(TimestampLayout)
}

// StringPtr turns "" into nil so empty form fields are stored as NULL
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
