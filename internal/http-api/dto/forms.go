package dto

// Form payloads bound from application/x-www-form-urlencoded bodies.
// Rule checks (uniqueness, password strength) live in the service layer;
// binding only rejects missing fields.

// LoginForm: payload for /login
type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// RegisterForm: payload for /register
type RegisterForm struct {
	Username        string `form:"username" binding:"required"`
	Email           string `form:"email" binding:"required"`
	FirstName       string `form:"first_name"`
	LastName        string `form:"last_name"`
	IsSuperuser     string `form:"is_superuser"`
	IsStaff         string `form:"is_staff"`
	Password        string `form:"password" binding:"required"`
	PasswordConfirm string `form:"password_confirm" binding:"required"`
}

// EditUserForm: payload for /usertable/edit/:id
type EditUserForm struct {
	Username    string `form:"username" binding:"required"`
	Email       string `form:"email"`
	FirstName   string `form:"first_name"`
	LastName    string `form:"last_name"`
	IsSuperuser string `form:"is_superuser"`
	IsStaff     string `form:"is_staff"`
}

// ChangePasswordForm: payload for /changepassword
type ChangePasswordForm struct {
	CurrentPassword string `form:"current_password" binding:"required"`
	Password        string `form:"password" binding:"required"`
	PasswordConfirm string `form:"password_confirm" binding:"required"`
}

// ChangeUsernameForm: payload for /changeusername
type ChangeUsernameForm struct {
	Username string `form:"username" binding:"required"`
}

// ChangeEmailForm: payload for /changeemail
type ChangeEmailForm struct {
	Email string `form:"email" binding:"required"`
}

// ChangeNameForm: payload for /changename
type ChangeNameForm struct {
	FirstName string `form:"first_name"`
	LastName  string `form:"last_name"`
}

// Checked interprets checkbox and select values ("1", "true", "on") as set
func Checked(value string) bool {
	switch value {
	case "1", "true", "True", "on", "yes":
		return true
	default:
		return false
	}
}

// Flag converts a checkbox value into the 0/1 integer stored in auth_user
func Flag(value string) int {
	if Checked(value) {
		return 1
	}
	return 0
}
