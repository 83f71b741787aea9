package models

// Field names as they appear in the login and signup forms.
const (
	FieldUsername        = "username"
	FieldPassword        = "password"
	FieldNewUsername     = "newUsername"
	FieldNewPassword     = "newPassword"
	FieldConfirmPassword = "confirmPassword"
	FieldName            = "name"
	FieldDOB             = "dob"
	FieldEmail           = "email"
)

// LoginSubmission is the set of values captured when the login form is submitted
type LoginSubmission struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// SignupSubmission is the API-backed signup form.
type SignupSubmission struct {
	Username        string `validate:"required"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// LocalSignupSubmission is the alert-only signup form, which collects
// profile fields that never leave the page.
type LocalSignupSubmission struct {
	Name            string `validate:"required"`
	DOB             string `validate:"required"`
	Email           string `validate:"required"`
	Username        string `validate:"required"`
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}

// Credentials returns the wire body for the login endpoint
func (s LoginSubmission) Credentials() Credentials {
	return Credentials{Username: s.Username, Password: s.Password}
}

// Credentials returns the wire body for the register endpoint. The
// confirmation is checked locally and never sent.
func (s SignupSubmission) Credentials() Credentials {
	return Credentials{Username: s.Username, Password: s.Password}
}
