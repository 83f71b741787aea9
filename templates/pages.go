package templates

import (
	"strconv"

	"kyber-portal/pkg/feedback"
	"kyber-portal/pkg/models"
)

// Redirect is a navigation the browser performs after a delay
type Redirect struct {
	URL     string
	Seconds float64
}

// Content returns the value of a meta refresh tag
func (r Redirect) Content() string {
	return strconv.FormatFloat(r.Seconds, 'g', -1, 64) + ";url=" + r.URL
}

// PageView is the state a form page is rendered with
type PageView struct {
	Messages []feedback.Message
	Redirect *Redirect
	// LocalSignup selects the six-field signup form.
	LocalSignup bool
}

type field struct {
	id, label, kind string
}

var loginFields = []field{
	{models.FieldUsername, "Username", "text"},
	{models.FieldPassword, "Password", "password"},
}

var signupFields = []field{
	{models.FieldNewUsername, "Username", "text"},
	{models.FieldNewPassword, "Password", "password"},
	{models.FieldConfirmPassword, "Confirm password", "password"},
}

var localSignupFields = []field{
	{models.FieldName, "Full name", "text"},
	{models.FieldDOB, "Date of birth", "date"},
	{models.FieldEmail, "Email", "email"},
	{models.FieldUsername, "Username", "text"},
	{models.FieldPassword, "Password", "password"},
	{models.FieldConfirmPassword, "Confirm password", "password"},
}

func signupFieldsFor(view PageView) []field {
	if view.LocalSignup {
		return localSignupFields
	}
	return signupFields
}

// lastInline returns the message the #message element ends up showing.
func lastInline(msgs []feedback.Message) (feedback.Message, bool) {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Channel == feedback.Inline {
			return msgs[i], true
		}
	}
	return feedback.Message{}, false
}
