package models

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/AliKaner/mc-case/internal/common"
)

var (
	namePattern     = regexp.MustCompile(`^[a-zA-ZğüşıöçĞÜŞİÖÇ\s]+$`)
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// UserForm is the flat set of fields a user fills in to create or edit a
// record.
type UserForm struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"companyName"`
}

// FormFromRecord seeds a form with the editable fields of r.
func FormFromRecord(r Record) UserForm {
	return UserForm{
		ID:          r.ID.String(),
		Name:        r.Name,
		Username:    r.Username,
		Email:       r.Email,
		Phone:       r.Phone,
		CompanyName: r.Company.Name,
	}
}

// FieldError describes one invalid form field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// Validate checks every field and returns all problems at once. The result
// matches common.ErrorValidation with errors.Is.
func (f UserForm) Validate() error {
	var errs []error
	add := func(field, msg string) {
		errs = append(errs, FieldError{Field: field, Message: msg})
	}

	name := strings.TrimSpace(f.Name)
	switch n := utf8.RuneCountInString(name); {
	case n == 0:
		add("name", "name is required")
	case n < 3:
		add("name", "name must be at least 3 characters")
	case n > 50:
		add("name", "name must be at most 50 characters")
	case !namePattern.MatchString(name):
		add("name", "name may only contain letters and spaces")
	}

	username := strings.TrimSpace(f.Username)
	switch n := utf8.RuneCountInString(username); {
	case n == 0:
		add("username", "username is required")
	case n < 3:
		add("username", "username must be at least 3 characters")
	case n > 20:
		add("username", "username must be at most 20 characters")
	case !usernamePattern.MatchString(username):
		add("username", "username may only contain letters, digits and underscores")
	}

	email := strings.TrimSpace(f.Email)
	switch {
	case email == "":
		add("email", "email is required")
	case !emailPattern.MatchString(email):
		add("email", "please enter a valid email address")
	}

	phone := strings.TrimSpace(f.Phone)
	switch {
	case phone == "":
		add("phone", "phone is required")
	case utf8.RuneCountInString(phone) < 10:
		add("phone", "phone must be at least 10 characters")
	}

	company := strings.TrimSpace(f.CompanyName)
	switch {
	case company == "":
		add("companyName", "company name is required")
	case utf8.RuneCountInString(company) < 2:
		add("companyName", "company name must be at least 2 characters")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", common.ErrorValidation, errors.Join(errs...))
}

// ToRecord builds a complete record for a new user. Optional parts of the
// record (website, address, company extras) are present but empty.
func (f UserForm) ToRecord(id ID) Record {
	return Record{
		ID:       id,
		Name:     f.Name,
		Username: f.Username,
		Email:    f.Email,
		Phone:    f.Phone,
		Website:  "",
		Address:  &Address{},
		Company:  Company{Name: f.CompanyName},
	}
}

// ToPatch builds the update payload for an existing user.
func (f UserForm) ToPatch() Patch {
	name, username, email, phone := f.Name, f.Username, f.Email, f.Phone
	return Patch{
		Name:     &name,
		Username: &username,
		Email:    &email,
		Phone:    &phone,
		Company:  &Company{Name: f.CompanyName},
	}
}
