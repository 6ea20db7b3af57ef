package validation

import "regexp"

var (
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	otpRegex   = regexp.MustCompile(`^\d{4}$`)
)

// IsPhone reports whether s is a 10-digit phone number
func IsPhone(s string) bool {
	return phoneRegex.MatchString(s)
}

// IsEmail reports whether s looks like an email address
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// IsOTP reports whether s is a 4-digit OTP code
func IsOTP(s string) bool {
	return otpRegex.MatchString(s)
}

// SignupForm holds the signup fields checked before any datastore work
type SignupForm struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Validate returns an error map keyed by field name; empty map means valid.
// A non-empty map must stop the request before it reaches the service layer.
func (f *SignupForm) Validate() map[string]string {
	errs := map[string]string{}

	if f.Name == "" {
		errs["name"] = "Name is required"
	}
	if f.Email == "" {
		errs["email"] = "Email is required"
	} else if !IsEmail(f.Email) {
		errs["email"] = "Email is invalid"
	}
	if f.Phone == "" {
		errs["phone"] = "Phone is required"
	} else if !IsPhone(f.Phone) {
		errs["phone"] = "Phone must be 10 digits"
	}
	if len(f.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	if f.Password != f.ConfirmPassword {
		errs["confirm_password"] = "Passwords do not match"
	}

	return errs
}

// ContactForm holds the contact form fields
type ContactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Validate returns an error map keyed by field name; empty map means valid
func (f *ContactForm) Validate() map[string]string {
	errs := map[string]string{}

	if f.Name == "" {
		errs["name"] = "Name is required"
	}
	if f.Email == "" {
		errs["email"] = "Email is required"
	} else if !IsEmail(f.Email) {
		errs["email"] = "Email is invalid"
	}
	if f.Message == "" {
		errs["message"] = "Message is required"
	}

	return errs
}
