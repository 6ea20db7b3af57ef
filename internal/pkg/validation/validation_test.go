package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone("9876543210"))
	assert.False(t, IsPhone("987654321"))
	assert.False(t, IsPhone("98765432100"))
	assert.False(t, IsPhone("98765abc10"))
	assert.False(t, IsPhone("+919876543210"))
	assert.False(t, IsPhone(""))
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail("donor@example.com"))
	assert.True(t, IsEmail("a.b+tag@sub.domain.org"))
	assert.False(t, IsEmail("not-an-email"))
	assert.False(t, IsEmail("missing@tld"))
	assert.False(t, IsEmail("@example.com"))
}

func TestIsOTP(t *testing.T) {
	assert.True(t, IsOTP("0421"))
	assert.False(t, IsOTP("421"))
	assert.False(t, IsOTP("04211"))
	assert.False(t, IsOTP("04a1"))
}

func TestSignupFormValid(t *testing.T) {
	form := SignupForm{
		Name:            "Asha Patel",
		Email:           "asha@example.com",
		Phone:           "9876543210",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
	assert.Empty(t, form.Validate())
}

func TestSignupFormErrors(t *testing.T) {
	form := SignupForm{
		Email:           "bad",
		Phone:           "123",
		Password:        "short",
		ConfirmPassword: "other",
	}
	errs := form.Validate()

	assert.Equal(t, "Name is required", errs["name"])
	assert.Equal(t, "Email is invalid", errs["email"])
	assert.Equal(t, "Phone must be 10 digits", errs["phone"])
	assert.Equal(t, "Password must be at least 6 characters", errs["password"])
	assert.Equal(t, "Passwords do not match", errs["confirm_password"])
}

func TestSignupFormMissingFields(t *testing.T) {
	errs := (&SignupForm{}).Validate()
	assert.Equal(t, "Email is required", errs["email"])
	assert.Equal(t, "Phone is required", errs["phone"])
}

func TestContactFormValidate(t *testing.T) {
	form := ContactForm{
		Name:    "Asha",
		Email:   "asha@example.com",
		Subject: "Pickup query",
		Message: "When is the next pickup?",
	}
	assert.Empty(t, form.Validate())

	errs := (&ContactForm{Email: "bad"}).Validate()
	assert.Equal(t, "Name is required", errs["name"])
	assert.Equal(t, "Email is invalid", errs["email"])
	assert.Equal(t, "Message is required", errs["message"])

	// Subject is optional
	errs = (&ContactForm{Name: "A", Email: "a@b.co", Message: "hi"}).Validate()
	assert.Empty(t, errs)
}
