package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rafiq/internal/models"
)

func validRegister() RegisterGuardianRequest {
	return RegisterGuardianRequest{
		Email:           "parent@example.com",
		Password:        "secret123",
		ConfirmPassword: "secret123",
		FirstName:       "Layla",
		LastName:        "Hassan",
		TermsAccepted:   true,
	}
}

func TestRegisterGuardianDefaults(t *testing.T) {
	out, err := validRegister().Validate()
	require.NoError(t, err)

	assert.Equal(t, models.LanguageArabic, out.PreferredLanguage)
	assert.Equal(t, "Asia/Dubai", out.Timezone)
	assert.Equal(t, "parent@example.com", out.Email)
}

func TestRegisterGuardianExplicitValuesKept(t *testing.T) {
	req := validRegister()
	req.PreferredLanguage = "en"
	req.Timezone = "Europe/London"

	out, err := req.Validate()
	require.NoError(t, err)

	assert.Equal(t, models.LanguageEnglish, out.PreferredLanguage)
	assert.Equal(t, "Europe/London", out.Timezone)
}

func TestRegisterGuardianCollectsAllViolations(t *testing.T) {
	req := RegisterGuardianRequest{
		Email:           "not-an-email",
		Password:        "short",
		ConfirmPassword: "different",
		FirstName:       "L",
		LastName:        "",
		TermsAccepted:   false,
	}

	_, err := req.Validate()
	require.Error(t, err)

	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.True(t, verrs.Has("email"))
	assert.True(t, verrs.Has("password"))
	assert.True(t, verrs.Has("confirmPassword"))
	assert.True(t, verrs.Has("firstName"))
	assert.True(t, verrs.Has("lastName"))
	assert.True(t, verrs.Has("termsAccepted"))
}

func TestRegisterGuardianPasswordMismatchIsSingleError(t *testing.T) {
	req := validRegister()
	req.ConfirmPassword = "secret1234"

	_, err := req.Validate()
	require.Error(t, err)

	verrs, ok := AsValidationErrors(err)
	require.True(t, ok)
	assert.Len(t, verrs, 1)
	assert.Equal(t, "confirmPassword", verrs[0].Field)
}

func TestRegisterGuardianInvalidLanguage(t *testing.T) {
	req := validRegister()
	req.PreferredLanguage = "fr"

	_, err := req.Validate()
	require.Error(t, err)

	verrs, _ := AsValidationErrors(err)
	assert.True(t, verrs.Has("preferredLanguage"))
}

func TestLoginRequestValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{"valid", "a@b.com", "longenough", false},
		{"bad email", "nope", "longenough", true},
		{"short password", "a@b.com", "short", true},
		{"both invalid", "nope", "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoginRequest{Email: tt.email, Password: tt.password}.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRefreshTokenRequired(t *testing.T) {
	_, err := RefreshTokenRequest{}.Validate()
	require.Error(t, err)

	out, err := RefreshTokenRequest{RefreshToken: "some-token"}.Validate()
	require.NoError(t, err)
	assert.Equal(t, "some-token", out.RefreshToken)
}
