package schema

import "rafiq/internal/models"

// RegisterGuardianRequest is the guardian registration payload
type RegisterGuardianRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ConfirmPassword   string `json:"confirmPassword"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	PreferredLanguage string `json:"preferredLanguage"`
	Timezone          string `json:"timezone"`
	TermsAccepted     bool   `json:"termsAccepted"`
}

// NewGuardian is a validated, normalized registration
type NewGuardian struct {
	Email             string
	Password          string
	FirstName         string
	LastName          string
	PreferredLanguage models.Language
	Timezone          string
}

// Validate checks every field and returns either a fully normalized
// value or the complete list of violations
func (r RegisterGuardianRequest) Validate() (NewGuardian, error) {
	var v violations
	out := NewGuardian{
		PreferredLanguage: models.LanguageArabic,
		Timezone:          "Asia/Dubai",
	}

	out.Email = v.email("email", r.Email)
	if len(r.Password) < 8 {
		v.add("password", "must be at least 8 characters", nil)
	}
	out.Password = r.Password
	if r.ConfirmPassword != r.Password {
		v.add("confirmPassword", "passwords don't match", nil)
	}
	out.FirstName = v.requireString("firstName", r.FirstName, 2)
	out.LastName = v.requireString("lastName", r.LastName, 2)
	if r.PreferredLanguage != "" {
		out.PreferredLanguage = v.language("preferredLanguage", r.PreferredLanguage)
	}
	if r.Timezone != "" {
		out.Timezone = r.Timezone
	}
	if !r.TermsAccepted {
		v.add("termsAccepted", "terms must be accepted", nil)
	}

	if err := v.err(); err != nil {
		return NewGuardian{}, err
	}
	return out, nil
}

// LoginRequest is the guardian login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the login payload
func (r LoginRequest) Validate() (LoginRequest, error) {
	var v violations
	out := LoginRequest{Password: r.Password}
	out.Email = v.email("email", r.Email)
	if len(r.Password) < 8 {
		v.add("password", "must be at least 8 characters", nil)
	}
	if err := v.err(); err != nil {
		return LoginRequest{}, err
	}
	return out, nil
}

// RefreshTokenRequest carries a refresh token to be exchanged
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Validate checks the refresh payload
func (r RefreshTokenRequest) Validate() (RefreshTokenRequest, error) {
	var v violations
	if r.RefreshToken == "" {
		v.add("refreshToken", "is required", nil)
	}
	if err := v.err(); err != nil {
		return RefreshTokenRequest{}, err
	}
	return r, nil
}
