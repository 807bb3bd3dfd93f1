package schema

import "rafiq/internal/models"

// UpdateGuardianRequest is a partial profile update. Absent fields
// leave the stored value unchanged; present-but-invalid fields fail.
type UpdateGuardianRequest struct {
	FirstName         *string `json:"firstName"`
	LastName          *string `json:"lastName"`
	PreferredLanguage *string `json:"preferredLanguage"`
	Timezone          *string `json:"timezone"`
}

// GuardianPatch is a validated partial update
type GuardianPatch struct {
	FirstName         *string
	LastName          *string
	PreferredLanguage *models.Language
	Timezone          *string
}

// Validate checks only the fields that are present
func (r UpdateGuardianRequest) Validate() (GuardianPatch, error) {
	var v violations
	var out GuardianPatch

	if r.FirstName != nil {
		name := v.requireString("firstName", *r.FirstName, 2)
		out.FirstName = &name
	}
	if r.LastName != nil {
		name := v.requireString("lastName", *r.LastName, 2)
		out.LastName = &name
	}
	if r.PreferredLanguage != nil {
		lang := v.language("preferredLanguage", *r.PreferredLanguage)
		out.PreferredLanguage = &lang
	}
	if r.Timezone != nil {
		tz := v.requireString("timezone", *r.Timezone, 1)
		out.Timezone = &tz
	}

	if err := v.err(); err != nil {
		return GuardianPatch{}, err
	}
	return out, nil
}
