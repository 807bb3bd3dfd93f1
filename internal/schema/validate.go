package schema

import (
	"regexp"
	"strings"
	"time"

	"rafiq/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// violations accumulates field errors while a request is checked.
// Normalized output is only produced when the collector stays empty,
// so defaults are never half-applied.
type violations struct {
	errs ValidationErrors
}

func (v *violations) add(field, constraint string, value interface{}) {
	v.errs = append(v.errs, ValidationError{Field: field, Constraint: constraint, Value: value})
}

func (v *violations) err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return v.errs
}

// requireString checks presence and a minimum length after trimming
func (v *violations) requireString(field, value string, minLen int) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		v.add(field, "is required", nil)
		return trimmed
	}
	if len([]rune(trimmed)) < minLen {
		v.add(field, "too short", value)
	}
	return trimmed
}

func (v *violations) email(field, value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		v.add(field, "is required", nil)
		return trimmed
	}
	if !emailRegex.MatchString(trimmed) {
		v.add(field, "invalid email format", value)
	}
	return trimmed
}

func (v *violations) intRange(field string, value, lo, hi int) {
	if value < lo || value > hi {
		v.add(field, "out of range", value)
	}
}

// datetime parses an RFC 3339 timestamp, recording a violation on failure
func (v *violations) datetime(field, value string) (time.Time, bool) {
	if value == "" {
		v.add(field, "is required", nil)
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		v.add(field, "invalid datetime", value)
		return time.Time{}, false
	}
	return t.UTC(), true
}

func (v *violations) uuid(field, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		v.add(field, "is required", nil)
		return trimmed
	}
	if !isUUID(trimmed) {
		v.add(field, "invalid uuid", value)
	}
	return trimmed
}

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

func isUUID(s string) bool {
	return uuidRegex.MatchString(s)
}

func (v *violations) language(field, value string) models.Language {
	if !models.ValidLanguage(value) {
		v.add(field, "must be one of ar, en", value)
		return ""
	}
	return models.Language(value)
}

func (v *violations) subject(field, value string) models.Subject {
	if !models.ValidSubject(value) {
		v.add(field, "must be one of arabic, english, islamic", value)
		return ""
	}
	return models.Subject(value)
}

func (v *violations) difficulty(field, value string) models.Difficulty {
	if !models.ValidDifficulty(value) {
		v.add(field, "must be one of beginner, intermediate, advanced", value)
		return ""
	}
	return models.Difficulty(value)
}

func (v *violations) subjects(field string, values []string) []models.Subject {
	out := make([]models.Subject, 0, len(values))
	for _, s := range values {
		if !models.ValidSubject(s) {
			v.add(field, "must be one of arabic, english, islamic", s)
			continue
		}
		out = append(out, models.Subject(s))
	}
	return out
}

// AgeGroupFor classifies a date of birth into one of the fixed bands.
// Returns false when the age falls outside 4-12 at the reference time.
func AgeGroupFor(dateOfBirth, at time.Time) (models.AgeGroup, bool) {
	years := at.Year() - dateOfBirth.Year()
	// Not yet had this year's birthday
	if at.YearDay() < dateOfBirth.YearDay() {
		years--
	}
	switch {
	case years >= 4 && years <= 6:
		return models.AgeGroup4to6, true
	case years >= 7 && years <= 9:
		return models.AgeGroup7to9, true
	case years >= 10 && years <= 12:
		return models.AgeGroup10to12, true
	default:
		return "", false
	}
}
