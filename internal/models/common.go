package models

// Subject identifies a learning subject
type Subject string

const (
	SubjectArabic  Subject = "arabic"
	SubjectEnglish Subject = "english"
	SubjectIslamic Subject = "islamic"
)

// Subjects lists all valid subjects
var Subjects = []Subject{SubjectArabic, SubjectEnglish, SubjectIslamic}

// AgeGroup is one of the three fixed age bands
type AgeGroup string

const (
	AgeGroup4to6   AgeGroup = "4-6"
	AgeGroup7to9   AgeGroup = "7-9"
	AgeGroup10to12 AgeGroup = "10-12"
)

// AgeGroups lists all valid age bands
var AgeGroups = []AgeGroup{AgeGroup4to6, AgeGroup7to9, AgeGroup10to12}

// Language is a supported interface language
type Language string

const (
	LanguageArabic  Language = "ar"
	LanguageEnglish Language = "en"
)

// Languages lists all supported languages
var Languages = []Language{LanguageArabic, LanguageEnglish}

// Difficulty is a lesson difficulty / child learning level
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Difficulties lists all valid difficulty levels
var Difficulties = []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}

// ValidSubject reports whether s is a known subject
func ValidSubject(s string) bool {
	for _, v := range Subjects {
		if string(v) == s {
			return true
		}
	}
	return false
}

// ValidLanguage reports whether s is a supported language
func ValidLanguage(s string) bool {
	for _, v := range Languages {
		if string(v) == s {
			return true
		}
	}
	return false
}

// ValidDifficulty reports whether s is a known difficulty level
func ValidDifficulty(s string) bool {
	for _, v := range Difficulties {
		if string(v) == s {
			return true
		}
	}
	return false
}
