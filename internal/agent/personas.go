package agent

import (
	"context"
	"fmt"

	"rafiq/internal/models"
)

// Persona describes one tutor agent shown to families
type Persona struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Subject    models.Subject `json:"subject"`
	Style      string         `json:"style"`
	Voice      string         `json:"voice"`
	Avatar     string         `json:"avatar"`
	Language   models.Language `json:"language"`
	FocusAreas []string       `json:"focusAreas"`
}

var personas = []Persona{
	{
		ID:         "arabic",
		Name:       "الأستاذ فصيح",
		Subject:    models.SubjectArabic,
		Style:      "warm",
		Voice:      "male_ar",
		Avatar:     "/avatars/arabic.png",
		Language:   models.LanguageArabic,
		FocusAreas: []string{"letters", "vocabulary", "reading"},
	},
	{
		ID:         "english",
		Name:       "Miss Emily",
		Subject:    models.SubjectEnglish,
		Style:      "cheerful",
		Voice:      "female_en",
		Avatar:     "/avatars/english.png",
		Language:   models.LanguageEnglish,
		FocusAreas: []string{"phonics", "vocabulary", "conversation"},
	},
	{
		ID:         "islamic",
		Name:       "الشيخ نور",
		Subject:    models.SubjectIslamic,
		Style:      "gentle",
		Voice:      "male_ar",
		Avatar:     "/avatars/islamic.png",
		Language:   models.LanguageArabic,
		FocusAreas: []string{"values", "stories", "duas"},
	},
}

// Personas returns the tutor catalog
func Personas() []Persona {
	out := make([]Persona, len(personas))
	copy(out, personas)
	return out
}

// PersonaByID looks up a tutor, nil when unknown
func PersonaByID(id string) *Persona {
	for i := range personas {
		if personas[i].ID == id {
			p := personas[i]
			return &p
		}
	}
	return nil
}

// PersonaForSubject returns the tutor teaching a subject, nil when none
func PersonaForSubject(subject models.Subject) *Persona {
	for i := range personas {
		if personas[i].Subject == subject {
			p := personas[i]
			return &p
		}
	}
	return nil
}

// Scripted is the built-in responder used when no remote tutoring
// service is configured. Replies are canned per persona.
type Scripted struct{}

// NewScripted creates the built-in scripted responder
func NewScripted() *Scripted {
	return &Scripted{}
}

// Reply produces a canned persona reply
func (s *Scripted) Reply(_ context.Context, req ReplyRequest) (*Reply, error) {
	p := PersonaByID(req.AgentID)
	if p == nil {
		return nil, ErrAgentUnavailable
	}

	name := req.ChildName
	if name == "" {
		name = "يا بني"
	}

	var content string
	var suggestions []string
	switch p.ID {
	case "arabic":
		content = fmt.Sprintf("أهلاً وسهلاً %s! أنا الأستاذ فصيح وأحب أن أساعدك في تعلم اللغة العربية. شكراً لك على رسالتك: '%s'. هل تريد أن نتعلم حروفاً جديدة معاً؟", name, req.Content)
		suggestions = []string{"احكي لي عن الحروف", "أريد أن أتعلم كلمات جديدة", "هل يمكنك مساعدتي؟"}
	case "english":
		content = fmt.Sprintf("Hello there %s! I'm Miss Emily and I'm excited to help you learn English! You said: '%s'. That's wonderful! Should we learn some new words together?", name, req.Content)
		suggestions = []string{"Tell me about letters", "I want to learn new words", "Can you help me?"}
	case "islamic":
		content = fmt.Sprintf("السلام عليكم %s! أنا الشيخ نور وأحب أن أعلمك عن ديننا الجميل. رسالتك: '%s' جميلة جداً. هل تريد أن نتعلم عن الصدق والأمانة؟", name, req.Content)
		suggestions = []string{"احكي لي قصة", "أريد أن أتعلم دعاء", "هل يمكنك مساعدتي؟"}
	}

	return &Reply{
		AgentID:     p.ID,
		AgentName:   p.Name,
		Content:     content,
		ContentType: "text",
		Suggestions: suggestions,
	}, nil
}

var _ Tutor = (*Scripted)(nil)
