package api

import (
	"net/url"

	"github.com/phrazzld/present-ai/internal/domain"
)

// FindGiftIdeasRequest is the recipient description submitted by the form
// or the JSON API. Every field is optional free text passed to the prompt
// as typed; the limits are well above anything a person types and only
// guard against oversized prompts.
type FindGiftIdeasRequest struct {
	Name               string `json:"name"               validate:"max=500"`
	Age                string `json:"age"                validate:"max=100"`
	Gender             string `json:"gender"             validate:"max=200"`
	Relationship       string `json:"relationship"       validate:"max=200"`
	CustomRelationship string `json:"customRelationship" validate:"max=500"`
	Hobbies            string `json:"hobbies"            validate:"max=2000"`
	Personality        string `json:"personality"        validate:"max=200"`
	CustomPersonality  string `json:"customPersonality"  validate:"max=500"`
	Budget             string `json:"budget"             validate:"max=100"`
	Currency           string `json:"currency"           validate:"max=50"`
	Occasion           string `json:"occasion"           validate:"max=200"`
	CustomOccasion     string `json:"customOccasion"     validate:"max=500"`
}

// requestFromForm reads a FindGiftIdeasRequest from url-encoded form values.
// Field names match the JSON names.
func requestFromForm(values url.Values) FindGiftIdeasRequest {
	return FindGiftIdeasRequest{
		Name:               values.Get("name"),
		Age:                values.Get("age"),
		Gender:             values.Get("gender"),
		Relationship:       values.Get("relationship"),
		CustomRelationship: values.Get("customRelationship"),
		Hobbies:            values.Get("hobbies"),
		Personality:        values.Get("personality"),
		CustomPersonality:  values.Get("customPersonality"),
		Budget:             values.Get("budget"),
		Currency:           values.Get("currency"),
		Occasion:           values.Get("occasion"),
		CustomOccasion:     values.Get("customOccasion"),
	}
}

// FormState converts the request into the domain form. This is the only
// place the "Others" select value is interpreted.
func (r FindGiftIdeasRequest) FormState() domain.FormState {
	return domain.FormState{
		Name:         r.Name,
		Age:          r.Age,
		Gender:       r.Gender,
		Relationship: domain.ChoiceFromInput(r.Relationship, r.CustomRelationship),
		Hobbies:      r.Hobbies,
		Personality:  domain.ChoiceFromInput(r.Personality, r.CustomPersonality),
		Budget:       r.Budget,
		Currency:     r.Currency,
		Occasion:     domain.ChoiceFromInput(r.Occasion, r.CustomOccasion),
	}
}

// formResponse renders a domain form back into request shape.
func formResponse(f domain.FormState) FindGiftIdeasRequest {
	return FindGiftIdeasRequest{
		Name:               f.Name,
		Age:                f.Age,
		Gender:             f.Gender,
		Relationship:       f.Relationship.Selected(),
		CustomRelationship: f.Relationship.CustomText(),
		Hobbies:            f.Hobbies,
		Personality:        f.Personality.Selected(),
		CustomPersonality:  f.Personality.CustomText(),
		Budget:             f.Budget,
		Currency:           f.CurrencyOrDefault(),
		Occasion:           f.Occasion.Selected(),
		CustomOccasion:     f.Occasion.CustomText(),
	}
}

// GiftIdeaResponse is one suggestion as returned by the JSON API.
type GiftIdeaResponse struct {
	Name            string `json:"name"`
	Appropriateness string `json:"appropriateness"`
	Relation        string `json:"relation"`
	PriceRange      string `json:"priceRange"`
}

// SessionResponse is the JSON view of a visitor session.
type SessionResponse struct {
	// Phase is the view to show: "form" or "results"
	Phase string `json:"phase"`

	// Loading is true while a generation is in flight
	Loading bool `json:"loading"`

	RequestCount int                  `json:"requestCount"`
	Error        string               `json:"error,omitempty"`
	Form         FindGiftIdeasRequest `json:"form"`
	Ideas        []GiftIdeaResponse   `json:"ideas"`
}

// newSessionResponse converts a session for the JSON API.
func newSessionResponse(s domain.Session) SessionResponse {
	ideas := make([]GiftIdeaResponse, 0, len(s.Ideas))
	for _, idea := range s.Ideas {
		ideas = append(ideas, GiftIdeaResponse{
			Name:            idea.Name,
			Appropriateness: idea.Appropriateness,
			Relation:        idea.Relation,
			PriceRange:      idea.PriceRange,
		})
	}

	return SessionResponse{
		Phase:        string(s.View()),
		Loading:      s.Loading(),
		RequestCount: s.RequestCount,
		Error:        s.Error,
		Form:         formResponse(s.Form),
		Ideas:        ideas,
	}
}
