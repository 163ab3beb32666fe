package domain

// OtherOption is the select value that switches a Choice to free text.
const OtherOption = "Others"

// DefaultCurrency is used when the form does not name a currency.
const DefaultCurrency = "USD"

// Option lists offered by the form. They are hints for rendering only;
// values outside these lists are passed through unchanged.
var (
	GenderOptions       = []string{"Male", "Female", "Non-binary", "Prefer not to say"}
	RelationshipOptions = []string{"Friend", "Sibling", "Parent", "Partner", "Colleague", OtherOption}
	PersonalityOptions  = []string{"Cheerful", "Introverted", "Adventurous", "Creative", OtherOption}
	OccasionOptions     = []string{"Birthday", "Anniversary", "Christmas", "Graduation", OtherOption}
	CurrencyOptions     = []string{"USD", "EUR", "GBP", "INR"}
)

// choiceKind tags the variant held by a Choice.
type choiceKind uint8

const (
	choicePreset choiceKind = iota
	choiceCustom
)

// Choice is either one of the preset select values or custom text the user
// typed after picking "Others". The zero value is an empty preset.
type Choice struct {
	kind  choiceKind
	value string
}

// Preset returns a Choice holding a select value.
func Preset(value string) Choice {
	return Choice{kind: choicePreset, value: value}
}

// Custom returns a Choice holding free text.
func Custom(text string) Choice {
	return Choice{kind: choiceCustom, value: text}
}

// ChoiceFromInput builds a Choice from the raw select value and its
// companion text field.
func ChoiceFromInput(selected, custom string) Choice {
	if selected == OtherOption {
		return Custom(custom)
	}
	return Preset(selected)
}

// IsCustom reports whether the choice holds free text.
func (c Choice) IsCustom() bool {
	return c.kind == choiceCustom
}

// Resolve returns the value that goes into the prompt.
func (c Choice) Resolve() string {
	return c.value
}

// Selected returns the select value to render for this choice.
func (c Choice) Selected() string {
	if c.IsCustom() {
		return OtherOption
	}
	return c.value
}

// CustomText returns the free text, or "" for a preset.
func (c Choice) CustomText() string {
	if c.IsCustom() {
		return c.value
	}
	return ""
}

// FormState holds everything the visitor entered about the recipient.
// Age and Budget are kept as typed; nothing here is validated.
type FormState struct {
	Name         string
	Age          string
	Gender       string
	Relationship Choice
	Hobbies      string
	Personality  Choice
	Budget       string
	Currency     string
	Occasion     Choice
}

// CurrencyOrDefault returns the selected currency, falling back to USD.
func (f FormState) CurrencyOrDefault() string {
	if f.Currency == "" {
		return DefaultCurrency
	}
	return f.Currency
}

// BudgetWithCurrency formats the budget the way the prompt expects it.
func (f FormState) BudgetWithCurrency() string {
	return f.Budget + " " + f.CurrencyOrDefault()
}

// IsZero reports whether nothing has been entered.
func (f FormState) IsZero() bool {
	return f == FormState{}
}
