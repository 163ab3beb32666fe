package generation

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/phrazzld/present-ai/internal/domain"
)

// Defaults used when the free-text fallback cannot find a field.
const (
	DefaultAppropriateness = "Not specified"
	DefaultRelation        = "Not specified"
	DefaultPriceRange      = "Price not specified"
)

// Names reported by Parse for the strategy that produced the result.
const (
	StrategyStrictJSON   = "strict_json"
	StrategyEmbeddedJSON = "embedded_json"
	StrategySections     = "sections"
)

var (
	// embeddedArrayRegex is greedy: from the first '[' to the last ']'.
	embeddedArrayRegex = regexp.MustCompile(`\[[\s\S]*\]`)
	// A line-leading "<n>." marks a section unless a digit follows, as in "5.00 USD".
	sectionMarkerRegex = regexp.MustCompile(`(?m)Gift \d+:|^\d+\.(?:\D|$)`)
	leadingMarkerRegex = regexp.MustCompile(`^(?:Gift \d+:|\d+\.)`)
)

// parseStrategy turns model output into ideas, reporting whether it applied.
type parseStrategy struct {
	name  string
	parse func(text string) ([]domain.GiftIdea, bool)
}

// strategies are tried in order of decreasing confidence.
var strategies = []parseStrategy{
	{name: StrategyStrictJSON, parse: parseStrictJSON},
	{name: StrategyEmbeddedJSON, parse: parseEmbeddedJSON},
	{name: StrategySections, parse: parseSections},
}

// ParseGiftIdeas converts a model reply into gift ideas. It never fails;
// text with no recognisable structure yields best-effort records.
func ParseGiftIdeas(text string) []domain.GiftIdea {
	ideas, _ := Parse(text)
	return ideas
}

// Parse is ParseGiftIdeas that also names the strategy that matched.
func Parse(text string) ([]domain.GiftIdea, string) {
	for _, s := range strategies {
		if ideas, ok := s.parse(text); ok {
			return ideas, s.name
		}
	}
	return []domain.GiftIdea{}, ""
}

func parseStrictJSON(text string) ([]domain.GiftIdea, bool) {
	return decodeArray(strings.TrimSpace(text))
}

func parseEmbeddedJSON(text string) ([]domain.GiftIdea, bool) {
	match := embeddedArrayRegex.FindString(text)
	if match == "" {
		return nil, false
	}
	return decodeArray(match)
}

// decodeArray reads a JSON array of idea objects. Field names match
// case-insensitively and scalar values of any JSON type are kept as text,
// so a numeric price does not reject the whole reply.
func decodeArray(raw string) ([]domain.GiftIdea, bool) {
	if !strings.HasPrefix(raw, "[") {
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &elems); err != nil {
		return nil, false
	}

	ideas := make([]domain.GiftIdea, 0, len(elems))
	for _, elem := range elems {
		if idea, ok := decodeIdea(elem); ok {
			ideas = append(ideas, idea)
		}
	}
	return ideas, true
}

// decodeIdea converts one array element. A bare scalar becomes the name;
// null and nested arrays are skipped.
func decodeIdea(elem json.RawMessage) (domain.GiftIdea, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(elem, &fields); err != nil {
		if trimmed := bytes.TrimSpace(elem); len(trimmed) > 0 && trimmed[0] == '[' {
			return domain.GiftIdea{}, false
		}
		name := jsonText(elem)
		return domain.GiftIdea{Name: name}, name != ""
	}
	if fields == nil {
		return domain.GiftIdea{}, false
	}

	var idea domain.GiftIdea
	for key, value := range fields {
		switch strings.ToLower(key) {
		case "name":
			idea.Name = jsonText(value)
		case "appropriateness":
			idea.Appropriateness = jsonText(value)
		case "relation":
			idea.Relation = jsonText(value)
		case "pricerange":
			idea.PriceRange = jsonText(value)
		}
	}
	return idea, true
}

// jsonText renders a JSON value as display text: strings unquoted, null
// empty, numbers and booleans as written, objects and arrays compacted.
func jsonText(value json.RawMessage) string {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case 'n':
		return ""
	case '{', '[':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err == nil {
			return buf.String()
		}
	}
	return string(trimmed)
}

// parseSections splits free text at "Gift <n>:" or a line-leading "<n>."
// and reads name, appropriateness, relation and price from the first four
// non-empty lines of each section. Text before the first marker, such as
// "Here are some ideas:", is dropped rather than turned into a record of
// defaults. Text without any marker is treated as a single section.
func parseSections(text string) ([]domain.GiftIdea, bool) {
	sections := splitSections(text)

	ideas := make([]domain.GiftIdea, 0, len(sections))
	for _, section := range sections {
		lines := nonEmptyLines(section)
		if len(lines) == 0 {
			continue
		}
		ideas = append(ideas, domain.GiftIdea{
			Name:            strings.TrimSpace(leadingMarkerRegex.ReplaceAllString(lines[0], "")),
			Appropriateness: lineOr(lines, 1, DefaultAppropriateness),
			Relation:        lineOr(lines, 2, DefaultRelation),
			PriceRange:      lineOr(lines, 3, DefaultPriceRange),
		})
	}
	return ideas, true
}

func splitSections(text string) []string {
	bounds := sectionMarkerRegex.FindAllStringIndex(text, -1)
	if len(bounds) == 0 {
		return []string{text}
	}

	sections := make([]string, 0, len(bounds))
	for i, b := range bounds {
		end := len(text)
		if i+1 < len(bounds) {
			end = bounds[i+1][0]
		}
		sections = append(sections, text[b[0]:end])
	}
	return sections
}

func nonEmptyLines(section string) []string {
	var lines []string
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func lineOr(lines []string, i int, fallback string) string {
	if i < len(lines) {
		return lines[i]
	}
	return fallback
}
