package domain

import "strings"

// GiftIdea is a single suggestion returned by the language model.
type GiftIdea struct {
	Name            string `json:"name"`
	Appropriateness string `json:"appropriateness"`
	Relation        string `json:"relation"`
	PriceRange      string `json:"priceRange"`
}

// Key returns the identity used for duplicate detection.
func (g GiftIdea) Key() string {
	return strings.ToLower(g.Name)
}

// SeenNames returns the set of keys for the given ideas.
func SeenNames(ideas []GiftIdea) map[string]struct{} {
	seen := make(map[string]struct{}, len(ideas))
	for _, idea := range ideas {
		seen[idea.Key()] = struct{}{}
	}
	return seen
}

// FilterUnseen returns the ideas whose lowercase name is not in seen,
// preserving order. Neither argument is modified.
func FilterUnseen(ideas []GiftIdea, seen map[string]struct{}) []GiftIdea {
	out := make([]GiftIdea, 0, len(ideas))
	for _, idea := range ideas {
		if _, ok := seen[idea.Key()]; ok {
			continue
		}
		out = append(out, idea)
	}
	return out
}
