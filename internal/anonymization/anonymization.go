// Package anonymization handles the reversible side of the PII masking
// pipeline: flattening a replacement mapping into the placeholder list handed
// to the generation service, and substituting placeholders back to their
// original values in the generated reply.
package anonymization

import (
	"sort"
	"strings"
)

// Replacements maps a PII category ("names", "locations", "dates") to an
// ordered sequence of single-entry placeholder-to-value maps, as returned by
// the anonymization service. Placeholder tokens are unique across the whole
// mapping for one anonymization call.
type Replacements map[string][]map[string]string

// NamePlaceholder is the reserved token the generation prompt uses for the
// customer's surname when it is known out-of-band and was never part of the
// anonymized text.
const NamePlaceholder = "[NAMEPLACEHOLDER]"

// PlaceholderKeys flattens the mapping into the list of placeholder tokens
// present. Duplicates are preserved as given. Categories are walked in sorted
// name order so the list is deterministic; tokens are unique per call, so the
// order never affects substitution correctness.
func PlaceholderKeys(replacements Replacements) []string {
	placeholders := []string{}
	for _, category := range sortedCategories(replacements) {
		for _, entry := range replacements[category] {
			for placeholder := range entry {
				placeholders = append(placeholders, placeholder)
			}
		}
	}
	return placeholders
}

// Deanonymize substitutes every placeholder token in text back to its
// original value. When nachname is non-empty, a synthetic NamePlaceholder
// entry is folded into the "names" category first. Each entry performs a
// single left-to-right first-occurrence replace; tokens absent from the text
// are a no-op, and tokens in the text that are absent from the mapping are
// left verbatim.
func Deanonymize(text string, replacements Replacements, nachname string) string {
	if nachname != "" {
		merged := make(Replacements, len(replacements)+1)
		for category, entries := range replacements {
			merged[category] = entries
		}
		names := make([]map[string]string, 0, len(replacements["names"])+1)
		names = append(names, replacements["names"]...)
		names = append(names, map[string]string{NamePlaceholder: nachname})
		merged["names"] = names
		replacements = merged
	}

	for _, category := range sortedCategories(replacements) {
		for _, entry := range replacements[category] {
			for placeholder, value := range entry {
				text = strings.Replace(text, placeholder, value, 1)
			}
		}
	}

	return text
}

func sortedCategories(replacements Replacements) []string {
	categories := make([]string, 0, len(replacements))
	for category := range replacements {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
