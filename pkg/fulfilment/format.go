package fulfilment

import "strings"

// FormatPostcode normalizes a postcode to the canonical outward/inward split:
// all spaces stripped, uppercased, then one space re-inserted before the
// final three characters. Inputs of three or fewer characters are returned
// normalized but unsplit.
func FormatPostcode(postcode string) string {
	normalized := strings.ToUpper(strings.ReplaceAll(postcode, " ", ""))
	if len(normalized) <= 3 {
		return normalized
	}
	split := len(normalized) - 3
	return normalized[:split] + " " + normalized[split:]
}

// FormatDeliveryInstructions replaces every double-quote with a single-quote
// so a quoted CSV field can't embed quote-comma sequences that confuse
// downstream parsers.
func FormatDeliveryInstructions(instructions string) string {
	return strings.ReplaceAll(instructions, `"`, "'")
}

// FullName joins title, first and last name with single spaces. A first name
// of exactly "." is a placeholder from the source system and is dropped.
func FullName(title, firstName, lastName string) string {
	firstName = strings.TrimSpace(firstName)
	if firstName == "." {
		firstName = ""
	}

	parts := make([]string, 0, 3)
	for _, p := range []string{strings.TrimSpace(title), firstName, strings.TrimSpace(lastName)} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}
