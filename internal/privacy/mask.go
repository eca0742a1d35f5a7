// Package privacy redacts personal data on public views (KVKK).
package privacy

import "strings"

// Placeholder is returned when there is no name to mask.
const Placeholder = "******"

const maskRune = '*'

// MaskName keeps the first letter of every word: "Ahmet Yilmaz" -> "A**** Y*****".
// Single-letter words are kept as they are.
func MaskName(fullName string) string {
	parts := strings.Fields(fullName)
	if len(parts) == 0 || (len(parts) == 1 && strings.EqualFold(parts[0], "nan")) {
		return Placeholder
	}

	masked := make([]string, 0, len(parts))
	for _, p := range parts {
		r := []rune(p)
		if len(r) <= 1 {
			masked = append(masked, p)
			continue
		}
		masked = append(masked, string(r[0])+strings.Repeat(string(maskRune), len(r)-1))
	}
	return strings.Join(masked, " ")
}
