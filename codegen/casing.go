package codegen

import (
	"strings"
	"unicode"
)

// ToPascalCase converts snake_case to PascalCase. Empty segments
// contribute nothing, so the function is total over any input.
func ToPascalCase(s string) string {
	var result strings.Builder
	for _, part := range strings.Split(s, "_") {
		if len(part) == 0 {
			continue
		}
		runes := []rune(part)
		result.WriteRune(unicode.ToUpper(runes[0]))
		result.WriteString(string(runes[1:]))
	}
	return result.String()
}

// ToCamelCase converts snake_case to camelCase.
//
// Together with ToPascalCase this is the sole mechanism mapping schema
// identifiers to generated-code identifiers; the conventions must match
// what the Anchor TypeScript runtime expects for method and account
// names.
func ToCamelCase(s string) string {
	pascal := ToPascalCase(s)
	if len(pascal) == 0 {
		return pascal
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
