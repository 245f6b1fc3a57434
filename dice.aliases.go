package dice

import (
	"regexp"
)

// Alias patterns. The leading group keeps the alias from matching inside a
// variable name such as @DIS or a longer word.
var (
	advantagePattern    = aliasPattern(AliasAdvantage)
	disadvantagePattern = aliasPattern(AliasDisadvantage)
)

func aliasPattern(alias string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(^|[^@\w])` + alias + `(?:\s+d20)?\b`)
}

// ExpandAliases rewrites the adv and dis shorthands into notation.
// "adv", "adv d20" become 2d20kh1; "dis", "dis d20" become 2d20kl1.
func ExpandAliases(expression string) string {
	expanded := advantagePattern.ReplaceAllString(expression, "${1}"+AliasAdvantageNotation)
	return disadvantagePattern.ReplaceAllString(expanded, "${1}"+AliasDisadvantageNote)
}
