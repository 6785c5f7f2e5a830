package classifier

import "regexp"

// Pattern groups scanned against transcript snippets. Each group counts
// how many of its member patterns match, not how many times they match.
var (
	severeHarassmentPatterns = compile(
		`\b(kill|die|worthless|useless|pathetic|hate\s+you)\b`,
		`\b(shut\s+up|go\s+away|nobody\s+cares)\b`,
		`\b(stupid|dumb|idiot|moron)\b`,
	)

	selfHarmPatterns = compile(
		`\b(hurt\s+yourself|harm\s+yourself|cut\s+yourself)\b`,
		`\b(suicide|kill\s+yourself|end\s+it)\b`,
		`\b(you\s+should\s+die|better\s+off\s+dead)\b`,
	)

	jailbreakPatterns = compile(
		`\b(ignore|forget|disregard)\s+(your|all|previous)\s+(rules|instructions|guidelines)\b`,
		`\b(pretend|act\s+like|roleplay)\s+(you\s+are|you're)\s+(not|different)\b`,
		`\bdan\s+mode\b`,
		`\b(developer|admin|sudo)\s+mode\b`,
	)

	identityViolationPatterns = compile(
		`\b(you\s+are\s+not|you're\s+not)\s+(an?\s+)?ai\b`,
		`\b(you\s+are|you're)\s+(a\s+)?human\b`,
		`\b(stop\s+being|don't\s+be)\s+(an?\s+)?ai\b`,
	)
)

func compile(exprs ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		patterns[i] = regexp.MustCompile(`(?i)` + expr)
	}
	return patterns
}

// countMatches returns the number of patterns in the group that match
// the text at least once.
func countMatches(text string, patterns []*regexp.Regexp) int {
	count := 0
	for _, p := range patterns {
		if p.MatchString(text) {
			count++
		}
	}
	return count
}
