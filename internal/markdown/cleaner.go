package markdown

import "regexp"

// styleToken matches one class token of the closed style vocabulary used by
// the cheatsheet sources.
const styleToken = `\.(?:` +
	`(?:cols|rows|col-span|row-span)-\d+` +
	`|primary|secondary|wrap|shortcuts|bold-first|plus-first|left-text|no-wrap|show-header|headers|link-arrow` +
	`|marker-(?:none|round|timeline)` +
	`|style-[^\s}]+` +
	`)`

type cleanRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// cleanRules run in order over the whole text. The set of recognised
// annotations is closed; anything else passes through untouched.
var cleanRules = []cleanRule{
	// {.cols-2 .style-list}
	{regexp.MustCompile(`\{\s*` + styleToken + `(?:\s+` + styleToken + `)*\s*\}`), ""},
	// <!-- prettier-ignore --> and <!-- rehype:... -->
	{regexp.MustCompile(`<!--\s*(?:prettier-ignore|rehype:[^>]+)\s*-->`), ""},
	// See: [Other](#other)
	{regexp.MustCompile(`(?i:see):\s*\[[^\]]+\]\(#[^)]+\)`), ""},
	{regexp.MustCompile(`data-tooltip=`), ""},
	{regexp.MustCompile(`(?s)<code>(.*?)</code>`), "`${1}`"},
	{regexp.MustCompile(`(?s)<yel>(.*?)</yel>`), "${1}"},
}

// Clean strips the custom markdown-extension annotations from text.
//
// Every rule shortens the text when it matches, so the rule list is applied
// until a pass leaves the text unchanged. A removal that exposes a new match
// (a directive nested inside another) is therefore cleaned as well, and
// Clean(Clean(x)) == Clean(x).
func Clean(text string) string {
	for {
		cleaned := applyRules(text)
		if cleaned == text {
			return cleaned
		}
		text = cleaned
	}
}

func applyRules(text string) string {
	for _, rule := range cleanRules {
		text = rule.pattern.ReplaceAllString(text, rule.replacement)
	}
	return text
}
