// Package textfilter cleans oracle-written prose before it reaches players.
package textfilter

import (
	"regexp"
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Ratings at or below PG13 get their language softened.
var filteredRatings = []string{"G", "PG", "PG13", "PG-13"}

// ShouldFilter reports whether narration for rating needs softening.
func ShouldFilter(rating string) bool {
	return slices.Contains(filteredRatings, strings.ToUpper(strings.TrimSpace(rating)))
}

// Longer phrases come first so "bullshit" is not rewritten as "bull" + "shoot".
var replacements = [][2]string{
	{"motherfucker", "mother-trucker"},
	{"jesus christ", "jeez"},
	{"goddamn", "gosh-dang"},
	{"bullshit", "baloney"},
	{"horseshit", "nonsense"},
	{"dipshit", "dummy"},
	{"dumbass", "dummy"},
	{"asshole", "jerk"},
	{"shithead", "jerk"},
	{"dickhead", "jerk"},
	{"douchebag", "jerk"},
	{"bastard", "jerk"},
	{"bitch", "jerk"},
	{"fuck", "fudge"},
	{"shit", "shoot"},
	{"damn", "dang"},
	{"hell", "heck"},
	{"crap", "crud"},
	{"piss", "ticked"},
	{"ass", "butt"},
}

var (
	markdownEmphasis = regexp.MustCompile(`(\*\*|__|\*|` + "`" + `)([^*_` + "`" + `]+)(\*\*|__|\*|` + "`" + `)`)
	markdownHeading  = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	blankRuns        = regexp.MustCompile(`\n{3,}`)
)

type rule struct {
	re          *regexp.Regexp
	replacement string
}

// Filter normalizes narration. The zero value is not usable; call New.
type Filter struct {
	profanity bool
	rules     []rule
	title     cases.Caser
}

// New builds a filter. With soften set, profanity is swapped for milder
// words that keep the original casing.
func New(soften bool) *Filter {
	f := &Filter{
		profanity: soften,
		title:     cases.Title(language.English),
	}
	if soften {
		for _, r := range replacements {
			f.rules = append(f.rules, rule{
				re:          regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(r[0]) + `\b`),
				replacement: r[1],
			})
		}
	}
	return f
}

// Clean strips markdown the log can't render, squeezes blank lines and
// softens language when enabled.
func (f *Filter) Clean(text string) string {
	text = markdownHeading.ReplaceAllString(text, "")
	text = markdownEmphasis.ReplaceAllString(text, "$2")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	for _, r := range f.rules {
		text = r.re.ReplaceAllStringFunc(text, func(match string) string {
			return f.matchCase(match, r.replacement)
		})
	}
	return text
}

// ContainsProfanity reports whether Clean would soften text.
func (f *Filter) ContainsProfanity(text string) bool {
	return slices.ContainsFunc(f.rules, func(r rule) bool { return r.re.MatchString(text) })
}

func (f *Filter) matchCase(original, replacement string) string {
	switch {
	case strings.ToUpper(original) == original:
		return strings.ToUpper(replacement)
	case strings.ToLower(original) == original:
		return replacement
	case f.title.String(strings.ToLower(original)) == original:
		return f.title.String(replacement)
	}

	// Mixed case: copy it rune by rune, lowercasing any overflow.
	orig := []rune(original)
	out := []rune(replacement)
	for i, r := range out {
		if i < len(orig) && unicode.IsUpper(orig[i]) {
			out[i] = unicode.ToUpper(r)
		} else {
			out[i] = unicode.ToLower(r)
		}
	}
	return string(out)
}
