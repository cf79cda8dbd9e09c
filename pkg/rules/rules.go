// Package rules classifies and corrects street names.
//
// A rule set is an ordered list of regular-expression substitutions,
// grouped by variant (a locale pack such as "en" or "ru"). Sets can be
// built in code, loaded from YAML packs, or replaced entirely by a
// custom Corrector implementation.
package rules

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/streetlab/assist/pkg/errors"
)

// Variant selects which rule pack applies, typically a locale such as
// "en". Rules tagged with the empty variant apply under every variant.
type Variant string

// Correction is the result of running a name through a rule set.
type Correction struct {
	Value string
}

// Corrector maps a variant and a raw street name to its normalized
// form. Implementations must be pure: same inputs, same output.
type Corrector interface {
	Correct(v Variant, name string) (Correction, error)
}

// Rule is a single substitution: every match of the compiled pattern is
// replaced. Variant restricts the rule to one locale pack; empty means
// all packs.
type Rule struct {
	pattern *regexp.Regexp
	replace string
	variant Variant
}

// NewRule compiles a substitution rule.
func NewRule(pattern, replace string, variant Variant) (Rule, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, errors.NewConfigError("rules", "invalid pattern "+pattern, err)
	}
	return Rule{pattern: re, replace: replace, variant: variant}, nil
}

// appliesTo reports whether the rule covers the given variant.
func (r Rule) appliesTo(v Variant) bool {
	return r.variant == "" || r.variant == v
}

// Set is an ordered rule pack implementing Corrector.
type Set struct {
	rules      []Rule
	titleCaser *cases.Caser
	tidySpace  bool
}

// SetOption configures a Set.
type SetOption func(*Set)

// WithTitleCase normalizes casing for the given language before the
// substitution rules run.
func WithTitleCase(tag language.Tag) SetOption {
	return func(s *Set) {
		c := cases.Title(tag, cases.NoLower)
		s.titleCaser = &c
	}
}

// WithoutWhitespaceCleanup disables the built-in whitespace
// normalization (non-breaking space replacement, run collapsing,
// trimming) that otherwise runs before the substitution rules.
func WithoutWhitespaceCleanup() SetOption {
	return func(s *Set) { s.tidySpace = false }
}

// NewSet builds a rule set from compiled rules.
func NewSet(rules []Rule, opts ...SetOption) *Set {
	s := &Set{rules: rules, tidySpace: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var spaceRuns = regexp.MustCompile(`\s{2,}`)

// Correct implements Corrector.
func (s *Set) Correct(v Variant, name string) (Correction, error) {
	if err := classify(name); err != nil {
		return Correction{}, err
	}

	value := name
	if s.tidySpace {
		value = strings.ReplaceAll(value, "\u00a0", " ")
		value = spaceRuns.ReplaceAllString(value, " ")
		value = strings.TrimSpace(value)
	}
	if s.titleCaser != nil {
		value = s.titleCaser.String(value)
	}
	for _, r := range s.rules {
		if r.appliesTo(v) {
			value = r.pattern.ReplaceAllString(value, r.replace)
		}
	}
	return Correction{Value: value}, nil
}

// classify rejects names the rule machinery cannot reason about.
func classify(name string) error {
	if !utf8.ValidString(name) {
		return errors.NewClassificationError(name, "not valid UTF-8")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return errors.NewClassificationError(name, "contains control characters")
		}
	}
	return nil
}

// defaultPack is the built-in English abbreviation pack. Suffix
// abbreviations are only expanded at the end of the name so that
// "St Petersburg Ave" keeps its leading "St".
var defaultPack = []struct {
	pattern string
	replace string
}{
	{`\bSt\.?$`, "Street"},
	{`\bAve\.?$`, "Avenue"},
	{`\bRd\.?$`, "Road"},
	{`\bBlvd\.?$`, "Boulevard"},
	{`\bDr\.?$`, "Drive"},
	{`\bLn\.?$`, "Lane"},
	{`\bCt\.?$`, "Court"},
	{`\bPl\.?$`, "Place"},
	{`\bHwy\.?$`, "Highway"},
	{`\bPkwy\.?$`, "Parkway"},
	{`\bSq\.?$`, "Square"},
}

// DefaultVariant is the variant the built-in pack is tagged with.
const DefaultVariant Variant = "en"

// Default returns the built-in English rule set.
func Default() *Set {
	rules := make([]Rule, 0, len(defaultPack))
	for _, p := range defaultPack {
		r, err := NewRule(p.pattern, p.replace, DefaultVariant)
		if err != nil {
			// Built-in patterns are compile-tested; this is unreachable.
			panic(err)
		}
		rules = append(rules, r)
	}
	return NewSet(rules)
}
