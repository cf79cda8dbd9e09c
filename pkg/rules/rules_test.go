package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/streetlab/assist/pkg/errors"
	"github.com/streetlab/assist/pkg/rules"
)

func TestDefaultCorrections(t *testing.T) {
	set := rules.Default()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"suffix abbreviation", "Main St", "Main Street"},
		{"suffix with period", "Main St.", "Main Street"},
		{"avenue", "5th Ave", "5th Avenue"},
		{"road", "Mill Rd", "Mill Road"},
		{"boulevard", "Sunset Blvd", "Sunset Boulevard"},
		{"leading St is kept", "St Petersburg Ave", "St Petersburg Avenue"},
		{"already correct", "Main Street", "Main Street"},
		{"non-breaking space", "Main\u00a0Street", "Main Street"},
		{"leading whitespace", " Main Street", "Main Street"},
		{"doubled spaces", "Main  Street", "Main Street"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := set.Correct(rules.DefaultVariant, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Value)
		})
	}
}

func TestCorrectClassificationErrors(t *testing.T) {
	set := rules.Default()

	tests := []struct {
		name string
		in   string
	}{
		{"control character", "Main\x00Street"},
		{"invalid utf8", "Main \xff Street"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := set.Correct(rules.DefaultVariant, tt.in)
			require.Error(t, err)
			assert.True(t, errors.IsClassification(err))
		})
	}
}

func TestVariantRestriction(t *testing.T) {
	ru, err := rules.NewRule(`^ул\.`, "улица", "ru")
	require.NoError(t, err)
	en, err := rules.NewRule(`\bSt\.?$`, "Street", "en")
	require.NoError(t, err)
	set := rules.NewSet([]rules.Rule{ru, en})

	got, err := set.Correct("ru", "ул. Ленина")
	require.NoError(t, err)
	assert.Equal(t, "улица Ленина", got.Value)

	// The English rule does not fire under the Russian variant.
	got, err = set.Correct("ru", "Main St")
	require.NoError(t, err)
	assert.Equal(t, "Main St", got.Value)
}

func TestTitleCase(t *testing.T) {
	set := rules.NewSet(nil, rules.WithTitleCase(language.English))

	got, err := set.Correct("en", "main street")
	require.NoError(t, err)
	assert.Equal(t, "Main Street", got.Value)
}

func TestWithoutWhitespaceCleanup(t *testing.T) {
	set := rules.NewSet(nil, rules.WithoutWhitespaceCleanup())

	got, err := set.Correct("en", " Main  Street ")
	require.NoError(t, err)
	assert.Equal(t, " Main  Street ", got.Value)
}

func TestInvalidPattern(t *testing.T) {
	_, err := rules.NewRule(`(`, "x", "")
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestParseRulePack(t *testing.T) {
	pack := []byte(`
title_case: en
rules:
  - match: '\bSt\.?$'
    replace: Street
  - match: '^ул\.'
    replace: улица
    variant: ru
`)

	set, err := rules.Parse(pack)
	require.NoError(t, err)

	got, err := set.Correct("en", "main st")
	require.NoError(t, err)
	assert.Equal(t, "Main Street", got.Value)
}

func TestParseRejectsBadPattern(t *testing.T) {
	pack := []byte(`
rules:
  - match: '('
    replace: x
`)

	_, err := rules.Parse(pack)
	require.Error(t, err)
}

func TestParseRejectsBadLanguageTag(t *testing.T) {
	pack := []byte(`
title_case: "not a tag!"
rules: []
`)

	_, err := rules.Parse(pack)
	require.Error(t, err)
}
