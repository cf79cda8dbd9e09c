package rules

import (
	"os"

	"github.com/goccy/go-yaml"
	"golang.org/x/text/language"

	"github.com/streetlab/assist/pkg/errors"
)

// File is the YAML representation of a rule pack.
//
//	title_case: en
//	rules:
//	  - match: '\bSt\.?$'
//	    replace: Street
//	    variant: en
type File struct {
	// TitleCase is a BCP 47 language tag; when set, names are
	// title-cased for that language before the rules run.
	TitleCase string `yaml:"title_case,omitempty"`

	// KeepWhitespace disables the built-in whitespace cleanup.
	KeepWhitespace bool `yaml:"keep_whitespace,omitempty"`

	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec is one substitution in a YAML rule pack.
type RuleSpec struct {
	Match   string  `yaml:"match"`
	Replace string  `yaml:"replace"`
	Variant Variant `yaml:"variant,omitempty"`
}

// Load reads a YAML rule pack from disk.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(data)
}

// Parse builds a rule set from YAML bytes.
func Parse(data []byte) (*Set, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.NewConfigError("rules", "invalid rule pack", err)
	}

	compiled := make([]Rule, 0, len(file.Rules))
	for _, spec := range file.Rules {
		r, err := NewRule(spec.Match, spec.Replace, spec.Variant)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, r)
	}

	var opts []SetOption
	if file.TitleCase != "" {
		tag, err := language.Parse(file.TitleCase)
		if err != nil {
			return nil, errors.NewConfigError("rules", "invalid title_case tag "+file.TitleCase, err)
		}
		opts = append(opts, WithTitleCase(tag))
	}
	if file.KeepWhitespace {
		opts = append(opts, WithoutWhitespaceCleanup())
	}

	return NewSet(compiled, opts...), nil
}
