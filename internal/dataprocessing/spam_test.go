package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func defaultRules() SpamRules {
	return SpamRules{
		MaxRepetitionRatio:     0.6,
		MinAlphaRatio:          0.5,
		MinRepetitionLength:    5,
		MinTokensForRepetition: 4,
		Tokens:                 []string{"this is spam", "http://", "https://", "www.", "click here"},
	}
}

func TestSpamDetector_Classify(t *testing.T) {
	d := NewSpamDetector(defaultRules())

	tests := []struct {
		name     string
		text     string
		wantRule string
	}{
		{"ordinary comment", "The labs were useful but the lectures ran long.", ""},
		{"short praise", "ok", ""},
		{"short repeated letters under length", "aaa", ""},
		{"repeated character", "aaaaaaaaaaaaaaaa", RuleCharRepetition},
		{"repeated character mixed case", "AaAaAaAaA!", RuleCharRepetition},
		{"repeated word", "good good good good", RuleTokenRepetition},
		{"digits only", "12345 678", RuleLowAlpha},
		{"punctuation", "?!?! ... ###", RuleLowAlpha},
		{"spam marker", "This is spam, ignore", RuleSpamToken},
		{"link", "see https://example.com for details", RuleSpamToken},
		{"click here", "Please CLICK HERE now", RuleSpamToken},
		{"three repeated words under token floor", "no no no", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := d.Classify(tt.text)
			assert.Equal(t, tt.wantRule, res.Rule)
			assert.Equal(t, tt.wantRule != "", res.Blank())
		})
	}
}

func TestSpamDetector_EmptyTokensIgnored(t *testing.T) {
	rules := defaultRules()
	rules.Tokens = []string{"", "   "}
	d := NewSpamDetector(rules)

	assert.False(t, d.Classify("A perfectly normal comment").Blank())
}
