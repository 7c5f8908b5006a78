package dataprocessing

import (
	"strings"
	"unicode"
)

// SpamVerdict is the decision for one comment
type SpamVerdict string

const (
	SpamKeep  SpamVerdict = "keep"
	SpamBlank SpamVerdict = "blank"
)

// Rule names reported with a Blank verdict
const (
	RuleCharRepetition  = "char_repetition"
	RuleTokenRepetition = "token_repetition"
	RuleLowAlpha        = "low_alpha"
	RuleSpamToken       = "spam_token"
)

// SpamRules are the thresholds of the comment spam heuristics
type SpamRules struct {
	// MaxRepetitionRatio is the largest share of non-space characters (or
	// tokens) one character (or token) may take.
	MaxRepetitionRatio float64
	// MinAlphaRatio is the smallest share of letters among non-space
	// characters.
	MinAlphaRatio float64
	// MinRepetitionLength is the non-space length below which the character
	// repetition check is skipped.
	MinRepetitionLength int
	// MinTokensForRepetition is the token count below which the token
	// repetition check is skipped.
	MinTokensForRepetition int
	// Tokens are case-insensitive substrings that mark a comment as spam.
	Tokens []string
}

// SpamResult is the classification of one comment
type SpamResult struct {
	Verdict SpamVerdict
	Rule    string
}

// Blank reports whether the comment should be blanked
func (r SpamResult) Blank() bool {
	return r.Verdict == SpamBlank
}

// SpamDetector classifies free-text comments with frequency heuristics and
// a token list. It holds no per-call state.
type SpamDetector struct {
	rules  SpamRules
	tokens []string
}

// NewSpamDetector creates a detector for rules
func NewSpamDetector(rules SpamRules) *SpamDetector {
	tokens := make([]string, 0, len(rules.Tokens))
	for _, t := range rules.Tokens {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			tokens = append(tokens, t)
		}
	}
	return &SpamDetector{rules: rules, tokens: tokens}
}

// Classify returns Blank with the first rule that fired, or Keep. Rules run
// in order: character repetition, token repetition, letter ratio, spam
// tokens.
func (d *SpamDetector) Classify(text string) SpamResult {
	lower := strings.ToLower(text)

	chars := make(map[rune]int)
	nonSpace, letters, top := 0, 0, 0
	for _, r := range lower {
		if unicode.IsSpace(r) {
			continue
		}
		nonSpace++
		if unicode.IsLetter(r) {
			letters++
		}
		chars[r]++
		if chars[r] > top {
			top = chars[r]
		}
	}
	if nonSpace == 0 {
		return SpamResult{Verdict: SpamKeep}
	}

	if nonSpace >= d.rules.MinRepetitionLength &&
		float64(top)/float64(nonSpace) > d.rules.MaxRepetitionRatio {
		return SpamResult{Verdict: SpamBlank, Rule: RuleCharRepetition}
	}

	if fields := strings.Fields(lower); len(fields) >= d.rules.MinTokensForRepetition {
		counts := make(map[string]int, len(fields))
		topToken := 0
		for _, f := range fields {
			counts[f]++
			if counts[f] > topToken {
				topToken = counts[f]
			}
		}
		if float64(topToken)/float64(len(fields)) > d.rules.MaxRepetitionRatio {
			return SpamResult{Verdict: SpamBlank, Rule: RuleTokenRepetition}
		}
	}

	if float64(letters)/float64(nonSpace) < d.rules.MinAlphaRatio {
		return SpamResult{Verdict: SpamBlank, Rule: RuleLowAlpha}
	}

	for _, t := range d.tokens {
		if strings.Contains(lower, t) {
			return SpamResult{Verdict: SpamBlank, Rule: RuleSpamToken}
		}
	}
	return SpamResult{Verdict: SpamKeep}
}
