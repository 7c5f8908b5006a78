package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryNormalizer_Department(t *testing.T) {
	n := NewCategoryNormalizer(DepartmentVocabulary(), 2)

	tests := []struct {
		name       string
		raw        string
		wantLabel  string
		wantMethod MatchMethod
	}{
		{"exact", "Physics", "Physics", MatchExact},
		{"case insensitive", "computer science", "Computer Science", MatchExact},
		{"extra whitespace", "  Computer   Science ", "Computer Science", MatchCollapsed},
		{"abbreviation", "CompSci", "Computer Science", MatchAlias},
		{"abbreviation with space", "Comp Sci", "Computer Science", MatchAlias},
		{"short abbreviation", "Geo", "Geosciences", MatchAlias},
		{"typo", "Enginering", "Engineering", MatchFuzzy},
		{"two edits", "Chemestri", "Chemistry", MatchFuzzy},
		{"too far", "Astrology", "", MatchNone},
		{"empty", "   ", "", MatchNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := n.Normalize(tt.raw)
			assert.Equal(t, tt.wantMethod, m.Method)
			assert.Equal(t, tt.wantLabel, m.Label)
			assert.Equal(t, tt.wantMethod != MatchNone, m.Matched())
		})
	}
}

func TestCategoryNormalizer_Gender(t *testing.T) {
	n := NewCategoryNormalizer(GenderVocabulary(), 2)

	tests := []struct {
		raw  string
		want string
	}{
		{"Male", "Male"},
		{"FEMALE", "Female"},
		{"Femal", "Female"},
		{"Malee", "Male"},
		{"Othr", "Other"},
		{"f", "Female"},
		{"Fmale", "Female"},
		{"Non-Binary", "Other"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			m := n.Normalize(tt.raw)
			assert.True(t, m.Matched())
			assert.Equal(t, tt.want, m.Label)
		})
	}
}

func TestCategoryNormalizer_TieBreak(t *testing.T) {
	vocab := &Vocabulary{Name: "test", Labels: []string{"Bat", "Cat", "Hat"}}
	n := NewCategoryNormalizer(vocab, 1)

	// "Xat" is one edit from all three labels
	m := n.Normalize("Xat")
	assert.Equal(t, MatchFuzzy, m.Method)
	assert.Equal(t, "Bat", m.Label)
	assert.Equal(t, 1, m.Distance)

	// the shorter distance wins over lexicographic order
	m = n.Normalize("Hatt")
	assert.Equal(t, "Hat", m.Label)
}

func TestCategoryNormalizer_Deterministic(t *testing.T) {
	n := NewCategoryNormalizer(DepartmentVocabulary(), 2)
	inputs := []string{"Biolgy", "maths", "Zooology", "Undeclard", "Microbio"}

	for _, in := range inputs {
		first := n.Normalize(in)
		for i := 0; i < 20; i++ {
			assert.Equal(t, first, n.Normalize(in), in)
		}
	}
}

func TestCategoryNormalizer_ZeroThresholdDisablesFuzzy(t *testing.T) {
	n := NewCategoryNormalizer(DepartmentVocabulary(), 0)
	assert.False(t, n.Normalize("Enginering").Matched())
	assert.True(t, n.Normalize("engineering").Matched())
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"enginering", "engineering", 1},
		{"café", "cafe", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, levenshtein(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
	}
}
