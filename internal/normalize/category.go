package normalize

import (
	"sort"
)

// MatchMethod records which step of the matcher produced a label
type MatchMethod string

const (
	MatchExact     MatchMethod = "exact"
	MatchCollapsed MatchMethod = "collapsed"
	MatchAlias     MatchMethod = "alias"
	MatchFuzzy     MatchMethod = "fuzzy"
	MatchNone      MatchMethod = "unmatched"
)

// Match is the result of normalizing one category string
type Match struct {
	Label    string
	Method   MatchMethod
	Distance int
}

// Matched reports whether a canonical label was found
func (m Match) Matched() bool {
	return m.Method != MatchNone
}

// Vocabulary is the canonical label set of one categorical column plus its
// known abbreviations and misspellings
type Vocabulary struct {
	Name    string
	Labels  []string
	Aliases map[string]string
}

// GenderVocabulary returns the gender labels
func GenderVocabulary() *Vocabulary {
	return &Vocabulary{
		Name:   "gender",
		Labels: []string{"Male", "Female", "Other"},
		Aliases: map[string]string{
			"m":                 "Male",
			"malee":             "Male",
			"man":               "Male",
			"f":                 "Female",
			"femal":             "Female",
			"woman":             "Female",
			"o":                 "Other",
			"othr":              "Other",
			"non-binary":        "Other",
			"nonbinary":         "Other",
			"prefer not to say": "Other",
		},
	}
}

// DepartmentVocabulary returns the full department names
func DepartmentVocabulary() *Vocabulary {
	return &Vocabulary{
		Name: "department",
		Labels: []string{
			"Biochemistry",
			"Biology",
			"Cell Biology and Genetics",
			"Chemistry",
			"Computer Science",
			"Engineering",
			"Geophysics",
			"Geosciences",
			"Marine Sciences",
			"Mathematics",
			"Microbiology",
			"Physics",
			"Undeclared",
			"Zoology",
		},
		Aliases: map[string]string{
			"marine sci": "Marine Sciences",
			"geo":        "Geosciences",
			"biochem":    "Biochemistry",
			"maths":      "Mathematics",
			"math":       "Mathematics",
			"phys":       "Physics",
			"bio":        "Biology",
			"cell bio":   "Cell Biology and Genetics",
			"chem":       "Chemistry",
			"geophy":     "Geophysics",
			"zoo":        "Zoology",
			"microbio":   "Microbiology",
			"comp sci":   "Computer Science",
			"compsci":    "Computer Science",
			"cs":         "Computer Science",
			"eng":        "Engineering",
		},
	}
}

// CategoryNormalizer maps free-form strings onto a vocabulary. It is
// read-only after construction and safe for concurrent use.
type CategoryNormalizer struct {
	maxDistance int
	// labels sorted lexicographically, paired with their keys
	labels []string
	keys   []string
	byKey  map[string]string
	alias  map[string]string
}

// NewCategoryNormalizer builds a matcher accepting fuzzy matches up to
// maxDistance edits
func NewCategoryNormalizer(vocab *Vocabulary, maxDistance int) *CategoryNormalizer {
	labels := append([]string(nil), vocab.Labels...)
	sort.Strings(labels)

	n := &CategoryNormalizer{
		maxDistance: maxDistance,
		labels:      labels,
		keys:        make([]string, len(labels)),
		byKey:       make(map[string]string, len(labels)),
		alias:       make(map[string]string, len(vocab.Aliases)),
	}
	for i, label := range labels {
		k := Key(label)
		n.keys[i] = k
		n.byKey[k] = label
	}
	for a, label := range vocab.Aliases {
		n.alias[Key(a)] = label
	}
	return n
}

// Normalize resolves raw to a canonical label. Steps, first hit wins:
// case-insensitive equality, equality after whitespace collapse, the alias
// table, then the closest label within the edit-distance threshold (ties go
// to the lexicographically smaller label).
func (n *CategoryNormalizer) Normalize(raw string) Match {
	folded := fold(raw)
	if label, ok := n.byKey[folded]; ok {
		return Match{Label: label, Method: MatchExact}
	}

	key := CollapseSpace(folded)
	if key == "" {
		return Match{Method: MatchNone}
	}
	if label, ok := n.byKey[key]; ok {
		return Match{Label: label, Method: MatchCollapsed}
	}

	if label, ok := n.alias[key]; ok {
		return Match{Label: label, Method: MatchAlias}
	}

	best, bestDist := "", n.maxDistance+1
	for i, k := range n.keys {
		// labels are sorted, so strict < keeps the lexicographic tie-break
		if d := levenshtein(key, k); d < bestDist {
			best, bestDist = n.labels[i], d
		}
	}
	if best == "" {
		return Match{Method: MatchNone}
	}
	return Match{Label: best, Method: MatchFuzzy, Distance: bestDist}
}
