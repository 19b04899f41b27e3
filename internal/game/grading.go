package game

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeAnswer lowercases, trims, collapses whitespace and strips
// accents so "Crème Brûlée " and "creme brulee" compare equal.
func NormalizeAnswer(s string) string {
	folded, _, err := transform.String(foldAccents, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// AnswerMatches is the fuzzy grader used when no semantic grading has
// run: normalized equality, or an edit distance within a quarter of the
// expected answer's length.
func AnswerMatches(got, want string) bool {
	g, w := NormalizeAnswer(got), NormalizeAnswer(want)
	if g == "" || w == "" {
		return g == w && g != ""
	}
	if g == w {
		return true
	}
	limit := len([]rune(w)) / 4
	if limit < 1 {
		limit = 1
	}
	return editDistance(g, w) <= limit
}

// editDistance is the Levenshtein distance over runes, two-row form.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, min(cur[j-1]+1, prev[j-1]+cost))
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
