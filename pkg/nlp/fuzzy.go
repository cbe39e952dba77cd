package nlp

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// EditDistance is the rune-level Levenshtein distance.
func EditDistance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Similarity returns 1 - distance/max(len(ref), 1). It goes negative when text is much
// longer than ref.
func Similarity(text, ref string) float64 {
	refLen := utf8.RuneCountInString(ref)
	if refLen < 1 {
		refLen = 1
	}
	return 1 - float64(EditDistance(text, ref))/float64(refLen)
}

// WeightedDistance returns distance/len(ref). ref must not be empty.
func WeightedDistance(text, ref string) float64 {
	return float64(EditDistance(text, ref)) / float64(utf8.RuneCountInString(ref))
}

// Ratio is the 0..100 indel similarity: 100 * (1 - indel / (len(a)+len(b))).
func Ratio(a, b string) float64 {
	return ratio([]rune(a), []rune(b))
}

// PartialRatio aligns the shorter string against every same-length window of the longer
// one, plus the shorter head and tail windows at either edge, and returns the best Ratio.
func PartialRatio(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return 0
	}
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	best := 0.0
	consider := func(window []rune) {
		if score := ratio(ra, window); score > best {
			best = score
		}
	}
	for start := 0; start+len(ra) <= len(rb) && best < 100; start++ {
		consider(rb[start : start+len(ra)])
	}
	for n := 1; n < len(ra) && best < 100; n++ {
		consider(rb[:n])
		consider(rb[len(rb)-n:])
	}
	return best
}

func ratio(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	indel := total - 2*lcsLength(a, b)
	return 100 * (1 - float64(indel)/float64(total))
}

func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
