package nlp

import (
	"strconv"
	"strings"
)

// FirstNumber returns the first whitespace-separated token of the digit-preserving
// normalization that is made of digits only.
func FirstNumber(text string) (int, bool) {
	for _, token := range strings.Fields(NormalizeKeepDigits(text)) {
		if !isDigits(token) {
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		return n, true
	}
	return 0, false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
