package dedup

import "strings"

// Edit distance carries little signal on very differently sized strings
// and costs O(n*m); beyond this length gap we switch to word overlap.
const editDistanceLengthGap = 20

// Similarity scores how alike two comment bodies are on a 0..1 scale.
// When the lengths are within editDistanceLengthGap characters it uses
// normalized Levenshtein distance; otherwise the Dice coefficient over
// lowercase words longer than two characters. Two empty strings score 1;
// an empty string against a non-empty one scores 0.
func Similarity(a, b string) float64 {
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 1
	}

	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	if diff <= editDistanceLengthGap {
		return 1 - float64(Levenshtein(a, b))/float64(maxLen)
	}
	return DiceCoefficient(a, b)
}

// Levenshtein returns the minimum number of single-character edits
// (insert, delete, substitute) transforming a into b.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

// DiceCoefficient computes 2*|shared| / (|wordsA| + |wordsB|) over the
// distinct lowercase words of each string, ignoring words of length <= 2.
func DiceCoefficient(a, b string) float64 {
	wordsA := significantWords(a)
	wordsB := significantWords(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return 0
	}

	shared := 0
	for w := range wordsA {
		if _, ok := wordsB[w]; ok {
			shared++
		}
	}
	return 2 * float64(shared) / float64(len(wordsA)+len(wordsB))
}

func significantWords(s string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if len(w) > 2 {
			words[w] = struct{}{}
		}
	}
	return words
}
