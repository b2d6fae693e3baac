package compare

// Similarity returns a ratio in [0, 1] describing how alike a and b are
// after NormalizeText. It is 2*LCS/(len(a)+len(b)) over runes, where LCS
// is the length of the longest common subsequence, so it is symmetric.
// Either side normalizing to "" yields 0.
func Similarity(a, b string) float64 {
	ra := []rune(NormalizeText(a))
	rb := []rune(NormalizeText(b))
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}
	return 2 * float64(lcs(ra, rb)) / float64(len(ra)+len(rb))
}

// lcs returns the length of the longest common subsequence of a and b
// using two rolling rows.
func lcs(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				cur[j] = prev[j-1] + 1
			case prev[j] >= cur[j-1]:
				cur[j] = prev[j]
			default:
				cur[j] = cur[j-1]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}
