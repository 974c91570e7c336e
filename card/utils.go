package card

func SumWeights(ws []int) int {
	total := 0
	for _, w := range ws {
		if w > 0 {
			total += w
		}
	}
	return total
}

// Multiset counts occurrences of each amount.
func Multiset(amounts []int64) map[int64]int {
	out := make(map[int64]int, len(amounts))
	for _, a := range amounts {
		out[a]++
	}
	return out
}
