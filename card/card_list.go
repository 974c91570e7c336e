package card

import "math/rand"

// AmountList is an ordered pile of literal card amounts.
type AmountList []int64

func (al *AmountList) Init(amounts []int64) {
	*al = make([]int64, len(amounts))
	copy(*al, amounts)
}

// Count 获取总牌数
func (al AmountList) Count() int {
	return len(al)
}

// Shuffle permutes the list in place with the caller's generator.
func (al AmountList) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(al), func(i, j int) {
		al[i], al[j] = al[j], al[i]
	})
}

func (al *AmountList) Add(amounts ...int64) {
	*al = append(*al, amounts...)
}

func (al AmountList) Sum() int64 {
	var total int64
	for _, a := range al {
		total += a
	}
	return total
}

// Expand materialises weights[i] literal copies of amounts[i], in order.
// The slices must have equal length; negative weights count as zero.
func Expand(amounts []int64, weights []int) AmountList {
	out := make(AmountList, 0, SumWeights(weights))
	for i, a := range amounts {
		for n := 0; n < weights[i]; n++ {
			out = append(out, a)
		}
	}
	return out
}
