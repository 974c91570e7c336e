package card

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	got := Expand([]int64{0, 150, 200}, []int{3, 1, 0})
	require.Equal(t, AmountList{0, 0, 0, 150}, got)
}

func TestAmountListShuffleKeepsMultiset(t *testing.T) {
	var al AmountList
	al.Init([]int64{1, 1, 2, 3, 5, 8})
	before := Multiset(al)

	al.Shuffle(rand.New(rand.NewSource(4)))

	require.Equal(t, before, Multiset(al))
	require.Equal(t, 6, al.Count())
	require.EqualValues(t, 20, al.Sum())
}

func TestAmountListInitCopies(t *testing.T) {
	src := []int64{4, 5}
	var al AmountList
	al.Init(src)
	src[0] = 99
	require.EqualValues(t, 4, al[0])

	al.Add(6, 7)
	require.Equal(t, AmountList{4, 5, 6, 7}, al)
}

func TestSumWeightsSkipsNegatives(t *testing.T) {
	require.Equal(t, 5, SumWeights([]int{2, -4, 3}))
	require.Equal(t, 0, SumWeights(nil))
}

func TestCardNet(t *testing.T) {
	c := Card{Win: 100, Loss: 250}
	require.EqualValues(t, -150, c.Net())
	require.Equal(t, "+100/-250", c.String())
}
