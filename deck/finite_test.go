package deck

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"iowa-lite/card"
)

func classicDeckA(seed *int64, policy ExhaustPolicy) Config {
	return Config{
		WinAmounts:  Scalar(100),
		LossAmounts: []int64{0, 150, 200, 250, 300, 350},
		LossWeights: []int{5, 1, 1, 1, 1, 1},
		OnExhaust:   policy,
		Seed:        seed,
	}
}

func pullN(t *testing.T, d Deck, n int) []card.Card {
	t.Helper()
	out := make([]card.Card, 0, n)
	for i := 0; i < n; i++ {
		c, err := d.Pull()
		require.NoError(t, err, "pull %d", i+1)
		out = append(out, c)
	}
	return out
}

func TestFiniteDeck_SameSeedSameSequence(t *testing.T) {
	d1, err := MakeFiniteDeck(classicDeckA(SeedOf(0), Reshuffle))
	require.NoError(t, err)
	d2, err := MakeFiniteDeck(classicDeckA(SeedOf(0), Reshuffle))
	require.NoError(t, err)

	require.Equal(t, pullN(t, d1, 100), pullN(t, d2, 100))
}

func TestFiniteDeck_DifferentSeedsDiverge(t *testing.T) {
	d1, err := MakeFiniteDeck(classicDeckA(SeedOf(0), Reshuffle))
	require.NoError(t, err)
	d3, err := MakeFiniteDeck(classicDeckA(SeedOf(42), Reshuffle))
	require.NoError(t, err)

	require.NotEqual(t, pullN(t, d1, 100), pullN(t, d3, 100))
}

func TestFiniteDeck_Composition(t *testing.T) {
	d, err := MakeFiniteDeck(classicDeckA(SeedOf(7), Reshuffle))
	require.NoError(t, err)
	require.Equal(t, 10, d.Size())

	wantLosses := map[int64]int{0: 5, 150: 1, 200: 1, 250: 1, 300: 1, 350: 1}
	for round := 0; round < 5; round++ {
		pulls := pullN(t, d, 10)
		wins := make([]int64, 0, len(pulls))
		losses := make([]int64, 0, len(pulls))
		for _, c := range pulls {
			wins = append(wins, c.Win)
			losses = append(losses, c.Loss)
		}
		require.Equal(t, map[int64]int{100: 10}, card.Multiset(wins), "round %d", round)
		require.Equal(t, wantLosses, card.Multiset(losses), "round %d", round)
	}
}

func TestFiniteDeck_ReshuffleChangesOrder(t *testing.T) {
	d, err := MakeFiniteDeck(classicDeckA(SeedOf(3), Reshuffle))
	require.NoError(t, err)

	first := pullN(t, d, 10)
	require.Equal(t, StateExhaustedReshuffling, d.State())
	require.Equal(t, 10, d.Remaining())
	second := pullN(t, d, 10)

	require.NotEqual(t, first, second)

	sortCards(first)
	sortCards(second)
	require.Equal(t, first, second)
}

func TestFiniteDeck_LockedDeckExhausts(t *testing.T) {
	d, err := MakeFiniteDeck(classicDeckA(nil, Lock))
	require.NoError(t, err)

	pullN(t, d, 10)
	require.Equal(t, StateExhaustedLocked, d.State())
	require.Zero(t, d.Remaining())

	_, err = d.Pull()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDeckExhausted))

	var ee *ExhaustionError
	require.True(t, errors.As(err, &ee))
	require.Equal(t, 11, ee.Pull)
	require.Equal(t, 10, ee.Size)
	require.False(t, IsValidation(err))

	// still counted, still refused
	_, err = d.Pull()
	require.ErrorIs(t, err, ErrDeckExhausted)
	require.Equal(t, 12, d.NumPulls())
}

func TestFiniteDeck_StateAndRemaining(t *testing.T) {
	d, err := MakeFiniteDeck(classicDeckA(SeedOf(1), Reshuffle))
	require.NoError(t, err)
	require.Equal(t, StateActive, d.State())
	require.Equal(t, 10, d.Remaining())

	pullN(t, d, 4)
	require.Equal(t, StateActive, d.State())
	require.Equal(t, 6, d.Remaining())

	pullN(t, d, 9)
	require.Equal(t, StateActive, d.State())
	require.Equal(t, 7, d.Remaining())
}

func TestMakeFiniteDeck_UndeterminedSize(t *testing.T) {
	_, err := MakeFiniteDeck(Config{WinAmounts: Scalar(1), LossAmounts: Scalar(1)})
	require.Error(t, err)
	require.True(t, IsValidation(err))
	require.Contains(t, err.Error(), "deck size cannot be determined")
}

func TestMakeFiniteDeck_Validation(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{
			name: "win weight length mismatch",
			cfg:  Config{WinAmounts: []int64{1, 2}, WinWeights: []int{1, 2, 3}, LossAmounts: Scalar(0)},
		},
		{
			name: "loss weight length mismatch",
			cfg:  Config{WinAmounts: Scalar(1), LossAmounts: []int64{0, 5}, LossWeights: []int{1}},
		},
		{
			name: "unweighted side with several amounts",
			cfg:  Config{WinAmounts: []int64{50, 100}, LossAmounts: []int64{0, 5}, LossWeights: []int{1, 1}},
		},
		{
			name: "negative weight",
			cfg:  Config{WinAmounts: Scalar(1), LossAmounts: []int64{0, 5}, LossWeights: []int{3, -1}},
		},
		{
			name: "all zero weights",
			cfg:  Config{WinAmounts: Scalar(1), LossAmounts: []int64{0, 5}, LossWeights: []int{0, 0}},
		},
		{
			name: "card counts differ",
			cfg: Config{
				WinAmounts: []int64{50, 100}, WinWeights: []int{1, 1},
				LossAmounts: []int64{0, 5}, LossWeights: []int{2, 2},
			},
		},
		{
			name: "no amounts",
			cfg:  Config{LossAmounts: Scalar(0), LossWeights: []int{1}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := MakeFiniteDeck(tc.cfg)
			require.Nil(t, d)
			require.True(t, IsValidation(err), "got %v", err)
		})
	}
}

func TestMakeFiniteDeck_SynthesisesWinSide(t *testing.T) {
	d, err := MakeFiniteDeck(Config{
		WinAmounts:  Scalar(50),
		LossAmounts: []int64{0, 25, 50, 75},
		LossWeights: []int{4, 3, 2, 1},
		Seed:        SeedOf(9),
	})
	require.NoError(t, err)
	require.Equal(t, 10, d.Size())

	wins, losses := d.Composition()
	require.Equal(t, map[int64]int{50: 10}, wins)
	require.Equal(t, map[int64]int{0: 4, 25: 3, 50: 2, 75: 1}, losses)
}

func TestMakeFiniteDeck_SynthesisesLossSide(t *testing.T) {
	d, err := MakeFiniteDeck(Config{
		WinAmounts:  []int64{100, 200},
		WinWeights:  []int{3, 1},
		LossAmounts: Scalar(10),
		Seed:        SeedOf(9),
	})
	require.NoError(t, err)
	require.Equal(t, 4, d.Size())

	wins, losses := d.Composition()
	require.Equal(t, map[int64]int{100: 3, 200: 1}, wins)
	require.Equal(t, map[int64]int{10: 4}, losses)
}

func TestNewFiniteDeck_LengthMismatch(t *testing.T) {
	_, err := NewFiniteDeck([]int64{1, 2}, []int64{1}, Reshuffle, nil)
	require.True(t, IsValidation(err))

	_, err = NewFiniteDeck(nil, nil, Reshuffle, nil)
	require.True(t, IsValidation(err))
}

func TestNewFiniteDeck_DoesNotAliasInput(t *testing.T) {
	wins := []int64{1, 2, 3, 4}
	losses := []int64{5, 6, 7, 8}
	_, err := NewFiniteDeck(wins, losses, Reshuffle, SeedOf(11))
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3, 4}, wins)
	require.Equal(t, []int64{5, 6, 7, 8}, losses)
}

func sortCards(cs []card.Card) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Win != cs[j].Win {
			return cs[i].Win < cs[j].Win
		}
		return cs[i].Loss < cs[j].Loss
	})
}

func TestMakeFiniteDeck_SizeLimits(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{
			name: "weights overflow",
			cfg:  Config{WinAmounts: Scalar(1), LossAmounts: []int64{0, 5}, LossWeights: []int{math.MaxInt, 1}},
		},
		{
			name: "too many cards",
			cfg:  Config{WinAmounts: Scalar(1), LossAmounts: []int64{0, 5}, LossWeights: []int{math.MaxInt, 0}},
		},
		{
			name: "one over the cap",
			cfg:  Config{WinAmounts: Scalar(1), LossAmounts: Scalar(0), LossWeights: []int{MaxFiniteDeckSize + 1}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := MakeFiniteDeck(tc.cfg)
			require.Nil(t, d)
			require.True(t, IsValidation(err), "got %v", err)
		})
	}

	d, err := MakeFiniteDeck(Config{
		WinAmounts: Scalar(1), LossAmounts: Scalar(0), LossWeights: []int{MaxFiniteDeckSize},
		OnExhaust: Lock, Seed: SeedOf(2),
	})
	require.NoError(t, err)
	require.Equal(t, MaxFiniteDeckSize, d.Size())
}
