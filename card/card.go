package card

import "fmt"

// Card is one drawn Iowa card: the amount won and the amount lost on a pull.
//
// Both amounts are non-negative magnitudes; a loss of 250 means the balance
// drops by 250.
type Card struct {
	Win  int64 `json:"win"`
	Loss int64 `json:"loss"`
}

// Net 净收益 (win - loss)
func (c Card) Net() int64 {
	return c.Win - c.Loss
}

func (c Card) String() string {
	return fmt.Sprintf("+%d/-%d", c.Win, c.Loss)
}
