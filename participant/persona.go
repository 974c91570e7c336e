package participant

// Profile holds the tunable parameters of a RuleDecider.
type Profile struct {
	Exploration  float64 `json:"exploration"`   // 0.0–1.0: chance of a random pick
	LossAversion float64 `json:"loss_aversion"` // 0.0–1.0: extra weight on observed losses
	Randomness   float64 `json:"randomness"`    // 0.0–1.0: noise on deck scores
}

// Persona is a named simulated participant.
type Persona struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Tagline string  `json:"tagline"`
	Profile Profile `json:"profile"`
}
