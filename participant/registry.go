package participant

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Registry holds persona definitions by ID.
type Registry struct {
	personas map[string]*Persona
}

func NewRegistry() *Registry {
	return &Registry{personas: make(map[string]*Persona)}
}

// Builtin returns a registry preloaded with the stock personas.
func Builtin() *Registry {
	r := NewRegistry()
	for _, p := range builtinPersonas {
		p := p
		r.personas[p.ID] = &p
	}
	return r
}

var builtinPersonas = []Persona{
	{
		ID:      "cautious",
		Name:    "Cautious",
		Tagline: "Avoids any deck that has bitten once.",
		Profile: Profile{Exploration: 0.05, LossAversion: 0.8, Randomness: 0.1},
	},
	{
		ID:      "greedy",
		Name:    "Greedy",
		Tagline: "Chases the big wins and ignores the penalties.",
		Profile: Profile{Exploration: 0.10, LossAversion: 0.0, Randomness: 0.3},
	},
	{
		ID:      "learner",
		Name:    "Learner",
		Tagline: "Samples early, settles on the decks that pay over time.",
		Profile: Profile{Exploration: 0.20, LossAversion: 0.2, Randomness: 0.2},
	},
}

// LoadFromFile loads personas from a JSON file.
func (r *Registry) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read personas file: %w", err)
	}
	return r.LoadFromJSON(data)
}

// LoadFromJSON loads personas from raw JSON bytes. Entries without an ID are
// skipped; later entries replace earlier ones with the same ID.
func (r *Registry) LoadFromJSON(data []byte) error {
	var list []*Persona
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("parse personas JSON: %w", err)
	}
	for _, p := range list {
		if p == nil || p.ID == "" {
			continue
		}
		r.personas[p.ID] = p
	}
	return nil
}

func (r *Registry) Get(id string) *Persona {
	return r.personas[id]
}

// All returns the personas sorted by ID.
func (r *Registry) All() []*Persona {
	out := make([]*Persona, 0, len(r.personas))
	for _, p := range r.personas {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Count() int {
	return len(r.personas)
}

// NewDecider resolves name to a Decider: "random", or a persona ID.
func (r *Registry) NewDecider(name string, seed int64) (Decider, error) {
	if name == "random" {
		return NewRandomDecider(seed), nil
	}
	p := r.Get(name)
	if p == nil {
		return nil, fmt.Errorf("unknown participant %q", name)
	}
	return NewRuleDecider(p, seed), nil
}
