package rank

import "fmt"

// Weights configures the preference score terms and the similarity blend.
// The three preference weights must sum to 1.0 so preference_score stays in
// [0, 1]; Alpha is the share of normalized similarity in the final score.
type Weights struct {
	Category float64
	Price    float64
	Keyword  float64
	Alpha    float64
}

// DefaultWeights are the shipped ranking weights.
func DefaultWeights() Weights {
	return Weights{Category: 0.3, Price: 0.3, Keyword: 0.4, Alpha: 0.6}
}

// Validate checks the weight invariants.
func (w Weights) Validate() error {
	sum := w.Category + w.Price + w.Keyword
	if diff := sum - 1.0; diff > 1e-9 || diff < -1e-9 {
		return fmt.Errorf("preference weights must sum to 1.0, got %v", sum)
	}
	if w.Alpha < 0 || w.Alpha > 1 {
		return fmt.Errorf("alpha must be in [0, 1], got %v", w.Alpha)
	}
	return nil
}
