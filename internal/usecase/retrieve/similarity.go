package retrieve

import "math"

// cosine returns the cosine similarity between two vectors of equal length,
// in [-1, 1]. A zero vector on either side yields 0.
func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	// Clamp float noise so callers can rely on the [-1, 1] range.
	return math.Max(-1, math.Min(1, sim))
}
