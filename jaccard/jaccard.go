// Package jaccard combines two neighbor lists into a Jaccard similarity.
package jaccard

import (
	"math"

	"github.com/hupe1980/mimgo/neighbors"
)

// Missing returns the missing-value marker (NaN).
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Similarity returns |A∩B| / (|A|+|B|-|A∩B|) with the lists treated as sets.
//
// ok is false when either list is not applicable or empty; a union of zero is
// never divided by.
func Similarity(a, b neighbors.Neighbors) (float64, bool) {
	if !a.Valid || !b.Valid || a.Len() == 0 || b.Len() == 0 {
		return 0, false
	}

	setA := toSet(a.IDs)
	setB := toSet(b.IDs)

	inter := 0
	for id := range setA {
		if _, ok := setB[id]; ok {
			inter++
		}
	}

	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union), true
}

// Score is Similarity with the missing case mapped to Missing().
func Score(a, b neighbors.Neighbors) float64 {
	s, ok := Similarity(a, b)
	if !ok {
		return Missing()
	}
	return s
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
