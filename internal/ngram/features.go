package ngram

import (
	"cmp"
	"fmt"
	"slices"
)

// SelectFeatures sums the chunk vectors of each group into a group profile,
// computes the population variance of every position across the profiles,
// and returns the k highest-variance positions of the dim-sized feature
// space in ascending order. Ties, zero-variance positions included, go to
// the lower position. k <= 0 or k >= dim keeps every position and returns
// nil, for which Project is the identity.
func SelectFeatures(vectors []Counts, groups []int, nGroups, dim, k int) ([]int, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no vectors to select features from")
	}
	if len(vectors) != len(groups) {
		return nil, fmt.Errorf("mismatched vectors and groups lengths: %d vs %d", len(vectors), len(groups))
	}
	if k <= 0 || k >= dim {
		return nil, nil
	}

	profiles := make([]Counts, nGroups)
	for g := range profiles {
		profiles[g] = make(Counts)
	}
	for i, vec := range vectors {
		g := groups[i]
		if g < 0 || g >= nGroups {
			return nil, fmt.Errorf("group %d out of range [0, %d)", g, nGroups)
		}
		for idx := range vec {
			if idx < 0 || idx >= dim {
				return nil, fmt.Errorf("vector %d has position %d outside [0, %d)", i, idx, dim)
			}
		}
		profiles[g].add(vec)
	}

	variance := Variance(profiles)

	ranked := make([]int, 0, len(variance))
	for idx, v := range variance {
		if v > 0 {
			ranked = append(ranked, idx)
		}
	}
	slices.SortFunc(ranked, func(a, b int) int {
		if c := cmp.Compare(variance[b], variance[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	if len(ranked) >= k {
		selected := slices.Clone(ranked[:k])
		slices.Sort(selected)
		return selected, nil
	}

	// every remaining position has zero variance, so the lowest ones win
	selected := ranked
	for idx := 0; len(selected) < k; idx++ {
		if variance[idx] > 0 {
			continue
		}
		selected = append(selected, idx)
	}
	slices.Sort(selected)
	return selected, nil
}

// Variance returns the population variance across profiles of every
// position counted in at least one profile. Positions missing from a
// profile count as zero there.
func Variance(profiles []Counts) map[int]float64 {
	if len(profiles) == 0 {
		return nil
	}

	n := float64(len(profiles))
	mean := make(map[int]float64)
	for _, p := range profiles {
		for idx, x := range p {
			mean[idx] += x
		}
	}
	for idx := range mean {
		mean[idx] /= n
	}

	out := make(map[int]float64, len(mean))
	for idx, m := range mean {
		sum := 0.0
		for _, p := range profiles {
			d := p[idx] - m
			sum += d * d
		}
		out[idx] = sum / n
	}
	return out
}

// Project keeps the selected positions of vec and renumbers them by their
// rank in indices, which must be sorted. A nil indices returns vec itself.
func Project(vec Counts, indices []int) Counts {
	if indices == nil {
		return vec
	}

	out := make(Counts, min(len(vec), len(indices)))
	for idx, v := range vec {
		if pos, found := slices.BinarySearch(indices, idx); found {
			out[pos] = v
		}
	}
	return out
}
