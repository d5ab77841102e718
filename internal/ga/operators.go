package ga

import (
	"delivery-route-optimizer/internal/domain"
	"math/rand"
	"slices"
)

// tournamentSelect draws k distinct indices without replacement and returns
// the one with the lowest score; the first drawn wins ties. k is clamped to
// len(scores). scores is not modified.
func tournamentSelect(scores []float64, k int, rng *rand.Rand) int {
	n := len(scores)
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	// Partial Fisher-Yates over a lazily materialized index array.
	swapped := make(map[int]int, k)
	at := func(i int) int {
		if v, ok := swapped[i]; ok {
			return v
		}
		return i
	}

	best := -1
	for i := 0; i < k; i++ {
		j := i + rng.Intn(n-i)
		cand := at(j)
		swapped[j] = at(i)
		swapped[i] = cand

		if best == -1 || scores[cand] < scores[best] {
			best = cand
		}
	}
	return best
}

// slotCrossover recombines parents route slot by route slot.
//
// For each slot pair (r1 from a, r2 from b), a contiguous fragment of r1
// between two distinct cut points is preserved; the remainder comes from r2
// in r2's order minus the fragment, rotated left by the fragment start, and
// truncated so the child route is no longer than r1. Routes shorter than two
// deliveries and slots of a without a partner in b are copied unchanged.
// The result can duplicate or drop deliveries; callers must repair it.
func slotCrossover(a, b domain.Chromosome, rng *rand.Rand) domain.Chromosome {
	child := make(domain.Chromosome, len(a))
	for slot, r1 := range a {
		size := len(r1)
		if size < 2 || slot >= len(b) {
			child[slot] = r1.Clone()
			continue
		}
		r2 := b[slot]

		start := rng.Intn(size)
		end := rng.Intn(size - 1)
		if end >= start {
			end++
		}
		if start > end {
			start, end = end, start
		}
		fragment := r1[start:end]

		rest := make([]int, 0, len(r2))
		for _, gene := range r2 {
			if !slices.Contains(fragment, gene) {
				rest = append(rest, gene)
			}
		}
		rotateLeft(rest, start)

		take := min(size-len(fragment), len(rest))
		route := make(domain.Route, 0, len(fragment)+take)
		route = append(route, fragment...)
		route = append(route, rest[:take]...)
		child[slot] = route
	}
	return child
}

func rotateLeft(s []int, k int) {
	if len(s) == 0 {
		return
	}
	k %= len(s)
	if k == 0 {
		return
	}
	slices.Reverse(s[:k])
	slices.Reverse(s[k:])
	slices.Reverse(s)
}

// repair restores the partition invariant in place: later duplicates are
// dropped (routes scanned in slot order), then each missing delivery, in
// ascending order, is appended to the currently lightest route, lowest slot
// first on ties.
func repair(c domain.Chromosome, inst *domain.Instance) domain.Chromosome {
	n := inst.Size()
	seen := make([]bool, n)
	loads := make([]float64, len(c))

	for ri, r := range c {
		kept := r[:0]
		for _, idx := range r {
			if idx < 0 || idx >= n || seen[idx] {
				continue
			}
			seen[idx] = true
			kept = append(kept, idx)
			loads[ri] += inst.Demand(idx)
		}
		c[ri] = kept
	}

	if len(c) == 0 {
		c = domain.Chromosome{{}}
		loads = []float64{0}
	}

	for idx := 0; idx < n; idx++ {
		if seen[idx] {
			continue
		}
		target := 0
		for ri := 1; ri < len(c); ri++ {
			if loads[ri] < loads[target] {
				target = ri
			}
		}
		c[target] = append(c[target], idx)
		loads[target] += inst.Demand(idx)
	}
	return c
}

// orderCrossover applies OX to the flattened parents and re-slices the child
// with a's route lengths. The gene segment [lo, hi) is copied from a; the
// remaining positions are filled, starting after hi and wrapping around, with
// b's genes in b's order starting after hi. mark/stamp avoid clearing a
// membership table per call.
func orderCrossover(a, b domain.Chromosome, rng *rand.Rand, mark []int, stamp *int) domain.Chromosome {
	p1 := a.Flatten()
	p2 := b.Flatten()
	n := len(p1)
	if n < 2 {
		return domain.Slice(p1, a.Lengths())
	}

	lo := rng.Intn(n)
	hi := rng.Intn(n - 1)
	if hi >= lo {
		hi++
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	*stamp++
	cur := *stamp

	child := make([]int, n)
	for i := range child {
		child[i] = -1
	}
	for i := lo; i < hi; i++ {
		child[i] = p1[i]
		mark[p1[i]] = cur
	}

	pos := hi % n
	for i := 0; i < n; i++ {
		gene := p2[(hi+i)%n]
		if mark[gene] == cur {
			continue
		}
		for child[pos] != -1 {
			pos = (pos + 1) % n
		}
		child[pos] = gene
		mark[gene] = cur
	}

	return domain.Slice(child, a.Lengths())
}

// mutateSwap swaps two distinct positions inside a route with probability
// rate, independently per route. Routes with fewer than two deliveries are
// skipped without consuming randomness.
func mutateSwap(c domain.Chromosome, rate float64, rng *rand.Rand) {
	for _, r := range c {
		if len(r) < 2 {
			continue
		}
		if rng.Float64() >= rate {
			continue
		}
		i := rng.Intn(len(r))
		j := rng.Intn(len(r) - 1)
		if j >= i {
			j++
		}
		r[i], r[j] = r[j], r[i]
	}
}
