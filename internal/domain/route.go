package domain

import "fmt"

// Represents one vehicle's ordered delivery sequence.
// A Route holds delivery indices only; the depot is implicit at both ends.
type Route []int

// Clone returns an independent copy of the route.
func (r Route) Clone() Route {
	out := make(Route, len(r))
	copy(out, r)
	return out
}

// Load sums the demands of the deliveries on the route.
func (r Route) Load(inst *Instance) float64 {
	load := 0.0
	for _, idx := range r {
		load += inst.Demands[idx]
	}
	return load
}

// Represents one candidate solution: an ordered sequence of routes.
// Across all routes every delivery index 0..N-1 appears exactly once.
type Chromosome []Route

// Clone returns a deep copy sharing no backing arrays with c.
func (c Chromosome) Clone() Chromosome {
	out := make(Chromosome, len(c))
	for i, r := range c {
		out[i] = r.Clone()
	}
	return out
}

// Flatten concatenates all routes into one gene sequence.
func (c Chromosome) Flatten() []int {
	n := 0
	for _, r := range c {
		n += len(r)
	}

	genes := make([]int, 0, n)
	for _, r := range c {
		genes = append(genes, r...)
	}
	return genes
}

// Lengths returns the number of deliveries on each route.
func (c Chromosome) Lengths() []int {
	lengths := make([]int, len(c))
	for i, r := range c {
		lengths[i] = len(r)
	}
	return lengths
}

// Slice cuts a flat gene sequence back into routes of the given lengths.
// The lengths must sum to len(genes).
func Slice(genes []int, lengths []int) Chromosome {
	out := make(Chromosome, len(lengths))
	pos := 0
	for i, l := range lengths {
		out[i] = Route(append([]int(nil), genes[pos:pos+l]...))
		pos += l
	}
	return out
}

// CheckPartition verifies that c covers every delivery index 0..n-1 exactly once.
func (c Chromosome) CheckPartition(n int) error {
	seen := make([]bool, n)
	count := 0
	for ri, r := range c {
		for _, idx := range r {
			if idx < 0 || idx >= n {
				return fmt.Errorf("check partition: route %d: delivery %d out of range [0,%d)", ri, idx, n)
			}
			if seen[idx] {
				return fmt.Errorf("check partition: route %d: delivery %d appears more than once", ri, idx)
			}
			seen[idx] = true
			count++
		}
	}

	if count != n {
		return fmt.Errorf("check partition: %d of %d deliveries assigned", count, n)
	}
	return nil
}
