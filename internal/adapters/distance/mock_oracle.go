package distance

import (
	"delivery-route-optimizer/internal/domain"
	"fmt"
)

type MockPair struct {
	From, To domain.Location
	Distance float64
}

// MockOracle answers from a fixed table and is symmetric unless both
// directions are listed. Unknown pairs panic, so tests notice missing data.
type MockOracle struct {
	m     map[[2]domain.Location]float64
	calls int
}

func NewMockOracle(pairs []MockPair) *MockOracle {
	m := make(map[[2]domain.Location]float64, 2*len(pairs))
	for _, p := range pairs {
		m[[2]domain.Location{p.From, p.To}] = p.Distance
		if _, ok := m[[2]domain.Location{p.To, p.From}]; !ok {
			m[[2]domain.Location{p.To, p.From}] = p.Distance
		}
	}
	return &MockOracle{m: m}
}

func (o *MockOracle) Distance(a, b domain.Location) float64 {
	o.calls++
	if a == b {
		return 0
	}
	d, ok := o.m[[2]domain.Location{a, b}]
	if !ok {
		panic(fmt.Sprintf("mock oracle: missing pair %v -> %v", a, b))
	}
	return d
}

// Calls reports how many lookups were served. Not safe for concurrent use.
func (o *MockOracle) Calls() int { return o.calls }
