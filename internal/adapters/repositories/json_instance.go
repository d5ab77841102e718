package repositories

import (
	"bufio"
	"bytes"
	"delivery-route-optimizer/internal/domain"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// InstanceSeed is the on-disk instance format:
//
//	{"name": "...", "depot": [x, y], "deliveries": [[x, y], ...],
//	 "demands": [...], "num_vehicles": n}
type InstanceSeed struct {
	Name        string      `json:"name,omitempty"`
	Depot       []float64   `json:"depot"`
	Deliveries  [][]float64 `json:"deliveries"`
	Demands     []float64   `json:"demands"`
	NumVehicles int         `json:"num_vehicles"`
}

func (s InstanceSeed) toDomain() (*domain.Instance, error) {
	depot, err := toLocation(s.Depot)
	if err != nil {
		return nil, fmt.Errorf("depot: %w", err)
	}

	inst := &domain.Instance{
		Name:        strings.TrimSpace(s.Name),
		Depot:       depot,
		Deliveries:  make([]domain.Location, 0, len(s.Deliveries)),
		Demands:     append([]float64(nil), s.Demands...),
		NumVehicles: s.NumVehicles,
	}
	for i, d := range s.Deliveries {
		loc, err := toLocation(d)
		if err != nil {
			return nil, fmt.Errorf("delivery %d: %w", i, err)
		}
		inst.Deliveries = append(inst.Deliveries, loc)
	}

	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// SeedFromDomain converts an instance back into its on-disk form.
func SeedFromDomain(inst *domain.Instance) InstanceSeed {
	s := InstanceSeed{
		Name:        inst.Name,
		Depot:       inst.Depot.ToList(),
		Deliveries:  make([][]float64, 0, len(inst.Deliveries)),
		Demands:     append([]float64(nil), inst.Demands...),
		NumVehicles: inst.NumVehicles,
	}
	for _, d := range inst.Deliveries {
		s.Deliveries = append(s.Deliveries, d.ToList())
	}
	return s
}

func toLocation(xy []float64) (domain.Location, error) {
	if len(xy) != 2 {
		return domain.Location{}, fmt.Errorf("expected [x, y], got %d numbers", len(xy))
	}
	return domain.Location{X: xy[0], Y: xy[1]}, nil
}

// DecodeInstances reads either a single instance object or an array of them.
// Unnamed instances are named "instance-<n>" by position.
func DecodeInstances(r io.Reader) ([]*domain.Instance, error) {
	br := bufio.NewReader(r)
	first, err := peekNonSpace(br)
	if err != nil {
		return nil, fmt.Errorf("decode instances: %w", err)
	}

	var seeds []InstanceSeed
	dec := json.NewDecoder(br)
	dec.DisallowUnknownFields()

	if first == '[' {
		if err := dec.Decode(&seeds); err != nil {
			return nil, fmt.Errorf("decode instances: parse json: %w", err)
		}
	} else {
		var one InstanceSeed
		if err := dec.Decode(&one); err != nil {
			return nil, fmt.Errorf("decode instances: parse json: %w", err)
		}
		seeds = append(seeds, one)
	}

	out := make([]*domain.Instance, 0, len(seeds))
	for i, s := range seeds {
		inst, err := s.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode instances: item %d: %w", i+1, err)
		}
		if inst.Name == "" {
			inst.Name = fmt.Sprintf("instance-%d", i+1)
		}
		out = append(out, inst)
	}
	return out, nil
}

func peekNonSpace(br *bufio.Reader) (byte, error) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, errors.New("empty input")
			}
			return 0, err
		}
		if !bytes.ContainsRune([]byte(" \t\r\n"), rune(b)) {
			return b, br.UnreadByte()
		}
	}
}

// DecodeInstance reads exactly one instance. Its name may be empty.
func DecodeInstance(r io.Reader) (*domain.Instance, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var s InstanceSeed
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode instance: parse json: %w", err)
	}
	if dec.More() {
		return nil, errors.New("decode instance: trailing data after instance object")
	}

	inst, err := s.toDomain()
	if err != nil {
		return nil, fmt.Errorf("decode instance: %w", err)
	}
	return inst, nil
}

// LoadInstanceJSON reads a single instance file. An unnamed instance takes
// the file name without extension.
func LoadInstanceJSON(path string) (*domain.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load instance: open %q: %w", path, err)
	}
	defer f.Close()

	inst, err := DecodeInstance(f)
	if err != nil {
		return nil, fmt.Errorf("load instance %q: %w", path, err)
	}
	if inst.Name == "" {
		inst.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return inst, nil
}
