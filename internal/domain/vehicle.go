package domain

// Vehicle accumulates deliveries while a route is being packed.
// It tracks the running load against a fixed capacity.
type Vehicle struct {
	Capacity float64
	Stops    Route
	load     float64
}

func NewVehicle(capacity float64) *Vehicle {
	return &Vehicle{Capacity: capacity}
}

// TryLoad appends delivery idx when its demand still fits.
// It reports whether the delivery was loaded.
func (v *Vehicle) TryLoad(idx int, demand float64) bool {
	if v.load+demand > v.Capacity {
		return false
	}
	v.Stops = append(v.Stops, idx)
	v.load += demand
	return true
}

// ForceLoad appends delivery idx regardless of capacity.
func (v *Vehicle) ForceLoad(idx int, demand float64) {
	v.Stops = append(v.Stops, idx)
	v.load += demand
}

func (v *Vehicle) Load() float64 { return v.load }

func (v *Vehicle) Empty() bool { return len(v.Stops) == 0 }
