package layout

// Unit specifies how a SizeSpec is interpreted.
type Unit uint8

const (
	UnitAuto    Unit = iota // Size determined by content
	UnitFixed               // Absolute terminal cells
	UnitPercent             // Percentage of parent's content box
	UnitFill                // Equal share of the parent's remaining space
)

// SizeSpec represents a dimension policy for one axis.
type SizeSpec struct {
	Amount float64
	Unit   Unit
}

// Auto returns a SizeSpec that sizes to content.
func Auto() SizeSpec {
	return SizeSpec{Unit: UnitAuto}
}

// Fixed returns a SizeSpec representing an absolute number of terminal
// cells. Negative values clamp to zero at resolve time.
func Fixed(n int) SizeSpec {
	return SizeSpec{Amount: float64(n), Unit: UnitFixed}
}

// Percent returns a SizeSpec representing a percentage of the parent's
// content box. The value is on a 0-100 scale (50.0 = 50%).
func Percent(p float64) SizeSpec {
	return SizeSpec{Amount: p, Unit: UnitPercent}
}

// Fill returns a SizeSpec that takes an equal share of the space left
// over after Fixed, Percent, and Auto siblings are placed.
func Fill() SizeSpec {
	return SizeSpec{Unit: UnitFill}
}

// Resolve computes the concrete cell count given available space.
// Percentages floor, matching the exactness guarantee for Fill siblings.
// For UnitAuto and UnitFill, returns the fallback value: Auto resolves
// through the measure pass and Fill through the arrange pass.
func (s SizeSpec) Resolve(available, fallback int) int {
	switch s.Unit {
	case UnitFixed:
		return max(0, int(s.Amount))
	case UnitPercent:
		return int(float64(available) * s.Amount / 100.0)
	default:
		return fallback
	}
}

// IsAuto returns true if this spec sizes to content.
func (s SizeSpec) IsAuto() bool {
	return s.Unit == UnitAuto
}

// IsFill returns true if this spec takes a share of remaining space.
func (s SizeSpec) IsFill() bool {
	return s.Unit == UnitFill
}
